package logger

import (
	"fmt"
	"log/slog"

	"github.com/gaze-network/ordinals-indexer/pkg/logger/slogx"
)

// errorAttrReplacer expands error attributes into a group carrying both the
// plain message and the verbose rendering (with wrapping chain).
func errorAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) != 0 || attr.Key != slogx.ErrorKey {
		return attr
	}
	err, ok := attr.Value.Any().(error)
	if !ok || err == nil {
		return attr
	}
	return slog.Attr{Key: attr.Key, Value: slog.GroupValue(
		slog.String("message", err.Error()),
		slog.String("verbose", fmt.Sprintf("%+v", err)),
	)}
}
