package entity

import "time"

type IndexerState struct {
	DBVersion int32
	CreatedAt time.Time
}
