package entity

import (
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// SatPoint is the location of a single sat: an outpoint plus the sat's
// offset within that output's value.
type SatPoint struct {
	OutPoint wire.OutPoint
	Offset   uint64
}

func (s SatPoint) String() string {
	return fmt.Sprintf("%s:%d:%d", s.OutPoint.Hash.String(), s.OutPoint.Index, s.Offset)
}
