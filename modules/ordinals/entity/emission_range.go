package entity

import "github.com/gaze-network/ordinals-indexer/modules/ordinals/ordinals"

// EmissionRange is one range of sats credited to the coinbase of a block:
// index 0 is always the subsidy range, followed by fee residues in the
// block order of the paying transactions.
type EmissionRange struct {
	Height uint64
	Idx    int32
	Range  ordinals.Range
}
