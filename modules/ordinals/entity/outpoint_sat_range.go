package entity

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/ordinals"
)

// OutPointSatRange is one contiguous run of sats held by a transaction
// output. An output holds an ordered list of these; RangeIdx preserves the
// order and OutputOffset is the offset of the range's first sat within the
// output's value.
type OutPointSatRange struct {
	TxHash        chainhash.Hash
	TxIdx         uint32
	RangeIdx      int32
	Range         ordinals.Range
	OutputOffset  uint64
	CreatedHeight uint64
	SpentHeight   *uint64
	// Unspendable marks ranges assigned to provably unspendable scripts:
	// the sats are tracked but permanently burned.
	Unspendable bool
}

func (o OutPointSatRange) OutPoint() wire.OutPoint {
	return wire.OutPoint{Hash: o.TxHash, Index: o.TxIdx}
}
