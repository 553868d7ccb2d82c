package ordinals

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common"
	"github.com/gaze-network/ordinals-indexer/common/errs"
)

const (
	// CoinValue is the number of sats in one whole coin.
	CoinValue = 100_000_000

	// InitialSubsidy is the block subsidy of the genesis epoch, in sats.
	InitialSubsidy = 50 * CoinValue

	// DifficultyAdjustmentInterval is the number of blocks between
	// difficulty retargets.
	DifficultyAdjustmentInterval = 2016

	// CycleEpochs is the number of halving epochs in one emission cycle: the
	// period after which a halving coincides with a difficulty retarget.
	CycleEpochs = 6

	// CycleInterval is the number of blocks in one emission cycle.
	CycleInterval = CycleEpochs * common.HalvingInterval

	// Supply is the total number of sats that will ever exist.
	Supply = 2_099_999_997_690_000
)

// Sat is the ordinal number of a single satoshi: its position in the order
// all sats are mined, in [0, Supply).
type Sat uint64

// NewSat validates that the ordinal number is within the supply cap.
func NewSat(n uint64) (Sat, error) {
	if n >= Supply {
		return 0, errors.Wrapf(errs.InvalidArgument, "sat number %d exceeds supply cap", n)
	}
	return Sat(n), nil
}

// SubsidyAtHeight returns the block subsidy at the given height, in sats.
func SubsidyAtHeight(height uint64) uint64 {
	epoch := height / common.HalvingInterval
	if epoch > 63 {
		return 0
	}
	return InitialSubsidy >> epoch
}

// FirstSatAtHeight returns the ordinal number of the first sat created at
// the given height: the cumulative emission through all prior heights.
func FirstSatAtHeight(height uint64) Sat {
	var sat, start uint64
	subsidy := uint64(InitialSubsidy)
	for subsidy > 0 {
		if height < start+common.HalvingInterval {
			return Sat(sat + (height-start)*subsidy)
		}
		sat += common.HalvingInterval * subsidy
		start += common.HalvingInterval
		subsidy >>= 1
	}
	return Sat(sat)
}

// Height returns the height of the block that created the sat.
func (s Sat) Height() uint64 {
	var sat, start uint64
	subsidy := uint64(InitialSubsidy)
	for subsidy > 0 {
		epochSats := common.HalvingInterval * subsidy
		if uint64(s) < sat+epochSats {
			return start + (uint64(s)-sat)/subsidy
		}
		sat += epochSats
		start += common.HalvingInterval
		subsidy >>= 1
	}
	return start
}

// Epoch returns the halving epoch of the sat's block.
func (s Sat) Epoch() uint64 {
	return s.Height() / common.HalvingInterval
}

// Cycle returns the emission cycle of the sat's block.
func (s Sat) Cycle() uint64 {
	return s.Height() / CycleInterval
}

// Third returns the sat's offset within its block's emission.
func (s Sat) Third() uint64 {
	return uint64(s) - uint64(FirstSatAtHeight(s.Height()))
}

// Rarity classifies the sat by its position in the emission schedule.
// Pure and deterministic: repeated calls always agree.
func (s Sat) Rarity() Rarity {
	if s == 0 {
		return RarityMythic
	}
	if s.Third() != 0 {
		return RarityCommon
	}

	height := s.Height()
	switch {
	case height%CycleInterval == 0:
		return RarityLegendary
	case height%common.HalvingInterval == 0:
		return RarityEpic
	case height%DifficultyAdjustmentInterval == 0:
		return RarityRare
	default:
		return RarityUncommon
	}
}
