package usecase

import (
	"context"

	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/ordinals"
)

type SatInfo struct {
	Sat    ordinals.Sat
	Rarity ordinals.Rarity
	Height uint64
	Epoch  uint64
	Cycle  uint64
	Third  uint64
	// Location is nil when the sat is not held by any indexed unspent
	// output, e.g. not mined yet or lost to an under-claimed reward.
	Location    *entity.SatPoint
	Unspendable bool
}

// GetSatInfo classifies the sat and resolves its current location. The
// classification is pure; only the location touches storage.
func (u *Usecase) GetSatInfo(ctx context.Context, sat ordinals.Sat) (*SatInfo, error) {
	info := &SatInfo{
		Sat:    sat,
		Rarity: sat.Rarity(),
		Height: sat.Height(),
		Epoch:  sat.Epoch(),
		Cycle:  sat.Cycle(),
		Third:  sat.Third(),
	}

	satRange, err := u.ordinalsDg.GetUnspentSatRangeBySat(ctx, sat)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return info, nil
		}
		return nil, errors.Wrap(err, "failed to get unspent sat range")
	}
	info.Location = &entity.SatPoint{
		OutPoint: wire.OutPoint{Hash: satRange.TxHash, Index: satRange.TxIdx},
		Offset:   satRange.OutputOffset + uint64(sat-satRange.Range.Start),
	}
	info.Unspendable = satRange.Unspendable
	return info, nil
}
