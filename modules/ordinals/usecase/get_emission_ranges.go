package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
)

func (u *Usecase) GetEmissionRangesByHeight(ctx context.Context, height uint64) ([]*entity.EmissionRange, error) {
	emissionRanges, err := u.ordinalsDg.GetEmissionRangesByHeight(ctx, height)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get emission ranges")
	}
	return emissionRanges, nil
}
