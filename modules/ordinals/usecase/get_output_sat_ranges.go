package usecase

import (
	"context"

	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/core/types"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
	"golang.org/x/sync/errgroup"
)

type OutputSatRanges struct {
	OutPoint    wire.OutPoint
	SatRanges   []*entity.OutPointSatRange
	LatestBlock types.BlockHeader
}

// GetOutputSatRanges returns the ordered sat ranges held by the output
// together with the latest indexed block the answer is valid for.
func (u *Usecase) GetOutputSatRanges(ctx context.Context, outPoint wire.OutPoint) (*OutputSatRanges, error) {
	var (
		satRanges   []*entity.OutPointSatRange
		latestBlock types.BlockHeader
	)
	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		satRanges, err = u.ordinalsDg.GetSatRangesByOutPoint(ectx, outPoint)
		if err != nil {
			return errors.Wrap(err, "failed to get sat ranges by outpoint")
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		latestBlock, err = u.ordinalsDg.GetLatestBlock(ectx)
		if err != nil {
			return errors.Wrap(err, "failed to get latest block")
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}

	return &OutputSatRanges{
		OutPoint:    outPoint,
		SatRanges:   satRanges,
		LatestBlock: latestBlock,
	}, nil
}
