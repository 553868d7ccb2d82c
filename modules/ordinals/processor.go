package ordinals

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/core/indexer"
	"github.com/gaze-network/ordinals-indexer/core/types"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/datagateway"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
	"github.com/gaze-network/ordinals-indexer/pkg/logger"
	"github.com/gaze-network/ordinals-indexer/pkg/logger/slogx"
)

var _ indexer.Processor[*types.Block] = (*Processor)(nil)

type Processor struct {
	ordinalsDg    datagateway.OrdinalsDataGateway
	indexerInfoDg datagateway.IndexerInfoDataGateway
	network       common.Network
	cleanupFuncs  []func(context.Context) error

	// cumulativeSats carries the running emission total across blocks of the
	// same batch to avoid re-reading the previous block record every height.
	// Negative means unknown and must be loaded from storage.
	cumulativeSats int64
}

func NewProcessor(ordinalsDg datagateway.OrdinalsDataGateway, indexerInfoDg datagateway.IndexerInfoDataGateway, network common.Network, cleanupFuncs []func(context.Context) error) *Processor {
	return &Processor{
		ordinalsDg:     ordinalsDg,
		indexerInfoDg:  indexerInfoDg,
		network:        network,
		cleanupFuncs:   cleanupFuncs,
		cumulativeSats: -1,
	}
}

func (p *Processor) Name() string {
	return "Ordinals"
}

func (p *Processor) VerifyStates(ctx context.Context) error {
	if err := p.ensureValidState(ctx); err != nil {
		return errors.Wrap(err, "error during ensureValidState")
	}
	return nil
}

func (p *Processor) ensureValidState(ctx context.Context) error {
	indexerState, err := p.indexerInfoDg.GetLatestIndexerState(ctx)
	if err != nil && !errors.Is(err, errs.NotFound) {
		return errors.Wrap(err, "failed to get latest indexer state")
	}
	// if not found, set indexer state
	if errors.Is(err, errs.NotFound) {
		if err := p.indexerInfoDg.SetIndexerState(ctx, entity.IndexerState{
			DBVersion: DBVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to set indexer state")
		}
	} else {
		if indexerState.DBVersion != DBVersion {
			return errors.Wrapf(errs.ConflictSetting, "db version mismatch: current version is %d. Please migrate db to version %d", indexerState.DBVersion, DBVersion)
		}
	}

	_, network, err := p.indexerInfoDg.GetLatestIndexerStats(ctx)
	if err != nil && !errors.Is(err, errs.NotFound) {
		return errors.Wrap(err, "failed to get latest indexer stats")
	}
	// if found, verify indexer stats
	if err == nil {
		if network != p.network {
			return errors.Wrapf(errs.ConflictSetting, "network mismatch: latest indexed network is %q, configured network is %q. If you want to change the network, please reset the database", network, p.network)
		}
	}
	if err := p.indexerInfoDg.UpdateIndexerStats(ctx, Version, p.network); err != nil {
		return errors.Wrap(err, "failed to update indexer stats")
	}
	return nil
}

func (p *Processor) CurrentBlock(ctx context.Context) (types.BlockHeader, error) {
	blockHeader, err := p.ordinalsDg.GetLatestBlock(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			// propagate NotFound so the indexer starts from genesis
			return types.BlockHeader{}, errors.WithStack(err)
		}
		return types.BlockHeader{}, errors.Wrap(err, "failed to get latest block")
	}
	return blockHeader, nil
}

// warning: GetIndexedBlock returns a types.BlockHeader with only Height and
// Hash populated, which is all the reorg walk-back requires.
func (p *Processor) GetIndexedBlock(ctx context.Context, height int64) (types.BlockHeader, error) {
	block, err := p.ordinalsDg.GetIndexedBlockByHeight(ctx, height)
	if err != nil {
		return types.BlockHeader{}, errors.Wrap(err, "failed to get indexed block")
	}
	return types.BlockHeader{
		Height: block.Height,
		Hash:   block.Hash,
	}, nil
}

// RevertData removes all indexed data from the given height (inclusive)
// upward and restores spent ranges, one transaction per reverted height so a
// crash mid-revert leaves a consistent prefix.
func (p *Processor) RevertData(ctx context.Context, from int64) error {
	latestBlock, err := p.ordinalsDg.GetLatestBlock(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil
		}
		return errors.Wrap(err, "failed to get latest block")
	}

	for height := latestBlock.Height; height >= from; height-- {
		if err := p.revertHeight(ctx, uint64(height)); err != nil {
			return errors.Wrapf(err, "failed to revert height %d", height)
		}
	}
	p.cumulativeSats = -1
	logger.InfoContext(ctx, "Reverted indexed data",
		slogx.Int64("since_height", from),
		slogx.Int64("until_height", latestBlock.Height),
	)
	return nil
}

func (p *Processor) revertHeight(ctx context.Context, height uint64) error {
	if err := p.ordinalsDg.Begin(ctx); err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := p.ordinalsDg.Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "failed to rollback transaction", slogx.Error(err))
		}
	}()

	if err := p.ordinalsDg.DeleteOutPointSatRangesSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete sat ranges")
	}
	if err := p.ordinalsDg.UnspendOutPointSatRangesSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to unspend sat ranges")
	}
	if err := p.ordinalsDg.DeleteEmissionRangesSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete emission ranges")
	}
	if err := p.ordinalsDg.DeleteIndexedBlocksSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete indexed blocks")
	}

	if err := p.ordinalsDg.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func (p *Processor) Shutdown(ctx context.Context) error {
	for _, cleanup := range p.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			return errors.Wrap(err, "cleanup failed")
		}
	}
	return nil
}
