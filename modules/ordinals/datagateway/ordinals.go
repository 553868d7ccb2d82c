package datagateway

import (
	"context"

	"github.com/btcsuite/btcd/wire"
	"github.com/gaze-network/ordinals-indexer/core/types"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/ordinals"
)

type OrdinalsDataGateway interface {
	OrdinalsReaderDataGateway
	OrdinalsWriterDataGateway
	Tx
}

// Tx controls the lifetime of an explicit database transaction. All writes
// between Begin and Commit become visible atomically.
type Tx interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type OrdinalsReaderDataGateway interface {
	GetLatestBlock(ctx context.Context) (types.BlockHeader, error)
	GetIndexedBlockByHeight(ctx context.Context, height int64) (*entity.IndexedBlock, error)
	// GetSatRangesByOutPoint returns the ranges held by the output, ordered by
	// range index. Returns errs.NotFound if the output was never indexed.
	GetSatRangesByOutPoint(ctx context.Context, outPoint wire.OutPoint) ([]*entity.OutPointSatRange, error)
	// GetUnspentSatRangesByOutPoints returns the unspent ranges held by each of
	// the given outputs. Outputs with no unspent ranges are absent from the map.
	GetUnspentSatRangesByOutPoints(ctx context.Context, outPoints []wire.OutPoint) (map[wire.OutPoint][]*entity.OutPointSatRange, error)
	// GetUnspentSatRangeBySat returns the unspent range containing the sat.
	// Returns errs.NotFound if the sat is not in any indexed unspent output.
	GetUnspentSatRangeBySat(ctx context.Context, sat ordinals.Sat) (*entity.OutPointSatRange, error)
	GetEmissionRangesByHeight(ctx context.Context, height uint64) ([]*entity.EmissionRange, error)
}

type OrdinalsWriterDataGateway interface {
	CreateIndexedBlock(ctx context.Context, block *entity.IndexedBlock) error
	CreateOutPointSatRanges(ctx context.Context, satRanges []*entity.OutPointSatRange) error
	CreateEmissionRanges(ctx context.Context, emissionRanges []*entity.EmissionRange) error
	// SpendOutPointSatRanges marks all unspent ranges of the given outputs as
	// spent at the given height.
	SpendOutPointSatRanges(ctx context.Context, outPoints []wire.OutPoint, blockHeight uint64) error

	DeleteIndexedBlocksSinceHeight(ctx context.Context, height uint64) error
	DeleteOutPointSatRangesSinceHeight(ctx context.Context, height uint64) error
	DeleteEmissionRangesSinceHeight(ctx context.Context, height uint64) error
	UnspendOutPointSatRangesSinceHeight(ctx context.Context, height uint64) error
}
