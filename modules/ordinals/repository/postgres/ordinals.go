package postgres

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/core/types"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/datagateway"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/ordinals"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/repository/postgres/gen"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ datagateway.OrdinalsDataGateway = (*Repository)(nil)

// warning: GetLatestBlock returns a types.BlockHeader with only Height, Hash
// and PrevBlock populated, which is all the indexer loop requires.
func (r *Repository) GetLatestBlock(ctx context.Context) (types.BlockHeader, error) {
	block, err := r.getQueries().GetLatestIndexedBlock(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.BlockHeader{}, errors.WithStack(errs.NotFound)
		}
		return types.BlockHeader{}, errors.Wrap(err, "error during query")
	}
	hash, err := chainhash.NewHashFromStr(block.Hash)
	if err != nil {
		return types.BlockHeader{}, errors.Wrap(err, "failed to parse block hash")
	}
	prevHash, err := chainhash.NewHashFromStr(block.PrevHash)
	if err != nil {
		return types.BlockHeader{}, errors.Wrap(err, "failed to parse prev block hash")
	}
	return types.BlockHeader{
		Height:    block.Height,
		Hash:      *hash,
		PrevBlock: *prevHash,
	}, nil
}

func (r *Repository) GetIndexedBlockByHeight(ctx context.Context, height int64) (*entity.IndexedBlock, error) {
	indexedBlockModel, err := r.getQueries().GetIndexedBlockByHeight(ctx, height)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	indexedBlock, err := mapIndexedBlockModelToType(indexedBlockModel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse indexed block model")
	}
	return indexedBlock, nil
}

func (r *Repository) GetSatRangesByOutPoint(ctx context.Context, outPoint wire.OutPoint) ([]*entity.OutPointSatRange, error) {
	rows, err := r.getQueries().GetSatRangesByOutPoint(ctx, gen.GetSatRangesByOutPointParams{
		TxHash: outPoint.Hash.String(),
		TxIdx:  int32(outPoint.Index),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	if len(rows) == 0 {
		return nil, errors.WithStack(errs.NotFound)
	}
	satRanges := make([]*entity.OutPointSatRange, 0, len(rows))
	for _, row := range rows {
		satRange, err := mapSatRangeModelToType(row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse sat range model")
		}
		satRanges = append(satRanges, satRange)
	}
	return satRanges, nil
}

func (r *Repository) GetUnspentSatRangesByOutPoints(ctx context.Context, outPoints []wire.OutPoint) (map[wire.OutPoint][]*entity.OutPointSatRange, error) {
	params := gen.GetUnspentSatRangesByOutPointsParams{
		TxHashArr: make([]string, 0, len(outPoints)),
		TxIdxArr:  make([]int32, 0, len(outPoints)),
	}
	for _, outPoint := range outPoints {
		params.TxHashArr = append(params.TxHashArr, outPoint.Hash.String())
		params.TxIdxArr = append(params.TxIdxArr, int32(outPoint.Index))
	}
	rows, err := r.getQueries().GetUnspentSatRangesByOutPoints(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	result := make(map[wire.OutPoint][]*entity.OutPointSatRange)
	for _, row := range rows {
		satRange, err := mapSatRangeModelToType(row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse sat range model")
		}
		outPoint := satRange.OutPoint()
		result[outPoint] = append(result[outPoint], satRange)
	}
	return result, nil
}

func (r *Repository) GetUnspentSatRangeBySat(ctx context.Context, sat ordinals.Sat) (*entity.OutPointSatRange, error) {
	row, err := r.getQueries().GetUnspentSatRangeBySat(ctx, int64(sat))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	satRange, err := mapSatRangeModelToType(row)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse sat range model")
	}
	return satRange, nil
}

func (r *Repository) GetEmissionRangesByHeight(ctx context.Context, height uint64) ([]*entity.EmissionRange, error) {
	rows, err := r.getQueries().GetEmissionRangesByHeight(ctx, int64(height))
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	if len(rows) == 0 {
		return nil, errors.WithStack(errs.NotFound)
	}
	emissionRanges := make([]*entity.EmissionRange, 0, len(rows))
	for _, row := range rows {
		emissionRange, err := mapEmissionRangeModelToType(row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse emission range model")
		}
		emissionRanges = append(emissionRanges, emissionRange)
	}
	return emissionRanges, nil
}

func (r *Repository) CreateIndexedBlock(ctx context.Context, block *entity.IndexedBlock) error {
	if err := r.getQueries().CreateIndexedBlock(ctx, mapIndexedBlockTypeToParams(*block)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateOutPointSatRanges(ctx context.Context, satRanges []*entity.OutPointSatRange) error {
	if len(satRanges) == 0 {
		return nil
	}
	if err := r.getQueries().BatchCreateSatRanges(ctx, mapSatRangesToBatchParams(satRanges)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateEmissionRanges(ctx context.Context, emissionRanges []*entity.EmissionRange) error {
	if len(emissionRanges) == 0 {
		return nil
	}
	if err := r.getQueries().BatchCreateEmissionRanges(ctx, mapEmissionRangesToBatchParams(emissionRanges)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) SpendOutPointSatRanges(ctx context.Context, outPoints []wire.OutPoint, blockHeight uint64) error {
	if len(outPoints) == 0 {
		return nil
	}
	params := gen.SpendSatRangesParams{
		TxHashArr:   make([]string, 0, len(outPoints)),
		TxIdxArr:    make([]int32, 0, len(outPoints)),
		SpentHeight: pgtype.Int8{Int64: int64(blockHeight), Valid: true},
	}
	for _, outPoint := range outPoints {
		params.TxHashArr = append(params.TxHashArr, outPoint.Hash.String())
		params.TxIdxArr = append(params.TxIdxArr, int32(outPoint.Index))
	}
	if err := r.getQueries().SpendSatRanges(ctx, params); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) DeleteIndexedBlocksSinceHeight(ctx context.Context, height uint64) error {
	if err := r.getQueries().DeleteIndexedBlocksSinceHeight(ctx, int64(height)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) DeleteOutPointSatRangesSinceHeight(ctx context.Context, height uint64) error {
	if err := r.getQueries().DeleteSatRangesSinceHeight(ctx, int64(height)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) DeleteEmissionRangesSinceHeight(ctx context.Context, height uint64) error {
	if err := r.getQueries().DeleteEmissionRangesSinceHeight(ctx, int64(height)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) UnspendOutPointSatRangesSinceHeight(ctx context.Context, height uint64) error {
	if err := r.getQueries().UnspendSatRangesSinceHeight(ctx, pgtype.Int8{Int64: int64(height), Valid: true}); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}
