package postgres

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/ordinals"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/repository/postgres/gen"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
)

func mapIndexedBlockModelToType(src gen.OrdinalsIndexedBlock) (*entity.IndexedBlock, error) {
	hash, err := chainhash.NewHashFromStr(src.Hash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse block hash")
	}
	prevHash, err := chainhash.NewHashFromStr(src.PrevHash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse prev block hash")
	}
	return &entity.IndexedBlock{
		Height:         src.Height,
		Hash:           *hash,
		PrevHash:       *prevHash,
		CumulativeSats: uint64(src.CumulativeSats),
	}, nil
}

func mapIndexedBlockTypeToParams(src entity.IndexedBlock) gen.CreateIndexedBlockParams {
	return gen.CreateIndexedBlockParams{
		Height:         src.Height,
		Hash:           src.Hash.String(),
		PrevHash:       src.PrevHash.String(),
		CumulativeSats: int64(src.CumulativeSats),
	}
}

func mapSatRangeModelToType(src gen.OrdinalsSatRange) (*entity.OutPointSatRange, error) {
	txHash, err := chainhash.NewHashFromStr(src.TxHash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse tx hash")
	}
	satRange, err := ordinals.NewRange(ordinals.Sat(src.Start), ordinals.Sat(src.End))
	if err != nil {
		return nil, errors.Wrap(err, "invalid sat range in storage")
	}
	var spentHeight *uint64
	if src.SpentHeight.Valid {
		spentHeight = lo.ToPtr(uint64(src.SpentHeight.Int64))
	}
	return &entity.OutPointSatRange{
		TxHash:        *txHash,
		TxIdx:         uint32(src.TxIdx),
		RangeIdx:      src.RangeIdx,
		Range:         satRange,
		OutputOffset:  uint64(src.OutputOffset),
		CreatedHeight: uint64(src.CreatedHeight),
		SpentHeight:   spentHeight,
		Unspendable:   src.Unspendable,
	}, nil
}

func mapSatRangesToBatchParams(src []*entity.OutPointSatRange) gen.BatchCreateSatRangesParams {
	params := gen.BatchCreateSatRangesParams{
		TxHashArr:        make([]string, 0, len(src)),
		TxIdxArr:         make([]int32, 0, len(src)),
		RangeIdxArr:      make([]int32, 0, len(src)),
		StartArr:         make([]int64, 0, len(src)),
		EndArr:           make([]int64, 0, len(src)),
		OutputOffsetArr:  make([]int64, 0, len(src)),
		CreatedHeightArr: make([]int64, 0, len(src)),
		SpentHeightArr:   make([]pgtype.Int8, 0, len(src)),
		UnspendableArr:   make([]bool, 0, len(src)),
	}
	for _, satRange := range src {
		params.TxHashArr = append(params.TxHashArr, satRange.TxHash.String())
		params.TxIdxArr = append(params.TxIdxArr, int32(satRange.TxIdx))
		params.RangeIdxArr = append(params.RangeIdxArr, satRange.RangeIdx)
		params.StartArr = append(params.StartArr, int64(satRange.Range.Start))
		params.EndArr = append(params.EndArr, int64(satRange.Range.End))
		params.OutputOffsetArr = append(params.OutputOffsetArr, int64(satRange.OutputOffset))
		params.CreatedHeightArr = append(params.CreatedHeightArr, int64(satRange.CreatedHeight))
		var spentHeight pgtype.Int8
		if satRange.SpentHeight != nil {
			spentHeight = pgtype.Int8{Int64: int64(*satRange.SpentHeight), Valid: true}
		}
		params.SpentHeightArr = append(params.SpentHeightArr, spentHeight)
		params.UnspendableArr = append(params.UnspendableArr, satRange.Unspendable)
	}
	return params
}

func mapEmissionRangeModelToType(src gen.OrdinalsEmissionRange) (*entity.EmissionRange, error) {
	emissionRange, err := ordinals.NewRange(ordinals.Sat(src.Start), ordinals.Sat(src.End))
	if err != nil {
		return nil, errors.Wrap(err, "invalid emission range in storage")
	}
	return &entity.EmissionRange{
		Height: uint64(src.Height),
		Idx:    src.Idx,
		Range:  emissionRange,
	}, nil
}

func mapEmissionRangesToBatchParams(src []*entity.EmissionRange) gen.BatchCreateEmissionRangesParams {
	params := gen.BatchCreateEmissionRangesParams{
		HeightArr: make([]int64, 0, len(src)),
		IdxArr:    make([]int32, 0, len(src)),
		StartArr:  make([]int64, 0, len(src)),
		EndArr:    make([]int64, 0, len(src)),
	}
	for _, emissionRange := range src {
		params.HeightArr = append(params.HeightArr, int64(emissionRange.Height))
		params.IdxArr = append(params.IdxArr, emissionRange.Idx)
		params.StartArr = append(params.StartArr, int64(emissionRange.Range.Start))
		params.EndArr = append(params.EndArr, int64(emissionRange.Range.End))
	}
	return params
}

func mapIndexerStateModelToType(src gen.OrdinalsIndexerState) entity.IndexerState {
	var createdAt time.Time
	if src.CreatedAt.Valid {
		createdAt = src.CreatedAt.Time.UTC()
	}
	return entity.IndexerState{
		DBVersion: src.DbVersion,
		CreatedAt: createdAt,
	}
}
