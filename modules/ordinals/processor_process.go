package ordinals

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/core/types"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/ordinals"
	"github.com/gaze-network/ordinals-indexer/pkg/logger"
	"github.com/gaze-network/ordinals-indexer/pkg/logger/slogx"
	"github.com/samber/lo"
)

// blockFlush is the complete set of edits produced by one block, committed
// in a single transaction.
type blockFlush struct {
	satRanges      []*entity.OutPointSatRange
	spendOutPoints []wire.OutPoint
	emissionRanges []*entity.EmissionRange
	indexedBlock   *entity.IndexedBlock
}

func (p *Processor) Process(ctx context.Context, blocks []*types.Block) error {
	for _, block := range blocks {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "context canceled between block commits")
		}

		startAt := time.Now()
		flush, err := p.processBlock(ctx, block)
		if err != nil {
			return errors.Wrapf(err, "failed to process block %d", block.Header.Height)
		}
		if err := p.flushBlock(ctx, flush); err != nil {
			return errors.Wrapf(err, "failed to flush block %d", block.Header.Height)
		}
		p.cumulativeSats = int64(flush.indexedBlock.CumulativeSats)

		logger.DebugContext(ctx, "Indexed block",
			slogx.Int64("height", block.Header.Height),
			slogx.Int("new_sat_ranges", len(flush.satRanges)),
			slogx.Int("spent_outpoints", len(flush.spendOutPoints)),
			slogx.Duration("duration", time.Since(startAt)),
		)
	}
	return nil
}

// processBlock walks the block once: the subsidy range is seeded for the
// coinbase, every non-coinbase transaction concatenates its input ranges and
// distributes them across its outputs in order, and leftovers accumulate as
// fee residues paid to the coinbase after the subsidy.
func (p *Processor) processBlock(ctx context.Context, block *types.Block) (*blockFlush, error) {
	height := uint64(block.Header.Height)
	if len(block.Transactions) == 0 || !block.Transactions[0].IsCoinbase() {
		return nil, errors.Wrapf(errs.ConsistencyViolation, "block %d has no coinbase as first transaction", height)
	}

	subsidy := ordinals.SubsidyAtHeight(height)
	firstSat := ordinals.FirstSatAtHeight(height)
	subsidyRange := ordinals.Range{Start: firstSat, End: firstSat + ordinals.Sat(subsidy)}

	flush := &blockFlush{}
	// outputs created earlier in this same block, spendable by later txs
	overlay := make(map[wire.OutPoint][]*entity.OutPointSatRange)
	feeRanges := make([]ordinals.Range, 0)

	for _, tx := range block.Transactions[1:] {
		inputRanges, err := p.resolveInputRanges(ctx, tx, height, overlay, flush)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve input ranges for tx %s", tx.TxHash)
		}

		residue, err := distributeToOutputs(tx, inputRanges, height, overlay, flush)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		feeRanges = append(feeRanges, residue...)
	}

	// coinbase claims the subsidy first, then fee residues in the block
	// order of the paying transactions
	coinbaseRanges := append([]ordinals.Range{subsidyRange}, feeRanges...)
	flush.emissionRanges = lo.Map(coinbaseRanges, func(satRange ordinals.Range, idx int) *entity.EmissionRange {
		return &entity.EmissionRange{
			Height: height,
			Idx:    int32(idx),
			Range:  satRange,
		}
	})

	coinbase := block.Transactions[0]
	unclaimed, err := distributeToOutputs(coinbase, coinbaseRanges, height, overlay, flush)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if lost := ordinals.Cardinality(unclaimed); lost > 0 {
		// under-claimed reward: the sats belong to no output and are
		// permanently lost, but they remain recorded in the emission entry
		logger.WarnContext(ctx, "Coinbase did not claim full block reward",
			slogx.Int64("height", int64(height)),
			slogx.Uint64("lost_sats", lost),
		)
	}

	cumulativeSats, err := p.cumulativeSatsForBlock(ctx, height, subsidy)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	flush.indexedBlock = &entity.IndexedBlock{
		Height:         block.Header.Height,
		Hash:           block.Header.Hash,
		PrevHash:       block.Header.PrevBlock,
		CumulativeSats: cumulativeSats,
	}
	return flush, nil
}

// resolveInputRanges concatenates the sat ranges of the tx's inputs in input
// order, consulting outputs created earlier in the same block before the
// store. Store-resident inputs are queued for spend marking; same-block
// inputs are marked spent in place.
func (p *Processor) resolveInputRanges(ctx context.Context, tx *types.Transaction, height uint64, overlay map[wire.OutPoint][]*entity.OutPointSatRange, flush *blockFlush) ([]ordinals.Range, error) {
	missing := make([]wire.OutPoint, 0, len(tx.TxIn))
	for _, txIn := range tx.TxIn {
		outPoint := wire.OutPoint{Hash: txIn.PreviousOutTxHash, Index: txIn.PreviousOutIndex}
		if _, ok := overlay[outPoint]; !ok {
			missing = append(missing, outPoint)
		}
	}

	stored := make(map[wire.OutPoint][]*entity.OutPointSatRange)
	if len(missing) > 0 {
		var err error
		stored, err = p.ordinalsDg.GetUnspentSatRangesByOutPoints(ctx, missing)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get unspent sat ranges")
		}
	}

	inputRanges := make([]ordinals.Range, 0)
	for _, txIn := range tx.TxIn {
		outPoint := wire.OutPoint{Hash: txIn.PreviousOutTxHash, Index: txIn.PreviousOutIndex}
		if rows, ok := overlay[outPoint]; ok {
			for _, row := range rows {
				row.SpentHeight = lo.ToPtr(height)
				inputRanges = append(inputRanges, row.Range)
			}
			continue
		}
		rows, ok := stored[outPoint]
		if !ok {
			return nil, errors.Wrapf(errs.ConsistencyViolation, "input %s of tx %s is not an indexed unspent output", outPoint, tx.TxHash)
		}
		flush.spendOutPoints = append(flush.spendOutPoints, outPoint)
		for _, row := range rows {
			inputRanges = append(inputRanges, row.Range)
		}
	}
	return inputRanges, nil
}

// distributeToOutputs assigns the ordered input ranges to the tx's outputs
// front to back, splitting at output value boundaries, and returns the
// undistributed remainder. Zero-value outputs are recorded as a single
// zero-cardinality range so their position survives.
func distributeToOutputs(tx *types.Transaction, inputRanges []ordinals.Range, height uint64, overlay map[wire.OutPoint][]*entity.OutPointSatRange, flush *blockFlush) ([]ordinals.Range, error) {
	remaining := inputRanges
	for voutIdx, txOut := range tx.TxOut {
		value := uint64(txOut.Value)
		if ordinals.Cardinality(remaining) < value {
			return nil, errors.Wrapf(errs.ConsistencyViolation, "tx %s output %d value %d exceeds remaining input sats %d", tx.TxHash, voutIdx, value, ordinals.Cardinality(remaining))
		}
		front, rest := ordinals.Split(remaining, value)
		if len(front) == 0 {
			front = []ordinals.Range{{Start: nextSat(rest), End: nextSat(rest)}}
		}

		unspendable := txscript.IsUnspendable(txOut.PkScript)
		rows := make([]*entity.OutPointSatRange, 0, len(front))
		var offset uint64
		for rangeIdx, satRange := range front {
			rows = append(rows, &entity.OutPointSatRange{
				TxHash:        tx.TxHash,
				TxIdx:         uint32(voutIdx),
				RangeIdx:      int32(rangeIdx),
				Range:         satRange,
				OutputOffset:  offset,
				CreatedHeight: height,
				Unspendable:   unspendable,
			})
			offset += satRange.Cardinality()
		}
		flush.satRanges = append(flush.satRanges, rows...)
		overlay[wire.OutPoint{Hash: tx.TxHash, Index: uint32(voutIdx)}] = rows
		remaining = rest
	}
	return nonEmptyRanges(remaining), nil
}

// cumulativeSatsForBlock computes the emission total through the block and
// checks it against the closed-form schedule. A mismatch means the store or
// the tracker is corrupted and indexing must stop.
func (p *Processor) cumulativeSatsForBlock(ctx context.Context, height uint64, subsidy uint64) (uint64, error) {
	var prevCumulative uint64
	switch {
	case height == 0:
		prevCumulative = 0
	case p.cumulativeSats >= 0:
		prevCumulative = uint64(p.cumulativeSats)
	default:
		prevBlock, err := p.ordinalsDg.GetIndexedBlockByHeight(ctx, int64(height)-1)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to get previous indexed block at height %d", height-1)
		}
		prevCumulative = prevBlock.CumulativeSats
	}

	cumulativeSats := prevCumulative + subsidy
	if expected := uint64(ordinals.FirstSatAtHeight(height + 1)); cumulativeSats != expected {
		return 0, errors.Wrapf(errs.ConsistencyViolation, "cumulative sats mismatch at height %d: got %d, emission schedule expects %d", height, cumulativeSats, expected)
	}
	return cumulativeSats, nil
}

// flushBlock commits all edits of one block atomically.
func (p *Processor) flushBlock(ctx context.Context, flush *blockFlush) error {
	if err := p.ordinalsDg.Begin(ctx); err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := p.ordinalsDg.Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "failed to rollback transaction", slogx.Error(err))
		}
	}()

	if err := p.ordinalsDg.CreateOutPointSatRanges(ctx, flush.satRanges); err != nil {
		return errors.Wrap(err, "failed to create sat ranges")
	}
	if err := p.ordinalsDg.SpendOutPointSatRanges(ctx, flush.spendOutPoints, uint64(flush.indexedBlock.Height)); err != nil {
		return errors.Wrap(err, "failed to spend sat ranges")
	}
	if err := p.ordinalsDg.CreateEmissionRanges(ctx, flush.emissionRanges); err != nil {
		return errors.Wrap(err, "failed to create emission ranges")
	}
	if err := p.ordinalsDg.CreateIndexedBlock(ctx, flush.indexedBlock); err != nil {
		return errors.Wrap(err, "failed to create indexed block")
	}

	if err := p.ordinalsDg.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func nonEmptyRanges(ranges []ordinals.Range) []ordinals.Range {
	return lo.Filter(ranges, func(satRange ordinals.Range, _ int) bool {
		return !satRange.IsEmpty()
	})
}

func nextSat(ranges []ordinals.Range) ordinals.Sat {
	for _, satRange := range ranges {
		if !satRange.IsEmpty() {
			return satRange.Start
		}
	}
	return 0
}
