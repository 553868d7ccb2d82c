package ordinals

import (
	"context"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/core/types"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/entity"
	"github.com/gaze-network/ordinals-indexer/modules/ordinals/ordinals"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const subsidy = 50 * ordinals.CoinValue

// mockOrdinalsDg is an in-memory OrdinalsDataGateway. Transactions are
// no-ops: every write is applied immediately.
type mockOrdinalsDg struct {
	blocks    map[int64]*entity.IndexedBlock
	satRanges map[wire.OutPoint][]*entity.OutPointSatRange
	emissions map[uint64][]*entity.EmissionRange
}

func newMockOrdinalsDg() *mockOrdinalsDg {
	return &mockOrdinalsDg{
		blocks:    make(map[int64]*entity.IndexedBlock),
		satRanges: make(map[wire.OutPoint][]*entity.OutPointSatRange),
		emissions: make(map[uint64][]*entity.EmissionRange),
	}
}

func (m *mockOrdinalsDg) Begin(ctx context.Context) error    { return nil }
func (m *mockOrdinalsDg) Commit(ctx context.Context) error   { return nil }
func (m *mockOrdinalsDg) Rollback(ctx context.Context) error { return nil }

func (m *mockOrdinalsDg) GetLatestBlock(ctx context.Context) (types.BlockHeader, error) {
	var latest *entity.IndexedBlock
	for _, block := range m.blocks {
		if latest == nil || block.Height > latest.Height {
			latest = block
		}
	}
	if latest == nil {
		return types.BlockHeader{}, errors.WithStack(errs.NotFound)
	}
	return types.BlockHeader{Height: latest.Height, Hash: latest.Hash}, nil
}

func (m *mockOrdinalsDg) GetIndexedBlockByHeight(ctx context.Context, height int64) (*entity.IndexedBlock, error) {
	block, ok := m.blocks[height]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return block, nil
}

func (m *mockOrdinalsDg) GetSatRangesByOutPoint(ctx context.Context, outPoint wire.OutPoint) ([]*entity.OutPointSatRange, error) {
	rows, ok := m.satRanges[outPoint]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return rows, nil
}

func (m *mockOrdinalsDg) GetUnspentSatRangesByOutPoints(ctx context.Context, outPoints []wire.OutPoint) (map[wire.OutPoint][]*entity.OutPointSatRange, error) {
	result := make(map[wire.OutPoint][]*entity.OutPointSatRange)
	for _, outPoint := range outPoints {
		unspent := lo.Filter(m.satRanges[outPoint], func(row *entity.OutPointSatRange, _ int) bool {
			return row.SpentHeight == nil && !row.Unspendable
		})
		if len(unspent) > 0 {
			result[outPoint] = unspent
		}
	}
	return result, nil
}

func (m *mockOrdinalsDg) GetUnspentSatRangeBySat(ctx context.Context, sat ordinals.Sat) (*entity.OutPointSatRange, error) {
	for _, rows := range m.satRanges {
		for _, row := range rows {
			if row.SpentHeight == nil && row.Range.Contains(sat) {
				return row, nil
			}
		}
	}
	return nil, errors.WithStack(errs.NotFound)
}

func (m *mockOrdinalsDg) GetEmissionRangesByHeight(ctx context.Context, height uint64) ([]*entity.EmissionRange, error) {
	rows, ok := m.emissions[height]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return rows, nil
}

func (m *mockOrdinalsDg) CreateIndexedBlock(ctx context.Context, block *entity.IndexedBlock) error {
	m.blocks[block.Height] = block
	return nil
}

func (m *mockOrdinalsDg) CreateOutPointSatRanges(ctx context.Context, satRanges []*entity.OutPointSatRange) error {
	for _, row := range satRanges {
		copied := *row
		m.satRanges[row.OutPoint()] = append(m.satRanges[row.OutPoint()], &copied)
	}
	return nil
}

func (m *mockOrdinalsDg) CreateEmissionRanges(ctx context.Context, emissionRanges []*entity.EmissionRange) error {
	for _, row := range emissionRanges {
		m.emissions[row.Height] = append(m.emissions[row.Height], row)
	}
	return nil
}

func (m *mockOrdinalsDg) SpendOutPointSatRanges(ctx context.Context, outPoints []wire.OutPoint, blockHeight uint64) error {
	for _, outPoint := range outPoints {
		for _, row := range m.satRanges[outPoint] {
			if row.SpentHeight == nil {
				row.SpentHeight = lo.ToPtr(blockHeight)
			}
		}
	}
	return nil
}

func (m *mockOrdinalsDg) DeleteIndexedBlocksSinceHeight(ctx context.Context, height uint64) error {
	for h := range m.blocks {
		if h >= int64(height) {
			delete(m.blocks, h)
		}
	}
	return nil
}

func (m *mockOrdinalsDg) DeleteOutPointSatRangesSinceHeight(ctx context.Context, height uint64) error {
	for outPoint, rows := range m.satRanges {
		kept := lo.Filter(rows, func(row *entity.OutPointSatRange, _ int) bool {
			return row.CreatedHeight < height
		})
		if len(kept) == 0 {
			delete(m.satRanges, outPoint)
		} else {
			m.satRanges[outPoint] = kept
		}
	}
	return nil
}

func (m *mockOrdinalsDg) DeleteEmissionRangesSinceHeight(ctx context.Context, height uint64) error {
	for h := range m.emissions {
		if h >= height {
			delete(m.emissions, h)
		}
	}
	return nil
}

func (m *mockOrdinalsDg) UnspendOutPointSatRangesSinceHeight(ctx context.Context, height uint64) error {
	for _, rows := range m.satRanges {
		for _, row := range rows {
			if row.SpentHeight != nil && *row.SpentHeight >= height {
				row.SpentHeight = nil
			}
		}
	}
	return nil
}

func newTestProcessor(dg *mockOrdinalsDg) *Processor {
	return &Processor{ordinalsDg: dg, cumulativeSats: -1}
}

func testHash(b byte) chainhash.Hash {
	var hash chainhash.Hash
	hash[0] = b
	return hash
}

func coinbaseTx(txHash chainhash.Hash, outputs ...*types.TxOut) *types.Transaction {
	return &types.Transaction{
		TxHash: txHash,
		TxIn:   []*types.TxIn{{PreviousOutIndex: wire.MaxPrevOutIndex}},
		TxOut:  outputs,
	}
}

func spendTx(txHash chainhash.Hash, inputs []wire.OutPoint, outputs ...*types.TxOut) *types.Transaction {
	return &types.Transaction{
		TxHash: txHash,
		TxIn: lo.Map(inputs, func(outPoint wire.OutPoint, _ int) *types.TxIn {
			return &types.TxIn{PreviousOutTxHash: outPoint.Hash, PreviousOutIndex: outPoint.Index}
		}),
		TxOut: outputs,
	}
}

func testBlock(height int64, txs ...*types.Transaction) *types.Block {
	header := types.BlockHeader{
		Height: height,
		Hash:   testHash(0x80 + byte(height)),
	}
	if height > 0 {
		header.PrevBlock = testHash(0x80 + byte(height) - 1)
	}
	return &types.Block{Header: header, Transactions: txs}
}

func TestProcessGenesisBlock(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	coinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, coinbase)}))

	rows := dg.satRanges[wire.OutPoint{Hash: testHash(1), Index: 0}]
	require.Len(t, rows, 1)
	assert.Equal(t, ordinals.Range{Start: 0, End: subsidy}, rows[0].Range)
	assert.Equal(t, uint64(0), rows[0].OutputOffset)
	assert.Nil(t, rows[0].SpentHeight)
	assert.False(t, rows[0].Unspendable)

	emissions := dg.emissions[0]
	require.Len(t, emissions, 1)
	assert.Equal(t, ordinals.Range{Start: 0, End: subsidy}, emissions[0].Range)

	block := dg.blocks[0]
	require.NotNil(t, block)
	assert.Equal(t, uint64(subsidy), block.CumulativeSats)
	assert.Equal(t, ordinals.RarityMythic, rows[0].Range.Start.Rarity())
}

func TestProcessFeeResidueToCoinbase(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	genesisCoinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, genesisCoinbase)}))

	// spends the genesis output, paying a 1 coin fee
	spend := spendTx(testHash(2),
		[]wire.OutPoint{{Hash: testHash(1), Index: 0}},
		&types.TxOut{Value: 40 * ordinals.CoinValue},
		&types.TxOut{Value: 9 * ordinals.CoinValue},
	)
	coinbase := coinbaseTx(testHash(3), &types.TxOut{Value: subsidy + 1*ordinals.CoinValue})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(1, coinbase, spend)}))

	out0 := dg.satRanges[wire.OutPoint{Hash: testHash(2), Index: 0}]
	require.Len(t, out0, 1)
	assert.Equal(t, ordinals.Range{Start: 0, End: 40 * ordinals.CoinValue}, out0[0].Range)

	out1 := dg.satRanges[wire.OutPoint{Hash: testHash(2), Index: 1}]
	require.Len(t, out1, 1)
	assert.Equal(t, ordinals.Range{Start: 40 * ordinals.CoinValue, End: 49 * ordinals.CoinValue}, out1[0].Range)
	assert.Equal(t, uint64(0), out1[0].OutputOffset)

	// coinbase holds the block subsidy followed by the fee residue
	coinbaseRows := dg.satRanges[wire.OutPoint{Hash: testHash(3), Index: 0}]
	require.Len(t, coinbaseRows, 2)
	assert.Equal(t, ordinals.Range{Start: subsidy, End: 2 * subsidy}, coinbaseRows[0].Range)
	assert.Equal(t, uint64(0), coinbaseRows[0].OutputOffset)
	assert.Equal(t, ordinals.Range{Start: 49 * ordinals.CoinValue, End: subsidy}, coinbaseRows[1].Range)
	assert.Equal(t, uint64(subsidy), coinbaseRows[1].OutputOffset)

	emissions := dg.emissions[1]
	require.Len(t, emissions, 2)
	assert.Equal(t, ordinals.Range{Start: subsidy, End: 2 * subsidy}, emissions[0].Range)
	assert.Equal(t, ordinals.Range{Start: 49 * ordinals.CoinValue, End: subsidy}, emissions[1].Range)

	// the spent genesis output is marked, not deleted
	spent := dg.satRanges[wire.OutPoint{Hash: testHash(1), Index: 0}]
	require.Len(t, spent, 1)
	require.NotNil(t, spent[0].SpentHeight)
	assert.Equal(t, uint64(1), *spent[0].SpentHeight)

	assert.Equal(t, uint64(2*subsidy), dg.blocks[1].CumulativeSats)
}

func TestProcessTwoInputFeeResidue(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	// genesis coinbase claims only 70 sats across two outputs of 50 and 20
	genesisCoinbase := coinbaseTx(testHash(1),
		&types.TxOut{Value: 50},
		&types.TxOut{Value: 20},
	)
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, genesisCoinbase)}))

	// both outputs are spent by one tx: inputs concatenate to [0,50)+[50,70),
	// outputs of 40 and 20 leave a 10 sat fee residue
	spend := spendTx(testHash(2),
		[]wire.OutPoint{
			{Hash: testHash(1), Index: 0},
			{Hash: testHash(1), Index: 1},
		},
		&types.TxOut{Value: 40},
		&types.TxOut{Value: 20},
	)
	coinbase := coinbaseTx(testHash(3), &types.TxOut{Value: subsidy + 10})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(1, coinbase, spend)}))

	out0 := dg.satRanges[wire.OutPoint{Hash: testHash(2), Index: 0}]
	require.Len(t, out0, 1)
	assert.Equal(t, ordinals.Range{Start: 0, End: 40}, out0[0].Range)

	// the second output straddles the boundary between the two input ranges
	out1 := dg.satRanges[wire.OutPoint{Hash: testHash(2), Index: 1}]
	require.Len(t, out1, 2)
	assert.Equal(t, ordinals.Range{Start: 40, End: 50}, out1[0].Range)
	assert.Equal(t, uint64(0), out1[0].OutputOffset)
	assert.Equal(t, ordinals.Range{Start: 50, End: 60}, out1[1].Range)
	assert.Equal(t, uint64(10), out1[1].OutputOffset)

	// coinbase holds the block subsidy followed by the 10 sat residue
	coinbaseRows := dg.satRanges[wire.OutPoint{Hash: testHash(3), Index: 0}]
	require.Len(t, coinbaseRows, 2)
	assert.Equal(t, ordinals.Range{Start: subsidy, End: 2 * subsidy}, coinbaseRows[0].Range)
	assert.Equal(t, ordinals.Range{Start: 60, End: 70}, coinbaseRows[1].Range)
	assert.Equal(t, uint64(subsidy), coinbaseRows[1].OutputOffset)

	// both spent outputs are marked, in place
	for _, idx := range []uint32{0, 1} {
		spent := dg.satRanges[wire.OutPoint{Hash: testHash(1), Index: idx}]
		require.Len(t, spent, 1)
		require.NotNil(t, spent[0].SpentHeight)
		assert.Equal(t, uint64(1), *spent[0].SpentHeight)
	}
}

func TestProcessSameBlockSpend(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	genesisCoinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, genesisCoinbase)}))

	first := spendTx(testHash(2),
		[]wire.OutPoint{{Hash: testHash(1), Index: 0}},
		&types.TxOut{Value: subsidy},
	)
	second := spendTx(testHash(3),
		[]wire.OutPoint{{Hash: testHash(2), Index: 0}},
		&types.TxOut{Value: subsidy},
	)
	coinbase := coinbaseTx(testHash(4), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(1, coinbase, first, second)}))

	// the intermediate output was created and spent within the same block
	intermediate := dg.satRanges[wire.OutPoint{Hash: testHash(2), Index: 0}]
	require.Len(t, intermediate, 1)
	require.NotNil(t, intermediate[0].SpentHeight)
	assert.Equal(t, uint64(1), *intermediate[0].SpentHeight)

	final := dg.satRanges[wire.OutPoint{Hash: testHash(3), Index: 0}]
	require.Len(t, final, 1)
	assert.Equal(t, ordinals.Range{Start: 0, End: subsidy}, final[0].Range)
	assert.Nil(t, final[0].SpentHeight)
}

func TestProcessZeroValueOutput(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	genesisCoinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, genesisCoinbase)}))

	spend := spendTx(testHash(2),
		[]wire.OutPoint{{Hash: testHash(1), Index: 0}},
		&types.TxOut{Value: 0},
		&types.TxOut{Value: subsidy},
	)
	coinbase := coinbaseTx(testHash(3), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(1, coinbase, spend)}))

	// zero-value outputs keep their position as an empty range
	zero := dg.satRanges[wire.OutPoint{Hash: testHash(2), Index: 0}]
	require.Len(t, zero, 1)
	assert.True(t, zero[0].Range.IsEmpty())
	assert.Equal(t, ordinals.Sat(0), zero[0].Range.Start)

	full := dg.satRanges[wire.OutPoint{Hash: testHash(2), Index: 1}]
	require.Len(t, full, 1)
	assert.Equal(t, ordinals.Range{Start: 0, End: subsidy}, full[0].Range)
}

func TestProcessUnspendableOutput(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	genesisCoinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, genesisCoinbase)}))

	burn := spendTx(testHash(2),
		[]wire.OutPoint{{Hash: testHash(1), Index: 0}},
		&types.TxOut{Value: subsidy, PkScript: []byte{txscript.OP_RETURN}},
	)
	coinbase := coinbaseTx(testHash(3), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(1, coinbase, burn)}))

	burned := dg.satRanges[wire.OutPoint{Hash: testHash(2), Index: 0}]
	require.Len(t, burned, 1)
	assert.True(t, burned[0].Unspendable)
	assert.Equal(t, ordinals.Range{Start: 0, End: subsidy}, burned[0].Range)
}

func TestProcessSpendBurnedOutput(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	genesisCoinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, genesisCoinbase)}))

	burn := spendTx(testHash(2),
		[]wire.OutPoint{{Hash: testHash(1), Index: 0}},
		&types.TxOut{Value: subsidy, PkScript: []byte{txscript.OP_RETURN}},
	)
	block1Coinbase := coinbaseTx(testHash(3), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(1, block1Coinbase, burn)}))

	// burned locations are excluded from input lookups, so a block spending
	// one is rejected as inconsistent
	spendBurned := spendTx(testHash(4),
		[]wire.OutPoint{{Hash: testHash(2), Index: 0}},
		&types.TxOut{Value: subsidy},
	)
	block2Coinbase := coinbaseTx(testHash(5), &types.TxOut{Value: subsidy})
	err := processor.Process(ctx, []*types.Block{testBlock(2, block2Coinbase, spendBurned)})
	assert.ErrorIs(t, err, errs.ConsistencyViolation)
}

func TestProcessCoinbaseUnderclaim(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	// coinbase claims less than the subsidy: the rest is lost, the emission
	// record and cumulative total still cover the full schedule
	coinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy - 1000})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, coinbase)}))

	rows := dg.satRanges[wire.OutPoint{Hash: testHash(1), Index: 0}]
	require.Len(t, rows, 1)
	assert.Equal(t, ordinals.Range{Start: 0, End: subsidy - 1000}, rows[0].Range)
	assert.Equal(t, uint64(subsidy), dg.blocks[0].CumulativeSats)
}

func TestProcessMissingCoinbase(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	spend := spendTx(testHash(2), []wire.OutPoint{{Hash: testHash(1), Index: 0}}, &types.TxOut{Value: 1000})
	err := processor.Process(ctx, []*types.Block{testBlock(0, spend)})
	assert.ErrorIs(t, err, errs.ConsistencyViolation)
}

func TestProcessUnknownInput(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	genesisCoinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, genesisCoinbase)}))

	spend := spendTx(testHash(2), []wire.OutPoint{{Hash: testHash(0x42), Index: 7}}, &types.TxOut{Value: 1000})
	coinbase := coinbaseTx(testHash(3), &types.TxOut{Value: subsidy})
	err := processor.Process(ctx, []*types.Block{testBlock(1, coinbase, spend)})
	assert.ErrorIs(t, err, errs.ConsistencyViolation)
}

func TestProcessOutputExceedsInputs(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	genesisCoinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, genesisCoinbase)}))

	spend := spendTx(testHash(2),
		[]wire.OutPoint{{Hash: testHash(1), Index: 0}},
		&types.TxOut{Value: subsidy + 1},
	)
	coinbase := coinbaseTx(testHash(3), &types.TxOut{Value: subsidy})
	err := processor.Process(ctx, []*types.Block{testBlock(1, coinbase, spend)})
	assert.ErrorIs(t, err, errs.ConsistencyViolation)
}

func TestProcessCumulativeMismatch(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	genesisCoinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{testBlock(0, genesisCoinbase)}))

	// corrupt the stored emission total and force a reload from storage
	dg.blocks[0].CumulativeSats = subsidy - 1
	processor.cumulativeSats = -1

	coinbase := coinbaseTx(testHash(2), &types.TxOut{Value: subsidy})
	err := processor.Process(ctx, []*types.Block{testBlock(1, coinbase)})
	assert.ErrorIs(t, err, errs.ConsistencyViolation)
}

func TestRevertDataRestoresSpentRanges(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	ctx := context.Background()

	genesisCoinbase := coinbaseTx(testHash(1), &types.TxOut{Value: subsidy})
	spend := spendTx(testHash(2),
		[]wire.OutPoint{{Hash: testHash(1), Index: 0}},
		&types.TxOut{Value: subsidy},
	)
	block1Coinbase := coinbaseTx(testHash(3), &types.TxOut{Value: subsidy})
	block2Coinbase := coinbaseTx(testHash(4), &types.TxOut{Value: subsidy})
	require.NoError(t, processor.Process(ctx, []*types.Block{
		testBlock(0, genesisCoinbase),
		testBlock(1, block1Coinbase, spend),
		testBlock(2, block2Coinbase),
	}))

	require.NoError(t, processor.RevertData(ctx, 1))

	// only the genesis block remains, its spent output restored
	assert.Len(t, dg.blocks, 1)
	genesis := dg.satRanges[wire.OutPoint{Hash: testHash(1), Index: 0}]
	require.Len(t, genesis, 1)
	assert.Nil(t, genesis[0].SpentHeight)
	assert.Empty(t, dg.satRanges[wire.OutPoint{Hash: testHash(2), Index: 0}])
	assert.Empty(t, dg.emissions[1])
	assert.Empty(t, dg.emissions[2])

	// reprocessing the reverted heights reproduces the same state
	spendAgain := spendTx(testHash(2),
		[]wire.OutPoint{{Hash: testHash(1), Index: 0}},
		&types.TxOut{Value: subsidy},
	)
	require.NoError(t, processor.Process(ctx, []*types.Block{
		testBlock(1, coinbaseTx(testHash(3), &types.TxOut{Value: subsidy}), spendAgain),
		testBlock(2, coinbaseTx(testHash(4), &types.TxOut{Value: subsidy})),
	}))

	assert.Len(t, dg.blocks, 3)
	moved := dg.satRanges[wire.OutPoint{Hash: testHash(2), Index: 0}]
	require.Len(t, moved, 1)
	assert.Equal(t, ordinals.Range{Start: 0, End: subsidy}, moved[0].Range)
	assert.Equal(t, uint64(3*subsidy), dg.blocks[2].CumulativeSats)
}

func TestRevertDataOnEmptyStore(t *testing.T) {
	dg := newMockOrdinalsDg()
	processor := newTestProcessor(dg)
	assert.NoError(t, processor.RevertData(context.Background(), 0))
}
