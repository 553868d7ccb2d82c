package indexer

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/core/types"
	"github.com/gaze-network/ordinals-indexer/internal/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBlock struct {
	header types.BlockHeader
}

func (b stubBlock) BlockHeader() types.BlockHeader { return b.header }

func header(height int64, hash, prev byte) types.BlockHeader {
	h := types.BlockHeader{Height: height}
	h.Hash[0] = hash
	h.PrevBlock[0] = prev
	return h
}

type stubProcessor struct {
	indexed   map[int64]types.BlockHeader
	processed [][]stubBlock
	reverted  []int64
}

func (p *stubProcessor) Name() string { return "stub" }

func (p *stubProcessor) VerifyStates(ctx context.Context) error { return nil }

func (p *stubProcessor) Process(ctx context.Context, inputs []stubBlock) error {
	p.processed = append(p.processed, inputs)
	return nil
}

func (p *stubProcessor) CurrentBlock(ctx context.Context) (types.BlockHeader, error) {
	return types.BlockHeader{}, errors.WithStack(errs.NotFound)
}

func (p *stubProcessor) GetIndexedBlock(ctx context.Context, height int64) (types.BlockHeader, error) {
	h, ok := p.indexed[height]
	if !ok {
		return types.BlockHeader{}, errors.WithStack(errs.NotFound)
	}
	return h, nil
}

func (p *stubProcessor) RevertData(ctx context.Context, from int64) error {
	p.reverted = append(p.reverted, from)
	return nil
}

func (p *stubProcessor) Shutdown(ctx context.Context) error { return nil }

// stubDatasource sends one prepared batch per round directly to the consumer
// channel, then signals end of round.
type stubDatasource struct {
	batch   []stubBlock
	headers map[int64]types.BlockHeader
}

func (d *stubDatasource) Name() string { return "stub" }

func (d *stubDatasource) Fetch(ctx context.Context, from, to int64) ([]stubBlock, error) {
	return d.batch, nil
}

func (d *stubDatasource) FetchAsync(ctx context.Context, from, to int64, ch chan<- []stubBlock) (*subscription.ClientSubscription[[]stubBlock], error) {
	subs := subscription.NewSubscription(ch)
	go func() {
		defer subs.Unsubscribe()
		if len(d.batch) == 0 {
			return
		}
		select {
		case ch <- d.batch:
		case <-ctx.Done():
		}
	}()
	return subs.Client(), nil
}

func (d *stubDatasource) GetBlockHeader(ctx context.Context, height int64) (types.BlockHeader, error) {
	h, ok := d.headers[height]
	if !ok {
		return types.BlockHeader{}, errors.WithStack(errs.NotFound)
	}
	return h, nil
}

func TestProcessAppliesContinuousBatch(t *testing.T) {
	h0 := header(0, 0xa0, 0x00)
	h1 := header(1, 0xa1, 0xa0)
	h2 := header(2, 0xa2, 0xa1)

	processor := &stubProcessor{}
	datasource := &stubDatasource{batch: []stubBlock{{h0}, {h1}, {h2}}}
	i := New[stubBlock](processor, datasource)
	i.currentBlock = types.BlockHeader{Height: -1}

	require.NoError(t, i.process(context.Background()))
	require.Len(t, processor.processed, 1)
	assert.Len(t, processor.processed[0], 3)
	assert.Equal(t, h2, i.currentBlock)
	assert.Empty(t, processor.reverted)
}

func TestProcessRejectsHeightGap(t *testing.T) {
	h0 := header(0, 0xa0, 0x00)
	h2 := header(2, 0xa2, 0xa1)

	processor := &stubProcessor{}
	datasource := &stubDatasource{batch: []stubBlock{{h0}, {h2}}}
	i := New[stubBlock](processor, datasource)
	i.currentBlock = types.BlockHeader{Height: -1}

	err := i.process(context.Background())
	assert.ErrorIs(t, err, errs.InternalError)
	assert.Empty(t, processor.processed)
}

func TestProcessEndsRoundOnMidBatchReorg(t *testing.T) {
	h0 := header(0, 0xa0, 0x00)
	// height is continuous but the parent hash does not match
	h1 := header(1, 0xa1, 0xff)

	processor := &stubProcessor{}
	datasource := &stubDatasource{batch: []stubBlock{{h0}, {h1}}}
	i := New[stubBlock](processor, datasource)
	i.currentBlock = types.BlockHeader{Height: -1}

	require.NoError(t, i.process(context.Background()))
	assert.Empty(t, processor.processed)
	assert.Empty(t, processor.reverted)
}

func TestProcessRevertsToForkPoint(t *testing.T) {
	h0 := header(0, 0xa0, 0x00)
	h1 := header(1, 0xa1, 0xa0)
	remote2 := header(2, 0xa2, 0xa1)
	stale2 := header(2, 0xe2, 0xa1)
	// child of the canonical height-2 block, not of the stale one
	next3 := header(3, 0xa3, 0xa2)

	processor := &stubProcessor{
		indexed: map[int64]types.BlockHeader{0: h0, 1: h1, 2: stale2},
	}
	datasource := &stubDatasource{
		batch:   []stubBlock{{next3}},
		headers: map[int64]types.BlockHeader{0: h0, 1: h1, 2: remote2},
	}
	i := New[stubBlock](processor, datasource)
	i.currentBlock = stale2

	require.NoError(t, i.process(context.Background()))
	assert.Equal(t, []int64{2}, processor.reverted)
	assert.Equal(t, h1, i.currentBlock)
	assert.Empty(t, processor.processed)
}

func TestProcessReorgTooDeep(t *testing.T) {
	// every indexed block disagrees with the canonical chain
	processor := &stubProcessor{
		indexed: map[int64]types.BlockHeader{
			0: header(0, 0xe0, 0x00),
			1: header(1, 0xe1, 0xe0),
			2: header(2, 0xe2, 0xe1),
		},
	}
	datasource := &stubDatasource{
		batch: []stubBlock{{header(3, 0xa3, 0xa2)}},
		headers: map[int64]types.BlockHeader{
			0: header(0, 0xa0, 0x00),
			1: header(1, 0xa1, 0xa0),
			2: header(2, 0xa2, 0xa1),
		},
	}
	i := New[stubBlock](processor, datasource, WithMaxReorgLookBack[stubBlock](2))
	i.currentBlock = processor.indexed[2]

	err := i.process(context.Background())
	assert.ErrorIs(t, err, errs.ReorgTooDeep)
	assert.Empty(t, processor.reverted)
}
