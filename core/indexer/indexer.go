package indexer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/common/errs"
	"github.com/gaze-network/ordinals-indexer/core/datasources"
	"github.com/gaze-network/ordinals-indexer/core/types"
	"github.com/gaze-network/ordinals-indexer/pkg/logger"
	"github.com/gaze-network/ordinals-indexer/pkg/logger/slogx"
)

const (
	// DefaultMaxReorgLookBack is the default limit of the reorg walk-back.
	// Exceeding it aborts with errs.ReorgTooDeep.
	DefaultMaxReorgLookBack = 1000

	// pollingInterval is the default polling interval for the indexer polling worker
	pollingInterval = 15 * time.Second
)

// Input is a single unit of data produced by a datasource.
type Input interface {
	BlockHeader() types.BlockHeader
}

// Processor consumes inputs in strict height order and owns the durable state.
type Processor[T Input] interface {
	Name() string

	// VerifyStates checks schema/config consistency before the first run.
	// A mismatch is fatal, never silently migrated.
	VerifyStates(ctx context.Context) error

	// Process processes the input data and indexes it. Each block height is
	// committed atomically: all of its edits, or none.
	Process(ctx context.Context, inputs []T) error

	// CurrentBlock returns the latest indexed block header.
	CurrentBlock(ctx context.Context) (types.BlockHeader, error)

	// GetIndexedBlock returns the indexed block header at the given height.
	GetIndexedBlock(ctx context.Context, height int64) (types.BlockHeader, error)

	// RevertData reverts synced data from the given height (inclusive)
	// upward, one height at a time, for re-indexing.
	RevertData(ctx context.Context, from int64) error

	// Shutdown gracefully releases processor resources.
	Shutdown(ctx context.Context) error
}

// IndexerWorker is a runnable indexing unit, as registered by modules.
type IndexerWorker interface {
	Run(ctx context.Context) error
}

// Indexer generic indexer for fetching and processing data
type Indexer[T Input] struct {
	Processor        Processor[T]
	Datasource       datasources.Datasource[T]
	currentBlock     types.BlockHeader
	maxReorgLookBack int

	quitOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

type Option[T Input] func(*Indexer[T])

// WithMaxReorgLookBack overrides the maximum rewind depth.
func WithMaxReorgLookBack[T Input](depth int) Option[T] {
	return func(i *Indexer[T]) {
		i.maxReorgLookBack = depth
	}
}

// New create new generic indexer
func New[T Input](processor Processor[T], datasource datasources.Datasource[T], opts ...Option[T]) *Indexer[T] {
	i := &Indexer[T]{
		Processor:        processor,
		Datasource:       datasource,
		maxReorgLookBack: DefaultMaxReorgLookBack,

		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Indexer[T]) Shutdown() error {
	return i.ShutdownWithContext(context.Background())
}

func (i *Indexer[T]) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return i.ShutdownWithContext(ctx)
}

func (i *Indexer[T]) ShutdownWithContext(ctx context.Context) (err error) {
	i.quitOnce.Do(func() {
		close(i.quit)
		select {
		case <-i.done:
		case <-time.After(180 * time.Second):
			err = errors.Wrap(errs.Timeout, "indexer shutdown timeout")
		case <-ctx.Done():
			err = errors.Wrap(ctx.Err(), "indexer shutdown context canceled")
		}
	})
	return
}

func (i *Indexer[T]) Run(ctx context.Context) (err error) {
	defer close(i.done)

	ctx = logger.WithContext(ctx,
		slog.String("package", "indexer"),
		slog.String("processor", i.Processor.Name()),
		slog.String("datasource", i.Datasource.Name()),
	)

	// set to -1 to start from genesis block
	i.currentBlock, err = i.Processor.CurrentBlock(ctx)
	if err != nil {
		if !errors.Is(err, errs.NotFound) {
			return errors.Wrap(err, "can't init state, failed to get indexer current block")
		}
		i.currentBlock = types.BlockHeader{Height: -1}
	}

	ticker := time.NewTicker(pollingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-i.quit:
			logger.InfoContext(ctx, "Got quit signal, stopping indexer")
			if err := i.Processor.Shutdown(ctx); err != nil {
				logger.ErrorContext(ctx, "Failed to shutdown processor", slogx.Error(err))
				return errors.Wrap(err, "processor shutdown failed")
			}
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := i.process(ctx); err != nil {
				logger.ErrorContext(ctx, "Indexer failed while processing", slogx.Error(err))
				return errors.Wrap(err, "process failed")
			}
			logger.DebugContext(ctx, "Waiting for next polling interval")
		}
	}
}

func (i *Indexer[T]) process(ctx context.Context) (err error) {
	// height range to fetch data
	from, to := i.currentBlock.Height+1, int64(-1)

	logger.DebugContext(ctx, "Start fetching input data", slog.Int64("from", from))
	ch := make(chan []T)
	subscription, err := i.Datasource.FetchAsync(ctx, from, to, ch)
	if err != nil {
		return errors.Wrap(err, "failed to fetch input data")
	}
	defer subscription.Unsubscribe()

	for {
		select {
		case <-i.quit:
			// cancellation is honored between block commits only, the
			// in-flight Process call always completes or fully aborts.
			return nil
		case inputs := <-ch:
			if len(inputs) == 0 {
				continue
			}

			startAt := time.Now()
			firstHeader := inputs[0].BlockHeader()
			ctx := logger.WithContext(ctx,
				slogx.Int64("from", firstHeader.Height),
				slogx.Int64("to", inputs[len(inputs)-1].BlockHeader().Height),
			)

			// validate reorg from first input
			if i.currentBlock.Height >= 0 && !firstHeader.PrevBlock.IsEqual(&i.currentBlock.Hash) {
				forkPoint, err := i.findForkPoint(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				// Revert all data above the fork point, one height at a
				// time, then end this round to fetch again from there.
				start := time.Now()
				if err := i.Processor.RevertData(ctx, forkPoint.Height+1); err != nil {
					return errors.Wrap(err, "failed to revert data")
				}
				i.currentBlock = forkPoint
				logger.InfoContext(ctx, "Fixing chain reorganization completed",
					slogx.Int64("current_block", i.currentBlock.Height),
					slogx.Duration("duration", time.Since(start)),
				)
				return nil
			}

			// validate inputs are continuous and no reorg in the middle of batch
			for idx := 1; idx < len(inputs); idx++ {
				header := inputs[idx].BlockHeader()
				prevHeader := inputs[idx-1].BlockHeader()
				if header.Height != prevHeader.Height+1 {
					return errors.Wrapf(errs.InternalError, "input is not continuous, input[%d] height: %d, input[%d] height: %d", idx-1, prevHeader.Height, idx, header.Height)
				}
				if !header.PrevBlock.IsEqual(&prevHeader.Hash) {
					logger.WarnContext(ctx, "Chain reorganization occurred in the middle of batch fetching inputs, need to try to fetch again")
					// end current round
					return nil
				}
			}

			ctx = logger.WithContext(ctx, slog.Int("total_inputs", len(inputs)))

			logger.InfoContext(ctx, "Processing inputs")
			if err := i.Processor.Process(ctx, inputs); err != nil {
				return errors.WithStack(err)
			}

			// Update current state
			i.currentBlock = inputs[len(inputs)-1].BlockHeader()

			logger.InfoContext(ctx, "Processed inputs successfully",
				slogx.String("event", "processed_inputs"),
				slogx.Int64("current_block", i.currentBlock.Height),
				slogx.Duration("duration", time.Since(startAt)),
			)
		case <-subscription.Done():
			// end current round
			if err := ctx.Err(); err != nil {
				return errors.Wrap(err, "context done")
			}
			return nil
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case err := <-subscription.Err():
			if err != nil {
				return errors.Wrap(err, "got error while fetch async")
			}
		}
	}
}

// findForkPoint walks backward from the last committed height, comparing the
// stored hash against the datasource's canonical hash, until they match or
// the look-back limit is exceeded.
func (i *Indexer[T]) findForkPoint(ctx context.Context) (types.BlockHeader, error) {
	logger.WarnContext(ctx, "Detected chain reorganization. Searching for fork point...",
		slogx.String("event", "reorg_detected"),
		slogx.Stringer("current_hash", i.currentBlock.Hash),
	)

	start := time.Now()
	targetHeight := i.currentBlock.Height
	for n := 0; n < i.maxReorgLookBack && targetHeight >= 0; n++ {
		indexedHeader, err := i.Processor.GetIndexedBlock(ctx, targetHeight)
		if err != nil {
			return types.BlockHeader{}, errors.Wrapf(err, "failed to get indexed block, height: %d", targetHeight)
		}

		remoteHeader, err := i.Datasource.GetBlockHeader(ctx, targetHeight)
		if err != nil {
			return types.BlockHeader{}, errors.Wrapf(err, "failed to get remote block header, height: %d", targetHeight)
		}

		if indexedHeader.Hash.IsEqual(&remoteHeader.Hash) {
			logger.InfoContext(ctx, "Found reorg fork point, starting to revert data...",
				slogx.String("event", "reorg_forkpoint"),
				slogx.Int64("since", remoteHeader.Height+1),
				slogx.Int64("total_blocks", i.currentBlock.Height-remoteHeader.Height),
				slogx.Duration("search_duration", time.Since(start)),
			)
			return remoteHeader, nil
		}

		// Walk back to find fork point
		targetHeight -= 1
	}

	return types.BlockHeader{}, errors.Wrapf(errs.ReorgTooDeep, "reorg look back limit reached, max depth: %d", i.maxReorgLookBack)
}
