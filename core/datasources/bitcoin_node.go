package datasources

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"
	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/ordinals-indexer/core/types"
	"github.com/gaze-network/ordinals-indexer/internal/subscription"
	"github.com/gaze-network/ordinals-indexer/pkg/logger"
	"github.com/gaze-network/ordinals-indexer/pkg/logger/slogx"
	cstream "github.com/planxnx/concurrent-stream"
	"github.com/samber/lo"
)

const (
	// fetchConcurrency bounds the read-ahead of in-flight block fetches.
	// Results are re-ordered by the stream, application stays in height order.
	fetchConcurrency = 8

	// fetchChunkSize is the number of blocks fetched per stream task.
	fetchChunkSize = 100

	// maxFetchRetries bounds retry attempts on transient RPC errors before
	// the error surfaces fatally.
	maxFetchRetries = 5

	fetchRetryInitialInterval = 500 * time.Millisecond
)

// Make sure to implement the Datasource interface
var _ Datasource[*types.Block] = (*BitcoinNodeDatasource)(nil)

// BitcoinNodeDatasource fetches blocks from a Bitcoin Core node over RPC.
type BitcoinNodeDatasource struct {
	btcclient *rpcclient.Client

	// heightLimit, if positive, stops fetching above this height.
	heightLimit int64
}

type BitcoinNodeOption func(*BitcoinNodeDatasource)

// WithHeightLimit limits fetching to the given height (inclusive).
func WithHeightLimit(limit int64) BitcoinNodeOption {
	return func(d *BitcoinNodeDatasource) {
		d.heightLimit = limit
	}
}

func NewBitcoinNode(btcclient *rpcclient.Client, opts ...BitcoinNodeOption) *BitcoinNodeDatasource {
	d := &BitcoinNodeDatasource{
		btcclient: btcclient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *BitcoinNodeDatasource) Name() string {
	return "bitcoin_node"
}

// Fetch polling blocks from Bitcoin node
//
//   - from: block height to start fetching, if -1, it will start from genesis block
//   - to: block height to stop fetching, if -1, it will fetch until the latest block
func (d *BitcoinNodeDatasource) Fetch(ctx context.Context, from, to int64) ([]*types.Block, error) {
	ch := make(chan []*types.Block)
	subscription, err := d.FetchAsync(ctx, from, to, ch)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer subscription.Unsubscribe()

	blocks := make([]*types.Block, 0)
	for {
		select {
		case b := <-ch:
			blocks = append(blocks, b...)
		case <-subscription.Done():
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, "context done")
			}
			return blocks, nil
		case err := <-subscription.Err():
			if err != nil {
				return nil, errors.Wrap(err, "got error while fetch async")
			}
			return blocks, nil
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "context done")
		}
	}
}

// FetchAsync polling blocks from Bitcoin node asynchronously (non-blocking)
//
//   - from: block height to start fetching, if -1, it will start from genesis block
//   - to: block height to stop fetching, if -1, it will fetch until the latest block
func (d *BitcoinNodeDatasource) FetchAsync(ctx context.Context, from, to int64, ch chan<- []*types.Block) (*subscription.ClientSubscription[[]*types.Block], error) {
	ctx = logger.WithContext(ctx,
		slogx.String("package", "datasources"),
		slogx.String("datasource", d.Name()),
	)

	from, to, skip, err := d.prepareRange(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare fetch range")
	}

	subs := subscription.NewSubscription(ch)
	if skip {
		if err := subs.UnsubscribeWithContext(ctx); err != nil {
			return nil, errors.Wrap(err, "failed to unsubscribe")
		}
		return subs.Client(), nil
	}

	// Ordered parallel stream: tasks run concurrently (bounded read-ahead),
	// results come out in submission order.
	out := make(chan []*types.Block)
	stream := cstream.NewStream(ctx, fetchConcurrency, out)

	blockHeights := make([]int64, 0, to-from+1)
	for h := from; h <= to; h++ {
		blockHeights = append(blockHeights, h)
	}

	// Wait for stream to finish and close out channel
	go func() {
		defer close(out)
		_ = stream.Wait()
	}()

	// Fan-out fetched blocks to the subscription channel
	go func() {
		defer subs.Unsubscribe()
		for {
			select {
			case data, ok := <-out:
				if !ok {
					return
				}
				if len(data) == 0 {
					continue
				}
				if err := subs.Send(ctx, data); err != nil {
					logger.ErrorContext(ctx, "Failed while dispatching blocks",
						slogx.Error(err),
						slogx.Int64("start", data[0].Header.Height),
						slogx.Int64("end", data[len(data)-1].Header.Height),
					)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// Parallel fetch blocks from the node until all heights are complete
	// or the subscription is closed.
	go func() {
		defer stream.Close()
		done := subs.Client().Done()
		chunks := lo.Chunk(blockHeights, fetchChunkSize)
		for _, chunk := range chunks {
			chunk := chunk
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			default:
				stream.Go(func() []*types.Block {
					blocks, err := d.fetchBlocksRange(ctx, chunk[0], chunk[len(chunk)-1])
					if err != nil {
						if sendErr := subs.SendError(ctx, errors.Wrapf(err, "failed to fetch blocks, from: %d, to: %d", chunk[0], chunk[len(chunk)-1])); sendErr != nil {
							logger.ErrorContext(ctx, "Failed to send error to subscription", slogx.Error(sendErr))
						}
						return nil
					}
					return blocks
				})
			}
		}
	}()

	return subs.Client(), nil
}

// GetBlockHeader returns the block header of the given height. Used only
// during the reorg walk-back.
func (d *BitcoinNodeDatasource) GetBlockHeader(ctx context.Context, height int64) (types.BlockHeader, error) {
	hash, err := fetchWithRetry(ctx, "getblockhash", func() (*chainhash.Hash, error) {
		return d.btcclient.GetBlockHash(height)
	})
	if err != nil {
		return types.BlockHeader{}, errors.Wrapf(err, "failed to get block hash, height: %d", height)
	}

	header, err := fetchWithRetry(ctx, "getblockheader", func() (*wire.BlockHeader, error) {
		return d.btcclient.GetBlockHeader(hash)
	})
	if err != nil {
		return types.BlockHeader{}, errors.Wrapf(err, "failed to get block header, hash: %s", hash)
	}

	return types.BlockHeader{
		Hash:       header.BlockHash(),
		Height:     height,
		Version:    header.Version,
		PrevBlock:  header.PrevBlock,
		MerkleRoot: header.MerkleRoot,
		Timestamp:  header.Timestamp,
		Bits:       header.Bits,
		Nonce:      header.Nonce,
	}, nil
}

// BestHeight returns the latest block height known to the node.
func (d *BitcoinNodeDatasource) BestHeight(ctx context.Context) (int64, error) {
	height, err := fetchWithRetry(ctx, "getblockcount", func() (int64, error) {
		return d.btcclient.GetBlockCount()
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to get block count")
	}
	return height, nil
}

func (d *BitcoinNodeDatasource) fetchBlocksRange(ctx context.Context, from, to int64) ([]*types.Block, error) {
	blocks := make([]*types.Block, 0, to-from+1)
	for height := from; height <= to; height++ {
		height := height
		hash, err := fetchWithRetry(ctx, "getblockhash", func() (*chainhash.Hash, error) {
			return d.btcclient.GetBlockHash(height)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get block hash, height: %d", height)
		}

		msgBlock, err := fetchWithRetry(ctx, "getblock", func() (*wire.MsgBlock, error) {
			return d.btcclient.GetBlock(hash)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get block, hash: %s", hash)
		}

		blocks = append(blocks, types.ParseMsgBlock(msgBlock, height))
	}
	return blocks, nil
}

func (d *BitcoinNodeDatasource) prepareRange(ctx context.Context, fromHeight, toHeight int64) (start, end int64, skip bool, err error) {
	start = fromHeight
	end = toHeight

	latestBlockHeight, err := d.BestHeight(ctx)
	if err != nil {
		return -1, -1, false, errors.Wrap(err, "failed to get best height")
	}

	// set start to genesis block height
	if start < 0 {
		start = 0
	}

	// set end to the current tip if unbounded or beyond it
	if end < 0 || end > latestBlockHeight {
		end = latestBlockHeight
	}

	if d.heightLimit > 0 && end > d.heightLimit {
		end = d.heightLimit
	}

	// if start is greater than end, skip this round
	if start > end {
		return -1, -1, true, nil
	}

	return start, end, false, nil
}

// fetchWithRetry retries transient RPC failures with bounded exponential
// backoff. Once the retries are exhausted the last error goes to the caller.
func fetchWithRetry[T any](ctx context.Context, method string, fn func() (T, error)) (T, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = fetchRetryInitialInterval
	result, err := backoff.RetryNotifyWithData(fn,
		backoff.WithContext(backoff.WithMaxRetries(policy, maxFetchRetries), ctx),
		func(err error, wait time.Duration) {
			logger.WarnContext(ctx, "Transient RPC error, retrying",
				slogx.Error(err),
				slogx.String("method", method),
				slogx.Duration("backoff", wait),
			)
		},
	)
	if err != nil {
		var zero T
		return zero, errors.Wrapf(err, "rpc %q failed after retries", method)
	}
	return result, nil
}
