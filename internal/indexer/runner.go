// Package indexer copies arcade contract logs from the chain into JSONL,
// batch by batch, resuming from a checkpoint file.
package indexer

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"monadArcade/internal/model"
	"monadArcade/internal/observability"
	"monadArcade/internal/retry"
	"monadArcade/internal/storage"
)

// RunConfig holds runtime settings for the indexer.
type RunConfig struct {
	FromBlock uint64
	// ToBlock zero means the head at startup.
	ToBlock           uint64
	Addresses         []common.Address
	Topic0            []common.Hash
	BatchSize         uint64
	CheckpointPath    string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

// LogSource is the chain access the runner needs. *chain.Client satisfies it.
type LogSource interface {
	GetChainID(ctx context.Context) (*big.Int, error)
	LatestBlockNumber(ctx context.Context) (uint64, error)
	BlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error)
	FilterLogs(ctx context.Context, fromBlock, toBlock uint64, addresses []common.Address, topic0 []common.Hash) ([]types.Log, error)
}

// RunStats counts what a run wrote.
type RunStats struct {
	Batches    int
	Logs       int
	Duplicates int
	Removed    int
	LastBlock  uint64
}

// Runner copies logs for the configured contracts into storage.
type Runner struct {
	cfg        RunConfig
	chain      LogSource
	storage    storage.Storage
	logger     *zap.Logger
	checkpoint *CheckpointStore

	seen  map[string]struct{}
	stats RunStats
}

func NewRunner(cfg RunConfig, chainClient LogSource, storageSink storage.Storage, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		chain:      chainClient,
		storage:    storageSink,
		logger:     logger,
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
		seen:       make(map[string]struct{}),
	}
}

// Stats reports progress so far.
func (r *Runner) Stats() RunStats {
	return r.stats
}

// Run indexes from the checkpoint (or FromBlock) to ToBlock and returns.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.validate(); err != nil {
		return err
	}

	chainID, err := r.chainID(ctx)
	if err != nil {
		return err
	}
	from, to, err := r.bounds(ctx, chainID)
	if err != nil {
		return err
	}
	if from > to {
		r.logger.Info("nothing to sync", zap.Uint64("from", from), zap.Uint64("to", to))
		return nil
	}

	ranges, err := SplitRange(from, to, r.cfg.BatchSize)
	if err != nil {
		return err
	}
	for _, span := range ranges {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runBatch(ctx, chainID, span); err != nil {
			return err
		}
	}

	r.logger.Info("indexer done",
		zap.Int("batches", r.stats.Batches),
		zap.Int("logs", r.stats.Logs),
		zap.Int("duplicates", r.stats.Duplicates),
		zap.Int("removed", r.stats.Removed),
		zap.Uint64("last_block", r.stats.LastBlock),
	)
	return nil
}

func (r *Runner) validate() error {
	switch {
	case r.chain == nil:
		return fmt.Errorf("chain client is nil")
	case r.storage == nil:
		return fmt.Errorf("storage is nil")
	case r.cfg.BatchSize == 0:
		return fmt.Errorf("batch size must be greater than zero")
	case len(r.cfg.Addresses) == 0:
		return fmt.Errorf("at least one contract address is required")
	}
	return nil
}

func (r *Runner) chainID(ctx context.Context) (uint64, error) {
	id, err := retry.Value(ctx, r.retryPolicy("chain_id"), r.chain.GetChainID)
	if err != nil {
		return 0, fmt.Errorf("get chain id: %w", err)
	}
	if !id.IsUint64() {
		return 0, fmt.Errorf("chain id does not fit in uint64: %s", id)
	}
	return id.Uint64(), nil
}

// bounds resolves the block span, moving from past the checkpoint.
func (r *Runner) bounds(ctx context.Context, chainID uint64) (uint64, uint64, error) {
	from, to := r.cfg.FromBlock, r.cfg.ToBlock
	if to == 0 {
		latest, err := retry.Value(ctx, r.retryPolicy("latest_block"), r.chain.LatestBlockNumber)
		if err != nil {
			return 0, 0, fmt.Errorf("get latest block: %w", err)
		}
		to = latest
	}

	cp, ok, err := r.checkpoint.Load(chainID)
	if err != nil {
		return 0, 0, err
	}
	if ok && cp.LastProcessedBlock >= from {
		from = cp.LastProcessedBlock + 1
		r.logger.Info("resume from checkpoint", zap.Uint64("last_processed", cp.LastProcessedBlock), zap.Uint64("from", from))
	}
	return from, to, nil
}

func (r *Runner) runBatch(ctx context.Context, chainID uint64, span BlockRange) error {
	r.logger.Info("fetch logs", zap.Uint64("from", span.From), zap.Uint64("to", span.To))

	logs, err := retry.Value(ctx, r.retryPolicy("filter_logs"), func(ctx context.Context) ([]types.Log, error) {
		logs, err := r.chain.FilterLogs(ctx, span.From, span.To, r.cfg.Addresses, r.cfg.Topic0)
		if err != nil {
			r.logger.Warn("filter logs failed", zap.Error(err), zap.Uint64("from", span.From), zap.Uint64("to", span.To))
		}
		return logs, err
	})
	if err != nil {
		return fmt.Errorf("filter logs: %w", err)
	}

	ingestedAt := time.Now().UTC()
	timestamps := make(map[uint64]uint64)
	records := make([]model.LogRecord, 0, len(logs))
	for _, log := range logs {
		if log.Removed {
			r.stats.Removed++
			continue
		}
		if !r.markSeen(log) {
			r.stats.Duplicates++
			continue
		}

		ts, ok := timestamps[log.BlockNumber]
		if !ok {
			ts, err = r.blockTimestamp(ctx, log.BlockNumber)
			if err != nil {
				return fmt.Errorf("block timestamp %d: %w", log.BlockNumber, err)
			}
			timestamps[log.BlockNumber] = ts
		}
		records = append(records, model.NewLogRecord(chainID, log, ts, ingestedAt))
	}

	if err := r.storage.PutLogBatch(records); err != nil {
		return fmt.Errorf("store logs: %w", err)
	}
	if err := r.checkpoint.Save(chainID, span.To); err != nil {
		return err
	}

	r.stats.Batches++
	r.stats.Logs += len(records)
	r.stats.LastBlock = span.To
	observability.LogsIndexed.Add(float64(len(records)))
	observability.IndexedBlock.Set(float64(span.To))
	r.logger.Info("batch complete", zap.Int("logs", len(records)), zap.Uint64("from", span.From), zap.Uint64("to", span.To))
	return nil
}

func (r *Runner) blockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error) {
	return retry.Value(ctx, r.retryPolicy("block_timestamp"), func(ctx context.Context) (uint64, error) {
		ts, err := r.chain.BlockTimestamp(ctx, blockNumber)
		if err != nil {
			r.logger.Warn("block timestamp fetch failed", zap.Error(err), zap.Uint64("block_number", blockNumber))
		}
		return ts, err
	})
}

func (r *Runner) retryPolicy(op string) retry.Policy {
	p := retry.Exponential(r.cfg.MaxRetries, r.cfg.RetryBackoff)
	p.OnRetry = func(int, error) {
		observability.RPCRetries.WithLabelValues(op).Inc()
	}
	return p
}

// markSeen reports whether log is new to this run.
func (r *Runner) markSeen(log types.Log) bool {
	key := model.LogKey(log.BlockNumber, log.TxHash.Hex(), uint64(log.Index))
	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}
