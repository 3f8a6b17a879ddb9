// Package leaderboard folds decoded arcade events into per-address scores.
package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"monadArcade/internal/model"
	"monadArcade/internal/storage"
)

// Store persists leaderboard rows.
type Store interface {
	UpsertLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error
	LoadLeaderboard(ctx context.Context, chainID uint64) ([]model.LeaderboardEntry, error)
}

// Reader serves ranked leaderboard rows.
type Reader interface {
	TopLeaderboard(ctx context.Context, chainID uint64, limit int) ([]model.LeaderboardEntry, error)
}

// Config controls aggregation behavior.
type Config struct {
	ChainID   uint64
	BatchSize int
	// RecomputeFrom rebuilds every row from events at or after this timestamp,
	// ignoring stored totals and saved state.
	RecomputeFrom uint64
	StateStore    StateStore
}

// Aggregator aggregates a typed events JSONL file into leaderboard rows.
type Aggregator struct {
	cfg    Config
	store  Store
	logger *zap.Logger
	ledger *Ledger
}

func NewAggregator(cfg Config, store Store, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Aggregator{
		cfg:    cfg,
		store:  store,
		logger: logger,
		ledger: NewLedger(cfg.ChainID),
	}
}

// Run executes aggregation over a typed events JSONL file.
func (a *Aggregator) Run(ctx context.Context, inputPath string) error {
	if a.store == nil {
		return fmt.Errorf("store is nil")
	}
	if a.cfg.BatchSize <= 0 {
		a.cfg.BatchSize = 1000
	}

	startTs, resumed, err := a.loadStartTimestamp(ctx)
	if err != nil {
		return err
	}
	if resumed {
		stored, err := a.store.LoadLeaderboard(ctx, a.cfg.ChainID)
		if err != nil {
			return fmt.Errorf("load leaderboard: %w", err)
		}
		if err := a.ledger.Seed(stored); err != nil {
			return err
		}
		a.logger.Info("resuming leaderboard", zap.Uint64("after_ts", startTs), zap.Int("rows", len(stored)))
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	maxTs := startTs
	var total, applied, skipped, failed, pending int

	err = storage.ScanJSONL(file, func(line []byte) error {
		total++

		var record model.TypedEventRecord
		if err := json.Unmarshal(line, &record); err != nil {
			failed++
			a.logger.Warn("decode typed event", zap.Error(err))
			return nil
		}
		if a.cfg.ChainID != 0 && record.ChainID != a.cfg.ChainID {
			skipped++
			return nil
		}
		if record.Timestamp <= startTs {
			skipped++
			return nil
		}

		// Flush only on a timestamp boundary so the saved cursor never splits a second.
		if pending >= a.cfg.BatchSize && record.Timestamp > maxTs {
			if err := a.flush(ctx, maxTs); err != nil {
				return err
			}
			pending = 0
		}

		if err := a.ledger.Apply(record); err != nil {
			failed++
			a.logger.Warn("aggregate event", zap.Error(err), zap.String("tx", record.TxHash), zap.String("event", record.EventName))
			return nil
		}
		applied++
		pending++

		if record.Timestamp > maxTs {
			maxTs = record.Timestamp
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := a.flush(ctx, maxTs); err != nil {
		return err
	}

	a.logger.Info("aggregate complete",
		zap.Int("total", total),
		zap.Int("applied", applied),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Int("addresses", a.ledger.Len()),
	)

	return nil
}

// loadStartTimestamp returns the cursor to resume after and whether stored
// totals should be loaded first.
func (a *Aggregator) loadStartTimestamp(ctx context.Context) (uint64, bool, error) {
	if a.cfg.RecomputeFrom > 0 {
		return a.cfg.RecomputeFrom - 1, false, nil
	}
	if a.cfg.StateStore == nil {
		return 0, false, nil
	}
	last, ok, err := a.cfg.StateStore.Load(ctx)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	return last, true, nil
}

func (a *Aggregator) flush(ctx context.Context, ts uint64) error {
	rows := a.ledger.Drain()
	if len(rows) > 0 {
		if err := a.store.UpsertLeaderboard(ctx, rows); err != nil {
			return fmt.Errorf("upsert leaderboard: %w", err)
		}
	}
	if a.cfg.StateStore == nil {
		return nil
	}
	return a.cfg.StateStore.Save(ctx, ts)
}
