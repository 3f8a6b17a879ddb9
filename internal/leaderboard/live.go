package leaderboard

import (
	"context"
	"fmt"
	"sync"

	"monadArcade/internal/model"
)

// Live applies streamed events to a ledger and writes changed rows through
// to a store.
type Live struct {
	mu     sync.Mutex
	ledger *Ledger
	store  Store
}

// NewLive seeds a ledger for chainID from store.
func NewLive(ctx context.Context, chainID uint64, store Store) (*Live, error) {
	ledger := NewLedger(chainID)
	stored, err := store.LoadLeaderboard(ctx, chainID)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	if err := ledger.Seed(stored); err != nil {
		return nil, err
	}
	return &Live{ledger: ledger, store: store}, nil
}

// Apply folds a freshly decoded event and persists the rows it touched.
func (l *Live) Apply(ctx context.Context, event model.TypedEvent) error {
	record, err := event.Record()
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.ledger.Apply(record); err != nil {
		return err
	}
	rows := l.ledger.Drain()
	if len(rows) == 0 {
		return nil
	}
	return l.store.UpsertLeaderboard(ctx, rows)
}
