package leaderboard

import (
	"context"
	"strings"
	"sync"
	"time"

	"monadArcade/internal/model"
)

// MemoryStore keeps leaderboard rows in process. It backs the API when no
// database is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[uint64]map[string]model.LeaderboardEntry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows: make(map[uint64]map[string]model.LeaderboardEntry),
		now:  time.Now,
	}
}

func (m *MemoryStore) UpsertLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range entries {
		chain := m.rows[entry.ChainID]
		if chain == nil {
			chain = make(map[string]model.LeaderboardEntry)
			m.rows[entry.ChainID] = chain
		}
		entry.Address = strings.ToLower(entry.Address)
		entry.UpdatedAt = m.now().UTC()
		chain[entry.Address] = entry
	}
	return nil
}

func (m *MemoryStore) LoadLeaderboard(ctx context.Context, chainID uint64) ([]model.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.LeaderboardEntry, 0, len(m.rows[chainID]))
	for _, entry := range m.rows[chainID] {
		out = append(out, entry)
	}
	return out, nil
}

func (m *MemoryStore) TopLeaderboard(ctx context.Context, chainID uint64, limit int) ([]model.LeaderboardEntry, error) {
	out, _ := m.LoadLeaderboard(ctx, chainID)
	SortEntries(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
