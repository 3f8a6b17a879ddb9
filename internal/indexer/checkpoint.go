package indexer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Checkpoint is the last block the indexer wrote, per chain.
type Checkpoint struct {
	ChainID            uint64 `json:"chain_id"`
	LastProcessedBlock uint64 `json:"last_processed_block"`
	UpdatedAt          string `json:"updated_at"`
}

// CheckpointStore keeps a Checkpoint in a JSON file. A disabled store loads
// nothing and saves nothing.
type CheckpointStore struct {
	path    string
	enabled bool
	now     func() time.Time
}

func NewCheckpointStore(path string, enabled bool) *CheckpointStore {
	return &CheckpointStore{path: path, enabled: enabled && path != "", now: time.Now}
}

// Load reads the checkpoint for chainID. A file written for another chain is
// an error rather than a silent restart.
func (c *CheckpointStore) Load(chainID uint64) (Checkpoint, bool, error) {
	if !c.enabled {
		return Checkpoint{}, false, nil
	}

	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return Checkpoint{}, false, nil
	}
	if err != nil {
		return Checkpoint{}, false, fmt.Errorf("read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, false, fmt.Errorf("parse checkpoint %s: %w", c.path, err)
	}
	if cp.ChainID != 0 && cp.ChainID != chainID {
		return Checkpoint{}, false, fmt.Errorf("checkpoint %s belongs to chain %d, not %d", c.path, cp.ChainID, chainID)
	}
	return cp, true, nil
}

// Save records lastProcessed, replacing the file in one rename.
func (c *CheckpointStore) Save(chainID, lastProcessed uint64) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(Checkpoint{
		ChainID:            chainID,
		LastProcessedBlock: lastProcessed,
		UpdatedAt:          c.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create checkpoint dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return os.Rename(tmp, c.path)
}
