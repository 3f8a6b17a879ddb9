// Package storage holds the JSONL files the indexer pipeline reads and writes.
package storage

import (
	"fmt"
	"sync"

	"monadArcade/internal/model"
)

// Storage is where the indexer puts fetched logs.
type Storage interface {
	PutLogBatch(logs []model.LogRecord) error
}

// JsonlStorage appends log batches to one JSONL file. Each batch is flushed
// before PutLogBatch returns.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutLogBatch appends logs, one record per line.
func (s *JsonlStorage) PutLogBatch(logs []model.LogRecord) (err error) {
	if len(logs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := NewJSONLWriter(s.path, true)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("flush %s: %w", s.path, cerr)
		}
	}()

	for _, record := range logs {
		if err := w.Write(record); err != nil {
			return fmt.Errorf("log %s: %w", record.Key(), err)
		}
	}
	return nil
}
