package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"monadArcade/internal/model"
)

func TestJsonlStorageAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "logs.jsonl")
	store := NewJsonlStorage(path)

	if err := store.PutLogBatch([]model.LogRecord{{ChainID: 10143, BlockNumber: 1}}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if err := store.PutLogBatch([]model.LogRecord{{ChainID: 10143, BlockNumber: 2}}); err != nil {
		t.Fatalf("second batch: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	var blocks []uint64
	err = ScanJSONL(file, func(line []byte) error {
		var record model.LogRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return err
		}
		blocks = append(blocks, record.BlockNumber)
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(blocks) != 2 || blocks[0] != 1 || blocks[1] != 2 {
		t.Fatalf("unexpected blocks: %v", blocks)
	}
}

func TestJSONLWriterTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	for i := 0; i < 2; i++ {
		w, err := NewJSONLWriter(path, false)
		if err != nil {
			t.Fatalf("open writer: %v", err)
		}
		if err := w.Write(map[string]int{"n": i}); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(data)) != `{"n":1}` {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestScanJSONLSkipsBlankLines(t *testing.T) {
	var n int
	err := ScanJSONL(strings.NewReader("{}\n\n  \n{}\n"), func([]byte) error {
		n++
		return nil
	})
	if err != nil || n != 2 {
		t.Fatalf("expected 2 lines, got %d (err=%v)", n, err)
	}
}
