package indexer

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"monadArcade/internal/model"
)

type fakeSource struct {
	logs       []types.Log
	failFirst  int
	filterCall int
}

func (f *fakeSource) GetChainID(context.Context) (*big.Int, error) {
	return big.NewInt(10143), nil
}

func (f *fakeSource) LatestBlockNumber(context.Context) (uint64, error) {
	return 20, nil
}

func (f *fakeSource) BlockTimestamp(_ context.Context, n uint64) (uint64, error) {
	return 1_700_000_000 + n, nil
}

func (f *fakeSource) FilterLogs(_ context.Context, from, to uint64, _ []common.Address, _ []common.Hash) ([]types.Log, error) {
	f.filterCall++
	if f.failFirst > 0 {
		f.failFirst--
		return nil, errors.New("request limit reached")
	}
	var out []types.Log
	for _, l := range f.logs {
		if l.BlockNumber >= from && l.BlockNumber <= to {
			out = append(out, l)
		}
	}
	// Duplicate delivery of the first log in the range.
	if len(out) > 0 {
		out = append(out, out[0])
	}
	return out, nil
}

type memStorage struct {
	records []model.LogRecord
}

func (m *memStorage) PutLogBatch(logs []model.LogRecord) error {
	m.records = append(m.records, logs...)
	return nil
}

func TestRunnerWritesDedupedLogs(t *testing.T) {
	board := common.HexToAddress("0x00000000000000000000000000000000000000b0")
	source := &fakeSource{
		failFirst: 1,
		logs: []types.Log{
			{Address: board, BlockNumber: 3, Index: 0, TxHash: common.HexToHash("0x01"), Topics: []common.Hash{common.HexToHash("0xaa")}},
			{Address: board, BlockNumber: 12, Index: 1, TxHash: common.HexToHash("0x02"), Topics: []common.Hash{common.HexToHash("0xbb")}},
		},
	}
	sink := &memStorage{}
	cfg := RunConfig{
		FromBlock:         1,
		BatchSize:         10,
		Addresses:         []common.Address{board},
		CheckpointPath:    filepath.Join(t.TempDir(), "checkpoint.json"),
		CheckpointEnabled: true,
		MaxRetries:        2,
		RetryBackoff:      time.Millisecond,
	}

	runner := NewRunner(cfg, source, sink, nil)
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats := runner.Stats(); stats.Batches != 2 || stats.Logs != 2 || stats.Duplicates != 2 || stats.LastBlock != 20 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(sink.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(sink.records))
	}
	if sink.records[0].ChainID != 10143 || sink.records[0].Timestamp != 1_700_000_003 {
		t.Fatalf("unexpected record: %+v", sink.records[0])
	}

	cp, ok, err := NewCheckpointStore(cfg.CheckpointPath, true).Load(10143)
	if err != nil || !ok {
		t.Fatalf("load checkpoint: ok=%v err=%v", ok, err)
	}
	if cp.LastProcessedBlock != 20 {
		t.Fatalf("expected checkpoint 20, got %d", cp.LastProcessedBlock)
	}

	// A second run resumes past the checkpoint and has nothing to do.
	calls := source.filterCall
	if err := NewRunner(cfg, source, sink, nil).Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if source.filterCall != calls {
		t.Fatalf("expected no new filter calls after checkpoint")
	}
}

func TestRunnerRequiresAddresses(t *testing.T) {
	err := NewRunner(RunConfig{BatchSize: 10}, &fakeSource{}, &memStorage{}, nil).Run(context.Background())
	if err == nil {
		t.Fatalf("expected error without addresses")
	}
}

func TestCheckpointRejectsOtherChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "checkpoint.json")
	store := NewCheckpointStore(path, true)

	if _, ok, err := store.Load(10143); err != nil || ok {
		t.Fatalf("missing file: ok=%v err=%v", ok, err)
	}
	if err := store.Save(10143, 42); err != nil {
		t.Fatalf("save: %v", err)
	}
	cp, ok, err := store.Load(10143)
	if err != nil || !ok || cp.LastProcessedBlock != 42 || cp.ChainID != 10143 {
		t.Fatalf("load: cp=%+v ok=%v err=%v", cp, ok, err)
	}
	if _, _, err := store.Load(1); err == nil {
		t.Fatalf("expected chain mismatch error")
	}
}

func TestCheckpointDisabled(t *testing.T) {
	store := NewCheckpointStore(filepath.Join(t.TempDir(), "checkpoint.json"), false)
	if err := store.Save(10143, 5); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, err := store.Load(10143); err != nil || ok {
		t.Fatalf("disabled store loaded: ok=%v err=%v", ok, err)
	}
}
