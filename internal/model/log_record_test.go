package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func TestNewLogRecord(t *testing.T) {
	log := types.Log{
		Address:     common.HexToAddress("0x4A56810A41Db3df40A75Cb08F7E19dC0FcA5e666"),
		Topics:      []common.Hash{common.HexToHash("0xaa"), common.HexToHash("0xbb")},
		Data:        []byte{0xde, 0xad, 0xbe, 0xef},
		BlockNumber: 36000000,
		TxHash:      common.HexToHash("0xdef456"),
		TxIndex:     7,
		BlockHash:   common.HexToHash("0xabc123"),
		Index:       12,
	}
	ingested := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	record := NewLogRecord(10143, log, 1700000000, ingested)

	if record.Address != log.Address.Hex() {
		t.Fatalf("address = %s", record.Address)
	}
	if record.Data != "0xdeadbeef" {
		t.Fatalf("data = %s", record.Data)
	}
	if record.Topic0() != common.HexToHash("0xaa").Hex() {
		t.Fatalf("topic0 = %s", record.Topic0())
	}
	if record.TxIndex != 7 || record.LogIndex != 12 {
		t.Fatalf("indexes = %d/%d", record.TxIndex, record.LogIndex)
	}
	if record.IngestedAt != "2024-01-01T00:00:00Z" {
		t.Fatalf("ingested_at = %s", record.IngestedAt)
	}
	if want := LogKey(36000000, log.TxHash.Hex(), 12); record.Key() != want {
		t.Fatalf("key = %s, want %s", record.Key(), want)
	}

	b, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded LogRecord
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(record, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", record, decoded)
	}
}

func TestNewDecodeError(t *testing.T) {
	record := LogRecord{ChainID: 10143, BlockNumber: 9, TxHash: "0x01", LogIndex: 3, Topics: []string{"0xtopic"}}
	got := NewDecodeError(record, errors.New("boom"))
	if got.Topic0 != "0xtopic" || got.BlockNumber != 9 || got.Error != "boom" {
		t.Fatalf("unexpected decode error: %+v", got)
	}

	got = NewDecodeError(LogRecord{}, errors.New("missing topic0"))
	if got.Topic0 != "" {
		t.Fatalf("topic0 should be empty, got %q", got.Topic0)
	}
}
