package model

import (
	"encoding/json"
	"fmt"
)

// TypedEvent is a decoded arcade event. Decoded holds one of the *Data
// payloads in events.go.
type TypedEvent struct {
	ChainID     uint64      `json:"chain_id"`
	BlockNumber uint64      `json:"block_number"`
	BlockHash   string      `json:"block_hash"`
	TxHash      string      `json:"tx_hash"`
	LogIndex    uint64      `json:"log_index"`
	Address     string      `json:"address"`
	Contract    string      `json:"contract"`
	EventName   string      `json:"event_name"`
	Timestamp   uint64      `json:"timestamp"`
	Decoded     interface{} `json:"decoded"`
	Raw         *RawLogRef  `json:"raw,omitempty"`
}

// RawLogRef keeps topic0 and data so a typed event can be traced back to its log.
type RawLogRef struct {
	Topic0 string `json:"topic0"`
	Data   string `json:"data"`
}

// TypedEventRecord is a TypedEvent read back from JSONL, payload still encoded.
type TypedEventRecord struct {
	ChainID     uint64          `json:"chain_id"`
	BlockNumber uint64          `json:"block_number"`
	BlockHash   string          `json:"block_hash"`
	TxHash      string          `json:"tx_hash"`
	LogIndex    uint64          `json:"log_index"`
	Address     string          `json:"address"`
	Contract    string          `json:"contract"`
	EventName   string          `json:"event_name"`
	Timestamp   uint64          `json:"timestamp"`
	Decoded     json.RawMessage `json:"decoded"`
	Raw         *RawLogRef      `json:"raw,omitempty"`
}

// Record encodes the payload, giving the same value a JSONL round trip would.
func (e TypedEvent) Record() (TypedEventRecord, error) {
	decoded, err := json.Marshal(e.Decoded)
	if err != nil {
		return TypedEventRecord{}, fmt.Errorf("marshal %s payload: %w", e.EventName, err)
	}
	return TypedEventRecord{
		ChainID:     e.ChainID,
		BlockNumber: e.BlockNumber,
		BlockHash:   e.BlockHash,
		TxHash:      e.TxHash,
		LogIndex:    e.LogIndex,
		Address:     e.Address,
		Contract:    e.Contract,
		EventName:   e.EventName,
		Timestamp:   e.Timestamp,
		Decoded:     decoded,
		Raw:         e.Raw,
	}, nil
}
