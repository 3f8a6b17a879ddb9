package model

import (
	"encoding/json"
	"testing"
)

func TestSpinEventDataJSONStringFields(t *testing.T) {
	payload := SpinEventData{
		Player:    "0x1111111111111111111111111111111111111111",
		BetAmount: "1000000000000000000",
		Result:    [3]uint8{3, 3, 3},
		Symbols:   []string{"SEVEN", "SEVEN", "SEVEN"},
		WinAmount: "12345678901234567890",
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if _, ok := decoded["bet_amount"].(string); !ok {
		t.Fatalf("bet_amount should be string")
	}
	if _, ok := decoded["win_amount"].(string); !ok {
		t.Fatalf("win_amount should be string")
	}
	result, ok := decoded["result"].([]interface{})
	if !ok || len(result) != 3 {
		t.Fatalf("result should be a 3-element array, got %v", decoded["result"])
	}
}

func TestTypedEventRecordKeepsDecodedRaw(t *testing.T) {
	event := TypedEvent{
		ChainID:   10143,
		Contract:  "voting",
		EventName: "Voted",
		Decoded:   VotedData{PollID: "1", Voter: "0xabc", OptionIndex: 2, Amount: "5"},
	}
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var record TypedEventRecord
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if record.Contract != "voting" || record.EventName != "Voted" {
		t.Fatalf("unexpected record: %+v", record)
	}

	var voted VotedData
	if err := json.Unmarshal(record.Decoded, &voted); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if voted.OptionIndex != 2 || voted.Amount != "5" {
		t.Fatalf("unexpected payload: %+v", voted)
	}
}

func TestTypedEventRecordMatchesJSONL(t *testing.T) {
	event := TypedEvent{
		ChainID:   10143,
		Contract:  "slot_machine",
		EventName: "Spin",
		Decoded:   SpinEventData{Player: "0xabc", BetAmount: "1", WinAmount: "0", Result: [3]uint8{0, 1, 2}},
	}
	record, err := event.Record()
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var fromJSONL TypedEventRecord
	if err := json.Unmarshal(data, &fromJSONL); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if string(record.Decoded) != string(fromJSONL.Decoded) {
		t.Fatalf("payload mismatch: %s != %s", record.Decoded, fromJSONL.Decoded)
	}

	bad := TypedEvent{EventName: "Bad", Decoded: make(chan int)}
	if _, err := bad.Record(); err == nil {
		t.Fatalf("expected marshal error")
	}
}
