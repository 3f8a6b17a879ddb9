// Package events decodes arcade contract logs into typed events.
package events

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"monadArcade/internal/contracts"
	"monadArcade/internal/model"
)

// Event names produced by the decoder.
const (
	PostCreated = "PostCreated"
	PostLiked   = "PostLiked"
	NicknameSet = "NicknameSet"
	PollCreated = "PollCreated"
	Voted       = "Voted"
	PollEnded   = "PollEnded"
	Spin        = "Spin"
	PairSwap    = "Swap"
)

// Contract labels stamped on decoded events.
const (
	ContractBoard  = "board"
	ContractVoting = "voting"
	ContractSlot   = "slot_machine"
	ContractPair   = "v2_pair"
)

// DecoderConfig configures decoder behavior.
type DecoderConfig struct {
	// Topic0Map adds topic0 aliases for known event names.
	Topic0Map map[string]string
}

type fields map[string]interface{}

type eventSpec struct {
	contract string
	event    abi.Event
	build    func(fields) (interface{}, error)
}

// Decoder turns raw log records into typed events.
type Decoder struct {
	byTopic map[string]eventSpec
}

// NewDecoder builds a decoder for every Board, Voting, SlotMachine and V2 pair event.
func NewDecoder(cfg DecoderConfig) (*Decoder, error) {
	boardABI, err := contracts.BoardABI()
	if err != nil {
		return nil, err
	}
	votingABI, err := contracts.VotingABI()
	if err != nil {
		return nil, err
	}
	slotABI, err := contracts.SlotMachineABI()
	if err != nil {
		return nil, err
	}
	pairABI, err := contracts.V2PairABI()
	if err != nil {
		return nil, err
	}

	specs := []eventSpec{
		{ContractBoard, boardABI.Events[PostCreated], buildPostCreated},
		{ContractBoard, boardABI.Events[PostLiked], buildPostLiked},
		{ContractBoard, boardABI.Events[NicknameSet], buildNicknameSet},
		{ContractVoting, votingABI.Events[PollCreated], buildPollCreated},
		{ContractVoting, votingABI.Events[Voted], buildVoted},
		{ContractVoting, votingABI.Events[PollEnded], buildPollEnded},
		{ContractSlot, slotABI.Events[Spin], buildSpin},
		{ContractPair, pairABI.Events[PairSwap], buildPairSwap},
	}

	d := &Decoder{byTopic: make(map[string]eventSpec, len(specs))}
	byName := make(map[string]eventSpec, len(specs))
	for _, spec := range specs {
		d.byTopic[strings.ToLower(spec.event.ID.Hex())] = spec
		byName[strings.ToLower(spec.event.Name)] = spec
	}

	for topic0, name := range cfg.Topic0Map {
		spec, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unsupported event name in topic0 map: %s", name)
		}
		if topic0 == "" {
			continue
		}
		d.byTopic[strings.ToLower(topic0)] = spec
	}
	return d, nil
}

// Topics returns every topic0 the decoder understands.
func (d *Decoder) Topics() []common.Hash {
	out := make([]common.Hash, 0, len(d.byTopic))
	for topic := range d.byTopic {
		out = append(out, common.HexToHash(topic))
	}
	return out
}

// CanDecode checks if the topic0 is supported.
func (d *Decoder) CanDecode(topic0 string) bool {
	if topic0 == "" {
		return false
	}
	_, ok := d.byTopic[strings.ToLower(topic0)]
	return ok
}

// Decode converts a LogRecord into a TypedEvent.
func (d *Decoder) Decode(log model.LogRecord) (*model.TypedEvent, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("missing topics")
	}
	spec, ok := d.byTopic[strings.ToLower(log.Topics[0])]
	if !ok {
		return nil, fmt.Errorf("unsupported topic0: %s", log.Topics[0])
	}
	if !common.IsHexAddress(log.Address) {
		return nil, fmt.Errorf("invalid contract address: %s", log.Address)
	}

	values, err := unpack(spec.event, log)
	if err != nil {
		return nil, err
	}
	decoded, err := spec.build(values)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", spec.event.Name, err)
	}

	return &model.TypedEvent{
		ChainID:     log.ChainID,
		BlockNumber: log.BlockNumber,
		BlockHash:   log.BlockHash,
		TxHash:      log.TxHash,
		LogIndex:    log.LogIndex,
		Address:     log.Address,
		Contract:    spec.contract,
		EventName:   spec.event.Name,
		Timestamp:   log.Timestamp,
		Decoded:     decoded,
		Raw:         &model.RawLogRef{Topic0: log.Topics[0], Data: log.Data},
	}, nil
}

func unpack(event abi.Event, log model.LogRecord) (fields, error) {
	indexed := indexedArguments(event.Inputs)
	if len(log.Topics) != len(indexed)+1 {
		return nil, fmt.Errorf("expected %d topics, got %d", len(indexed)+1, len(log.Topics))
	}
	topics, err := parseTopicHashes(log.Topics[1:])
	if err != nil {
		return nil, err
	}

	out := make(fields, len(event.Inputs))
	if err := abi.ParseTopicsIntoMap(out, indexed, topics); err != nil {
		return nil, fmt.Errorf("parse topics: %w", err)
	}

	data, err := hexutil.Decode(log.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	if err := event.Inputs.NonIndexed().UnpackIntoMap(out, data); err != nil {
		return nil, fmt.Errorf("unpack %s: %w", event.Name, err)
	}
	return out, nil
}

func parseTopicHashes(topics []string) ([]common.Hash, error) {
	out := make([]common.Hash, 0, len(topics))
	for _, topic := range topics {
		data, err := hexutil.Decode(topic)
		if err != nil {
			return nil, fmt.Errorf("invalid topic: %w", err)
		}
		if len(data) > 32 {
			return nil, fmt.Errorf("topic length %d", len(data))
		}
		out = append(out, common.BytesToHash(data))
	}
	return out, nil
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}

func (f fields) big(name string) (*big.Int, error) {
	v, ok := f[name].(*big.Int)
	if !ok || v == nil {
		return nil, fmt.Errorf("field %s: expected uint256, got %T", name, f[name])
	}
	return v, nil
}

func (f fields) address(name string) (common.Address, error) {
	v, ok := f[name].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("field %s: expected address, got %T", name, f[name])
	}
	return v, nil
}

func (f fields) str(name string) (string, error) {
	v, ok := f[name].(string)
	if !ok {
		return "", fmt.Errorf("field %s: expected string, got %T", name, f[name])
	}
	return v, nil
}
