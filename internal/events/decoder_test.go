package events

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"monadArcade/internal/contracts"
	"monadArcade/internal/model"
)

func TestDecodeSpin(t *testing.T) {
	slotABI := mustABI(t, contracts.SlotMachineABI)
	decoder := mustDecoder(t, DecoderConfig{})

	slot := common.HexToAddress("0x1111111111111111111111111111111111111111")
	player := common.HexToAddress("0x2222222222222222222222222222222222222222")
	data, err := slotABI.Events["Spin"].Inputs.NonIndexed().Pack(
		big.NewInt(1000),
		[3]uint8{3, 3, 3},
		big.NewInt(50000),
	)
	if err != nil {
		t.Fatalf("pack spin: %v", err)
	}

	event, err := decoder.Decode(buildLogRecord(slot, slotABI.Events["Spin"].ID, data, []common.Hash{topicFromAddress(player)}))
	if err != nil {
		t.Fatalf("decode spin: %v", err)
	}
	if event.Contract != ContractSlot || event.EventName != Spin {
		t.Fatalf("unexpected labels: %s %s", event.Contract, event.EventName)
	}

	spin, ok := event.Decoded.(model.SpinEventData)
	if !ok {
		t.Fatalf("decoded type mismatch")
	}
	if spin.Player != player.Hex() || spin.BetAmount != "1000" || spin.WinAmount != "50000" {
		t.Fatalf("spin mismatch: %+v", spin)
	}
	if spin.Symbols[0] != "SEVEN" || spin.Result != [3]uint8{3, 3, 3} {
		t.Fatalf("symbols mismatch: %+v", spin)
	}
}

func TestDecodeVotedAndPollEnded(t *testing.T) {
	votingABI := mustABI(t, contracts.VotingABI)
	decoder := mustDecoder(t, DecoderConfig{})

	voting := common.HexToAddress("0x3333333333333333333333333333333333333333")
	voter := common.HexToAddress("0x4444444444444444444444444444444444444444")

	data, err := votingABI.Events["Voted"].Inputs.NonIndexed().Pack(big.NewInt(2), big.NewInt(10))
	if err != nil {
		t.Fatalf("pack voted: %v", err)
	}
	event, err := decoder.Decode(buildLogRecord(voting, votingABI.Events["Voted"].ID, data, []common.Hash{
		common.BigToHash(big.NewInt(7)),
		topicFromAddress(voter),
	}))
	if err != nil {
		t.Fatalf("decode voted: %v", err)
	}
	voted := event.Decoded.(model.VotedData)
	if voted.PollID != "7" || voted.Voter != voter.Hex() || voted.OptionIndex != 2 || voted.Amount != "10" {
		t.Fatalf("voted mismatch: %+v", voted)
	}

	ended, err := decoder.Decode(buildLogRecord(voting, votingABI.Events["PollEnded"].ID, nil, []common.Hash{
		common.BigToHash(big.NewInt(7)),
	}))
	if err != nil {
		t.Fatalf("decode poll ended: %v", err)
	}
	if ended.Decoded.(model.PollEndedData).PollID != "7" {
		t.Fatalf("poll ended mismatch: %+v", ended.Decoded)
	}
}

func TestDecodeBoardEvents(t *testing.T) {
	boardABI := mustABI(t, contracts.BoardABI)
	decoder := mustDecoder(t, DecoderConfig{})

	board := common.HexToAddress("0x5555555555555555555555555555555555555555")
	author := common.HexToAddress("0x6666666666666666666666666666666666666666")

	data, err := boardABI.Events["NicknameSet"].Inputs.NonIndexed().Pack("monad")
	if err != nil {
		t.Fatalf("pack nickname: %v", err)
	}
	event, err := decoder.Decode(buildLogRecord(board, boardABI.Events["NicknameSet"].ID, data, []common.Hash{topicFromAddress(author)}))
	if err != nil {
		t.Fatalf("decode nickname: %v", err)
	}
	nick := event.Decoded.(model.NicknameSetData)
	if nick.User != author.Hex() || nick.Nickname != "monad" {
		t.Fatalf("nickname mismatch: %+v", nick)
	}

	data, err = boardABI.Events["PostCreated"].Inputs.NonIndexed().Pack(big.NewInt(0))
	if err != nil {
		t.Fatalf("pack post: %v", err)
	}
	event, err = decoder.Decode(buildLogRecord(board, boardABI.Events["PostCreated"].ID, data, []common.Hash{
		common.BigToHash(big.NewInt(12)),
		topicFromAddress(author),
	}))
	if err != nil {
		t.Fatalf("decode post: %v", err)
	}
	post := event.Decoded.(model.PostCreatedData)
	if post.PostID != "12" || post.Author != author.Hex() || post.MonAmount != "0" {
		t.Fatalf("post mismatch: %+v", post)
	}
}

func TestDecodePairSwap(t *testing.T) {
	pairABI := mustABI(t, contracts.V2PairABI)
	decoder := mustDecoder(t, DecoderConfig{})

	pair := common.HexToAddress("0x7777777777777777777777777777777777777777")
	sender := common.HexToAddress("0x8888888888888888888888888888888888888888")
	to := common.HexToAddress("0x9999999999999999999999999999999999999999")

	data, err := pairABI.Events["Swap"].Inputs.NonIndexed().Pack(
		big.NewInt(1000), big.NewInt(0), big.NewInt(0), big.NewInt(906),
	)
	if err != nil {
		t.Fatalf("pack swap: %v", err)
	}
	event, err := decoder.Decode(buildLogRecord(pair, pairABI.Events["Swap"].ID, data, []common.Hash{
		topicFromAddress(sender),
		topicFromAddress(to),
	}))
	if err != nil {
		t.Fatalf("decode swap: %v", err)
	}
	swap := event.Decoded.(model.PairSwapData)
	if swap.Amount0In != "1000" || swap.Amount1Out != "906" || swap.To != to.Hex() {
		t.Fatalf("swap mismatch: %+v", swap)
	}
}

func TestDecoderTopicErrors(t *testing.T) {
	decoder := mustDecoder(t, DecoderConfig{})
	slotABI := mustABI(t, contracts.SlotMachineABI)

	if decoder.CanDecode("0x" + common.Bytes2Hex(make([]byte, 32))) {
		t.Fatalf("zero topic should not be decodable")
	}

	// Spin without its indexed player topic.
	record := buildLogRecord(common.HexToAddress("0x01"), slotABI.Events["Spin"].ID, nil, nil)
	if _, err := decoder.Decode(record); err == nil {
		t.Fatalf("expected topic count error")
	}
}

func TestDecoderTopic0Alias(t *testing.T) {
	alias := "0x" + common.Bytes2Hex(common.LeftPadBytes([]byte{0xab}, 32))
	decoder := mustDecoder(t, DecoderConfig{Topic0Map: map[string]string{alias: "polLENDED"}})
	if !decoder.CanDecode(alias) {
		t.Fatalf("alias topic should be decodable")
	}

	if _, err := NewDecoder(DecoderConfig{Topic0Map: map[string]string{alias: "Collect"}}); err == nil {
		t.Fatalf("expected unsupported event name error")
	}
}

func mustDecoder(t *testing.T, cfg DecoderConfig) *Decoder {
	t.Helper()
	decoder, err := NewDecoder(cfg)
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	return decoder
}

func mustABI(t *testing.T, loader func() (abi.ABI, error)) abi.ABI {
	t.Helper()
	parsed, err := loader()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	return parsed
}

func buildLogRecord(address common.Address, topic0 common.Hash, data []byte, indexed []common.Hash) model.LogRecord {
	topics := make([]string, 0, len(indexed)+1)
	topics = append(topics, topic0.Hex())
	for _, topic := range indexed {
		topics = append(topics, topic.Hex())
	}

	return model.LogRecord{
		ChainID:     10143,
		BlockNumber: 12345,
		BlockHash:   "0xabc",
		TxHash:      "0xdef",
		LogIndex:    1,
		Address:     address.Hex(),
		Topics:      topics,
		Data:        hexutil.Encode(data),
		Timestamp:   1700000000,
	}
}

func topicFromAddress(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}
