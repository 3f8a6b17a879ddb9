package events

import (
	"fmt"

	"monadArcade/internal/contracts"
	"monadArcade/internal/model"
)

func buildPostCreated(f fields) (interface{}, error) {
	id, err := f.big("postId")
	if err != nil {
		return nil, err
	}
	author, err := f.address("author")
	if err != nil {
		return nil, err
	}
	amount, err := f.big("monAmount")
	if err != nil {
		return nil, err
	}
	return model.PostCreatedData{PostID: id.String(), Author: author.Hex(), MonAmount: amount.String()}, nil
}

func buildPostLiked(f fields) (interface{}, error) {
	id, err := f.big("postId")
	if err != nil {
		return nil, err
	}
	liker, err := f.address("liker")
	if err != nil {
		return nil, err
	}
	return model.PostLikedData{PostID: id.String(), Liker: liker.Hex()}, nil
}

func buildNicknameSet(f fields) (interface{}, error) {
	user, err := f.address("user")
	if err != nil {
		return nil, err
	}
	nickname, err := f.str("nickname")
	if err != nil {
		return nil, err
	}
	return model.NicknameSetData{User: user.Hex(), Nickname: nickname}, nil
}

func buildPollCreated(f fields) (interface{}, error) {
	id, err := f.big("pollId")
	if err != nil {
		return nil, err
	}
	title, err := f.str("title")
	if err != nil {
		return nil, err
	}
	start, err := f.big("startTime")
	if err != nil {
		return nil, err
	}
	end, err := f.big("endTime")
	if err != nil {
		return nil, err
	}
	return model.PollCreatedData{PollID: id.String(), Title: title, StartTime: start.Uint64(), EndTime: end.Uint64()}, nil
}

func buildVoted(f fields) (interface{}, error) {
	id, err := f.big("pollId")
	if err != nil {
		return nil, err
	}
	voter, err := f.address("voter")
	if err != nil {
		return nil, err
	}
	option, err := f.big("optionIndex")
	if err != nil {
		return nil, err
	}
	amount, err := f.big("amount")
	if err != nil {
		return nil, err
	}
	if !option.IsUint64() {
		return nil, fmt.Errorf("option index out of range: %s", option)
	}
	return model.VotedData{PollID: id.String(), Voter: voter.Hex(), OptionIndex: option.Uint64(), Amount: amount.String()}, nil
}

func buildPollEnded(f fields) (interface{}, error) {
	id, err := f.big("pollId")
	if err != nil {
		return nil, err
	}
	return model.PollEndedData{PollID: id.String()}, nil
}

func buildSpin(f fields) (interface{}, error) {
	player, err := f.address("player")
	if err != nil {
		return nil, err
	}
	bet, err := f.big("betAmount")
	if err != nil {
		return nil, err
	}
	win, err := f.big("winAmount")
	if err != nil {
		return nil, err
	}
	result, ok := f["result"].([3]uint8)
	if !ok {
		return nil, fmt.Errorf("field result: expected uint8[3], got %T", f["result"])
	}
	symbols := make([]string, len(result))
	for i, idx := range result {
		symbols[i] = contracts.SymbolName(idx)
	}
	return model.SpinEventData{
		Player:    player.Hex(),
		BetAmount: bet.String(),
		Result:    result,
		Symbols:   symbols,
		WinAmount: win.String(),
	}, nil
}

func buildPairSwap(f fields) (interface{}, error) {
	sender, err := f.address("sender")
	if err != nil {
		return nil, err
	}
	to, err := f.address("to")
	if err != nil {
		return nil, err
	}
	amounts := make([]string, 0, 4)
	for _, name := range []string{"amount0In", "amount1In", "amount0Out", "amount1Out"} {
		v, err := f.big(name)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, v.String())
	}
	return model.PairSwapData{
		Sender:     sender.Hex(),
		To:         to.Hex(),
		Amount0In:  amounts[0],
		Amount1In:  amounts[1],
		Amount0Out: amounts[2],
		Amount1Out: amounts[3],
	}, nil
}
