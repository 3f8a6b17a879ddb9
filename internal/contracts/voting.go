package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"monadArcade/internal/model"
)

// Voting binds the token-weighted poll contract.
type Voting struct {
	*Contract
}

func NewVoting(address common.Address, backend Backend) (*Voting, error) {
	c, err := bindABI(address, votingABI, backend)
	if err != nil {
		return nil, err
	}
	return &Voting{Contract: c}, nil
}

func (v *Voting) PollCount(ctx context.Context) (uint64, error) {
	values, err := v.Call(ctx, "pollCount")
	if err != nil {
		return 0, err
	}
	n, err := singleBig(values, "pollCount")
	if err != nil {
		return 0, err
	}
	return uint64Of(n), nil
}

func (v *Voting) MinVoteAmount(ctx context.Context) (*big.Int, error) {
	values, err := v.Call(ctx, "minVoteAmount")
	if err != nil {
		return nil, err
	}
	return singleBig(values, "minVoteAmount")
}

// PollResults reads poll id with its per-option tallies.
func (v *Voting) PollResults(ctx context.Context, id uint64) (model.Poll, error) {
	values, err := v.Call(ctx, "getPollResults", new(big.Int).SetUint64(id))
	if err != nil {
		return model.Poll{}, err
	}
	if len(values) != 8 {
		return model.Poll{}, fmt.Errorf("getPollResults: expected 8 outputs, got %d", len(values))
	}

	title, err := asString(values[0])
	if err != nil {
		return model.Poll{}, fmt.Errorf("getPollResults title: %w", err)
	}
	description, err := asString(values[1])
	if err != nil {
		return model.Poll{}, fmt.Errorf("getPollResults description: %w", err)
	}
	options, ok := values[2].([]string)
	if !ok {
		return model.Poll{}, fmt.Errorf("getPollResults options: unsupported type %T", values[2])
	}
	votes, ok := values[3].([]*big.Int)
	if !ok {
		return model.Poll{}, fmt.Errorf("getPollResults votes: unsupported type %T", values[3])
	}
	nums := make([]*big.Int, 3)
	for i := range nums {
		if nums[i], err = asBigInt(values[4+i]); err != nil {
			return model.Poll{}, fmt.Errorf("getPollResults: %w", err)
		}
	}
	active, err := asBool(values[7])
	if err != nil {
		return model.Poll{}, fmt.Errorf("getPollResults isActive: %w", err)
	}

	voteStrings := make([]string, 0, len(votes))
	for _, vote := range votes {
		voteStrings = append(voteStrings, vote.String())
	}

	return model.Poll{
		ID:          id,
		Title:       title,
		Description: description,
		Options:     options,
		Votes:       voteStrings,
		TotalVotes:  nums[0].String(),
		StartTime:   uint64Of(nums[1]),
		EndTime:     uint64Of(nums[2]),
		IsActive:    active,
	}, nil
}

func (v *Voting) CreatePoll(ctx context.Context, opts *bind.TransactOpts, title, description string, options []string, duration *big.Int) (*types.Receipt, error) {
	return v.Transact(ctx, opts, "createPoll", title, description, options, duration)
}

func (v *Voting) Vote(ctx context.Context, opts *bind.TransactOpts, pollID, optionIndex uint64, amount *big.Int) (*types.Receipt, error) {
	return v.Transact(ctx, opts, "vote", new(big.Int).SetUint64(pollID), new(big.Int).SetUint64(optionIndex), amount)
}

func (v *Voting) EndPoll(ctx context.Context, opts *bind.TransactOpts, pollID uint64) (*types.Receipt, error) {
	return v.Transact(ctx, opts, "endPoll", new(big.Int).SetUint64(pollID))
}
