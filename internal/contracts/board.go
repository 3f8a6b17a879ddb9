package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"monadArcade/internal/chain"
	"monadArcade/internal/model"
)

// Board binds the message board contract.
type Board struct {
	*Contract
}

func NewBoard(address common.Address, backend Backend) (*Board, error) {
	c, err := bindABI(address, boardABI, backend)
	if err != nil {
		return nil, err
	}
	return &Board{Contract: c}, nil
}

func (b *Board) PostCount(ctx context.Context) (uint64, error) {
	values, err := b.Call(ctx, "getPostCount")
	if err != nil {
		return 0, err
	}
	n, err := singleBig(values, "getPostCount")
	if err != nil {
		return 0, err
	}
	return uint64Of(n), nil
}

// Post reads the post at index id.
func (b *Board) Post(ctx context.Context, id uint64) (model.Post, error) {
	values, err := b.Call(ctx, "getPost", new(big.Int).SetUint64(id))
	if err != nil {
		return model.Post{}, err
	}
	if len(values) != 7 {
		return model.Post{}, fmt.Errorf("getPost: expected 7 outputs, got %d", len(values))
	}

	author, err := asAddress(values[0])
	if err != nil {
		return model.Post{}, fmt.Errorf("getPost author: %w", err)
	}
	strs := make([]string, 3)
	for i := range strs {
		if strs[i], err = asString(values[1+i]); err != nil {
			return model.Post{}, fmt.Errorf("getPost: %w", err)
		}
	}
	nums := make([]*big.Int, 3)
	for i := range nums {
		if nums[i], err = asBigInt(values[4+i]); err != nil {
			return model.Post{}, fmt.Errorf("getPost: %w", err)
		}
	}

	return model.Post{
		ID:             id,
		Author:         author.Hex(),
		AuthorNickname: strs[0],
		Title:          strs[1],
		Content:        strs[2],
		Timestamp:      uint64Of(nums[0]),
		Likes:          uint64Of(nums[1]),
		MonAmount:      chain.FormatEther(nums[2]),
	}, nil
}

func (b *Board) TopPosts(ctx context.Context) ([]uint64, error) {
	values, err := b.Call(ctx, "getTopPosts")
	if err != nil {
		return nil, err
	}
	v, err := single(values, "getTopPosts")
	if err != nil {
		return nil, err
	}
	ids, ok := v.([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("getTopPosts: unsupported type %T", v)
	}
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		out = append(out, uint64Of(id))
	}
	return out, nil
}

func (b *Board) Nickname(ctx context.Context, user common.Address) (string, error) {
	values, err := b.Call(ctx, "nicknames", user)
	if err != nil {
		return "", err
	}
	v, err := single(values, "nicknames")
	if err != nil {
		return "", err
	}
	return asString(v)
}

func (b *Board) CreatePost(ctx context.Context, opts *bind.TransactOpts, title, content string, monAmount *big.Int) (*types.Receipt, error) {
	if monAmount == nil {
		monAmount = new(big.Int)
	}
	return b.Transact(ctx, opts, "createPost", title, content, monAmount)
}

func (b *Board) LikePost(ctx context.Context, opts *bind.TransactOpts, id uint64) (*types.Receipt, error) {
	return b.Transact(ctx, opts, "likePost", new(big.Int).SetUint64(id))
}

func (b *Board) SetNickname(ctx context.Context, opts *bind.TransactOpts, nickname string) (*types.Receipt, error) {
	return b.Transact(ctx, opts, "setNickname", nickname)
}

func (b *Board) WithdrawFees(ctx context.Context, opts *bind.TransactOpts) (*types.Receipt, error) {
	return b.Transact(ctx, opts, "withdrawFees")
}
