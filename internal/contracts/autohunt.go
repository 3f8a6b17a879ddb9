package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"monadArcade/internal/model"
)

// HuntCharacter mirrors the AutoHunt Character struct.
type HuntCharacter struct {
	Level        *big.Int
	Exp          *big.Int
	Power        *big.Int
	LastHuntTime *big.Int
	IsHunting    bool
}

// HuntMonster mirrors the AutoHunt Monster struct.
type HuntMonster struct {
	Level    *big.Int
	Hp       *big.Int
	Exp      *big.Int
	GcReward *big.Int
}

// AutoHunt binds the hunting game contract.
type AutoHunt struct {
	*Contract
}

func NewAutoHunt(address common.Address, backend Backend) (*AutoHunt, error) {
	c, err := bindABI(address, autoHuntABI, backend)
	if err != nil {
		return nil, err
	}
	return &AutoHunt{Contract: c}, nil
}

func (h *AutoHunt) Character(ctx context.Context, player common.Address) (model.Character, error) {
	values, err := h.Call(ctx, "getCharacter", player)
	if err != nil {
		return model.Character{}, err
	}
	v, err := single(values, "getCharacter")
	if err != nil {
		return model.Character{}, err
	}
	c := *abi.ConvertType(v, new(HuntCharacter)).(*HuntCharacter)
	if c.Level == nil {
		return model.Character{}, fmt.Errorf("getCharacter: empty result")
	}
	return model.Character{
		Level:        c.Level.String(),
		Exp:          c.Exp.String(),
		Power:        c.Power.String(),
		LastHuntTime: uint64Of(c.LastHuntTime),
		IsHunting:    c.IsHunting,
	}, nil
}

// Monsters returns the raw monster list; index is the monster id.
func (h *AutoHunt) Monsters(ctx context.Context) ([]HuntMonster, error) {
	values, err := h.Call(ctx, "getMonsters")
	if err != nil {
		return nil, err
	}
	v, err := single(values, "getMonsters")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(v, new([]HuntMonster)).(*[]HuntMonster), nil
}

func (h *AutoHunt) CreateCharacter(ctx context.Context, opts *bind.TransactOpts) (*types.Receipt, error) {
	return h.Transact(ctx, opts, "createCharacter")
}

func (h *AutoHunt) StartHunting(ctx context.Context, opts *bind.TransactOpts, monsterID uint64) (*types.Receipt, error) {
	return h.Transact(ctx, opts, "startHunting", new(big.Int).SetUint64(monsterID))
}

func (h *AutoHunt) CompleteHunt(ctx context.Context, opts *bind.TransactOpts, monsterID uint64, exp, gc *big.Int) (*types.Receipt, error) {
	return h.Transact(ctx, opts, "completeHunt", new(big.Int).SetUint64(monsterID), exp, gc)
}

func (h *AutoHunt) ClaimRewards(ctx context.Context, opts *bind.TransactOpts, monsterID uint64) (*types.Receipt, error) {
	return h.Transact(ctx, opts, "claimRewards", new(big.Int).SetUint64(monsterID))
}

// ToModel converts a contract monster into its API view.
func (m HuntMonster) ToModel(id uint64) model.Monster {
	return model.Monster{
		ID:       id,
		Level:    bigString(m.Level),
		HP:       bigString(m.Hp),
		Exp:      bigString(m.Exp),
		GCReward: bigString(m.GcReward),
	}
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
