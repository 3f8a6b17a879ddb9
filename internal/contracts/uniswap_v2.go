package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"monadArcade/internal/amm"
)

// V2Factory binds a UniswapV2 factory.
type V2Factory struct {
	*Contract
}

func NewV2Factory(address common.Address, backend Backend) (*V2Factory, error) {
	c, err := bindABI(address, v2FactoryABI, backend)
	if err != nil {
		return nil, err
	}
	return &V2Factory{Contract: c}, nil
}

func (f *V2Factory) GetPair(ctx context.Context, tokenA, tokenB common.Address) (common.Address, error) {
	values, err := f.Call(ctx, "getPair", tokenA, tokenB)
	if err != nil {
		return common.Address{}, err
	}
	return singleAddress(values, "getPair")
}

// CreatePair creates the pair and returns its address from the PairCreated log.
func (f *V2Factory) CreatePair(ctx context.Context, opts *bind.TransactOpts, tokenA, tokenB common.Address) (common.Address, *types.Receipt, error) {
	receipt, err := f.Transact(ctx, opts, "createPair", tokenA, tokenB)
	if err != nil {
		return common.Address{}, nil, err
	}
	log, err := f.FindEvent(receipt, "PairCreated")
	if err != nil {
		return common.Address{}, receipt, err
	}
	var created struct {
		Token0 common.Address
		Token1 common.Address
		Pair   common.Address
		Arg3   *big.Int
	}
	if err := f.UnpackLog(&created, "PairCreated", *log); err != nil {
		return common.Address{}, receipt, fmt.Errorf("unpack PairCreated: %w", err)
	}
	return created.Pair, receipt, nil
}

// V2Pair binds a UniswapV2 pair, which is also the LP token.
type V2Pair struct {
	*Contract
}

func NewV2Pair(address common.Address, backend Backend) (*V2Pair, error) {
	c, err := bindABI(address, v2PairABI, backend)
	if err != nil {
		return nil, err
	}
	return &V2Pair{Contract: c}, nil
}

func (p *V2Pair) Token0(ctx context.Context) (common.Address, error) {
	values, err := p.Call(ctx, "token0")
	if err != nil {
		return common.Address{}, err
	}
	return singleAddress(values, "token0")
}

func (p *V2Pair) Token1(ctx context.Context) (common.Address, error) {
	values, err := p.Call(ctx, "token1")
	if err != nil {
		return common.Address{}, err
	}
	return singleAddress(values, "token1")
}

func (p *V2Pair) Reserves(ctx context.Context) (amm.Reserves, error) {
	values, err := p.Call(ctx, "getReserves")
	if err != nil {
		return amm.Reserves{}, err
	}
	if len(values) != 3 {
		return amm.Reserves{}, fmt.Errorf("getReserves: expected 3 outputs, got %d", len(values))
	}
	r0, err := asBigInt(values[0])
	if err != nil {
		return amm.Reserves{}, fmt.Errorf("getReserves: %w", err)
	}
	r1, err := asBigInt(values[1])
	if err != nil {
		return amm.Reserves{}, fmt.Errorf("getReserves: %w", err)
	}
	return amm.Reserves{Reserve0: r0, Reserve1: r1}, nil
}

func (p *V2Pair) TotalSupply(ctx context.Context) (*big.Int, error) {
	values, err := p.Call(ctx, "totalSupply")
	if err != nil {
		return nil, err
	}
	return singleBig(values, "totalSupply")
}

func (p *V2Pair) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	values, err := p.Call(ctx, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return singleBig(values, "balanceOf")
}

func (p *V2Pair) Transfer(ctx context.Context, opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Receipt, error) {
	return p.Transact(ctx, opts, "transfer", to, amount)
}

func (p *V2Pair) Mint(ctx context.Context, opts *bind.TransactOpts, to common.Address) (*types.Receipt, error) {
	return p.Transact(ctx, opts, "mint", to)
}

func (p *V2Pair) Burn(ctx context.Context, opts *bind.TransactOpts, to common.Address) (*types.Receipt, error) {
	return p.Transact(ctx, opts, "burn", to)
}

func (p *V2Pair) Swap(ctx context.Context, opts *bind.TransactOpts, amount0Out, amount1Out *big.Int, to common.Address) (*types.Receipt, error) {
	return p.Transact(ctx, opts, "swap", amount0Out, amount1Out, to, []byte{})
}
