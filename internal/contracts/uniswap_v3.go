package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	// MinSqrtRatio and MaxSqrtRatio bound sqrtPriceX96 in a V3 pool.
	MinSqrtRatio    = big.NewInt(4295128739)
	MaxSqrtRatio, _ = new(big.Int).SetString("1461446703485210103287273052203988822378723970342", 10)
)

// SwapPriceLimit returns the loosest valid sqrtPriceLimitX96 for a direction.
func SwapPriceLimit(zeroForOne bool) *big.Int {
	if zeroForOne {
		return new(big.Int).Add(MinSqrtRatio, big.NewInt(1))
	}
	return new(big.Int).Sub(MaxSqrtRatio, big.NewInt(1))
}

// V3Factory binds a UniswapV3 factory.
type V3Factory struct {
	*Contract
}

func NewV3Factory(address common.Address, backend Backend) (*V3Factory, error) {
	c, err := bindABI(address, v3FactoryABI, backend)
	if err != nil {
		return nil, err
	}
	return &V3Factory{Contract: c}, nil
}

func (f *V3Factory) GetPool(ctx context.Context, tokenA, tokenB common.Address, fee uint32) (common.Address, error) {
	values, err := f.Call(ctx, "getPool", tokenA, tokenB, new(big.Int).SetUint64(uint64(fee)))
	if err != nil {
		return common.Address{}, err
	}
	return singleAddress(values, "getPool")
}

func (f *V3Factory) CreatePool(ctx context.Context, opts *bind.TransactOpts, tokenA, tokenB common.Address, fee uint32) (*types.Receipt, error) {
	return f.Transact(ctx, opts, "createPool", tokenA, tokenB, new(big.Int).SetUint64(uint64(fee)))
}

func (f *V3Factory) EnableFeeAmount(ctx context.Context, opts *bind.TransactOpts, fee uint32, tickSpacing int32) (*types.Receipt, error) {
	return f.Transact(ctx, opts, "enableFeeAmount", new(big.Int).SetUint64(uint64(fee)), big.NewInt(int64(tickSpacing)))
}

// FeeTickSpacing returns the tick spacing enabled for fee, zero when disabled.
func (f *V3Factory) FeeTickSpacing(ctx context.Context, fee uint32) (int32, error) {
	values, err := f.Call(ctx, "feeAmountTickSpacing", new(big.Int).SetUint64(uint64(fee)))
	if err != nil {
		return 0, err
	}
	n, err := singleBig(values, "feeAmountTickSpacing")
	if err != nil {
		return 0, err
	}
	return int24FromBig(n)
}

// Slot0 is the subset of the V3 pool slot0 the arcade reads.
type Slot0 struct {
	SqrtPriceX96 *big.Int
	Tick         int32
}

// V3Pool binds a UniswapV3 pool.
type V3Pool struct {
	*Contract
}

func NewV3Pool(address common.Address, backend Backend) (*V3Pool, error) {
	c, err := bindABI(address, v3PoolABI, backend)
	if err != nil {
		return nil, err
	}
	return &V3Pool{Contract: c}, nil
}

func (p *V3Pool) Slot0(ctx context.Context) (Slot0, error) {
	values, err := p.Call(ctx, "slot0")
	if err != nil {
		return Slot0{}, err
	}
	if len(values) < 2 {
		return Slot0{}, fmt.Errorf("slot0: expected 7 outputs, got %d", len(values))
	}
	sqrt, err := asBigInt(values[0])
	if err != nil {
		return Slot0{}, fmt.Errorf("slot0: %w", err)
	}
	tickInt, err := asBigInt(values[1])
	if err != nil {
		return Slot0{}, fmt.Errorf("slot0: %w", err)
	}
	tick, err := int24FromBig(tickInt)
	if err != nil {
		return Slot0{}, fmt.Errorf("slot0: %w", err)
	}
	return Slot0{SqrtPriceX96: sqrt, Tick: tick}, nil
}

func (p *V3Pool) Liquidity(ctx context.Context) (*big.Int, error) {
	values, err := p.Call(ctx, "liquidity")
	if err != nil {
		return nil, err
	}
	return singleBig(values, "liquidity")
}

func (p *V3Pool) Initialize(ctx context.Context, opts *bind.TransactOpts, sqrtPriceX96 *big.Int) (*types.Receipt, error) {
	return p.Transact(ctx, opts, "initialize", sqrtPriceX96)
}

func (p *V3Pool) Mint(ctx context.Context, opts *bind.TransactOpts, recipient common.Address, tickLower, tickUpper int32, amount *big.Int) (*types.Receipt, error) {
	return p.Transact(ctx, opts, "mint", recipient, big.NewInt(int64(tickLower)), big.NewInt(int64(tickUpper)), amount, []byte{})
}

func (p *V3Pool) Swap(ctx context.Context, opts *bind.TransactOpts, recipient common.Address, zeroForOne bool, amountSpecified, sqrtPriceLimitX96 *big.Int) (*types.Receipt, error) {
	if sqrtPriceLimitX96 == nil || sqrtPriceLimitX96.Sign() == 0 {
		sqrtPriceLimitX96 = SwapPriceLimit(zeroForOne)
	}
	return p.Transact(ctx, opts, "swap", recipient, zeroForOne, amountSpecified, sqrtPriceLimitX96, []byte{})
}

// ExactInputSingleParams mirrors ISwapRouter.ExactInputSingleParams.
type ExactInputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	Deadline          *big.Int
	AmountIn          *big.Int
	AmountOutMinimum  *big.Int
	SqrtPriceLimitX96 *big.Int
}

// SwapRouter binds the UniswapV3 SwapRouter.
type SwapRouter struct {
	*Contract
}

func NewSwapRouter(address common.Address, backend Backend) (*SwapRouter, error) {
	c, err := bindABI(address, swapRouterABI, backend)
	if err != nil {
		return nil, err
	}
	return &SwapRouter{Contract: c}, nil
}

func (r *SwapRouter) ExactInputSingle(ctx context.Context, opts *bind.TransactOpts, params ExactInputSingleParams) (*types.Receipt, error) {
	if params.SqrtPriceLimitX96 == nil {
		params.SqrtPriceLimitX96 = new(big.Int)
	}
	if params.AmountOutMinimum == nil {
		params.AmountOutMinimum = new(big.Int)
	}
	return r.Transact(ctx, opts, "exactInputSingle", params)
}
