package liquidity

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"monadArcade/internal/contracts"
)

// Full-range ticks for a 60 tick spacing.
const (
	FullRangeTickLower = -887220
	FullRangeTickUpper = 887220
)

// DefaultRouterDeadline is how long a router swap stays valid.
const DefaultRouterDeadline = 20 * time.Minute

// FeeTier is a V3 fee with its tick spacing.
type FeeTier struct {
	Fee         uint32 `json:"fee"`
	TickSpacing int32  `json:"tick_spacing"`
}

// DefaultFeeTiers are enabled by EnableFeeTiers when no tiers are given.
var DefaultFeeTiers = []FeeTier{
	{Fee: 3000, TickSpacing: 60},
	{Fee: 10000, TickSpacing: 200},
	{Fee: 500, TickSpacing: 10},
}

// V3Factory is the UniswapV3 factory binding.
type V3Factory interface {
	GetPool(ctx context.Context, tokenA, tokenB common.Address, fee uint32) (common.Address, error)
	CreatePool(ctx context.Context, opts *bind.TransactOpts, tokenA, tokenB common.Address, fee uint32) (*types.Receipt, error)
	EnableFeeAmount(ctx context.Context, opts *bind.TransactOpts, fee uint32, tickSpacing int32) (*types.Receipt, error)
	FeeTickSpacing(ctx context.Context, fee uint32) (int32, error)
}

// V3Pool is the UniswapV3 pool binding.
type V3Pool interface {
	Slot0(ctx context.Context) (contracts.Slot0, error)
	Liquidity(ctx context.Context) (*big.Int, error)
	Mint(ctx context.Context, opts *bind.TransactOpts, recipient common.Address, tickLower, tickUpper int32, amount *big.Int) (*types.Receipt, error)
	Swap(ctx context.Context, opts *bind.TransactOpts, recipient common.Address, zeroForOne bool, amountSpecified, sqrtPriceLimitX96 *big.Int) (*types.Receipt, error)
}

// V3Router is the SwapRouter binding.
type V3Router interface {
	ExactInputSingle(ctx context.Context, opts *bind.TransactOpts, params contracts.ExactInputSingleParams) (*types.Receipt, error)
}

// EnableFeeTiers enables every tier the factory does not already know.
func (f *Flows) EnableFeeTiers(ctx context.Context, factory V3Factory, tiers []FeeTier) ([]Step, error) {
	if len(tiers) == 0 {
		tiers = DefaultFeeTiers
	}
	var steps []Step
	for _, tier := range tiers {
		spacing, err := factory.FeeTickSpacing(ctx, tier.Fee)
		if err != nil {
			return steps, fmt.Errorf("fee %d tick spacing: %w", tier.Fee, err)
		}
		if spacing != 0 {
			f.logger.Info("fee tier already enabled", zap.Uint32("fee", tier.Fee), zap.Int32("tick_spacing", spacing))
			continue
		}
		tier := tier
		name := fmt.Sprintf("enableFeeAmount %d/%d", tier.Fee, tier.TickSpacing)
		if err := f.step(ctx, &steps, name, func(o *bind.TransactOpts) (*types.Receipt, error) {
			return factory.EnableFeeAmount(ctx, o, tier.Fee, tier.TickSpacing)
		}); err != nil {
			return steps, err
		}
	}
	return steps, nil
}

// CreatePool creates the tokenA/tokenB pool for fee and returns its address.
func (f *Flows) CreatePool(ctx context.Context, factory V3Factory, tokenA, tokenB common.Address, fee uint32) (PairResult, error) {
	if tokenA == tokenB {
		return PairResult{}, fmt.Errorf("pool tokens must differ")
	}
	existing, err := factory.GetPool(ctx, tokenA, tokenB, fee)
	if err != nil {
		return PairResult{}, fmt.Errorf("get pool: %w", err)
	}
	if existing != (common.Address{}) {
		f.logger.Info("pool exists", zap.String("pool", existing.Hex()))
		return PairResult{Pair: existing, Existed: true}, nil
	}

	var result PairResult
	if err := f.step(ctx, &result.Steps, "createPool", func(o *bind.TransactOpts) (*types.Receipt, error) {
		return factory.CreatePool(ctx, o, tokenA, tokenB, fee)
	}); err != nil {
		return PairResult{}, err
	}
	if result.Pair, err = factory.GetPool(ctx, tokenA, tokenB, fee); err != nil {
		return result, fmt.Errorf("get pool: %w", err)
	}
	f.logger.Info("pool created", zap.String("pool", result.Pair.Hex()), zap.Uint32("fee", fee))
	return result, nil
}

// MintPosition adds amount of liquidity between the ticks for the caller.
func (f *Flows) MintPosition(ctx context.Context, pool V3Pool, tickLower, tickUpper int32, amount *big.Int) ([]Step, error) {
	if tickLower >= tickUpper {
		return nil, fmt.Errorf("tick lower %d must be below tick upper %d", tickLower, tickUpper)
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("liquidity amount must be positive")
	}
	account, err := f.account(ctx)
	if err != nil {
		return nil, err
	}
	var steps []Step
	if err := f.step(ctx, &steps, "mint", func(o *bind.TransactOpts) (*types.Receipt, error) {
		return pool.Mint(ctx, o, account, tickLower, tickUpper, amount)
	}); err != nil {
		return steps, err
	}
	if liquidity, err := pool.Liquidity(ctx); err == nil {
		f.logger.Info("pool liquidity", zap.String("liquidity", liquidity.String()))
	}
	return steps, nil
}

// SwapPool swaps amount directly against the pool. A nil limit uses the widest allowed price limit.
func (f *Flows) SwapPool(ctx context.Context, pool V3Pool, zeroForOne bool, amount, sqrtPriceLimitX96 *big.Int) ([]Step, error) {
	if amount == nil || amount.Sign() == 0 {
		return nil, fmt.Errorf("swap amount must be non-zero")
	}
	account, err := f.account(ctx)
	if err != nil {
		return nil, err
	}
	if sqrtPriceLimitX96 == nil || sqrtPriceLimitX96.Sign() == 0 {
		sqrtPriceLimitX96 = contracts.SwapPriceLimit(zeroForOne)
	}
	var steps []Step
	if err := f.step(ctx, &steps, "swap", func(o *bind.TransactOpts) (*types.Receipt, error) {
		return pool.Swap(ctx, o, account, zeroForOne, amount, sqrtPriceLimitX96)
	}); err != nil {
		return steps, err
	}
	if slot0, err := pool.Slot0(ctx); err == nil {
		f.logger.Info("pool price", zap.String("sqrt_price_x96", slot0.SqrtPriceX96.String()), zap.Int32("tick", slot0.Tick))
	}
	return steps, nil
}

// RouterSwap is an exact-input single-hop swap through the router.
type RouterSwap struct {
	Router       common.Address
	TokenIn      Token
	TokenInAddr  common.Address
	TokenOutAddr common.Address
	Fee          uint32
	AmountIn     *big.Int
	MinAmountOut *big.Int
	Deadline     time.Duration
	Now          func() time.Time
}

// SwapRouter approves the router for AmountIn and calls exactInputSingle.
func (f *Flows) SwapRouter(ctx context.Context, router V3Router, req RouterSwap) ([]Step, error) {
	if req.AmountIn == nil || req.AmountIn.Sign() <= 0 {
		return nil, fmt.Errorf("amount in must be positive")
	}
	account, err := f.account(ctx)
	if err != nil {
		return nil, err
	}
	if req.Deadline <= 0 {
		req.Deadline = DefaultRouterDeadline
	}
	if req.Now == nil {
		req.Now = time.Now
	}

	var steps []Step
	if err := f.step(ctx, &steps, "approve router", func(o *bind.TransactOpts) (*types.Receipt, error) {
		return req.TokenIn.Approve(ctx, o, req.Router, req.AmountIn)
	}); err != nil {
		return steps, err
	}

	params := contracts.ExactInputSingleParams{
		TokenIn:          req.TokenInAddr,
		TokenOut:         req.TokenOutAddr,
		Fee:              big.NewInt(int64(req.Fee)),
		Recipient:        account,
		Deadline:         big.NewInt(req.Now().Add(req.Deadline).Unix()),
		AmountIn:         req.AmountIn,
		AmountOutMinimum: req.MinAmountOut,
	}
	if err := f.step(ctx, &steps, "exactInputSingle", func(o *bind.TransactOpts) (*types.Receipt, error) {
		return router.ExactInputSingle(ctx, o, params)
	}); err != nil {
		return steps, err
	}
	return steps, nil
}
