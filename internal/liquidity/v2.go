package liquidity

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"monadArcade/internal/amm"
	"monadArcade/internal/chain"
)

// V2Factory is the UniswapV2 factory binding.
type V2Factory interface {
	GetPair(ctx context.Context, tokenA, tokenB common.Address) (common.Address, error)
	CreatePair(ctx context.Context, opts *bind.TransactOpts, tokenA, tokenB common.Address) (common.Address, *types.Receipt, error)
}

// V2Pair is the UniswapV2 pair binding. The pair is also its LP token.
type V2Pair interface {
	Reserves(ctx context.Context) (amm.Reserves, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Transfer(ctx context.Context, opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Receipt, error)
	Mint(ctx context.Context, opts *bind.TransactOpts, to common.Address) (*types.Receipt, error)
	Burn(ctx context.Context, opts *bind.TransactOpts, to common.Address) (*types.Receipt, error)
	Swap(ctx context.Context, opts *bind.TransactOpts, amount0Out, amount1Out *big.Int, to common.Address) (*types.Receipt, error)
}

// PairResult is the outcome of CreatePair.
type PairResult struct {
	Pair    common.Address `json:"pair"`
	Existed bool           `json:"existed"`
	Steps   []Step         `json:"steps"`
}

// CreatePair creates the tokenA/tokenB pair, or returns the existing one.
func (f *Flows) CreatePair(ctx context.Context, factory V2Factory, tokenA, tokenB common.Address) (PairResult, error) {
	existing, err := factory.GetPair(ctx, tokenA, tokenB)
	if err != nil {
		return PairResult{}, fmt.Errorf("get pair: %w", err)
	}
	if existing != (common.Address{}) {
		f.logger.Info("pair exists", zap.String("pair", existing.Hex()))
		return PairResult{Pair: existing, Existed: true}, nil
	}

	var result PairResult
	err = f.step(ctx, &result.Steps, "createPair", func(opts *bind.TransactOpts) (*types.Receipt, error) {
		pair, receipt, err := factory.CreatePair(ctx, opts, tokenA, tokenB)
		result.Pair = pair
		return receipt, err
	})
	if err != nil {
		return PairResult{}, err
	}
	f.logger.Info("pair created", zap.String("pair", result.Pair.Hex()), zap.String("token_a", tokenA.Hex()), zap.String("token_b", tokenB.Hex()))
	return result, nil
}

// LiquidityResult reports pool state after adding or removing liquidity.
type LiquidityResult struct {
	Steps       []Step       `json:"steps"`
	Reserves    amm.Reserves `json:"-"`
	Reserve0    string       `json:"reserve0"`
	Reserve1    string       `json:"reserve1"`
	TotalSupply string       `json:"total_supply"`
	LPBalance   string       `json:"lp_balance"`
}

// AddLiquidity approves and transfers both amounts to the pair, then mints LP to the caller.
func (f *Flows) AddLiquidity(ctx context.Context, pairAddr common.Address, pair V2Pair, token0, token1 Token, amount0, amount1 *big.Int) (LiquidityResult, error) {
	if amount0 == nil || amount0.Sign() <= 0 || amount1 == nil || amount1.Sign() <= 0 {
		return LiquidityResult{}, fmt.Errorf("both amounts must be positive")
	}
	account, err := f.account(ctx)
	if err != nil {
		return LiquidityResult{}, err
	}

	var steps []Step
	send := []struct {
		name string
		fn   func(*bind.TransactOpts) (*types.Receipt, error)
	}{
		{"approve token0", func(o *bind.TransactOpts) (*types.Receipt, error) { return token0.Approve(ctx, o, pairAddr, amount0) }},
		{"approve token1", func(o *bind.TransactOpts) (*types.Receipt, error) { return token1.Approve(ctx, o, pairAddr, amount1) }},
		{"transfer token0", func(o *bind.TransactOpts) (*types.Receipt, error) { return token0.Transfer(ctx, o, pairAddr, amount0) }},
		{"transfer token1", func(o *bind.TransactOpts) (*types.Receipt, error) { return token1.Transfer(ctx, o, pairAddr, amount1) }},
	}
	for _, s := range send {
		if err := f.step(ctx, &steps, s.name, s.fn); err != nil {
			return LiquidityResult{Steps: steps}, err
		}
	}

	bal0, err := token0.BalanceOf(ctx, pairAddr)
	if err == nil {
		bal1, err1 := token1.BalanceOf(ctx, pairAddr)
		if err1 == nil {
			f.logger.Info("pair balances before mint", zap.String("token0", chain.FormatEther(bal0)), zap.String("token1", chain.FormatEther(bal1)))
		}
	}

	if err := f.step(ctx, &steps, "mint", func(o *bind.TransactOpts) (*types.Receipt, error) {
		return pair.Mint(ctx, o, account)
	}); err != nil {
		return LiquidityResult{Steps: steps}, err
	}
	return f.pairState(ctx, pair, account, steps)
}

// RemoveLiquidity sends lp of the caller's LP tokens to the pair and burns them back into both tokens.
func (f *Flows) RemoveLiquidity(ctx context.Context, pairAddr common.Address, pair V2Pair, lp *big.Int) (LiquidityResult, error) {
	if lp == nil || lp.Sign() <= 0 {
		return LiquidityResult{}, fmt.Errorf("lp amount must be positive")
	}
	account, err := f.account(ctx)
	if err != nil {
		return LiquidityResult{}, err
	}
	before, err := pair.BalanceOf(ctx, account)
	if err != nil {
		return LiquidityResult{}, fmt.Errorf("lp balance: %w", err)
	}
	if before.Cmp(lp) < 0 {
		return LiquidityResult{}, fmt.Errorf("lp balance %s is below %s", chain.FormatEther(before), chain.FormatEther(lp))
	}
	f.logger.Info("lp balance before burn", zap.String("user", chain.FormatEther(before)))

	var steps []Step
	if err := f.step(ctx, &steps, "transfer lp", func(o *bind.TransactOpts) (*types.Receipt, error) {
		return pair.Transfer(ctx, o, pairAddr, lp)
	}); err != nil {
		return LiquidityResult{Steps: steps}, err
	}
	if err := f.step(ctx, &steps, "burn", func(o *bind.TransactOpts) (*types.Receipt, error) {
		return pair.Burn(ctx, o, account)
	}); err != nil {
		return LiquidityResult{Steps: steps}, err
	}
	return f.pairState(ctx, pair, account, steps)
}

func (f *Flows) pairState(ctx context.Context, pair V2Pair, account common.Address, steps []Step) (LiquidityResult, error) {
	reserves, err := pair.Reserves(ctx)
	if err != nil {
		return LiquidityResult{Steps: steps}, fmt.Errorf("reserves: %w", err)
	}
	supply, err := pair.TotalSupply(ctx)
	if err != nil {
		return LiquidityResult{Steps: steps}, fmt.Errorf("total supply: %w", err)
	}
	lp, err := pair.BalanceOf(ctx, account)
	if err != nil {
		return LiquidityResult{Steps: steps}, fmt.Errorf("lp balance: %w", err)
	}
	result := LiquidityResult{
		Steps:       steps,
		Reserves:    reserves,
		Reserve0:    reserves.Reserve0.String(),
		Reserve1:    reserves.Reserve1.String(),
		TotalSupply: supply.String(),
		LPBalance:   lp.String(),
	}
	f.logger.Info("pair state",
		zap.String("reserve0", chain.FormatEther(reserves.Reserve0)),
		zap.String("reserve1", chain.FormatEther(reserves.Reserve1)),
		zap.String("total_supply", chain.FormatEther(supply)),
		zap.String("lp_balance", chain.FormatEther(lp)),
	)
	return result, nil
}

// SwapResult is the outcome of a direct pair swap.
type SwapResult struct {
	Steps          []Step `json:"steps"`
	AmountIn       string `json:"amount_in"`
	AmountOut      string `json:"amount_out"`
	PriceImpactBps int64  `json:"price_impact_bps"`
}

// Swap sells amountIn of token0 (zeroForOne) or token1 straight into the pair.
// The output is priced from the reserves with the constant-product formula and
// reduced by slippageBps, which may be zero.
func (f *Flows) Swap(ctx context.Context, pairAddr common.Address, pair V2Pair, tokenIn Token, amountIn *big.Int, zeroForOne bool, slippageBps uint32) (SwapResult, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return SwapResult{}, fmt.Errorf("amount in must be positive")
	}
	account, err := f.account(ctx)
	if err != nil {
		return SwapResult{}, err
	}

	var steps []Step
	if err := f.step(ctx, &steps, "transfer in", func(o *bind.TransactOpts) (*types.Receipt, error) {
		return tokenIn.Transfer(ctx, o, pairAddr, amountIn)
	}); err != nil {
		return SwapResult{Steps: steps}, err
	}

	reserves, err := pair.Reserves(ctx)
	if err != nil {
		return SwapResult{Steps: steps}, fmt.Errorf("reserves: %w", err)
	}
	quote, err := amm.QuoteExactIn(reserves, amountIn, zeroForOne)
	if err != nil {
		return SwapResult{Steps: steps}, err
	}
	amountOut, err := amm.MinAmountOut(quote.AmountOut, slippageBps)
	if err != nil {
		return SwapResult{Steps: steps}, err
	}
	f.logger.Info("expected output", zap.String("amount_out", amountOut.String()), zap.Int64("price_impact_bps", quote.PriceImpactBps))

	amount0Out, amount1Out := new(big.Int), new(big.Int)
	if zeroForOne {
		amount1Out = amountOut
	} else {
		amount0Out = amountOut
	}
	if err := f.step(ctx, &steps, "swap", func(o *bind.TransactOpts) (*types.Receipt, error) {
		return pair.Swap(ctx, o, amount0Out, amount1Out, account)
	}); err != nil {
		return SwapResult{Steps: steps}, err
	}

	return SwapResult{
		Steps:          steps,
		AmountIn:       amountIn.String(),
		AmountOut:      amountOut.String(),
		PriceImpactBps: quote.PriceImpactBps,
	}, nil
}
