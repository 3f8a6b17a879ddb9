// Package amm prices trades against a constant-product pair with a 0.3% input fee.
package amm

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	// ErrInvalidAmount is returned for nil or negative amounts.
	ErrInvalidAmount = errors.New("amount must be non-nil and non-negative")
	// ErrInsufficientLiquidity is returned for an uninitialised pool or an
	// output that would drain the reserve.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	// ErrInvalidSlippage is returned for tolerances outside [0, 10000] bps.
	ErrInvalidSlippage = errors.New("slippage must be between 0 and 10000 bps")
)

const (
	feeNumerator   = 997
	feeDenominator = 1000
	bpsDenominator = 10_000
)

var (
	bigFeeNumerator   = big.NewInt(feeNumerator)
	bigFeeDenominator = big.NewInt(feeDenominator)
	bigBps            = big.NewInt(bpsDenominator)
	u256FeeNumerator  = uint256.NewInt(feeNumerator)
	u256FeeDenom      = uint256.NewInt(feeDenominator)
)

// GetAmountOut returns floor(amountIn*997*reserveOut / (reserveIn*1000 + amountIn*997)).
func GetAmountOut(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	if reserveIn == nil || reserveOut == nil || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, fmt.Errorf("%w: pool has no reserves", ErrInsufficientLiquidity)
	}
	if amountIn.Sign() == 0 {
		return new(big.Int), nil
	}

	if out, ok := amountOutU256(amountIn, reserveIn, reserveOut); ok {
		return out, nil
	}

	amountInWithFee := new(big.Int).Mul(amountIn, bigFeeNumerator)
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, bigFeeDenominator)
	denominator.Add(denominator, amountInWithFee)
	return numerator.Div(numerator, denominator), nil
}

// amountOutU256 computes the quote in 256-bit arithmetic and reports false
// when any intermediate product overflows.
func amountOutU256(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, bool) {
	in, overflow := uint256.FromBig(amountIn)
	if overflow {
		return nil, false
	}
	rIn, overflow := uint256.FromBig(reserveIn)
	if overflow {
		return nil, false
	}
	rOut, overflow := uint256.FromBig(reserveOut)
	if overflow {
		return nil, false
	}

	amountInWithFee, overflow := new(uint256.Int).MulOverflow(in, u256FeeNumerator)
	if overflow {
		return nil, false
	}
	numerator, overflow := new(uint256.Int).MulOverflow(amountInWithFee, rOut)
	if overflow {
		return nil, false
	}
	denominator, overflow := new(uint256.Int).MulOverflow(rIn, u256FeeDenom)
	if overflow {
		return nil, false
	}
	if _, overflow = denominator.AddOverflow(denominator, amountInWithFee); overflow {
		return nil, false
	}
	return numerator.Div(numerator, denominator).ToBig(), true
}

// GetAmountIn returns the smallest input that yields at least amountOut.
func GetAmountIn(amountOut, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if amountOut == nil || amountOut.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	if reserveIn == nil || reserveOut == nil || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, fmt.Errorf("%w: pool has no reserves", ErrInsufficientLiquidity)
	}
	if amountOut.Cmp(reserveOut) >= 0 {
		return nil, fmt.Errorf("%w: amountOut %s >= reserveOut %s", ErrInsufficientLiquidity, amountOut, reserveOut)
	}
	if amountOut.Sign() == 0 {
		return new(big.Int), nil
	}

	numerator := new(big.Int).Mul(reserveIn, amountOut)
	numerator.Mul(numerator, bigFeeDenominator)
	denominator := new(big.Int).Sub(reserveOut, amountOut)
	denominator.Mul(denominator, bigFeeNumerator)
	amountIn := numerator.Div(numerator, denominator)
	return amountIn.Add(amountIn, big.NewInt(1)), nil
}

// MinAmountOut applies a slippage tolerance in basis points to a quoted output.
func MinAmountOut(amountOut *big.Int, slippageBps uint32) (*big.Int, error) {
	if amountOut == nil || amountOut.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	if slippageBps > bpsDenominator {
		return nil, ErrInvalidSlippage
	}
	out := new(big.Int).Mul(amountOut, big.NewInt(int64(bpsDenominator-slippageBps)))
	return out.Div(out, bigBps), nil
}

// Reserves is a pair's pooled balances, ordered as token0/token1.
type Reserves struct {
	Reserve0 *big.Int
	Reserve1 *big.Int
}

// Directional returns (reserveIn, reserveOut) for a trade direction.
func (r Reserves) Directional(zeroForOne bool) (*big.Int, *big.Int) {
	if zeroForOne {
		return r.Reserve0, r.Reserve1
	}
	return r.Reserve1, r.Reserve0
}

// Quote is a priced exact-input trade.
type Quote struct {
	ZeroForOne     bool
	AmountIn       *big.Int
	AmountOut      *big.Int
	ReserveIn      *big.Int
	ReserveOut     *big.Int
	PriceImpactBps int64
}

// QuoteExactIn prices selling amountIn of token0 (zeroForOne) or token1.
func QuoteExactIn(r Reserves, amountIn *big.Int, zeroForOne bool) (Quote, error) {
	reserveIn, reserveOut := r.Directional(zeroForOne)
	amountOut, err := GetAmountOut(amountIn, reserveIn, reserveOut)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		ZeroForOne:     zeroForOne,
		AmountIn:       new(big.Int).Set(amountIn),
		AmountOut:      amountOut,
		ReserveIn:      new(big.Int).Set(reserveIn),
		ReserveOut:     new(big.Int).Set(reserveOut),
		PriceImpactBps: PriceImpactBps(amountIn, amountOut, reserveIn, reserveOut),
	}, nil
}

// PriceImpactBps is how much worse the execution price is than the spot
// price reserveOut/reserveIn, fee included.
func PriceImpactBps(amountIn, amountOut, reserveIn, reserveOut *big.Int) int64 {
	if amountIn == nil || amountIn.Sign() == 0 || reserveOut == nil || reserveOut.Sign() == 0 {
		return 0
	}
	// execution/spot = amountOut*reserveIn / (amountIn*reserveOut)
	num := new(big.Int).Mul(amountOut, reserveIn)
	num.Mul(num, bigBps)
	den := new(big.Int).Mul(amountIn, reserveOut)
	ratio := num.Div(num, den)
	return bpsDenominator - ratio.Int64()
}
