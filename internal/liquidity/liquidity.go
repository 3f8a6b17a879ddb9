// Package liquidity runs the step-by-step Uniswap V2/V3 and deployment flows.
// Steps are sent in order and each waits for its receipt; a failure part way
// leaves earlier steps in place.
package liquidity

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Signer produces transaction options for the acting account.
type Signer interface {
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
}

// Token is an ERC20 as the flows use it.
type Token interface {
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Approve(ctx context.Context, opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Receipt, error)
	Transfer(ctx context.Context, opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Receipt, error)
}

// Step is one mined transaction of a flow.
type Step struct {
	Name   string `json:"name"`
	TxHash string `json:"tx_hash"`
}

// Flows sends liquidity and deployment transactions from one account.
type Flows struct {
	signer Signer
	logger *zap.Logger
}

func NewFlows(signer Signer, logger *zap.Logger) *Flows {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flows{signer: signer, logger: logger}
}

func (f *Flows) opts(ctx context.Context) (*bind.TransactOpts, error) {
	if f.signer == nil {
		return nil, fmt.Errorf("no signer configured")
	}
	return f.signer.TransactOpts(ctx)
}

// step sends one transaction and records it.
func (f *Flows) step(ctx context.Context, steps *[]Step, name string, send func(*bind.TransactOpts) (*types.Receipt, error)) error {
	opts, err := f.opts(ctx)
	if err != nil {
		return err
	}
	receipt, err := send(opts)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	hash := receipt.TxHash.Hex()
	*steps = append(*steps, Step{Name: name, TxHash: hash})
	f.logger.Info("step complete", zap.String("step", name), zap.String("tx", hash))
	return nil
}

func (f *Flows) account(ctx context.Context) (common.Address, error) {
	opts, err := f.opts(ctx)
	if err != nil {
		return common.Address{}, err
	}
	return opts.From, nil
}
