package liquidity

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"monadArcade/internal/chain"
	"monadArcade/internal/contracts"
)

// BalanceReader reads native balances.
type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
}

// Deployment is a deployed contract.
type Deployment struct {
	Contract        string         `json:"contract"`
	Address         common.Address `json:"address"`
	TxHash          string         `json:"tx_hash"`
	DeployerBalance string         `json:"deployer_balance"`
}

// Deploy deploys artifact with constructor args and logs where it landed.
func (f *Flows) Deploy(ctx context.Context, backend contracts.Backend, balances BalanceReader, artifact *contracts.Artifact, args ...interface{}) (Deployment, error) {
	opts, err := f.opts(ctx)
	if err != nil {
		return Deployment{}, err
	}
	f.logger.Info("deploying", zap.String("contract", artifact.ContractName), zap.String("deployer", opts.From.Hex()))

	address, receipt, err := artifact.Deploy(ctx, opts, backend, args...)
	if err != nil {
		return Deployment{}, err
	}

	out := Deployment{Contract: artifact.ContractName, Address: address, TxHash: receipt.TxHash.Hex()}
	if balances != nil {
		if balance, err := balances.BalanceAt(ctx, opts.From); err == nil {
			out.DeployerBalance = chain.FormatEther(balance)
		} else {
			f.logger.Warn("deployer balance unavailable", zap.Error(err))
		}
	}
	f.logger.Info("deployed",
		zap.String("contract", out.Contract),
		zap.String("address", address.Hex()),
		zap.String("tx", out.TxHash),
		zap.String("deployer_balance", out.DeployerBalance),
	)
	return out, nil
}
