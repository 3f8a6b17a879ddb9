package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"monadArcade/internal/model"
)

// ERC20 binds a standard token.
type ERC20 struct {
	*Contract
	legacy *Contract
}

// NewERC20 binds the token at address.
func NewERC20(address common.Address, backend Backend) (*ERC20, error) {
	c, err := bindABI(address, erc20ABI, backend)
	if err != nil {
		return nil, err
	}
	legacy, err := bindABI(address, erc20Bytes32ABI, backend)
	if err != nil {
		return nil, err
	}
	return &ERC20{Contract: c, legacy: legacy}, nil
}

func (t *ERC20) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	values, err := t.Call(ctx, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return singleBig(values, "balanceOf")
}

func (t *ERC20) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	values, err := t.Call(ctx, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	return singleBig(values, "allowance")
}

func (t *ERC20) TotalSupply(ctx context.Context) (*big.Int, error) {
	values, err := t.Call(ctx, "totalSupply")
	if err != nil {
		return nil, err
	}
	return singleBig(values, "totalSupply")
}

func (t *ERC20) Decimals(ctx context.Context) (uint8, error) {
	values, err := t.Call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	v, err := single(values, "decimals")
	if err != nil {
		return 0, err
	}
	return asUint8(v)
}

func (t *ERC20) Approve(ctx context.Context, opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Receipt, error) {
	return t.Transact(ctx, opts, "approve", spender, amount)
}

func (t *ERC20) Transfer(ctx context.Context, opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Receipt, error) {
	return t.Transact(ctx, opts, "transfer", to, amount)
}

// EnsureAllowance approves amount for spender when the current allowance is short.
// It returns nil without sending anything when the allowance already covers amount.
func (t *ERC20) EnsureAllowance(ctx context.Context, opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Receipt, error) {
	current, err := t.Allowance(ctx, opts.From, spender)
	if err != nil {
		return nil, err
	}
	if current.Cmp(amount) >= 0 {
		return nil, nil
	}
	return t.Approve(ctx, opts, spender, amount)
}

// Metadata loads decimals, symbol and name, falling back to bytes32 variants.
func (t *ERC20) Metadata(ctx context.Context, logger *zap.Logger) (model.TokenMeta, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	meta := model.TokenMeta{Address: t.Address.Hex()}

	decimals, err := t.Decimals(ctx)
	if err != nil {
		return meta, err
	}
	meta.Decimals = decimals

	if supply, err := t.TotalSupply(ctx); err == nil {
		meta.TotalSupply = supply.String()
	} else {
		logger.Debug("totalSupply call failed", zap.String("token", t.Address.Hex()), zap.Error(err))
	}

	if symbol, err := t.text(ctx, "symbol"); err == nil {
		meta.Symbol = symbol
	} else {
		logger.Debug("symbol call failed", zap.String("token", t.Address.Hex()), zap.Error(err))
	}
	if name, err := t.text(ctx, "name"); err == nil {
		meta.Name = name
	} else {
		logger.Debug("name call failed", zap.String("token", t.Address.Hex()), zap.Error(err))
	}

	return meta, nil
}

func (t *ERC20) text(ctx context.Context, method string) (string, error) {
	if values, err := t.Call(ctx, method); err == nil {
		if v, err := single(values, method); err == nil {
			if s, ok := v.(string); ok {
				return s, nil
			}
		}
	}
	values, err := t.legacy.Call(ctx, method)
	if err != nil {
		return "", err
	}
	v, err := single(values, method)
	if err != nil {
		return "", err
	}
	s, ok := bytes32ToString(v)
	if !ok {
		return "", fmt.Errorf("%s: unsupported type %T", method, v)
	}
	return s, nil
}
