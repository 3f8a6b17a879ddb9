// Package contracts holds typed bindings for the arcade's on-chain contracts.
package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrReverted is returned when a mined transaction has a failed status.
var ErrReverted = errors.New("transaction reverted")

// Backend is the node access bindings need: calls, transactions and receipts.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Contract is an ABI bound to an address.
type Contract struct {
	Address common.Address
	ABI     abi.ABI
	bound   *bind.BoundContract
	backend Backend
}

// NewContract binds parsed to address on backend.
func NewContract(address common.Address, parsed abi.ABI, backend Backend) *Contract {
	return &Contract{
		Address: address,
		ABI:     parsed,
		bound:   bind.NewBoundContract(address, parsed, backend, backend, backend),
		backend: backend,
	}
}

func bindABI(address common.Address, loader *lazyABI, backend Backend) (*Contract, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is nil")
	}
	parsed, err := loader.get()
	if err != nil {
		return nil, fmt.Errorf("parse abi: %w", err)
	}
	return NewContract(address, parsed, backend), nil
}

// Call runs a read-only method at the latest block.
func (c *Contract) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	return out, nil
}

// Transact sends a method call and waits for a successful receipt.
func (c *Contract) Transact(ctx context.Context, opts *bind.TransactOpts, method string, args ...interface{}) (*types.Receipt, error) {
	if opts == nil {
		return nil, fmt.Errorf("%s: transact opts are nil", method)
	}
	tx, err := c.bound.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", method, err)
	}
	return WaitMined(ctx, c.backend, tx, method)
}

// WaitMined blocks until tx is mined and fails on a reverted status.
func WaitMined(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction, label string) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("wait %s %s: %w", label, tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%s %s: %w", label, tx.Hash().Hex(), ErrReverted)
	}
	return receipt, nil
}

// FindEvent returns the first log in receipt emitted by c for the named event.
func (c *Contract) FindEvent(receipt *types.Receipt, name string) (*types.Log, error) {
	event, ok := c.ABI.Events[name]
	if !ok {
		return nil, fmt.Errorf("unknown event %s", name)
	}
	if receipt == nil {
		return nil, fmt.Errorf("receipt is nil")
	}
	for _, log := range receipt.Logs {
		if log == nil || len(log.Topics) == 0 {
			continue
		}
		if log.Address == c.Address && log.Topics[0] == event.ID {
			return log, nil
		}
	}
	return nil, fmt.Errorf("%s event not found in %s", name, receipt.TxHash.Hex())
}

// UnpackLog decodes a log into out, covering indexed and non-indexed fields.
func (c *Contract) UnpackLog(out interface{}, name string, log types.Log) error {
	return c.bound.UnpackLog(out, name, log)
}
