package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SlotSymbols are the reel symbols in contract index order.
var SlotSymbols = []string{"MON", "GC3", "JACKPOT", "SEVEN", "CHERRY", "BAR"}

// SymbolName maps a reel index onto its symbol.
func SymbolName(index uint8) string {
	if int(index) < len(SlotSymbols) {
		return SlotSymbols[index]
	}
	return fmt.Sprintf("UNKNOWN(%d)", index)
}

// SpinEvent is the SlotMachine Spin log.
type SpinEvent struct {
	Player    common.Address
	BetAmount *big.Int
	Result    [3]uint8
	WinAmount *big.Int
	Raw       types.Log
}

// SlotMachine binds the slot machine contract.
type SlotMachine struct {
	*Contract
}

func NewSlotMachine(address common.Address, backend Backend) (*SlotMachine, error) {
	c, err := bindABI(address, slotMachineABI, backend)
	if err != nil {
		return nil, err
	}
	return &SlotMachine{Contract: c}, nil
}

func (s *SlotMachine) JackpotPool(ctx context.Context) (*big.Int, error) {
	values, err := s.Call(ctx, "getJackpotPool")
	if err != nil {
		return nil, err
	}
	return singleBig(values, "getJackpotPool")
}

func (s *SlotMachine) OwnerPool(ctx context.Context) (*big.Int, error) {
	values, err := s.Call(ctx, "getOwnerPool")
	if err != nil {
		return nil, err
	}
	return singleBig(values, "getOwnerPool")
}

// Spin bets amount and returns the decoded Spin event from the receipt.
func (s *SlotMachine) Spin(ctx context.Context, opts *bind.TransactOpts, amount *big.Int) (*SpinEvent, error) {
	receipt, err := s.Transact(ctx, opts, "spin", amount)
	if err != nil {
		return nil, err
	}
	return s.ParseSpin(receipt)
}

// ParseSpin finds and decodes the Spin log in receipt.
func (s *SlotMachine) ParseSpin(receipt *types.Receipt) (*SpinEvent, error) {
	log, err := s.FindEvent(receipt, "Spin")
	if err != nil {
		return nil, err
	}
	event := new(SpinEvent)
	if err := s.UnpackLog(event, "Spin", *log); err != nil {
		return nil, fmt.Errorf("unpack spin: %w", err)
	}
	event.Raw = *log
	return event, nil
}
