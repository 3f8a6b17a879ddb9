// Package slot runs SlotMachine spins and tracks per-player win streaks.
package slot

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"monadArcade/internal/chain"
	"monadArcade/internal/contracts"
	"monadArcade/internal/model"
	"monadArcade/internal/revert"
)

// StreakBonusPct is the displayed bonus per consecutive win.
const StreakBonusPct = 5

// Machine is the subset of the SlotMachine binding the service uses.
type Machine interface {
	JackpotPool(ctx context.Context) (*big.Int, error)
	OwnerPool(ctx context.Context) (*big.Int, error)
	Spin(ctx context.Context, opts *bind.TransactOpts, amount *big.Int) (*contracts.SpinEvent, error)
}

// Token is the bet token.
type Token interface {
	EnsureAllowance(ctx context.Context, opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Receipt, error)
}

// Signer produces transaction options for the acting account.
type Signer interface {
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
}

// Service drives the SlotMachine contract.
type Service struct {
	address common.Address
	machine Machine
	token   Token
	signer  Signer
	logger  *zap.Logger

	mu      sync.Mutex
	streaks map[common.Address]int
}

// NewService builds a Service. address is the SlotMachine, the spender for bet approvals.
// token may be nil when the machine already holds an allowance.
func NewService(address common.Address, machine Machine, token Token, signer Signer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		address: address,
		machine: machine,
		token:   token,
		signer:  signer,
		logger:  logger,
		streaks: make(map[common.Address]int),
	}
}

// Pools reads the jackpot and owner pool balances.
func (s *Service) Pools(ctx context.Context) (model.SlotPools, error) {
	jackpot, err := s.machine.JackpotPool(ctx)
	if err != nil {
		return model.SlotPools{}, fmt.Errorf("jackpot pool: %w", err)
	}
	owner, err := s.machine.OwnerPool(ctx)
	if err != nil {
		return model.SlotPools{}, fmt.Errorf("owner pool: %w", err)
	}
	return model.SlotPools{Jackpot: jackpot.String(), Owner: owner.String()}, nil
}

// Spin bets amount and reports the reels and winnings from the Spin event.
func (s *Service) Spin(ctx context.Context, bet *big.Int) (model.SpinResult, error) {
	if bet == nil || bet.Sign() <= 0 {
		return model.SpinResult{}, revert.New(revert.CodeInvalidInput, "bet amount must be positive")
	}
	if s.signer == nil {
		return model.SpinResult{}, fmt.Errorf("no signer configured")
	}
	opts, err := s.signer.TransactOpts(ctx)
	if err != nil {
		return model.SpinResult{}, err
	}

	if s.token != nil {
		approval, err := s.token.EnsureAllowance(ctx, opts, s.address, bet)
		if err != nil {
			return model.SpinResult{}, revert.Classify(err, "failed to approve bet")
		}
		if approval != nil {
			s.logger.Info("bet approved", zap.String("tx", approval.TxHash.Hex()))
			if opts, err = s.signer.TransactOpts(ctx); err != nil {
				return model.SpinResult{}, err
			}
		}
	}

	event, err := s.machine.Spin(ctx, opts, bet)
	if err != nil {
		return model.SpinResult{}, revert.Classify(err, "spin failed")
	}

	symbols := make([]string, len(event.Result))
	for i, idx := range event.Result {
		symbols[i] = contracts.SymbolName(idx)
	}
	won := event.WinAmount != nil && event.WinAmount.Sign() > 0
	streak := s.record(event.Player, won)

	result := model.SpinResult{
		TxHash:    event.Raw.TxHash.Hex(),
		Player:    event.Player.Hex(),
		BetAmount: event.BetAmount.String(),
		Result:    event.Result,
		Symbols:   symbols,
		WinAmount: event.WinAmount.String(),
		Won:       won,
		Streak:    streak,
		BonusPct:  streak * StreakBonusPct,
	}
	s.logger.Info("spin",
		zap.String("player", result.Player),
		zap.Strings("symbols", symbols),
		zap.String("bet", chain.FormatEther(event.BetAmount)),
		zap.String("won", chain.FormatEther(event.WinAmount)),
		zap.Int("streak", streak),
	)
	return result, nil
}

// Streak returns the current consecutive wins of player.
func (s *Service) Streak(player common.Address) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streaks[player]
}

func (s *Service) record(player common.Address, won bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !won {
		delete(s.streaks, player)
		return 0
	}
	s.streaks[player]++
	return s.streaks[player]
}
