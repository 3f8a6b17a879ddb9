// Package voting implements poll listing, creation and MON-weighted voting.
package voting

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"monadArcade/internal/chain"
	"monadArcade/internal/model"
	"monadArcade/internal/retry"
	"monadArcade/internal/revert"
)

// MinOptions is the fewest options a poll may have.
const MinOptions = 2

// Contract is the subset of the Voting binding the service uses.
type Contract interface {
	PollCount(ctx context.Context) (uint64, error)
	MinVoteAmount(ctx context.Context) (*big.Int, error)
	PollResults(ctx context.Context, id uint64) (model.Poll, error)
	CreatePoll(ctx context.Context, opts *bind.TransactOpts, title, description string, options []string, duration *big.Int) (*types.Receipt, error)
	Vote(ctx context.Context, opts *bind.TransactOpts, pollID, optionIndex uint64, amount *big.Int) (*types.Receipt, error)
	EndPoll(ctx context.Context, opts *bind.TransactOpts, pollID uint64) (*types.Receipt, error)
}

// Token is the MON token as the voting flow needs it.
type Token interface {
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	EnsureAllowance(ctx context.Context, opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Receipt, error)
}

// Signer produces transaction options for the acting account.
type Signer interface {
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
}

// Config controls pacing and retries.
type Config struct {
	ReadDelay time.Duration
	Retry     retry.Policy
	Now       func() time.Time
}

// DefaultConfig waits 100ms between poll reads and retries rate limits.
func DefaultConfig() Config {
	return Config{
		ReadDelay: 100 * time.Millisecond,
		Retry:     retry.RateLimited(),
		Now:       time.Now,
	}
}

// Service drives the Voting contract.
type Service struct {
	cfg      Config
	address  common.Address
	contract Contract
	token    Token
	signer   Signer
	logger   *zap.Logger
}

// NewService builds a Service. address is the Voting contract, the spender for MON approvals.
func NewService(cfg Config, address common.Address, contract Contract, token Token, signer Signer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{cfg: cfg, address: address, contract: contract, token: token, signer: signer, logger: logger}
}

// MinVoteAmount is the MON amount every vote carries.
func (s *Service) MinVoteAmount(ctx context.Context) (*big.Int, error) {
	return s.contract.MinVoteAmount(ctx)
}

// Polls reads every poll in id order. A rate limit restarts the whole read.
func (s *Service) Polls(ctx context.Context) ([]model.Poll, error) {
	policy := s.cfg.Retry
	policy.OnRetry = func(attempt int, err error) {
		s.logger.Warn("retrying poll list", zap.Int("attempt", attempt), zap.Error(err))
	}
	return retry.Value(ctx, policy, s.readPolls)
}

func (s *Service) readPolls(ctx context.Context) ([]model.Poll, error) {
	count, err := s.contract.PollCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("poll count: %w", err)
	}

	polls := make([]model.Poll, 0, count)
	for id := uint64(0); id < count; id++ {
		if s.cfg.ReadDelay > 0 {
			timer := time.NewTimer(s.cfg.ReadDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
		poll, err := s.contract.PollResults(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("poll %d: %w", id, err)
		}
		polls = append(polls, poll)
	}
	return polls, nil
}

// Poll reads a single poll.
func (s *Service) Poll(ctx context.Context, id uint64) (model.Poll, error) {
	return s.contract.PollResults(ctx, id)
}

// Create opens a poll that runs for duration, truncated to whole seconds.
func (s *Service) Create(ctx context.Context, title, description string, options []string, duration time.Duration) (*types.Receipt, error) {
	if strings.TrimSpace(title) == "" {
		return nil, revert.New(revert.CodeInvalidInput, "poll title cannot be empty")
	}
	cleaned := make([]string, 0, len(options))
	for _, option := range options {
		if option = strings.TrimSpace(option); option != "" {
			cleaned = append(cleaned, option)
		}
	}
	if len(cleaned) < MinOptions {
		return nil, revert.New(revert.CodeInvalidInput, fmt.Sprintf("a poll needs at least %d options", MinOptions))
	}
	seconds := int64(duration / time.Second)
	if seconds <= 0 {
		return nil, revert.New(revert.CodeInvalidInput, "poll duration must be positive")
	}

	opts, err := s.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	receipt, err := s.contract.CreatePoll(ctx, opts, title, description, cleaned, big.NewInt(seconds))
	if err != nil {
		return nil, revert.Classify(err, "failed to create poll")
	}
	s.logger.Info("poll created", zap.String("title", title), zap.Int("options", len(cleaned)), zap.String("tx", receipt.TxHash.Hex()))
	return receipt, nil
}

// Vote casts the minimum vote amount on option of poll id, approving MON first if needed.
// A failed vote after a successful approval leaves the approval in place.
func (s *Service) Vote(ctx context.Context, pollID, option uint64) (*types.Receipt, error) {
	poll, err := s.contract.PollResults(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("read poll %d: %w", pollID, err)
	}
	if !poll.IsActive {
		return nil, revert.New(revert.CodePollNotActive, "poll has already ended")
	}
	if uint64(s.cfg.Now().Unix()) > poll.EndTime {
		return nil, revert.New(revert.CodePollNotActive, "voting period is over")
	}
	if option >= uint64(len(poll.Options)) {
		return nil, revert.New(revert.CodeInvalidInput, fmt.Sprintf("option %d does not exist (poll has %d)", option, len(poll.Options)))
	}

	minAmount, err := s.contract.MinVoteAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("min vote amount: %w", err)
	}

	opts, err := s.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	balance, err := s.token.BalanceOf(ctx, opts.From)
	if err != nil {
		return nil, fmt.Errorf("mon balance: %w", err)
	}
	if balance.Cmp(minAmount) < 0 {
		return nil, revert.New(revert.CodeLowBalance, fmt.Sprintf("not enough MON: at least %s MON is required", chain.FormatEther(minAmount)))
	}

	approval, err := s.token.EnsureAllowance(ctx, opts, s.address, minAmount)
	if err != nil {
		return nil, revert.Classify(err, "failed to approve MON")
	}
	if approval != nil {
		s.logger.Info("mon approved", zap.String("spender", s.address.Hex()), zap.String("tx", approval.TxHash.Hex()))
	}

	policy := s.cfg.Retry
	policy.OnRetry = func(attempt int, err error) {
		s.logger.Warn("retrying vote", zap.Int("attempt", attempt), zap.Error(err))
	}
	receipt, err := retry.Value(ctx, policy, func(ctx context.Context) (*types.Receipt, error) {
		opts, err := s.transactOpts(ctx)
		if err != nil {
			return nil, err
		}
		return s.contract.Vote(ctx, opts, pollID, option, minAmount)
	})
	if err != nil {
		return nil, revert.Classify(err, "failed to vote")
	}
	s.logger.Info("voted",
		zap.Uint64("poll_id", pollID),
		zap.Uint64("option", option),
		zap.String("amount", chain.FormatEther(minAmount)),
		zap.String("tx", receipt.TxHash.Hex()),
	)
	return receipt, nil
}

// End closes poll id.
func (s *Service) End(ctx context.Context, pollID uint64) (*types.Receipt, error) {
	opts, err := s.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	receipt, err := s.contract.EndPoll(ctx, opts, pollID)
	if err != nil {
		return nil, revert.Classify(err, "failed to end poll")
	}
	return receipt, nil
}

func (s *Service) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if s.signer == nil {
		return nil, fmt.Errorf("no signer configured")
	}
	return s.signer.TransactOpts(ctx)
}
