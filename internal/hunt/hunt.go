// Package hunt drives the AutoHunt game: characters, monsters, battles and rewards.
package hunt

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"monadArcade/internal/contracts"
	"monadArcade/internal/model"
	"monadArcade/internal/revert"
)

// Area is a hunting ground gated by character level.
type Area struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	MinLevel uint64 `json:"min_level"`
}

// Areas are the hunting grounds in ascending level order.
var Areas = []Area{
	{ID: 1, Name: "초보자의 숲", MinLevel: 1},
	{ID: 2, Name: "중급자의 동굴", MinLevel: 5},
	{ID: 3, Name: "고급자의 사막", MinLevel: 10},
}

// AreasFor returns the areas a character of level may enter.
func AreasFor(level uint64) []Area {
	out := make([]Area, 0, len(Areas))
	for _, a := range Areas {
		if level >= a.MinLevel {
			out = append(out, a)
		}
	}
	return out
}

// Game is the subset of the AutoHunt binding the service uses.
type Game interface {
	Character(ctx context.Context, player common.Address) (model.Character, error)
	Monsters(ctx context.Context) ([]contracts.HuntMonster, error)
	CreateCharacter(ctx context.Context, opts *bind.TransactOpts) (*types.Receipt, error)
	StartHunting(ctx context.Context, opts *bind.TransactOpts, monsterID uint64) (*types.Receipt, error)
	CompleteHunt(ctx context.Context, opts *bind.TransactOpts, monsterID uint64, exp, gc *big.Int) (*types.Receipt, error)
	ClaimRewards(ctx context.Context, opts *bind.TransactOpts, monsterID uint64) (*types.Receipt, error)
}

// Signer produces transaction options for the acting account.
type Signer interface {
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
}

// Config controls battle randomness and pacing.
type Config struct {
	Rand Rand
	// Pace is the pause after each battle round.
	Pace    time.Duration
	OnRound func(Round)
}

// HuntResult is the outcome of a full hunt.
type HuntResult struct {
	Monster    model.Monster `json:"monster"`
	Battle     BattleResult  `json:"battle"`
	ExpGained  string        `json:"exp_gained"`
	GCGained   string        `json:"gc_gained"`
	StartTx    string        `json:"start_tx"`
	CompleteTx string        `json:"complete_tx,omitempty"`
}

// Service drives the AutoHunt contract.
type Service struct {
	cfg    Config
	game   Game
	signer Signer
	logger *zap.Logger
}

func NewService(cfg Config, game Game, signer Signer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cfg.Rand = &lockedRand{rng: cfg.Rand}
	return &Service{cfg: cfg, game: game, signer: signer, logger: logger}
}

func (s *Service) Character(ctx context.Context, player common.Address) (model.Character, error) {
	return s.game.Character(ctx, player)
}

// Monsters lists the contract's monsters with their ids.
func (s *Service) Monsters(ctx context.Context) ([]model.Monster, error) {
	raw, err := s.game.Monsters(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Monster, 0, len(raw))
	for i, m := range raw {
		out = append(out, m.ToModel(uint64(i)))
	}
	return out, nil
}

func (s *Service) CreateCharacter(ctx context.Context) (*types.Receipt, error) {
	opts, err := s.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	receipt, err := s.game.CreateCharacter(ctx, opts)
	if err != nil {
		return nil, revert.Classify(err, "failed to create character")
	}
	s.logger.Info("character created", zap.String("player", opts.From.Hex()), zap.String("tx", receipt.TxHash.Hex()))
	return receipt, nil
}

func (s *Service) Claim(ctx context.Context, monsterID uint64) (*types.Receipt, error) {
	opts, err := s.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	receipt, err := s.game.ClaimRewards(ctx, opts, monsterID)
	if err != nil {
		return nil, revert.Classify(err, "failed to claim rewards")
	}
	s.logger.Info("rewards claimed", zap.Uint64("monster_id", monsterID), zap.String("tx", receipt.TxHash.Hex()))
	return receipt, nil
}

// Hunt starts hunting monsterID, fights the battle locally and records a victory on chain.
// A lost battle sends nothing after startHunting.
func (s *Service) Hunt(ctx context.Context, monsterID uint64) (HuntResult, error) {
	monsters, err := s.game.Monsters(ctx)
	if err != nil {
		return HuntResult{}, fmt.Errorf("load monsters: %w", err)
	}
	if monsterID >= uint64(len(monsters)) {
		return HuntResult{}, revert.New(revert.CodeInvalidInput, fmt.Sprintf("monster %d does not exist", monsterID))
	}
	monster := monsters[monsterID]

	opts, err := s.transactOpts(ctx)
	if err != nil {
		return HuntResult{}, err
	}
	start, err := s.game.StartHunting(ctx, opts, monsterID)
	if err != nil {
		return HuntResult{}, revert.Classify(err, "failed to start hunting")
	}
	s.logger.Info("hunt started", zap.Uint64("monster_id", monsterID), zap.String("tx", start.TxHash.Hex()))

	battle, err := s.fight(ctx, hpOf(monster.Hp))
	if err != nil {
		return HuntResult{}, err
	}

	result := HuntResult{
		Monster:   monster.ToModel(monsterID),
		Battle:    battle,
		ExpGained: "0",
		GCGained:  "0",
		StartTx:   start.TxHash.Hex(),
	}
	if !battle.Victory {
		s.logger.Info("battle lost", zap.Uint64("monster_id", monsterID), zap.Int("rounds", len(battle.Rounds)))
		return result, nil
	}

	exp := nonNil(monster.Exp)
	gc := nonNil(monster.GcReward)
	if opts, err = s.transactOpts(ctx); err != nil {
		return HuntResult{}, err
	}
	complete, err := s.game.CompleteHunt(ctx, opts, monsterID, exp, gc)
	if err != nil {
		return HuntResult{}, revert.Classify(err, "failed to record hunt")
	}
	result.ExpGained = exp.String()
	result.GCGained = gc.String()
	result.CompleteTx = complete.TxHash.Hex()
	s.logger.Info("battle won",
		zap.Uint64("monster_id", monsterID),
		zap.Int("rounds", len(battle.Rounds)),
		zap.String("exp", result.ExpGained),
		zap.String("gc", result.GCGained),
		zap.String("tx", result.CompleteTx),
	)
	return result, nil
}

func (s *Service) fight(ctx context.Context, monsterHP uint64) (BattleResult, error) {
	return NewBattle(s.cfg.Rand, s.cfg.Pace, s.cfg.OnRound).Run(ctx, monsterHP)
}

func (s *Service) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if s.signer == nil {
		return nil, fmt.Errorf("no signer configured")
	}
	return s.signer.TransactOpts(ctx)
}

func nonNil(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
