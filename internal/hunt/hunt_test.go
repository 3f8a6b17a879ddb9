package hunt

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monadArcade/internal/contracts"
	"monadArcade/internal/model"
	"monadArcade/internal/revert"
)

// fixedRand always returns the same draw, clamped to n-1.
type fixedRand int

func (f fixedRand) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

type fakeGame struct {
	monsters  []contracts.HuntMonster
	started   []uint64
	completed [][3]string
	claimed   []uint64
	startErr  error
}

func (f *fakeGame) Character(context.Context, common.Address) (model.Character, error) {
	return model.Character{Level: "3", Exp: "10", Power: "7"}, nil
}

func (f *fakeGame) Monsters(context.Context) ([]contracts.HuntMonster, error) {
	return f.monsters, nil
}

func (f *fakeGame) CreateCharacter(context.Context, *bind.TransactOpts) (*types.Receipt, error) {
	return &types.Receipt{}, nil
}

func (f *fakeGame) StartHunting(_ context.Context, _ *bind.TransactOpts, id uint64) (*types.Receipt, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.started = append(f.started, id)
	return &types.Receipt{TxHash: common.HexToHash("0x01")}, nil
}

func (f *fakeGame) CompleteHunt(_ context.Context, _ *bind.TransactOpts, id uint64, exp, gc *big.Int) (*types.Receipt, error) {
	f.completed = append(f.completed, [3]string{big.NewInt(int64(id)).String(), exp.String(), gc.String()})
	return &types.Receipt{TxHash: common.HexToHash("0x02")}, nil
}

func (f *fakeGame) ClaimRewards(_ context.Context, _ *bind.TransactOpts, id uint64) (*types.Receipt, error) {
	f.claimed = append(f.claimed, id)
	return &types.Receipt{}, nil
}

type fakeSigner struct{}

func (fakeSigner) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{Context: ctx}, nil
}

func monster(hp int64) contracts.HuntMonster {
	return contracts.HuntMonster{Level: big.NewInt(1), Hp: big.NewInt(hp), Exp: big.NewInt(50), GcReward: big.NewInt(7)}
}

func TestBattleMaxRollsWin(t *testing.T) {
	// Max rolls: the player hits 14 and the monster hits 10.
	result, err := NewBattle(fixedRand(100), 0, nil).Run(context.Background(), 30)
	require.NoError(t, err)
	assert.True(t, result.Victory)
	require.Len(t, result.Rounds, 3)
	assert.Equal(t, uint64(42), result.DamageDealt)
	assert.Equal(t, uint64(20), result.DamageTaken)
	assert.Equal(t, uint64(0), result.Rounds[2].MonsterDamage)
	assert.Equal(t, uint64(80), result.Rounds[2].PlayerHP)
}

func TestBattleMinRollsLoseToToughMonster(t *testing.T) {
	// Min rolls: the player hits 5 and the monster hits 3, so the player lasts 34 rounds.
	var observed int
	result, err := NewBattle(fixedRand(0), 0, func(Round) { observed++ }).Run(context.Background(), 1000)
	require.NoError(t, err)
	assert.False(t, result.Victory)
	assert.Len(t, result.Rounds, 34)
	assert.Equal(t, 34, observed)
	assert.Equal(t, uint64(0), result.Rounds[33].PlayerHP)
}

func TestBattleSaturatedHP(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 200)
	result, err := NewBattle(fixedRand(0), 0, nil).Run(context.Background(), hpOf(huge))
	require.NoError(t, err)
	assert.False(t, result.Victory)
	assert.Equal(t, uint64(0), hpOf(big.NewInt(-1)))
}

func TestBattleHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBattle(fixedRand(0), time.Hour, nil).Run(ctx, 1000)
	require.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentFightsOverlap(t *testing.T) {
	var (
		mu       sync.Mutex
		arrived  int
		timedOut atomic.Bool
	)
	both := make(chan struct{})
	// The first round of each fight waits for the other fight to reach its first round.
	onRound := func(Round) {
		mu.Lock()
		arrived++
		if arrived == 2 {
			close(both)
		}
		mu.Unlock()
		select {
		case <-both:
		case <-time.After(2 * time.Second):
			timedOut.Store(true)
		}
	}
	svc := NewService(Config{Rand: fixedRand(100), Pace: time.Millisecond, OnRound: onRound}, &fakeGame{}, fakeSigner{}, nil)

	var wg sync.WaitGroup
	results := make([]BattleResult, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.fight(context.Background(), 30)
			assert.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	assert.False(t, timedOut.Load())
	for _, result := range results {
		assert.True(t, result.Victory)
	}
}

func TestHuntVictoryCompletes(t *testing.T) {
	game := &fakeGame{monsters: []contracts.HuntMonster{monster(1000), monster(20)}}
	svc := NewService(Config{Rand: fixedRand(100)}, game, fakeSigner{}, nil)

	result, err := svc.Hunt(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, result.Battle.Victory)
	assert.Equal(t, []uint64{1}, game.started)
	assert.Equal(t, [][3]string{{"1", "50", "7"}}, game.completed)
	assert.Equal(t, "50", result.ExpGained)
	assert.Equal(t, "7", result.GCGained)
	assert.Equal(t, uint64(1), result.Monster.ID)
}

func TestHuntDefeatSkipsComplete(t *testing.T) {
	game := &fakeGame{monsters: []contracts.HuntMonster{monster(1000)}}
	svc := NewService(Config{Rand: fixedRand(0)}, game, fakeSigner{}, nil)

	result, err := svc.Hunt(context.Background(), 0)
	require.NoError(t, err)
	assert.False(t, result.Battle.Victory)
	assert.Empty(t, game.completed)
	assert.Equal(t, "0", result.ExpGained)
	assert.Empty(t, result.CompleteTx)
}

func TestHuntUnknownMonster(t *testing.T) {
	game := &fakeGame{monsters: []contracts.HuntMonster{monster(10)}}
	svc := NewService(Config{Rand: fixedRand(0)}, game, fakeSigner{}, nil)

	_, err := svc.Hunt(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, revert.Is(err, revert.CodeInvalidInput))
	assert.Empty(t, game.started)
}

func TestHuntStartFailure(t *testing.T) {
	game := &fakeGame{monsters: []contracts.HuntMonster{monster(10)}, startErr: errors.New("execution reverted: Already hunting")}
	svc := NewService(Config{Rand: fixedRand(0)}, game, fakeSigner{}, nil)

	_, err := svc.Hunt(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, "failed to start hunting", err.Error())
}

func TestMonstersCarryIDs(t *testing.T) {
	game := &fakeGame{monsters: []contracts.HuntMonster{monster(10), monster(20)}}
	svc := NewService(Config{}, game, nil, nil)

	monsters, err := svc.Monsters(context.Background())
	require.NoError(t, err)
	require.Len(t, monsters, 2)
	assert.Equal(t, uint64(1), monsters[1].ID)
	assert.Equal(t, "20", monsters[1].HP)
}

func TestAreasFor(t *testing.T) {
	assert.Empty(t, AreasFor(0))
	assert.Len(t, AreasFor(1), 1)
	assert.Len(t, AreasFor(7), 2)
	assert.Equal(t, "고급자의 사막", AreasFor(10)[2].Name)
}
