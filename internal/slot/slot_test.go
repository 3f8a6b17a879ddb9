package slot

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monadArcade/internal/contracts"
	"monadArcade/internal/revert"
)

var (
	machineAddr = common.HexToAddress("0x00000000000000000000000000000000000000d0")
	playerAddr  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
)

type fakeMachine struct {
	outcomes []*contracts.SpinEvent
	err      error
	bets     []*big.Int
}

func (f *fakeMachine) JackpotPool(context.Context) (*big.Int, error) { return big.NewInt(500), nil }
func (f *fakeMachine) OwnerPool(context.Context) (*big.Int, error) { return big.NewInt(20), nil }

func (f *fakeMachine) Spin(_ context.Context, _ *bind.TransactOpts, amount *big.Int) (*contracts.SpinEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bets = append(f.bets, amount)
	event := f.outcomes[0]
	f.outcomes = f.outcomes[1:]
	event.BetAmount = amount
	return event, nil
}

type fakeToken struct {
	calls int
}

func (f *fakeToken) EnsureAllowance(_ context.Context, _ *bind.TransactOpts, spender common.Address, _ *big.Int) (*types.Receipt, error) {
	if spender != machineAddr {
		return nil, errors.New("wrong spender")
	}
	f.calls++
	if f.calls == 1 {
		return &types.Receipt{}, nil
	}
	return nil, nil
}

type fakeSigner struct{}

func (fakeSigner) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: playerAddr, Context: ctx}, nil
}

func outcome(result [3]uint8, win int64) *contracts.SpinEvent {
	return &contracts.SpinEvent{Player: playerAddr, Result: result, WinAmount: big.NewInt(win)}
}

func TestSpinTracksStreak(t *testing.T) {
	machine := &fakeMachine{outcomes: []*contracts.SpinEvent{
		outcome([3]uint8{3, 3, 3}, 100),
		outcome([3]uint8{4, 4, 1}, 20),
		outcome([3]uint8{0, 1, 2}, 0),
	}}
	token := &fakeToken{}
	svc := NewService(machineAddr, machine, token, fakeSigner{}, nil)

	first, err := svc.Spin(context.Background(), big.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"SEVEN", "SEVEN", "SEVEN"}, first.Symbols)
	assert.True(t, first.Won)
	assert.Equal(t, 1, first.Streak)
	assert.Equal(t, 5, first.BonusPct)

	second, err := svc.Spin(context.Background(), big.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, 2, second.Streak)
	assert.Equal(t, 10, second.BonusPct)

	third, err := svc.Spin(context.Background(), big.NewInt(10))
	require.NoError(t, err)
	assert.False(t, third.Won)
	assert.Equal(t, []string{"MON", "GC3", "JACKPOT"}, third.Symbols)
	assert.Equal(t, 0, svc.Streak(playerAddr))
	assert.Equal(t, 3, token.calls)
}

func TestSpinRejectsNonPositiveBet(t *testing.T) {
	svc := NewService(machineAddr, &fakeMachine{}, nil, fakeSigner{}, nil)
	_, err := svc.Spin(context.Background(), big.NewInt(0))
	require.Error(t, err)
	assert.True(t, revert.Is(err, revert.CodeInvalidInput))
}

func TestSpinClassifiesFailure(t *testing.T) {
	machine := &fakeMachine{err: errors.New("execution reverted: Token transfer failed")}
	svc := NewService(machineAddr, machine, nil, fakeSigner{}, nil)
	_, err := svc.Spin(context.Background(), big.NewInt(1))
	require.Error(t, err)
	assert.True(t, revert.Is(err, revert.CodeTransferFailed))
}

func TestPools(t *testing.T) {
	svc := NewService(machineAddr, &fakeMachine{}, nil, nil, nil)
	pools, err := svc.Pools(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "500", pools.Jackpot)
	assert.Equal(t, "20", pools.Owner)
}
