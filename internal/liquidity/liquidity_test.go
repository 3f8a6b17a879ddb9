package liquidity

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monadArcade/internal/amm"
	"monadArcade/internal/contracts"
)

var (
	account  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	pairAddr = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

type journal struct {
	calls []string
	n     int64
}

func (j *journal) record(call string) (*types.Receipt, error) {
	j.calls = append(j.calls, call)
	j.n++
	return &types.Receipt{TxHash: common.BigToHash(big.NewInt(j.n)), Status: types.ReceiptStatusSuccessful}, nil
}

type fakeSigner struct{}

func (fakeSigner) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: account, Context: ctx}, nil
}

type fakeToken struct {
	name        string
	j           *journal
	transferErr error
}

func (t *fakeToken) BalanceOf(context.Context, common.Address) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (t *fakeToken) Approve(_ context.Context, _ *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Receipt, error) {
	return t.j.record(t.name + ".approve " + spender.Hex()[:6] + " " + amount.String())
}

func (t *fakeToken) Transfer(_ context.Context, _ *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Receipt, error) {
	if t.transferErr != nil {
		return nil, t.transferErr
	}
	return t.j.record(t.name + ".transfer " + amount.String())
}

type fakePair struct {
	j        *journal
	reserves amm.Reserves
	lp       *big.Int
}

func (p *fakePair) Reserves(context.Context) (amm.Reserves, error) { return p.reserves, nil }
func (p *fakePair) TotalSupply(context.Context) (*big.Int, error) { return big.NewInt(1000), nil }

func (p *fakePair) BalanceOf(context.Context, common.Address) (*big.Int, error) {
	return p.lp, nil
}

func (p *fakePair) Transfer(_ context.Context, _ *bind.TransactOpts, _ common.Address, amount *big.Int) (*types.Receipt, error) {
	return p.j.record("pair.transfer " + amount.String())
}

func (p *fakePair) Mint(context.Context, *bind.TransactOpts, common.Address) (*types.Receipt, error) {
	return p.j.record("pair.mint")
}

func (p *fakePair) Burn(context.Context, *bind.TransactOpts, common.Address) (*types.Receipt, error) {
	return p.j.record("pair.burn")
}

func (p *fakePair) Swap(_ context.Context, _ *bind.TransactOpts, amount0Out, amount1Out *big.Int, _ common.Address) (*types.Receipt, error) {
	return p.j.record("pair.swap " + amount0Out.String() + " " + amount1Out.String())
}

func TestAddLiquidityOrder(t *testing.T) {
	j := &journal{}
	pair := &fakePair{j: j, reserves: amm.Reserves{Reserve0: big.NewInt(10), Reserve1: big.NewInt(10)}, lp: big.NewInt(10)}
	flows := NewFlows(fakeSigner{}, nil)

	result, err := flows.AddLiquidity(context.Background(), pairAddr, pair,
		&fakeToken{name: "t0", j: j}, &fakeToken{name: "t1", j: j}, big.NewInt(10), big.NewInt(20))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"t0.approve 0x0000 10",
		"t1.approve 0x0000 20",
		"t0.transfer 10",
		"t1.transfer 20",
		"pair.mint",
	}, j.calls)
	assert.Len(t, result.Steps, 5)
	assert.Equal(t, "1000", result.TotalSupply)
}

func TestAddLiquidityStopsOnFailure(t *testing.T) {
	j := &journal{}
	pair := &fakePair{j: j}
	flows := NewFlows(fakeSigner{}, nil)

	result, err := flows.AddLiquidity(context.Background(), pairAddr, pair,
		&fakeToken{name: "t0", j: j}, &fakeToken{name: "t1", j: j, transferErr: errors.New("boom")}, big.NewInt(1), big.NewInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transfer token1")
	assert.Len(t, result.Steps, 3)
	assert.NotContains(t, j.calls, "pair.mint")
}

func TestSwapUsesConstantProductQuote(t *testing.T) {
	j := &journal{}
	pair := &fakePair{j: j, reserves: amm.Reserves{Reserve0: big.NewInt(1000), Reserve1: big.NewInt(1000)}}
	flows := NewFlows(fakeSigner{}, nil)

	result, err := flows.Swap(context.Background(), pairAddr, pair, &fakeToken{name: "t0", j: j}, big.NewInt(10), true, 0)
	require.NoError(t, err)
	assert.Equal(t, "9", result.AmountOut)
	assert.Equal(t, []string{"t0.transfer 10", "pair.swap 0 9"}, j.calls)

	j.calls = nil
	pair.reserves = amm.Reserves{Reserve0: big.NewInt(2000), Reserve1: big.NewInt(500)}
	result, err = flows.Swap(context.Background(), pairAddr, pair, &fakeToken{name: "t1", j: j}, big.NewInt(100), false, 0)
	require.NoError(t, err)
	assert.Equal(t, "332", result.AmountOut)
	assert.Equal(t, []string{"t1.transfer 100", "pair.swap 332 0"}, j.calls)
}

func TestRemoveLiquidityChecksBalance(t *testing.T) {
	j := &journal{}
	pair := &fakePair{j: j, reserves: amm.Reserves{Reserve0: big.NewInt(1), Reserve1: big.NewInt(1)}, lp: big.NewInt(5)}
	flows := NewFlows(fakeSigner{}, nil)

	_, err := flows.RemoveLiquidity(context.Background(), pairAddr, pair, big.NewInt(6))
	require.Error(t, err)
	assert.Empty(t, j.calls)

	_, err = flows.RemoveLiquidity(context.Background(), pairAddr, pair, big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, []string{"pair.transfer 5", "pair.burn"}, j.calls)
}

type fakeFactory struct {
	j        *journal
	spacings map[uint32]int32
	pool     common.Address
	created  bool
}

func (f *fakeFactory) GetPool(context.Context, common.Address, common.Address, uint32) (common.Address, error) {
	if f.created {
		return f.pool, nil
	}
	return common.Address{}, nil
}

func (f *fakeFactory) CreatePool(context.Context, *bind.TransactOpts, common.Address, common.Address, uint32) (*types.Receipt, error) {
	f.created = true
	return f.j.record("factory.createPool")
}

func (f *fakeFactory) EnableFeeAmount(_ context.Context, _ *bind.TransactOpts, fee uint32, spacing int32) (*types.Receipt, error) {
	f.spacings[fee] = spacing
	return f.j.record("factory.enableFeeAmount")
}

func (f *fakeFactory) FeeTickSpacing(_ context.Context, fee uint32) (int32, error) {
	return f.spacings[fee], nil
}

func TestEnableFeeTiersSkipsEnabled(t *testing.T) {
	j := &journal{}
	factory := &fakeFactory{j: j, spacings: map[uint32]int32{500: 10}}
	flows := NewFlows(fakeSigner{}, nil)

	steps, err := flows.EnableFeeTiers(context.Background(), factory, nil)
	require.NoError(t, err)
	assert.Len(t, steps, 2)
	assert.Equal(t, int32(60), factory.spacings[3000])
	assert.Equal(t, int32(200), factory.spacings[10000])
}

func TestCreatePoolReturnsAddress(t *testing.T) {
	j := &journal{}
	pool := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	factory := &fakeFactory{j: j, spacings: map[uint32]int32{}, pool: pool}
	flows := NewFlows(fakeSigner{}, nil)

	result, err := flows.CreatePool(context.Background(), factory,
		common.HexToAddress("0x01"), common.HexToAddress("0x02"), 3000)
	require.NoError(t, err)
	assert.Equal(t, pool, result.Pair)
	assert.False(t, result.Existed)

	again, err := flows.CreatePool(context.Background(), factory,
		common.HexToAddress("0x01"), common.HexToAddress("0x02"), 3000)
	require.NoError(t, err)
	assert.True(t, again.Existed)
	assert.Equal(t, []string{"factory.createPool"}, j.calls)
}

type fakePool struct {
	limit *big.Int
}

func (p *fakePool) Slot0(context.Context) (contracts.Slot0, error) {
	return contracts.Slot0{SqrtPriceX96: big.NewInt(1), Tick: 0}, nil
}

func (p *fakePool) Liquidity(context.Context) (*big.Int, error) { return big.NewInt(1), nil }

func (p *fakePool) Mint(context.Context, *bind.TransactOpts, common.Address, int32, int32, *big.Int) (*types.Receipt, error) {
	return &types.Receipt{}, nil
}

func (p *fakePool) Swap(_ context.Context, _ *bind.TransactOpts, _ common.Address, _ bool, _ *big.Int, limit *big.Int) (*types.Receipt, error) {
	p.limit = limit
	return &types.Receipt{}, nil
}

func TestSwapPoolDefaultsPriceLimit(t *testing.T) {
	pool := &fakePool{}
	flows := NewFlows(fakeSigner{}, nil)

	_, err := flows.SwapPool(context.Background(), pool, true, big.NewInt(100), nil)
	require.NoError(t, err)
	assert.Equal(t, contracts.SwapPriceLimit(true), pool.limit)

	_, err = flows.MintPosition(context.Background(), pool, 10, -10, big.NewInt(1))
	require.Error(t, err)
}

type fakeRouter struct {
	params contracts.ExactInputSingleParams
}

func (r *fakeRouter) ExactInputSingle(_ context.Context, _ *bind.TransactOpts, params contracts.ExactInputSingleParams) (*types.Receipt, error) {
	r.params = params
	return &types.Receipt{}, nil
}

func TestSwapRouterDeadline(t *testing.T) {
	j := &journal{}
	router := &fakeRouter{}
	now := time.Unix(1_700_000_000, 0)
	flows := NewFlows(fakeSigner{}, nil)

	steps, err := flows.SwapRouter(context.Background(), router, RouterSwap{
		Router:       common.HexToAddress("0x0e"),
		TokenIn:      &fakeToken{name: "mon", j: j},
		TokenInAddr:  common.HexToAddress("0x01"),
		TokenOutAddr: common.HexToAddress("0x02"),
		Fee:          3000,
		AmountIn:     big.NewInt(100),
		Now:          func() time.Time { return now },
	})
	require.NoError(t, err)
	assert.Len(t, steps, 2)
	assert.Equal(t, now.Add(20*time.Minute).Unix(), router.params.Deadline.Int64())
	assert.Equal(t, account, router.params.Recipient)
	assert.Equal(t, int64(3000), router.params.Fee.Int64())
}
