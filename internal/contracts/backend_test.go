package contracts

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// fakeBackend answers calls by packing canned outputs and mines every
// transaction instantly with a configurable status and logs.
type fakeBackend struct {
	mu      sync.Mutex
	parsed  abi.ABI
	outputs map[string][]interface{}
	status  uint64
	logs    []*types.Log
	sent    []*types.Transaction
	calls   []string
}

func newFakeBackend(t *testing.T, parsed abi.ABI) *fakeBackend {
	t.Helper()
	return &fakeBackend{
		parsed:  parsed,
		outputs: make(map[string][]interface{}),
		status:  types.ReceiptStatusSuccessful,
	}
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (f *fakeBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if len(call.Data) < 4 {
		return nil, errors.New("short call data")
	}
	method, err := f.parsed.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.calls = append(f.calls, method.Name)
	values, ok := f.outputs[method.Name]
	f.mu.Unlock()
	if !ok {
		return nil, errors.New("execution reverted: no output for " + method.Name)
	}
	return method.Outputs.Pack(values...)
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1), BaseFee: big.NewInt(1)}, nil
}

func (f *fakeBackend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.sent)), nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 100000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) FilterLogs(context.Context, ethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

func (f *fakeBackend) SubscribeFilterLogs(context.Context, ethereum.FilterQuery, chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("subscriptions not supported")
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &types.Receipt{Status: f.status, TxHash: hash, Logs: f.logs}, nil
}

func (f *fakeBackend) lastSent(t *testing.T) (*abi.Method, []interface{}) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatalf("no transaction sent")
	}
	data := f.sent[len(f.sent)-1].Data()
	method, err := f.parsed.MethodById(data[:4])
	if err != nil {
		t.Fatalf("method by id: %v", err)
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		t.Fatalf("unpack args: %v", err)
	}
	return method, args
}

func testOpts(t *testing.T) *bind.TransactOpts {
	t.Helper()
	key, err := crypto.HexToECDSA(testKey)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(10143))
	if err != nil {
		t.Fatalf("transactor: %v", err)
	}
	return opts
}

func mustABI(t *testing.T, loader func() (abi.ABI, error)) abi.ABI {
	t.Helper()
	parsed, err := loader()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	return parsed
}
