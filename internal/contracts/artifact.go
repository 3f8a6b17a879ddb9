package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"reflect"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Artifact is a compiled contract as written by Hardhat.
type Artifact struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	RawABI       json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`

	ABI  abi.ABI `json:"-"`
	code []byte
}

// LoadArtifact reads a Hardhat artifact JSON file.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return ParseArtifact(data)
}

// ParseArtifact decodes artifact JSON and validates its ABI and bytecode.
func ParseArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	if len(a.RawABI) == 0 {
		return nil, fmt.Errorf("artifact %q has no abi", a.ContractName)
	}
	parsed, err := abi.JSON(bytes.NewReader(a.RawABI))
	if err != nil {
		return nil, fmt.Errorf("parse artifact abi: %w", err)
	}
	a.ABI = parsed

	code, err := hexutil.Decode(a.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("decode bytecode: %w", err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("artifact %q has empty bytecode", a.ContractName)
	}
	a.code = code
	return &a, nil
}

// Deploy sends the creation transaction with constructor args and waits for it.
func (a *Artifact) Deploy(ctx context.Context, opts *bind.TransactOpts, backend Backend, args ...interface{}) (common.Address, *types.Receipt, error) {
	if opts == nil {
		return common.Address{}, nil, fmt.Errorf("transact opts are nil")
	}
	address, tx, _, err := bind.DeployContract(opts, a.ABI, a.code, backend, args...)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("deploy %s: %w", a.ContractName, err)
	}
	receipt, err := WaitMined(ctx, backend, tx, "deploy "+a.ContractName)
	if err != nil {
		return common.Address{}, receipt, err
	}
	return address, receipt, nil
}

// ConstructorArgs converts command-line strings into the Go values the
// constructor inputs expect.
func (a *Artifact) ConstructorArgs(raw []string) ([]interface{}, error) {
	inputs := a.ABI.Constructor.Inputs
	if len(raw) != len(inputs) {
		return nil, fmt.Errorf("%s constructor takes %d args, got %d", a.ContractName, len(inputs), len(raw))
	}
	args := make([]interface{}, 0, len(raw))
	for i, input := range inputs {
		v, err := parseArg(input.Type, raw[i])
		if err != nil {
			return nil, fmt.Errorf("arg %s: %w", input.Name, err)
		}
		args = append(args, v)
	}
	return args, nil
}

func parseArg(t abi.Type, raw string) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil
	case abi.StringTy:
		return raw, nil
	case abi.BoolTy:
		return strconv.ParseBool(raw)
	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(raw, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		if t.T == abi.UintTy && n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %q for %s", raw, t.String())
		}
		if t.Size > 64 {
			return n, nil
		}
		v := reflect.New(t.GetType()).Elem()
		if t.T == abi.UintTy {
			if n.BitLen() > t.Size {
				return nil, fmt.Errorf("%q overflows %s", raw, t.String())
			}
			v.SetUint(n.Uint64())
		} else {
			if !n.IsInt64() || v.OverflowInt(n.Int64()) {
				return nil, fmt.Errorf("%q overflows %s", raw, t.String())
			}
			v.SetInt(n.Int64())
		}
		return v.Interface(), nil
	default:
		return nil, fmt.Errorf("unsupported constructor type %s", t.String())
	}
}
