package contracts

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArtifact = `{
  "contractName": "Board",
  "sourceName": "contracts/Board.sol",
  "abi": [
    {"inputs": [{"internalType": "address", "name": "initialOwner", "type": "address"}, {"internalType": "address", "name": "_monToken", "type": "address"}], "stateMutability": "nonpayable", "type": "constructor"}
  ],
  "bytecode": "0x6080604052348015600f57600080fd5b50603f80601d6000396000f3fe"
}`

func TestParseArtifact(t *testing.T) {
	a, err := ParseArtifact([]byte(sampleArtifact))
	require.NoError(t, err)
	assert.Equal(t, "Board", a.ContractName)
	assert.Len(t, a.ABI.Constructor.Inputs, 2)
	assert.NotEmpty(t, a.code)
}

func TestParseArtifactRejectsEmptyBytecode(t *testing.T) {
	_, err := ParseArtifact([]byte(`{"contractName": "I", "abi": [], "bytecode": "0x"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty bytecode")

	_, err = ParseArtifact([]byte(`{"contractName": "I", "bytecode": "0x60"}`))
	require.Error(t, err)
}

func TestLoadArtifactAndDeploy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Board.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleArtifact), 0o644))

	a, err := LoadArtifact(path)
	require.NoError(t, err)

	backend := newFakeBackend(t, a.ABI)
	opts := testOpts(t)
	address, receipt, err := a.Deploy(context.Background(), opts, backend, playerAddr, boardAddr)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, crypto.CreateAddress(opts.From, 0), address)
	require.Len(t, backend.sent, 1)
	assert.Nil(t, backend.sent[0].To())
}

func TestConstructorArgs(t *testing.T) {
	a, err := ParseArtifact([]byte(`{
  "contractName": "Token",
  "abi": [
    {"inputs": [
      {"name": "owner", "type": "address"},
      {"name": "supply", "type": "uint256"},
      {"name": "decimals", "type": "uint8"},
      {"name": "name", "type": "string"},
      {"name": "paused", "type": "bool"}
    ], "stateMutability": "nonpayable", "type": "constructor"}
  ],
  "bytecode": "0x60"
}`))
	require.NoError(t, err)

	args, err := a.ConstructorArgs([]string{playerAddr.Hex(), "1000000", "18", "Arcade", "false"})
	require.NoError(t, err)
	require.Len(t, args, 5)
	assert.Equal(t, playerAddr, args[0])
	assert.Equal(t, "1000000", args[1].(*big.Int).String())
	assert.Equal(t, uint8(18), args[2])
	assert.Equal(t, "Arcade", args[3])
	assert.Equal(t, false, args[4])

	_, err = a.ConstructorArgs([]string{playerAddr.Hex()})
	require.Error(t, err)

	_, err = a.ConstructorArgs([]string{"nope", "1", "18", "x", "true"})
	require.Error(t, err)

	_, err = a.ConstructorArgs([]string{playerAddr.Hex(), "1", "300", "x", "true"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overflows")
}
