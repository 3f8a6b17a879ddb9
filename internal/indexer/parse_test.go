package indexer

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddresses(t *testing.T) {
	got, err := ParseAddresses([]string{
		" 0x4A56810A41Db3df40A75Cb08F7E19dC0FcA5e666 ",
		"",
		"0x4a56810a41db3df40a75cb08f7e19dc0fca5e666",
		"0x66F2E56fF2FB12D34905dEbdeDAd29FA34DD8642",
	})
	require.NoError(t, err)
	assert.Equal(t, []common.Address{
		common.HexToAddress("0x4A56810A41Db3df40A75Cb08F7E19dC0FcA5e666"),
		common.HexToAddress("0x66F2E56fF2FB12D34905dEbdeDAd29FA34DD8642"),
	}, got)

	_, err = ParseAddresses([]string{"0x123"})
	require.Error(t, err)
}

func TestParseTopic0(t *testing.T) {
	sig := "Transfer(address,address,uint256)"
	hash := crypto.Keccak256Hash([]byte(sig))

	got, err := ParseTopic0([]string{sig, hash.Hex(), ""})
	require.NoError(t, err)
	assert.Equal(t, []common.Hash{hash}, got)
	assert.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", got[0].Hex())

	for _, bad := range []string{"0x1234", "nothex", "Transfer(address", "Transfer(address, uint256)"} {
		_, err := ParseTopic0([]string{bad})
		assert.Error(t, err, bad)
	}
}
