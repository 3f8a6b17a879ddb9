package main

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monadArcade/internal/config"
)

func TestFeedAddressesSkipsUnset(t *testing.T) {
	addrs := config.Addresses{
		Board:       common.HexToAddress("0x01"),
		SlotMachine: common.HexToAddress("0x03"),
	}
	got := feedAddresses(addrs)
	assert.Equal(t, []common.Address{addrs.Board, addrs.SlotMachine}, got)
	assert.Empty(t, feedAddresses(config.Addresses{}))
}

func TestSessionTransactorIsUntypedNil(t *testing.T) {
	s := &session{}
	assert.True(t, s.transactor() == nil)
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "", redactDSN(""))
	assert.Equal(t, "***", redactDSN("postgres://u:p@host/db"))
}

func TestParseAddress(t *testing.T) {
	addr, err := parseAddress("token", "0x760AfE86e5de5fa0Ee542fc7B7B713e1c5425701")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x760AfE86e5de5fa0Ee542fc7B7B713e1c5425701"), addr)

	_, err = parseAddress("token", "nope")
	require.Error(t, err)
}

func TestPrintReceiptRequiresReceipt(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, printReceipt(&buf, nil))
}
