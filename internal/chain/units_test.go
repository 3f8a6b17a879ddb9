package chain

import (
	"math/big"
	"testing"
)

func TestParseEther(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1", "1000000000000000000"},
		{"0.1", "100000000000000000"},
		{"1000", "1000000000000000000000"},
		{".5", "500000000000000000"},
		{"1.", "1000000000000000000"},
		{"-2", "-2000000000000000000"},
		{"0.000000000000000001", "1"},
	}
	for _, tc := range cases {
		in, want := tc.in, tc.want
		got, err := ParseEther(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got.String() != want {
			t.Fatalf("parse %q = %s, want %s", in, got, want)
		}
	}
}

func TestParseEtherInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "0.0000000000000000001", "1e18", "-", ".", "-.", " . "} {
		if _, err := ParseEther(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestFormatEther(t *testing.T) {
	v, _ := new(big.Int).SetString("1500000000000000000", 10)
	if got := FormatEther(v); got != "1.5" {
		t.Fatalf("format = %s", got)
	}
	if got := FormatEther(big.NewInt(0)); got != "0.0" {
		t.Fatalf("format zero = %s", got)
	}
	if got := FormatEther(big.NewInt(-1)); got != "-0.000000000000000001" {
		t.Fatalf("format negative = %s", got)
	}
	if got := FormatUnits(big.NewInt(12345), 2); got != "123.45" {
		t.Fatalf("format units = %s", got)
	}
}

func TestNewSigner(t *testing.T) {
	// Well-known hardhat account #0.
	key := "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	s, err := NewSigner(key, big.NewInt(10143))
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	if s.Address.Hex() != "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266" {
		t.Fatalf("address = %s", s.Address.Hex())
	}
	if s.ChainID().Int64() != 10143 {
		t.Fatalf("chain id = %s", s.ChainID())
	}
	if _, err := NewSigner("", big.NewInt(1)); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
