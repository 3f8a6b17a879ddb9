package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer holds a local private key used to sign transactions.
type Signer struct {
	Address common.Address
	key     *ecdsa.PrivateKey
	chainID *big.Int
}

// NewSigner parses a hex private key (with or without 0x) for chainID.
func NewSigner(hexKey string, chainID *big.Int) (*Signer, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, fmt.Errorf("private key is required")
	}
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, fmt.Errorf("chain id is required")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &Signer{
		Address: crypto.PubkeyToAddress(key.PublicKey),
		key:     key,
		chainID: new(big.Int).Set(chainID),
	}, nil
}

// TransactOpts returns fresh transaction options bound to ctx.
func (s *Signer) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, s.chainID)
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// ChainID returns the chain the signer signs for.
func (s *Signer) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}
