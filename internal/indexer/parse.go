package indexer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ParseAddresses parses hex addresses, skipping blanks and repeats.
func ParseAddresses(inputs []string) ([]common.Address, error) {
	seen := make(map[common.Address]struct{}, len(inputs))
	addresses := make([]common.Address, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !common.IsHexAddress(input) {
			return nil, fmt.Errorf("invalid address: %s", input)
		}
		addr := common.HexToAddress(input)
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		addresses = append(addresses, addr)
	}
	return addresses, nil
}

// ParseTopic0 accepts 32-byte hashes or event signatures such as
// "Voted(uint256,address,uint256,uint256)", which are hashed.
func ParseTopic0(inputs []string) ([]common.Hash, error) {
	seen := make(map[common.Hash]struct{}, len(inputs))
	topics := make([]common.Hash, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		topic, err := parseTopic(input)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[topic]; dup {
			continue
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}
	return topics, nil
}

func parseTopic(input string) (common.Hash, error) {
	if strings.Contains(input, "(") {
		if !strings.HasSuffix(input, ")") || strings.ContainsAny(input, " \t") {
			return common.Hash{}, fmt.Errorf("invalid event signature: %s", input)
		}
		return crypto.Keccak256Hash([]byte(input)), nil
	}
	data, err := hexutil.Decode(input)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid topic0: %s", input)
	}
	if len(data) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid topic0 length: %s", input)
	}
	return common.BytesToHash(data), nil
}
