package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Network holds the settings every chain-facing command shares.
type Network struct {
	RPCURL       string
	ChainID      uint64
	PrivateKey   string
	Contracts    Addresses
	MaxRetries   int
	RetryBackoff time.Duration
	LogLevel     string
}

func networkDefaults() map[string]interface{} {
	return addressDefaults(map[string]interface{}{
		"rpc":           DefaultRPC,
		"chain-id":      uint64(MonadTestnetChainID),
		"max-retries":   5,
		"retry-backoff": 500 * time.Millisecond,
		"log-level":     "info",
	})
}

func readNetwork(v *viper.Viper) (Network, error) {
	addresses, err := readAddresses(v)
	if err != nil {
		return Network{}, err
	}
	return Network{
		RPCURL:       v.GetString("rpc"),
		ChainID:      v.GetUint64("chain-id"),
		PrivateKey:   v.GetString("private-key"),
		Contracts:    addresses,
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		LogLevel:     v.GetString("log-level"),
	}, nil
}

// LoadNetwork merges config file, environment variables, and flags into Network.
func LoadNetwork(cfgFile string, flags *pflag.FlagSet) (Network, error) {
	v, err := newViper(cfgFile, flags, networkDefaults())
	if err != nil {
		return Network{}, err
	}
	return readNetwork(v)
}
