package config

import (
	"github.com/spf13/pflag"
)

// IndexConfig holds configuration values for the raw log indexer.
type IndexConfig struct {
	Network
	FromBlock         uint64
	ToBlock           uint64
	Addresses         []string
	Topic0            []string
	BatchSize         uint64
	Out               string
	Checkpoint        string
	CheckpointEnabled bool
}

// LoadIndex merges config file, environment variables, and flags into IndexConfig.
func LoadIndex(cfgFile string, flags *pflag.FlagSet) (IndexConfig, error) {
	defaults := networkDefaults()
	defaults["batch-size"] = uint64(100)
	defaults["out"] = "./data/logs.jsonl"
	defaults["checkpoint"] = "./data/checkpoint.json"
	defaults["checkpoint-enabled"] = true

	v, err := newViper(cfgFile, flags, defaults)
	if err != nil {
		return IndexConfig{}, err
	}
	network, err := readNetwork(v)
	if err != nil {
		return IndexConfig{}, err
	}

	cfg := IndexConfig{
		Network:           network,
		FromBlock:         v.GetUint64("from"),
		ToBlock:           v.GetUint64("to"),
		Addresses:         getStringSlice(v, "address"),
		Topic0:            getStringSlice(v, "topic0"),
		BatchSize:         v.GetUint64("batch-size"),
		Out:               v.GetString("out"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
	}

	return cfg, nil
}
