package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// AggregateConfig holds configuration for leaderboard aggregation.
type AggregateConfig struct {
	Network
	Input         string
	PGDSN         string
	BatchSize     int
	StateFile     string
	RecomputeFrom string
}

// LoadAggregate merges config file, environment variables, and flags into AggregateConfig.
func LoadAggregate(cfgFile string, flags *pflag.FlagSet) (AggregateConfig, error) {
	defaults := networkDefaults()
	defaults["batch-size"] = 1000

	v, err := newViper(cfgFile, flags, defaults)
	if err != nil {
		return AggregateConfig{}, err
	}
	network, err := readNetwork(v)
	if err != nil {
		return AggregateConfig{}, err
	}

	cfg := AggregateConfig{
		Network:       network,
		Input:         v.GetString("in"),
		PGDSN:         v.GetString("pg-dsn"),
		BatchSize:     v.GetInt("batch-size"),
		StateFile:     v.GetString("state-file"),
		RecomputeFrom: v.GetString("recompute-from"),
	}

	return cfg, nil
}

// ParseTimestamp parses a timestamp value (unix seconds or RFC3339).
func ParseTimestamp(input string) (uint64, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}

	if isNumeric(input) {
		val, err := strconv.ParseUint(input, 10, 64)
		if err != nil {
			return 0, err
		}
		return val, nil
	}

	tm, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return 0, err
	}
	return uint64(tm.Unix()), nil
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
