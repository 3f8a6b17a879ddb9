package config

import (
	"time"

	"github.com/spf13/pflag"
)

// ServeConfig holds configuration for the HTTP API and live feed.
type ServeConfig struct {
	Network
	Listen          string
	PGDSN           string
	FeedEnabled     bool
	FeedInterval    time.Duration
	FeedFromBlock   uint64
	ExplorerKeys    map[string]string
	ExplorerTimeout time.Duration
	ShutdownTimeout time.Duration
}

// LoadServe merges config file, environment variables, and flags into ServeConfig.
func LoadServe(cfgFile string, flags *pflag.FlagSet) (ServeConfig, error) {
	defaults := networkDefaults()
	defaults["listen"] = ":8080"
	defaults["feed"] = true
	defaults["feed-interval"] = 2 * time.Second
	defaults["explorer-timeout"] = 10 * time.Second
	defaults["shutdown-timeout"] = 10 * time.Second

	v, err := newViper(cfgFile, flags, defaults)
	if err != nil {
		return ServeConfig{}, err
	}
	network, err := readNetwork(v)
	if err != nil {
		return ServeConfig{}, err
	}

	cfg := ServeConfig{
		Network:         network,
		Listen:          v.GetString("listen"),
		PGDSN:           v.GetString("pg-dsn"),
		FeedEnabled:     v.GetBool("feed"),
		FeedInterval:    v.GetDuration("feed-interval"),
		FeedFromBlock:   v.GetUint64("feed-from"),
		ExplorerKeys:    getStringMap(v, "explorer-keys"),
		ExplorerTimeout: v.GetDuration("explorer-timeout"),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
	}

	return cfg, nil
}
