package config

import (
	"github.com/spf13/pflag"
)

// DecodeConfig holds configuration for the decode command.
type DecodeConfig struct {
	Network
	In        string
	Out       string
	Errors    string
	Topic0Map map[string]string
}

// LoadDecode merges config file, environment variables, and flags into DecodeConfig.
func LoadDecode(cfgFile string, flags *pflag.FlagSet) (DecodeConfig, error) {
	defaults := networkDefaults()
	defaults["out"] = "./data/typed_events.jsonl"
	defaults["errors"] = "./data/decode_errors.jsonl"

	v, err := newViper(cfgFile, flags, defaults)
	if err != nil {
		return DecodeConfig{}, err
	}
	network, err := readNetwork(v)
	if err != nil {
		return DecodeConfig{}, err
	}

	cfg := DecodeConfig{
		Network:   network,
		In:        v.GetString("in"),
		Out:       v.GetString("out"),
		Errors:    v.GetString("errors"),
		Topic0Map: getStringMap(v, "topic0-map"),
	}

	return cfg, nil
}
