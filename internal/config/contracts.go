package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

// MonadTestnetChainID is the chain the arcade is deployed on.
const MonadTestnetChainID = 10143

// DefaultRPC is the public Monad testnet endpoint.
const DefaultRPC = "https://testnet-rpc.monad.xyz"

// Contract address keys and their Monad testnet deployments. Board, voting
// and auto-hunt are deployed per installation and have no default.
var defaultAddresses = map[string]string{
	"mon-token":    "0x760AfE86e5de5fa0Ee542fc7B7B713e1c5425701",
	"slot-token":   "0x8d56e0D81d0FE0b94100B11947b1779a8485ec46",
	"board":        "",
	"voting":       "",
	"slot-machine": "0x4A56810A41Db3df40A75Cb08F7E19dC0FcA5e666",
	"auto-hunt":    "",
	"v2-factory":   "0xEF6A10E207C9023f23a6A231995D73916dcCDe13",
	"v2-pair":      "0x66F2E56fF2FB12D34905dEbdeDAd29FA34DD8642",
	"v2-token0":    "0x825430B101D75b21E966c7406FaE045D65C13220",
	"v2-token1":    "0xBBCD4ce6F2b91F809846cF5eD59Ef67cB90B0E6C",
	"v3-factory":   "0x959681D306F8EFb97883b9D6a02b82242d5325eB",
	"swap-router":  "0xE592427A0AEce92De3Edee1F18E0157C05861564",
	"donation":     "0x8Cce96679B7Ac1a58de0156861AAeb7eaA1Cf33e",
	"game-coin":    "0xDD1EA6192aD74bD0E8e8202D94AfC94006Fedb12",
}

// Addresses are the deployed contracts the arcade talks to.
type Addresses struct {
	MonToken    common.Address
	SlotToken   common.Address
	Board       common.Address
	Voting      common.Address
	SlotMachine common.Address
	AutoHunt    common.Address
	V2Factory   common.Address
	V2Pair      common.Address
	V2Token0    common.Address
	V2Token1    common.Address
	V3Factory   common.Address
	SwapRouter  common.Address
	Donation    common.Address
	GameCoin    common.Address
}

// Require fails when any named contract is unset.
func (a Addresses) Require(named map[string]common.Address) error {
	for name, addr := range named {
		if addr == (common.Address{}) {
			return fmt.Errorf("contracts.%s is not configured (set it in config.yaml or %s_CONTRACTS_%s)",
				name, EnvPrefix, envKey(name))
		}
	}
	return nil
}

// DefaultAddresses returns the Monad testnet deployments.
func DefaultAddresses() Addresses {
	a, _ := readAddresses(nil)
	return a
}

// addressDefaults seeds viper with the testnet addresses under "contracts.<name>".
func addressDefaults(defaults map[string]interface{}) map[string]interface{} {
	for key, value := range defaultAddresses {
		defaults["contracts."+key] = value
	}
	return defaults
}

func readAddresses(v *viper.Viper) (Addresses, error) {
	var firstErr error
	get := func(key string) common.Address {
		raw := defaultAddresses[key]
		if v != nil {
			raw = v.GetString("contracts." + key)
		}
		if raw == "" {
			return common.Address{}
		}
		if !common.IsHexAddress(raw) {
			if firstErr == nil {
				firstErr = fmt.Errorf("invalid address for contracts.%s: %q", key, raw)
			}
			return common.Address{}
		}
		return common.HexToAddress(raw)
	}

	a := Addresses{
		MonToken:    get("mon-token"),
		SlotToken:   get("slot-token"),
		Board:       get("board"),
		Voting:      get("voting"),
		SlotMachine: get("slot-machine"),
		AutoHunt:    get("auto-hunt"),
		V2Factory:   get("v2-factory"),
		V2Pair:      get("v2-pair"),
		V2Token0:    get("v2-token0"),
		V2Token1:    get("v2-token1"),
		V3Factory:   get("v3-factory"),
		SwapRouter:  get("swap-router"),
		Donation:    get("donation"),
		GameCoin:    get("game-coin"),
	}
	return a, firstErr
}

func envKey(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
