package contracts

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// lazyABI parses an ABI definition on first use.
type lazyABI struct {
	json string
	once sync.Once
	abi  abi.ABI
	err  error
}

func (l *lazyABI) get() (abi.ABI, error) {
	l.once.Do(func() {
		l.abi, l.err = abi.JSON(strings.NewReader(l.json))
	})
	return l.abi, l.err
}

var (
	erc20ABI        = &lazyABI{json: erc20ABIJSON}
	erc20Bytes32ABI = &lazyABI{json: erc20ABIBytes32JSON}
	boardABI        = &lazyABI{json: boardABIJSON}
	votingABI       = &lazyABI{json: votingABIJSON}
	slotMachineABI  = &lazyABI{json: slotMachineABIJSON}
	autoHuntABI     = &lazyABI{json: autoHuntABIJSON}
	v2FactoryABI    = &lazyABI{json: v2FactoryABIJSON}
	v2PairABI       = &lazyABI{json: v2PairABIJSON}
	v3FactoryABI    = &lazyABI{json: v3FactoryABIJSON}
	v3PoolABI       = &lazyABI{json: v3PoolABIJSON}
	swapRouterABI   = &lazyABI{json: swapRouterABIJSON}
)

// ERC20ABI returns the parsed ERC20 ABI.
func ERC20ABI() (abi.ABI, error) { return erc20ABI.get() }

// BoardABI returns the parsed Board ABI.
func BoardABI() (abi.ABI, error) { return boardABI.get() }

// VotingABI returns the parsed Voting ABI.
func VotingABI() (abi.ABI, error) { return votingABI.get() }

// SlotMachineABI returns the parsed SlotMachine ABI.
func SlotMachineABI() (abi.ABI, error) { return slotMachineABI.get() }

// AutoHuntABI returns the parsed AutoHunt ABI.
func AutoHuntABI() (abi.ABI, error) { return autoHuntABI.get() }

// V2FactoryABI returns the parsed UniswapV2 factory ABI.
func V2FactoryABI() (abi.ABI, error) { return v2FactoryABI.get() }

// V2PairABI returns the parsed UniswapV2 pair ABI.
func V2PairABI() (abi.ABI, error) { return v2PairABI.get() }

// V3FactoryABI returns the parsed UniswapV3 factory ABI.
func V3FactoryABI() (abi.ABI, error) { return v3FactoryABI.get() }

// V3PoolABI returns the parsed UniswapV3 pool ABI.
func V3PoolABI() (abi.ABI, error) { return v3PoolABI.get() }

// SwapRouterABI returns the parsed UniswapV3 SwapRouter ABI.
func SwapRouterABI() (abi.ABI, error) { return swapRouterABI.get() }
