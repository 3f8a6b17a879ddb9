package contracts

const v2FactoryABIJSON = `[
  {"anonymous": false, "inputs": [
    {"indexed": true, "internalType": "address", "name": "token0", "type": "address"},
    {"indexed": true, "internalType": "address", "name": "token1", "type": "address"},
    {"indexed": false, "internalType": "address", "name": "pair", "type": "address"},
    {"indexed": false, "internalType": "uint256", "name": "", "type": "uint256"}
  ], "name": "PairCreated", "type": "event"},
  {"inputs": [{"internalType": "address", "name": "tokenA", "type": "address"}, {"internalType": "address", "name": "tokenB", "type": "address"}], "name": "createPair", "outputs": [{"internalType": "address", "name": "pair", "type": "address"}], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "address", "name": "", "type": "address"}, {"internalType": "address", "name": "", "type": "address"}], "name": "getPair", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "allPairsLength", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
]`

const v2PairABIJSON = `[
  {"anonymous": false, "inputs": [
    {"indexed": true, "internalType": "address", "name": "sender", "type": "address"},
    {"indexed": false, "internalType": "uint256", "name": "amount0In", "type": "uint256"},
    {"indexed": false, "internalType": "uint256", "name": "amount1In", "type": "uint256"},
    {"indexed": false, "internalType": "uint256", "name": "amount0Out", "type": "uint256"},
    {"indexed": false, "internalType": "uint256", "name": "amount1Out", "type": "uint256"},
    {"indexed": true, "internalType": "address", "name": "to", "type": "address"}
  ], "name": "Swap", "type": "event"},
  {"anonymous": false, "inputs": [
    {"indexed": false, "internalType": "uint112", "name": "reserve0", "type": "uint112"},
    {"indexed": false, "internalType": "uint112", "name": "reserve1", "type": "uint112"}
  ], "name": "Sync", "type": "event"},
  {"inputs": [], "name": "token0", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "token1", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getReserves", "outputs": [
    {"internalType": "uint112", "name": "_reserve0", "type": "uint112"},
    {"internalType": "uint112", "name": "_reserve1", "type": "uint112"},
    {"internalType": "uint32", "name": "_blockTimestampLast", "type": "uint32"}
  ], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "totalSupply", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "address", "name": "", "type": "address"}], "name": "balanceOf", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "address", "name": "to", "type": "address"}, {"internalType": "uint256", "name": "value", "type": "uint256"}], "name": "transfer", "outputs": [{"internalType": "bool", "name": "", "type": "bool"}], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "address", "name": "to", "type": "address"}], "name": "mint", "outputs": [{"internalType": "uint256", "name": "liquidity", "type": "uint256"}], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "address", "name": "to", "type": "address"}], "name": "burn", "outputs": [{"internalType": "uint256", "name": "amount0", "type": "uint256"}, {"internalType": "uint256", "name": "amount1", "type": "uint256"}], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [
    {"internalType": "uint256", "name": "amount0Out", "type": "uint256"},
    {"internalType": "uint256", "name": "amount1Out", "type": "uint256"},
    {"internalType": "address", "name": "to", "type": "address"},
    {"internalType": "bytes", "name": "data", "type": "bytes"}
  ], "name": "swap", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`

const v3FactoryABIJSON = `[
  {"anonymous": false, "inputs": [
    {"indexed": true, "internalType": "address", "name": "token0", "type": "address"},
    {"indexed": true, "internalType": "address", "name": "token1", "type": "address"},
    {"indexed": true, "internalType": "uint24", "name": "fee", "type": "uint24"},
    {"indexed": false, "internalType": "int24", "name": "tickSpacing", "type": "int24"},
    {"indexed": false, "internalType": "address", "name": "pool", "type": "address"}
  ], "name": "PoolCreated", "type": "event"},
  {"inputs": [
    {"internalType": "address", "name": "tokenA", "type": "address"},
    {"internalType": "address", "name": "tokenB", "type": "address"},
    {"internalType": "uint24", "name": "fee", "type": "uint24"}
  ], "name": "createPool", "outputs": [{"internalType": "address", "name": "pool", "type": "address"}], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [
    {"internalType": "address", "name": "", "type": "address"},
    {"internalType": "address", "name": "", "type": "address"},
    {"internalType": "uint24", "name": "", "type": "uint24"}
  ], "name": "getPool", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "uint24", "name": "fee", "type": "uint24"}, {"internalType": "int24", "name": "tickSpacing", "type": "int24"}], "name": "enableFeeAmount", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint24", "name": "", "type": "uint24"}], "name": "feeAmountTickSpacing", "outputs": [{"internalType": "int24", "name": "", "type": "int24"}], "stateMutability": "view", "type": "function"}
]`

const v3PoolABIJSON = `[
  {"anonymous": false, "inputs": [
    {"indexed": true, "internalType": "address", "name": "sender", "type": "address"},
    {"indexed": true, "internalType": "address", "name": "recipient", "type": "address"},
    {"indexed": false, "internalType": "int256", "name": "amount0", "type": "int256"},
    {"indexed": false, "internalType": "int256", "name": "amount1", "type": "int256"},
    {"indexed": false, "internalType": "uint160", "name": "sqrtPriceX96", "type": "uint160"},
    {"indexed": false, "internalType": "uint128", "name": "liquidity", "type": "uint128"},
    {"indexed": false, "internalType": "int24", "name": "tick", "type": "int24"}
  ], "name": "Swap", "type": "event"},
  {"anonymous": false, "inputs": [
    {"indexed": false, "internalType": "address", "name": "sender", "type": "address"},
    {"indexed": true, "internalType": "address", "name": "owner", "type": "address"},
    {"indexed": true, "internalType": "int24", "name": "tickLower", "type": "int24"},
    {"indexed": true, "internalType": "int24", "name": "tickUpper", "type": "int24"},
    {"indexed": false, "internalType": "uint128", "name": "amount", "type": "uint128"},
    {"indexed": false, "internalType": "uint256", "name": "amount0", "type": "uint256"},
    {"indexed": false, "internalType": "uint256", "name": "amount1", "type": "uint256"}
  ], "name": "Mint", "type": "event"},
  {"inputs": [], "name": "token0", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "token1", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "fee", "outputs": [{"internalType": "uint24", "name": "", "type": "uint24"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "tickSpacing", "outputs": [{"internalType": "int24", "name": "", "type": "int24"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "liquidity", "outputs": [{"internalType": "uint128", "name": "", "type": "uint128"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "slot0", "outputs": [
    {"internalType": "uint160", "name": "sqrtPriceX96", "type": "uint160"},
    {"internalType": "int24", "name": "tick", "type": "int24"},
    {"internalType": "uint16", "name": "observationIndex", "type": "uint16"},
    {"internalType": "uint16", "name": "observationCardinality", "type": "uint16"},
    {"internalType": "uint16", "name": "observationCardinalityNext", "type": "uint16"},
    {"internalType": "uint8", "name": "feeProtocol", "type": "uint8"},
    {"internalType": "bool", "name": "unlocked", "type": "bool"}
  ], "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "uint160", "name": "sqrtPriceX96", "type": "uint160"}], "name": "initialize", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [
    {"internalType": "address", "name": "recipient", "type": "address"},
    {"internalType": "int24", "name": "tickLower", "type": "int24"},
    {"internalType": "int24", "name": "tickUpper", "type": "int24"},
    {"internalType": "uint128", "name": "amount", "type": "uint128"},
    {"internalType": "bytes", "name": "data", "type": "bytes"}
  ], "name": "mint", "outputs": [{"internalType": "uint256", "name": "amount0", "type": "uint256"}, {"internalType": "uint256", "name": "amount1", "type": "uint256"}], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [
    {"internalType": "address", "name": "recipient", "type": "address"},
    {"internalType": "bool", "name": "zeroForOne", "type": "bool"},
    {"internalType": "int256", "name": "amountSpecified", "type": "int256"},
    {"internalType": "uint160", "name": "sqrtPriceLimitX96", "type": "uint160"},
    {"internalType": "bytes", "name": "data", "type": "bytes"}
  ], "name": "swap", "outputs": [{"internalType": "int256", "name": "amount0", "type": "int256"}, {"internalType": "int256", "name": "amount1", "type": "int256"}], "stateMutability": "nonpayable", "type": "function"}
]`

const swapRouterABIJSON = `[
  {"inputs": [{"components": [
    {"internalType": "address", "name": "tokenIn", "type": "address"},
    {"internalType": "address", "name": "tokenOut", "type": "address"},
    {"internalType": "uint24", "name": "fee", "type": "uint24"},
    {"internalType": "address", "name": "recipient", "type": "address"},
    {"internalType": "uint256", "name": "deadline", "type": "uint256"},
    {"internalType": "uint256", "name": "amountIn", "type": "uint256"},
    {"internalType": "uint256", "name": "amountOutMinimum", "type": "uint256"},
    {"internalType": "uint160", "name": "sqrtPriceLimitX96", "type": "uint160"}
  ], "internalType": "struct ISwapRouter.ExactInputSingleParams", "name": "params", "type": "tuple"}],
  "name": "exactInputSingle", "outputs": [{"internalType": "uint256", "name": "amountOut", "type": "uint256"}], "stateMutability": "payable", "type": "function"}
]`
