package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"monadArcade/internal/chain"
	"monadArcade/internal/contracts"
	"monadArcade/internal/liquidity"
	"monadArcade/internal/model"
)

func newDeployCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deploy",
		Short:   "Deploy a compiled contract artifact",
		Example: "  arcade deploy --artifact artifacts/contracts/Board.sol/Board.json --arg 0xOwner --arg 0xMonToken",
		RunE:    withSession(true, runDeploy),
	}
	cmd.Flags().String("artifact", "", "Hardhat artifact JSON path")
	cmd.Flags().StringArray("arg", nil, "constructor argument, repeat in order")
	return cmd
}

func runDeploy(ctx context.Context, s *session, cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("artifact")
	if path == "" {
		return fmt.Errorf("artifact path is required")
	}
	artifact, err := contracts.LoadArtifact(path)
	if err != nil {
		return err
	}
	raw, _ := cmd.Flags().GetStringArray("arg")
	args, err := artifact.ConstructorArgs(raw)
	if err != nil {
		return err
	}

	flows := liquidity.NewFlows(s.transactor(), s.logger)
	deployment, err := flows.Deploy(ctx, s.client.Backend(), s.client, artifact, args...)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), deployment)
}

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Read ERC20 token state",
	}

	info := &cobra.Command{
		Use:   "info <token>",
		Short: "Print token metadata and an optional holder balance",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(false, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			addr, err := parseAddress("token", args[0])
			if err != nil {
				return err
			}
			token, err := contracts.NewERC20(addr, s.client.Backend())
			if err != nil {
				return err
			}
			meta, err := token.Metadata(ctx, s.logger)
			if err != nil {
				return err
			}

			out := tokenInfo{TokenMeta: meta}
			holder, _ := cmd.Flags().GetString("holder")
			if holder == "" && s.signer != nil {
				holder = s.signer.Address.Hex()
			}
			if holder != "" {
				owner, err := parseAddress("holder", holder)
				if err != nil {
					return err
				}
				balance, err := token.BalanceOf(ctx, owner)
				if err != nil {
					return err
				}
				out.Holder = owner.Hex()
				out.Balance = chain.FormatUnits(balance, meta.Decimals)
			}
			return printJSON(cmd.OutOrStdout(), out)
		}),
	}
	info.Flags().String("holder", "", "address whose balance to print, defaults to the signer")

	cmd.AddCommand(info)
	return cmd
}

func newPairCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Uniswap V2 pair flows",
	}
	cmd.PersistentFlags().String("pair", "", "pair address, defaults to contracts.v2-pair")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create the token0/token1 pair on the V2 factory",
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, _ []string) error {
			c := s.cfg.Contracts
			if err := c.Require(map[string]common.Address{"v2-factory": c.V2Factory, "v2-token0": c.V2Token0, "v2-token1": c.V2Token1}); err != nil {
				return err
			}
			factory, err := contracts.NewV2Factory(c.V2Factory, s.client.Backend())
			if err != nil {
				return err
			}
			result, err := liquidity.NewFlows(s.transactor(), s.logger).CreatePair(ctx, factory, c.V2Token0, c.V2Token1)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}),
	}

	add := &cobra.Command{
		Use:   "add <amount0> <amount1>",
		Short: "Add liquidity in ether units of token0 and token1",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			amount0, err := chain.ParseEther(args[0])
			if err != nil {
				return fmt.Errorf("amount0: %w", err)
			}
			amount1, err := chain.ParseEther(args[1])
			if err != nil {
				return fmt.Errorf("amount1: %w", err)
			}
			pairAddr, pair, err := openPair(cmd, s)
			if err != nil {
				return err
			}
			token0, token1, err := pairTokens(s)
			if err != nil {
				return err
			}
			result, err := liquidity.NewFlows(s.transactor(), s.logger).AddLiquidity(ctx, pairAddr, pair, token0, token1, amount0, amount1)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}),
	}

	swap := &cobra.Command{
		Use:   "swap <amount-in>",
		Short: "Swap straight through the pair, priced from its reserves",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			amountIn, err := chain.ParseEther(args[0])
			if err != nil {
				return err
			}
			zeroForOne, _ := cmd.Flags().GetBool("zero-for-one")
			slippage, _ := cmd.Flags().GetUint32("slippage-bps")

			pairAddr, pair, err := openPair(cmd, s)
			if err != nil {
				return err
			}
			token0, token1, err := pairTokens(s)
			if err != nil {
				return err
			}
			tokenIn := token0
			if !zeroForOne {
				tokenIn = token1
			}
			result, err := liquidity.NewFlows(s.transactor(), s.logger).Swap(ctx, pairAddr, pair, tokenIn, amountIn, zeroForOne, slippage)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}),
	}
	swap.Flags().Bool("zero-for-one", true, "sell token0 for token1")
	swap.Flags().Uint32("slippage-bps", 0, "slippage tolerance in basis points")

	remove := &cobra.Command{
		Use:   "remove [lp-amount]",
		Short: "Burn LP tokens, all of them when no amount is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			pairAddr, pair, err := openPair(cmd, s)
			if err != nil {
				return err
			}
			var lp *big.Int
			if len(args) == 1 {
				lp, err = chain.ParseEther(args[0])
			} else {
				lp, err = pair.BalanceOf(ctx, s.signer.Address)
			}
			if err != nil {
				return err
			}
			result, err := liquidity.NewFlows(s.transactor(), s.logger).RemoveLiquidity(ctx, pairAddr, pair, lp)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}),
	}

	cmd.AddCommand(create, add, swap, remove)
	return cmd
}

func openPair(cmd *cobra.Command, s *session) (common.Address, *contracts.V2Pair, error) {
	pairAddr := s.cfg.Contracts.V2Pair
	if raw, _ := cmd.Flags().GetString("pair"); raw != "" {
		addr, err := parseAddress("pair", raw)
		if err != nil {
			return common.Address{}, nil, err
		}
		pairAddr = addr
	}
	if err := s.cfg.Contracts.Require(map[string]common.Address{"v2-pair": pairAddr}); err != nil {
		return common.Address{}, nil, err
	}
	pair, err := contracts.NewV2Pair(pairAddr, s.client.Backend())
	if err != nil {
		return common.Address{}, nil, err
	}
	return pairAddr, pair, nil
}

func pairTokens(s *session) (*contracts.ERC20, *contracts.ERC20, error) {
	c := s.cfg.Contracts
	if err := c.Require(map[string]common.Address{"v2-token0": c.V2Token0, "v2-token1": c.V2Token1}); err != nil {
		return nil, nil, err
	}
	token0, err := contracts.NewERC20(c.V2Token0, s.client.Backend())
	if err != nil {
		return nil, nil, err
	}
	token1, err := contracts.NewERC20(c.V2Token1, s.client.Backend())
	if err != nil {
		return nil, nil, err
	}
	return token0, token1, nil
}

func newPoolCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Uniswap V3 factory, pool and router flows",
	}

	enable := &cobra.Command{
		Use:   "enable-fees",
		Short: "Enable the 0.05%, 0.3% and 1% fee tiers on the V3 factory",
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, _ []string) error {
			factory, err := openV3Factory(s)
			if err != nil {
				return err
			}
			steps, err := liquidity.NewFlows(s.transactor(), s.logger).EnableFeeTiers(ctx, factory, liquidity.DefaultFeeTiers)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), steps)
		}),
	}

	create := &cobra.Command{
		Use:   "create <tokenA> <tokenB>",
		Short: "Create a V3 pool for the token pair",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			tokenA, err := parseAddress("tokenA", args[0])
			if err != nil {
				return err
			}
			tokenB, err := parseAddress("tokenB", args[1])
			if err != nil {
				return err
			}
			fee, _ := cmd.Flags().GetUint32("fee")
			factory, err := openV3Factory(s)
			if err != nil {
				return err
			}
			result, err := liquidity.NewFlows(s.transactor(), s.logger).CreatePool(ctx, factory, tokenA, tokenB, fee)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}),
	}
	create.Flags().Uint32("fee", 3000, "fee tier in hundredths of a bip")

	mint := &cobra.Command{
		Use:   "mint <pool> <liquidity>",
		Short: "Mint a position, full range unless ticks are given",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			pool, err := openV3Pool(s, args[0])
			if err != nil {
				return err
			}
			amount, err := chain.ParseEther(args[1])
			if err != nil {
				return err
			}
			lower, _ := cmd.Flags().GetInt32("tick-lower")
			upper, _ := cmd.Flags().GetInt32("tick-upper")
			steps, err := liquidity.NewFlows(s.transactor(), s.logger).MintPosition(ctx, pool, lower, upper, amount)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), steps)
		}),
	}
	mint.Flags().Int32("tick-lower", liquidity.FullRangeTickLower, "lower tick")
	mint.Flags().Int32("tick-upper", liquidity.FullRangeTickUpper, "upper tick")

	swap := &cobra.Command{
		Use:   "swap <pool> <amount>",
		Short: "Swap directly against a V3 pool",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			pool, err := openV3Pool(s, args[0])
			if err != nil {
				return err
			}
			amount, err := chain.ParseEther(args[1])
			if err != nil {
				return err
			}
			zeroForOne, _ := cmd.Flags().GetBool("zero-for-one")
			steps, err := liquidity.NewFlows(s.transactor(), s.logger).SwapPool(ctx, pool, zeroForOne, amount, nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), steps)
		}),
	}
	swap.Flags().Bool("zero-for-one", true, "sell token0 for token1")

	routerSwap := &cobra.Command{
		Use:   "router-swap <tokenIn> <tokenOut> <amount-in>",
		Short: "Swap through the V3 SwapRouter with exactInputSingle",
		Args:  cobra.ExactArgs(3),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			c := s.cfg.Contracts
			if err := c.Require(map[string]common.Address{"swap-router": c.SwapRouter}); err != nil {
				return err
			}
			tokenInAddr, err := parseAddress("tokenIn", args[0])
			if err != nil {
				return err
			}
			tokenOutAddr, err := parseAddress("tokenOut", args[1])
			if err != nil {
				return err
			}
			amountIn, err := chain.ParseEther(args[2])
			if err != nil {
				return err
			}
			minOut := new(big.Int)
			if raw, _ := cmd.Flags().GetString("min-out"); raw != "" {
				if minOut, err = chain.ParseEther(raw); err != nil {
					return fmt.Errorf("min-out: %w", err)
				}
			}
			fee, _ := cmd.Flags().GetUint32("fee")
			deadline, _ := cmd.Flags().GetDuration("deadline")

			router, err := contracts.NewSwapRouter(c.SwapRouter, s.client.Backend())
			if err != nil {
				return err
			}
			tokenIn, err := contracts.NewERC20(tokenInAddr, s.client.Backend())
			if err != nil {
				return err
			}
			steps, err := liquidity.NewFlows(s.transactor(), s.logger).SwapRouter(ctx, router, liquidity.RouterSwap{
				Router:       c.SwapRouter,
				TokenIn:      tokenIn,
				TokenInAddr:  tokenInAddr,
				TokenOutAddr: tokenOutAddr,
				Fee:          fee,
				AmountIn:     amountIn,
				MinAmountOut: minOut,
				Deadline:     deadline,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), steps)
		}),
	}
	routerSwap.Flags().Uint32("fee", 3000, "pool fee tier")
	routerSwap.Flags().String("min-out", "", "minimum output in ether units, empty accepts any")
	routerSwap.Flags().Duration("deadline", liquidity.DefaultRouterDeadline, "how long the swap stays valid")

	cmd.AddCommand(enable, create, mint, swap, routerSwap)
	return cmd
}

func openV3Factory(s *session) (*contracts.V3Factory, error) {
	c := s.cfg.Contracts
	if err := c.Require(map[string]common.Address{"v3-factory": c.V3Factory}); err != nil {
		return nil, err
	}
	return contracts.NewV3Factory(c.V3Factory, s.client.Backend())
}

func openV3Pool(s *session, raw string) (*contracts.V3Pool, error) {
	addr, err := parseAddress("pool", raw)
	if err != nil {
		return nil, err
	}
	return contracts.NewV3Pool(addr, s.client.Backend())
}

// tokenInfo is token metadata plus a holder balance.
type tokenInfo struct {
	model.TokenMeta
	Holder  string `json:"holder,omitempty"`
	Balance string `json:"balance,omitempty"`
}

func parseAddress(name, raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", name, raw)
	}
	return common.HexToAddress(raw), nil
}
