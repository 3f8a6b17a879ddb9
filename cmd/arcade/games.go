package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"monadArcade/internal/amm"
	"monadArcade/internal/chain"
	"monadArcade/internal/contracts"
	"monadArcade/internal/hunt"
	"monadArcade/internal/model"
)

// txResult is the printed form of a mined transaction.
type txResult struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
}

func printReceipt(w io.Writer, receipt *types.Receipt) error {
	if receipt == nil {
		return fmt.Errorf("no receipt")
	}
	out := txResult{TxHash: receipt.TxHash.Hex(), GasUsed: receipt.GasUsed}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return printJSON(w, out)
}

func parseID(name, raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// accountArg returns args[0] as an address, or the signer's when absent.
func accountArg(s *session, args []string) (common.Address, error) {
	if len(args) > 0 {
		return parseAddress("account", args[0])
	}
	if s.signer == nil {
		return common.Address{}, fmt.Errorf("pass an address or set a private key")
	}
	return s.signer.Address, nil
}

func requireContract(s *session, name string, addr common.Address) error {
	return s.cfg.Contracts.Require(map[string]common.Address{name: addr})
}

func newBoardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Read and write the message board",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List a page of posts, newest first",
		RunE: withSession(false, func(ctx context.Context, s *session, cmd *cobra.Command, _ []string) error {
			if err := requireContract(s, "board", s.cfg.Contracts.Board); err != nil {
				return err
			}
			svc, err := newBoardService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			if top, _ := cmd.Flags().GetBool("top"); top {
				posts, err := svc.TopPosts(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), posts)
			}
			page, _ := cmd.Flags().GetInt("page")
			result, err := svc.Page(ctx, page)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}),
	}
	list.Flags().Int("page", 0, "page number, 0 is the newest")
	list.Flags().Bool("top", false, "list the top posts instead")

	create := &cobra.Command{
		Use:   "create <title> <content>",
		Short: "Create a post, optionally attaching MON",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			if err := requireContract(s, "board", s.cfg.Contracts.Board); err != nil {
				return err
			}
			mon := new(big.Int)
			if raw, _ := cmd.Flags().GetString("mon"); raw != "" {
				amount, err := chain.ParseEther(raw)
				if err != nil {
					return fmt.Errorf("mon: %w", err)
				}
				mon = amount
			}
			svc, err := newBoardService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			receipt, err := svc.Create(ctx, args[0], args[1], mon)
			if err != nil {
				return err
			}
			return printReceipt(cmd.OutOrStdout(), receipt)
		}),
	}
	create.Flags().String("mon", "", "MON to attach, in ether units")

	like := &cobra.Command{
		Use:   "like <post-id>",
		Short: "Like a post",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			if err := requireContract(s, "board", s.cfg.Contracts.Board); err != nil {
				return err
			}
			id, err := parseID("post id", args[0])
			if err != nil {
				return err
			}
			svc, err := newBoardService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			receipt, err := svc.Like(ctx, id)
			if err != nil {
				return err
			}
			return printReceipt(cmd.OutOrStdout(), receipt)
		}),
	}

	nickname := &cobra.Command{
		Use:   "nickname <name>",
		Short: "Set the signer's nickname",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			if err := requireContract(s, "board", s.cfg.Contracts.Board); err != nil {
				return err
			}
			svc, err := newBoardService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			receipt, err := svc.SetNickname(ctx, args[0])
			if err != nil {
				return err
			}
			return printReceipt(cmd.OutOrStdout(), receipt)
		}),
	}

	whois := &cobra.Command{
		Use:   "whois [address]",
		Short: "Print an account's nickname and MON balance",
		Args:  cobra.MaximumNArgs(1),
		RunE: withSession(false, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			if err := requireContract(s, "board", s.cfg.Contracts.Board); err != nil {
				return err
			}
			account, err := accountArg(s, args)
			if err != nil {
				return err
			}
			svc, err := newBoardService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			name, err := svc.Nickname(ctx, account)
			if err != nil {
				return err
			}
			balance, err := svc.MonBalance(ctx, account)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"address":  account.Hex(),
				"nickname": name,
				"mon":      chain.FormatEther(balance),
			})
		}),
	}

	cmd.AddCommand(list, create, like, nickname, whois)
	return cmd
}

func newPollCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Token-weighted polls",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every poll with its results",
		RunE: withSession(false, func(ctx context.Context, s *session, cmd *cobra.Command, _ []string) error {
			if err := requireContract(s, "voting", s.cfg.Contracts.Voting); err != nil {
				return err
			}
			svc, err := newVotingService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			polls, err := svc.Polls(ctx)
			if err != nil {
				return err
			}
			if polls == nil {
				polls = []model.Poll{}
			}
			return printJSON(cmd.OutOrStdout(), polls)
		}),
	}

	create := &cobra.Command{
		Use:   "create <title> <description>",
		Short: "Create a poll with two or more options",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			if err := requireContract(s, "voting", s.cfg.Contracts.Voting); err != nil {
				return err
			}
			options, _ := cmd.Flags().GetStringArray("option")
			duration, _ := cmd.Flags().GetDuration("duration")
			svc, err := newVotingService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			receipt, err := svc.Create(ctx, args[0], args[1], options, duration)
			if err != nil {
				return err
			}
			return printReceipt(cmd.OutOrStdout(), receipt)
		}),
	}
	create.Flags().StringArray("option", nil, "poll option, repeat for each")
	create.Flags().Duration("duration", 24*time.Hour, "how long the poll stays open")

	vote := &cobra.Command{
		Use:   "vote <poll-id> <option-index>",
		Short: "Vote with the minimum vote amount of MON",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			if err := requireContract(s, "voting", s.cfg.Contracts.Voting); err != nil {
				return err
			}
			pollID, err := parseID("poll id", args[0])
			if err != nil {
				return err
			}
			option, err := parseID("option index", args[1])
			if err != nil {
				return err
			}
			svc, err := newVotingService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			receipt, err := svc.Vote(ctx, pollID, option)
			if err != nil {
				return err
			}
			return printReceipt(cmd.OutOrStdout(), receipt)
		}),
	}

	end := &cobra.Command{
		Use:   "end <poll-id>",
		Short: "End a poll",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			if err := requireContract(s, "voting", s.cfg.Contracts.Voting); err != nil {
				return err
			}
			pollID, err := parseID("poll id", args[0])
			if err != nil {
				return err
			}
			svc, err := newVotingService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			receipt, err := svc.End(ctx, pollID)
			if err != nil {
				return err
			}
			return printReceipt(cmd.OutOrStdout(), receipt)
		}),
	}

	cmd.AddCommand(list, create, vote, end)
	return cmd
}

func newSlotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Play the slot machine",
	}

	pools := &cobra.Command{
		Use:   "pools",
		Short: "Print the jackpot and owner pools",
		RunE: withSession(false, func(ctx context.Context, s *session, cmd *cobra.Command, _ []string) error {
			svc, err := newSlotService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			result, err := svc.Pools(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}),
	}

	spin := &cobra.Command{
		Use:   "spin <bet>",
		Short: "Spin with a bet in slot token ether units",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			bet, err := chain.ParseEther(args[0])
			if err != nil {
				return err
			}
			times, _ := cmd.Flags().GetInt("times")
			if times <= 0 {
				times = 1
			}
			svc, err := newSlotService(s.client.Backend(), s.cfg.Contracts, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			results := make([]model.SpinResult, 0, times)
			for i := 0; i < times; i++ {
				result, err := svc.Spin(ctx, bet)
				if err != nil {
					return err
				}
				results = append(results, result)
			}
			return printJSON(cmd.OutOrStdout(), results)
		}),
	}
	spin.Flags().Int("times", 1, "number of spins in a row")

	cmd.AddCommand(pools, spin)
	return cmd
}

// characterView is a character with the areas its level unlocks.
type characterView struct {
	Address   string          `json:"address"`
	Character model.Character `json:"character"`
	Areas     []hunt.Area     `json:"areas"`
}

func newHuntCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hunt",
		Short: "Play AutoHunt",
	}

	character := &cobra.Command{
		Use:   "character [address]",
		Short: "Print a character and its hunting areas",
		Args:  cobra.MaximumNArgs(1),
		RunE: withSession(false, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			if err := requireContract(s, "auto-hunt", s.cfg.Contracts.AutoHunt); err != nil {
				return err
			}
			account, err := accountArg(s, args)
			if err != nil {
				return err
			}
			svc, err := newHuntService(s.client.Backend(), s.cfg.Contracts, hunt.Config{}, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			c, err := svc.Character(ctx, account)
			if err != nil {
				return err
			}
			level, _ := strconv.ParseUint(c.Level, 10, 64)
			return printJSON(cmd.OutOrStdout(), characterView{
				Address:   account.Hex(),
				Character: c,
				Areas:     hunt.AreasFor(level),
			})
		}),
	}

	monsters := &cobra.Command{
		Use:   "monsters",
		Short: "List the monsters",
		RunE: withSession(false, func(ctx context.Context, s *session, cmd *cobra.Command, _ []string) error {
			if err := requireContract(s, "auto-hunt", s.cfg.Contracts.AutoHunt); err != nil {
				return err
			}
			svc, err := newHuntService(s.client.Backend(), s.cfg.Contracts, hunt.Config{}, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			list, err := svc.Monsters(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		}),
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create the signer's character",
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, _ []string) error {
			if err := requireContract(s, "auto-hunt", s.cfg.Contracts.AutoHunt); err != nil {
				return err
			}
			svc, err := newHuntService(s.client.Backend(), s.cfg.Contracts, hunt.Config{}, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			receipt, err := svc.CreateCharacter(ctx)
			if err != nil {
				return err
			}
			return printReceipt(cmd.OutOrStdout(), receipt)
		}),
	}

	fight := &cobra.Command{
		Use:   "fight <monster-id>",
		Short: "Hunt a monster: start, battle, and complete on victory",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			if err := requireContract(s, "auto-hunt", s.cfg.Contracts.AutoHunt); err != nil {
				return err
			}
			monsterID, err := parseID("monster id", args[0])
			if err != nil {
				return err
			}
			pace, _ := cmd.Flags().GetDuration("pace")
			out := cmd.ErrOrStderr()
			cfg := hunt.Config{
				Pace: pace,
				OnRound: func(r hunt.Round) {
					fmt.Fprintf(out, "round %d: you hit %d, monster hit %d (hp %d / %d)\n",
						r.Number, r.PlayerDamage, r.MonsterDamage, r.PlayerHP, r.MonsterHP)
				},
			}
			svc, err := newHuntService(s.client.Backend(), s.cfg.Contracts, cfg, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			result, err := svc.Hunt(ctx, monsterID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}),
	}
	fight.Flags().Duration("pace", time.Second, "pause after each battle round")

	claim := &cobra.Command{
		Use:   "claim <monster-id>",
		Short: "Claim the rewards for a monster",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			if err := requireContract(s, "auto-hunt", s.cfg.Contracts.AutoHunt); err != nil {
				return err
			}
			monsterID, err := parseID("monster id", args[0])
			if err != nil {
				return err
			}
			svc, err := newHuntService(s.client.Backend(), s.cfg.Contracts, hunt.Config{}, s.transactor(), s.logger)
			if err != nil {
				return err
			}
			receipt, err := svc.Claim(ctx, monsterID)
			if err != nil {
				return err
			}
			return printReceipt(cmd.OutOrStdout(), receipt)
		}),
	}

	cmd.AddCommand(character, monsters, create, fight, claim)
	return cmd
}

// quoteView is a V2 quote in wei and ether units.
type quoteView struct {
	Pair           string `json:"pair"`
	ZeroForOne     bool   `json:"zero_for_one"`
	AmountIn       string `json:"amount_in"`
	AmountOut      string `json:"amount_out"`
	AmountOutEther string `json:"amount_out_ether"`
	MinAmountOut   string `json:"min_amount_out"`
	PriceImpactBps int64  `json:"price_impact_bps"`
}

func newQuoteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote <amount-in>",
		Short: "Quote a V2 swap from the pair's current reserves",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(false, func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error {
			amountIn, err := chain.ParseEther(args[0])
			if err != nil {
				return err
			}
			zeroForOne, _ := cmd.Flags().GetBool("zero-for-one")
			slippage, _ := cmd.Flags().GetUint32("slippage-bps")

			pairAddr := s.cfg.Contracts.V2Pair
			if err := requireContract(s, "v2-pair", pairAddr); err != nil {
				return err
			}
			pair, err := contracts.NewV2Pair(pairAddr, s.client.Backend())
			if err != nil {
				return err
			}
			reserves, err := pair.Reserves(ctx)
			if err != nil {
				return err
			}
			quote, err := amm.QuoteExactIn(reserves, amountIn, zeroForOne)
			if err != nil {
				return err
			}
			minOut, err := amm.MinAmountOut(quote.AmountOut, slippage)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), quoteView{
				Pair:           pairAddr.Hex(),
				ZeroForOne:     zeroForOne,
				AmountIn:       quote.AmountIn.String(),
				AmountOut:      quote.AmountOut.String(),
				AmountOutEther: chain.FormatEther(quote.AmountOut),
				MinAmountOut:   minOut.String(),
				PriceImpactBps: quote.PriceImpactBps,
			})
		}),
	}
	cmd.Flags().Bool("zero-for-one", true, "sell token0 for token1")
	cmd.Flags().Uint32("slippage-bps", 50, "slippage tolerance in basis points")
	return cmd
}
