package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"monadArcade/internal/api"
	"monadArcade/internal/board"
	"monadArcade/internal/chain"
	"monadArcade/internal/config"
	"monadArcade/internal/contracts"
	"monadArcade/internal/events"
	"monadArcade/internal/explorer"
	"monadArcade/internal/feed"
	"monadArcade/internal/hunt"
	"monadArcade/internal/leaderboard"
	"monadArcade/internal/slot"
	"monadArcade/internal/storage/postgres"
	"monadArcade/internal/voting"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and live event feed",
		RunE:  runServe,
	}
	cmd.Flags().String("listen", ":8080", "HTTP listen address")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN for the leaderboard, empty keeps it in memory")
	cmd.Flags().Bool("feed", true, "follow new blocks and stream events")
	cmd.Flags().Duration("feed-interval", 2*time.Second, "block poll interval")
	cmd.Flags().Uint64("feed-from", 0, "first block to follow, 0 means the chain head")
	cmd.Flags().String("explorer-keys", "", "explorer API keys (comma-separated provider=key)")
	cmd.Flags().Duration("explorer-timeout", 10*time.Second, "explorer request timeout")
	cmd.Flags().Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadServe(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	deps, err := screenDeps(chainClient, cfg.Contracts, logger)
	if err != nil {
		return err
	}
	deps.Explorer = explorer.NewClient(cfg.ExplorerKeys,
		explorer.WithTimeout(cfg.ExplorerTimeout),
		explorer.WithLogger(logger),
	)

	var live *leaderboard.Live
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		deps.Leaderboard = store
	} else {
		store := leaderboard.NewMemoryStore()
		live, err = leaderboard.NewLive(ctx, cfg.ChainID, store)
		if err != nil {
			return err
		}
		deps.Leaderboard = store
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.FeedEnabled {
		hub := feed.NewHub(feed.DefaultHubConfig(), logger)
		deps.Feed = hub

		decoder, err := events.NewDecoder(events.DecoderConfig{})
		if err != nil {
			return err
		}
		sinks := []feed.Sink{hub}
		if live != nil {
			sinks = append(sinks, feed.SinkFunc(live.Apply))
		}
		poller := feed.NewPoller(feed.PollerConfig{
			ChainID:      cfg.ChainID,
			Addresses:    feedAddresses(cfg.Contracts),
			Interval:     cfg.FeedInterval,
			FromBlock:    cfg.FeedFromBlock,
			MaxRetries:   cfg.MaxRetries,
			RetryBackoff: cfg.RetryBackoff,
		}, chainClient, decoder, logger, sinks...)

		g.Go(func() error {
			return poller.Run(gctx)
		})
	}

	server := &http.Server{
		Addr: cfg.Listen,
		Handler: api.NewServer(api.Config{
			ChainID:  cfg.ChainID,
			Donation: cfg.Contracts.Donation,
		}, deps, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.Info("api listening", zap.String("addr", cfg.Listen), zap.Bool("feed", cfg.FeedEnabled))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("api shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// screenDeps binds the read services for every configured contract. Unset
// contracts leave their routes answering 503.
func screenDeps(client *chain.Client, addrs config.Addresses, logger *zap.Logger) (api.Deps, error) {
	var deps api.Deps
	backend := client.Backend()

	if addrs.Board != (common.Address{}) {
		svc, err := newBoardService(backend, addrs, nil, logger)
		if err != nil {
			return deps, err
		}
		deps.Board = svc
	}
	if addrs.Voting != (common.Address{}) {
		svc, err := newVotingService(backend, addrs, nil, logger)
		if err != nil {
			return deps, err
		}
		deps.Polls = svc
	}
	if addrs.SlotMachine != (common.Address{}) {
		svc, err := newSlotService(backend, addrs, nil, logger)
		if err != nil {
			return deps, err
		}
		deps.Slot = svc
	}
	if addrs.AutoHunt != (common.Address{}) {
		svc, err := newHuntService(backend, addrs, hunt.Config{}, nil, logger)
		if err != nil {
			return deps, err
		}
		deps.Hunt = svc
	}
	if addrs.V2Pair != (common.Address{}) {
		pair, err := contracts.NewV2Pair(addrs.V2Pair, backend)
		if err != nil {
			return deps, err
		}
		deps.Pair = pair
	}
	return deps, nil
}

func newBoardService(backend contracts.Backend, addrs config.Addresses, signer transactor, logger *zap.Logger) (*board.Service, error) {
	contract, err := contracts.NewBoard(addrs.Board, backend)
	if err != nil {
		return nil, err
	}
	token, err := contracts.NewERC20(addrs.MonToken, backend)
	if err != nil {
		return nil, err
	}
	return board.NewService(board.DefaultConfig(), contract, token, signer, logger), nil
}

func newVotingService(backend contracts.Backend, addrs config.Addresses, signer transactor, logger *zap.Logger) (*voting.Service, error) {
	contract, err := contracts.NewVoting(addrs.Voting, backend)
	if err != nil {
		return nil, err
	}
	token, err := contracts.NewERC20(addrs.MonToken, backend)
	if err != nil {
		return nil, err
	}
	return voting.NewService(voting.DefaultConfig(), addrs.Voting, contract, token, signer, logger), nil
}

func newSlotService(backend contracts.Backend, addrs config.Addresses, signer transactor, logger *zap.Logger) (*slot.Service, error) {
	machine, err := contracts.NewSlotMachine(addrs.SlotMachine, backend)
	if err != nil {
		return nil, err
	}
	token, err := contracts.NewERC20(addrs.SlotToken, backend)
	if err != nil {
		return nil, err
	}
	return slot.NewService(addrs.SlotMachine, machine, token, signer, logger), nil
}

func newHuntService(backend contracts.Backend, addrs config.Addresses, cfg hunt.Config, signer transactor, logger *zap.Logger) (*hunt.Service, error) {
	game, err := contracts.NewAutoHunt(addrs.AutoHunt, backend)
	if err != nil {
		return nil, err
	}
	return hunt.NewService(cfg, game, signer, logger), nil
}
