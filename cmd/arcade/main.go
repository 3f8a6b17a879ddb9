package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"monadArcade/internal/chain"
	"monadArcade/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:          "arcade",
		Short:        "Monad arcade toolkit: contract flows, indexer and API",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file path")
	flags.String("rpc", "", "Monad RPC URL")
	flags.Uint64("chain-id", config.MonadTestnetChainID, "chain id")
	flags.String("private-key", "", "hex private key used to sign transactions")
	flags.Int("max-retries", 5, "maximum retry attempts")
	flags.Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newIndexCommand(),
		newServeCommand(),
		newDeployCommand(),
		newTokenCommand(),
		newPairCommand(),
		newPoolCommand(),
		newQuoteCommand(),
		newBoardCommand(),
		newPollCommand(),
		newSlotCommand(),
		newHuntCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// transactor is the signing side every service takes.
type transactor interface {
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
}

// session is an open RPC connection plus the optional signing key.
type session struct {
	cfg    config.Network
	logger *zap.Logger
	client *chain.Client
	signer *chain.Signer
}

// transactor returns an untyped nil when no key is loaded.
func (s *session) transactor() transactor {
	if s.signer == nil {
		return nil
	}
	return s.signer
}

func (s *session) Close() {
	s.client.Close()
}

type sessionFunc func(ctx context.Context, s *session, cmd *cobra.Command, args []string) error

// withSession loads network config, connects and hands fn a live session.
// needSigner requires a private key.
func withSession(needSigner bool, fn sessionFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadNetwork(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := connect(ctx, cfg, logger, needSigner)
		if err != nil {
			return err
		}
		defer s.Close()

		return fn(ctx, s, cmd, args)
	}
}

func connect(ctx context.Context, cfg config.Network, logger *zap.Logger, needSigner bool) (*session, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}

	client, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}

	s := &session{cfg: cfg, logger: logger, client: client}
	if needSigner || cfg.PrivateKey != "" {
		signer, err := chain.NewSigner(cfg.PrivateKey, new(big.Int).SetUint64(cfg.ChainID))
		if err != nil {
			client.Close()
			return nil, err
		}
		s.signer = signer
	}
	return s, nil
}

func printJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
