package feed

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"monadArcade/internal/indexer"
	"monadArcade/internal/model"
	"monadArcade/internal/observability"
	"monadArcade/internal/retry"
)

// DefaultMaxRange caps the blocks fetched in one poll.
const DefaultMaxRange = 100

// Source is the chain access the poller needs.
type Source interface {
	LatestBlockNumber(ctx context.Context) (uint64, error)
	BlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error)
	FilterLogs(ctx context.Context, fromBlock, toBlock uint64, addresses []common.Address, topic0 []common.Hash) ([]types.Log, error)
}

// Decoder turns raw log records into typed events.
type Decoder interface {
	Topics() []common.Hash
	Decode(log model.LogRecord) (*model.TypedEvent, error)
}

// Sink receives every decoded event.
type Sink interface {
	Publish(ctx context.Context, event model.TypedEvent) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, event model.TypedEvent) error

func (f SinkFunc) Publish(ctx context.Context, event model.TypedEvent) error {
	return f(ctx, event)
}

// PollerConfig configures the block follower.
type PollerConfig struct {
	ChainID   uint64
	Addresses []common.Address
	Interval  time.Duration
	// FromBlock is the first block to follow. Zero starts at the chain head.
	FromBlock    uint64
	MaxRange     uint64
	MaxRetries   int
	RetryBackoff time.Duration
}

// Poller follows new blocks and publishes decoded events to sinks.
type Poller struct {
	cfg     PollerConfig
	source  Source
	decoder Decoder
	sinks   []Sink
	logger  *zap.Logger
	next    uint64
}

func NewPoller(cfg PollerConfig, source Source, decoder Decoder, logger *zap.Logger, sinks ...Sink) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.MaxRange == 0 {
		cfg.MaxRange = DefaultMaxRange
	}
	return &Poller{
		cfg:     cfg,
		source:  source,
		decoder: decoder,
		sinks:   sinks,
		logger:  logger,
		next:    cfg.FromBlock,
	}
}

// Run polls until ctx is cancelled. Poll failures are logged and retried on
// the next tick.
func (p *Poller) Run(ctx context.Context) error {
	if len(p.cfg.Addresses) == 0 {
		return fmt.Errorf("at least one contract address is required")
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := p.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("feed poll failed", zap.Error(err), zap.Uint64("next", p.next))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll fetches one range of new blocks and returns the number of events published.
func (p *Poller) Poll(ctx context.Context) (int, error) {
	latest, err := retry.Value(ctx, p.retryPolicy("feed_latest_block"), p.source.LatestBlockNumber)
	if err != nil {
		return 0, fmt.Errorf("latest block: %w", err)
	}
	if p.next == 0 {
		p.next = latest
	}
	span, ok := indexer.NextRange(p.next, latest, p.cfg.MaxRange)
	if !ok {
		return 0, nil
	}
	from, to := span.From, span.To

	logs, err := retry.Value(ctx, p.retryPolicy("feed_filter_logs"), func(ctx context.Context) ([]types.Log, error) {
		return p.source.FilterLogs(ctx, from, to, p.cfg.Addresses, p.decoder.Topics())
	})
	if err != nil {
		return 0, fmt.Errorf("filter logs %d-%d: %w", from, to, err)
	}

	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	// Resolve every timestamp before publishing: a failed range publishes nothing.
	timestamps := make(map[uint64]uint64)
	for _, log := range logs {
		if log.Removed {
			continue
		}
		if _, ok := timestamps[log.BlockNumber]; ok {
			continue
		}
		blockNumber := log.BlockNumber
		ts, err := retry.Value(ctx, p.retryPolicy("feed_block_timestamp"), func(ctx context.Context) (uint64, error) {
			return p.source.BlockTimestamp(ctx, blockNumber)
		})
		if err != nil {
			return 0, fmt.Errorf("block timestamp %d: %w", blockNumber, err)
		}
		timestamps[blockNumber] = ts
	}

	ingestedAt := time.Now().UTC()
	published := 0
	for _, log := range logs {
		if log.Removed {
			continue
		}
		event, err := p.decoder.Decode(model.NewLogRecord(p.cfg.ChainID, log, timestamps[log.BlockNumber], ingestedAt))
		if err != nil {
			p.logger.Debug("skip undecodable log", zap.Error(err), zap.String("tx", log.TxHash.Hex()))
			continue
		}
		for _, sink := range p.sinks {
			if err := sink.Publish(ctx, *event); err != nil {
				p.logger.Warn("feed sink failed", zap.Error(err), zap.String("event", event.EventName))
			}
		}
		published++
	}

	p.next = to + 1
	return published, nil
}

// Next returns the next block the poller will fetch.
func (p *Poller) Next() uint64 {
	return p.next
}

func (p *Poller) retryPolicy(op string) retry.Policy {
	policy := retry.Exponential(p.cfg.MaxRetries, p.cfg.RetryBackoff)
	policy.OnRetry = func(int, error) {
		observability.RPCRetries.WithLabelValues(op).Inc()
	}
	return policy
}
