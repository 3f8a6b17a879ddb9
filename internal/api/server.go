// Package api serves the arcade's HTTP surface: donation transactions,
// leaderboard, explorer history, screen reads and the live feed.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"monadArcade/internal/amm"
	"monadArcade/internal/explorer"
	"monadArcade/internal/leaderboard"
	"monadArcade/internal/model"
	"monadArcade/internal/observability"
	"monadArcade/internal/revert"
)

// BoardReader serves board pages.
type BoardReader interface {
	Page(ctx context.Context, page int) (model.PostPage, error)
	TopPosts(ctx context.Context) ([]model.Post, error)
	Nickname(ctx context.Context, user common.Address) (string, error)
}

// PollReader lists polls.
type PollReader interface {
	Polls(ctx context.Context) ([]model.Poll, error)
}

// SlotReader reads the slot machine pools.
type SlotReader interface {
	Pools(ctx context.Context) (model.SlotPools, error)
}

// HuntReader reads the auto-hunt game state.
type HuntReader interface {
	Monsters(ctx context.Context) ([]model.Monster, error)
	Character(ctx context.Context, player common.Address) (model.Character, error)
}

// PairReader reads the reserves of the quoted V2 pair.
type PairReader interface {
	Reserves(ctx context.Context) (amm.Reserves, error)
}

// TransactionReader reads account history from a block explorer.
type TransactionReader interface {
	Supports(chainID uint64) bool
	Transactions(ctx context.Context, chainID uint64, address string, q explorer.Query) (explorer.Page, error)
}

// Deps are the backends behind each route. A nil dependency turns its
// routes into 503 responses.
type Deps struct {
	Board       BoardReader
	Polls       PollReader
	Slot        SlotReader
	Hunt        HuntReader
	Pair        PairReader
	Explorer    TransactionReader
	Leaderboard leaderboard.Reader
	Feed        http.Handler
}

// Config holds the values the handlers stamp into responses.
type Config struct {
	ChainID          uint64
	Donation         common.Address
	LeaderboardLimit int
}

// Server routes API requests.
type Server struct {
	cfg    Config
	deps   Deps
	logger *zap.Logger
	mux    *http.ServeMux
}

func NewServer(cfg Config, deps Deps, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LeaderboardLimit <= 0 {
		cfg.LeaderboardLimit = 100
	}
	s := &Server{cfg: cfg, deps: deps, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.handle("POST /api/donate", s.handleDonate)
	s.handle("GET /api/actions/donate-mon", s.handleActionMetadata)
	s.handle("POST /api/actions/donate-mon", s.handleActionTransaction)
	s.handle("OPTIONS /api/actions/donate-mon", s.handleActionOptions)
	s.handle("GET /api/leaderboard", s.handleLeaderboard)
	s.handle("GET /api/transactions/{address}", s.handleTransactions)
	s.handle("GET /api/board/posts", s.handleBoardPosts)
	s.handle("GET /api/board/nicknames/{address}", s.handleNickname)
	s.handle("GET /api/polls", s.handlePolls)
	s.handle("GET /api/slot/pools", s.handleSlotPools)
	s.handle("GET /api/hunt/monsters", s.handleMonsters)
	s.handle("GET /api/hunt/characters/{address}", s.handleCharacter)
	s.handle("GET /api/quote", s.handleQuote)
	s.mux.Handle("GET /api/feed", observability.Instrument("GET /api/feed", http.HandlerFunc(s.handleFeed)))
	s.mux.Handle("GET /metrics", observability.Handler())
}

func (s *Server) handle(pattern string, fn http.HandlerFunc) {
	s.mux.Handle(pattern, observability.Instrument(pattern, fn))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if s.deps.Feed == nil {
		writeError(w, http.StatusServiceUnavailable, "live feed is disabled")
		return
	}
	s.deps.Feed.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeFailure classifies err and picks a status from its code.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	classified := revert.Classify(err, fallback)
	status := http.StatusInternalServerError
	switch {
	case classified.Code == revert.CodeInvalidInput:
		status = http.StatusBadRequest
	case classified.Code == revert.CodeRateLimited:
		status = http.StatusTooManyRequests
	case errors.Is(err, context.Canceled):
		status = 499
	case classified.Code != revert.CodeUnknown:
		status = http.StatusUnprocessableEntity
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeError(w, status, classified.Message)
}

func badRequest(message string) error {
	return revert.New(revert.CodeInvalidInput, message)
}
