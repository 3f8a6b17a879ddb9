package api

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"monadArcade/internal/amm"
	"monadArcade/internal/chain"
	"monadArcade/internal/explorer"
	"monadArcade/internal/hunt"
	"monadArcade/internal/leaderboard"
	"monadArcade/internal/model"
)

type leaderboardRow struct {
	Address string  `json:"address"`
	Score   float64 `json:"score"`
}

type boardResponse struct {
	model.PostPage
	Top []model.Post `json:"top"`
}

type characterResponse struct {
	Character model.Character `json:"character"`
	Areas     []hunt.Area     `json:"areas"`
}

type quoteResponse struct {
	ZeroForOne         bool   `json:"zero_for_one"`
	AmountIn           string `json:"amount_in"`
	AmountOut          string `json:"amount_out"`
	AmountOutFormatted string `json:"amount_out_formatted"`
	MinAmountOut       string `json:"min_amount_out"`
	ReserveIn          string `json:"reserve_in"`
	ReserveOut         string `json:"reserve_out"`
	PriceImpactBps     int64  `json:"price_impact_bps"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("networkId")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "networkId is required")
		return
	}
	chainID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "networkId must be a number")
		return
	}
	if s.deps.Leaderboard == nil {
		writeError(w, http.StatusServiceUnavailable, "leaderboard is not configured")
		return
	}

	entries, err := s.deps.Leaderboard.TopLeaderboard(r.Context(), chainID, s.cfg.LeaderboardLimit)
	if err != nil {
		s.writeFailure(w, r, err, "failed to load the leaderboard")
		return
	}
	rows := make([]leaderboardRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, leaderboardRow{Address: e.Address, Score: leaderboard.ScoreValue(e.Score)})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if s.deps.Explorer == nil {
		writeError(w, http.StatusServiceUnavailable, "explorer is not configured")
		return
	}
	address := r.PathValue("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "wallet address is required")
		return
	}

	q := r.URL.Query()
	chainID := s.cfg.ChainID
	if raw := q.Get("networkId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unsupported network")
			return
		}
		chainID = parsed
	}
	if !s.deps.Explorer.Supports(chainID) {
		writeError(w, http.StatusBadRequest, "unsupported network")
		return
	}

	query := explorer.Query{
		Page:            atoiDefault(q.Get("page"), 0),
		Offset:          atoiDefault(q.Get("offset"), 0),
		StartBlock:      uint64(atoiDefault(q.Get("startblock"), 0)),
		EndBlock:        uint64(atoiDefault(q.Get("endblock"), 0)),
		Sort:            q.Get("sort"),
		ContractAddress: q.Get("contractaddress"),
	}
	page, err := s.deps.Explorer.Transactions(r.Context(), chainID, address, query)
	if err != nil {
		s.writeFailure(w, r, err, "failed to fetch transaction history")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleBoardPosts(w http.ResponseWriter, r *http.Request) {
	if s.deps.Board == nil {
		writeError(w, http.StatusServiceUnavailable, "board is not configured")
		return
	}
	page := atoiDefault(r.URL.Query().Get("page"), 0)
	if page < 0 {
		page = 0
	}

	var resp boardResponse
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		resp.PostPage, err = s.deps.Board.Page(ctx, page)
		return err
	})
	g.Go(func() error {
		var err error
		resp.Top, err = s.deps.Board.TopPosts(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.writeFailure(w, r, err, "failed to load posts")
		return
	}
	if resp.Top == nil {
		resp.Top = []model.Post{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNickname(w http.ResponseWriter, r *http.Request) {
	if s.deps.Board == nil {
		writeError(w, http.StatusServiceUnavailable, "board is not configured")
		return
	}
	user, ok := pathAddress(w, r)
	if !ok {
		return
	}
	nickname, err := s.deps.Board.Nickname(r.Context(), user)
	if err != nil {
		s.writeFailure(w, r, err, "failed to load nickname")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"address": user.Hex(), "nickname": nickname})
}

func (s *Server) handlePolls(w http.ResponseWriter, r *http.Request) {
	if s.deps.Polls == nil {
		writeError(w, http.StatusServiceUnavailable, "voting is not configured")
		return
	}
	polls, err := s.deps.Polls.Polls(r.Context())
	if err != nil {
		s.writeFailure(w, r, err, "failed to load polls")
		return
	}
	if polls == nil {
		polls = []model.Poll{}
	}
	writeJSON(w, http.StatusOK, polls)
}

func (s *Server) handleSlotPools(w http.ResponseWriter, r *http.Request) {
	if s.deps.Slot == nil {
		writeError(w, http.StatusServiceUnavailable, "slot machine is not configured")
		return
	}
	pools, err := s.deps.Slot.Pools(r.Context())
	if err != nil {
		s.writeFailure(w, r, err, "failed to load slot pools")
		return
	}
	writeJSON(w, http.StatusOK, pools)
}

func (s *Server) handleMonsters(w http.ResponseWriter, r *http.Request) {
	if s.deps.Hunt == nil {
		writeError(w, http.StatusServiceUnavailable, "auto hunt is not configured")
		return
	}
	monsters, err := s.deps.Hunt.Monsters(r.Context())
	if err != nil {
		s.writeFailure(w, r, err, "failed to load monsters")
		return
	}
	if monsters == nil {
		monsters = []model.Monster{}
	}
	writeJSON(w, http.StatusOK, monsters)
}

func (s *Server) handleCharacter(w http.ResponseWriter, r *http.Request) {
	if s.deps.Hunt == nil {
		writeError(w, http.StatusServiceUnavailable, "auto hunt is not configured")
		return
	}
	player, ok := pathAddress(w, r)
	if !ok {
		return
	}
	character, err := s.deps.Hunt.Character(r.Context(), player)
	if err != nil {
		s.writeFailure(w, r, err, "failed to load character")
		return
	}
	level, _ := strconv.ParseUint(character.Level, 10, 64)
	writeJSON(w, http.StatusOK, characterResponse{Character: character, Areas: hunt.AreasFor(level)})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if s.deps.Pair == nil {
		writeError(w, http.StatusServiceUnavailable, "pair is not configured")
		return
	}
	q := r.URL.Query()
	amountIn, err := chain.ParseEther(q.Get("amountIn"))
	if err != nil || amountIn.Sign() < 0 {
		writeError(w, http.StatusBadRequest, "amountIn must be a non-negative decimal amount")
		return
	}
	zeroForOne := true
	if raw := q.Get("zeroForOne"); raw != "" {
		zeroForOne, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "zeroForOne must be true or false")
			return
		}
	}
	slippage, err := strconv.ParseUint(defaultString(q.Get("slippageBps"), "0"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "slippageBps must be a whole number")
		return
	}

	reserves, err := s.deps.Pair.Reserves(r.Context())
	if err != nil {
		s.writeFailure(w, r, err, "failed to read pair reserves")
		return
	}
	quote, err := amm.QuoteExactIn(reserves, amountIn, zeroForOne)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	minOut, err := amm.MinAmountOut(quote.AmountOut, uint32(slippage))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		ZeroForOne:         quote.ZeroForOne,
		AmountIn:           quote.AmountIn.String(),
		AmountOut:          quote.AmountOut.String(),
		AmountOutFormatted: chain.FormatEther(quote.AmountOut),
		MinAmountOut:       minOut.String(),
		ReserveIn:          quote.ReserveIn.String(),
		ReserveOut:         quote.ReserveOut.String(),
		PriceImpactBps:     quote.PriceImpactBps,
	})
}

func pathAddress(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	raw := r.PathValue("address")
	if !common.IsHexAddress(raw) {
		writeError(w, http.StatusBadRequest, "invalid address")
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func atoiDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
