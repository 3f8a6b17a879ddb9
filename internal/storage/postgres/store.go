package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"monadArcade/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS leaderboard (
	chain_id        BIGINT      NOT NULL,
	address         TEXT        NOT NULL,
	score           NUMERIC     NOT NULL DEFAULT 0,
	slot_spins      BIGINT      NOT NULL DEFAULT 0,
	slot_bet        NUMERIC     NOT NULL DEFAULT 0,
	slot_won        NUMERIC     NOT NULL DEFAULT 0,
	votes           BIGINT      NOT NULL DEFAULT 0,
	vote_amount     NUMERIC     NOT NULL DEFAULT 0,
	posts           BIGINT      NOT NULL DEFAULT 0,
	likes_given     BIGINT      NOT NULL DEFAULT 0,
	likes_received  BIGINT      NOT NULL DEFAULT 0,
	swaps           BIGINT      NOT NULL DEFAULT 0,
	last_block      BIGINT      NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, address)
);
CREATE INDEX IF NOT EXISTS leaderboard_score_idx ON leaderboard (chain_id, score DESC);
CREATE TABLE IF NOT EXISTS indexer_state (
	name              TEXT PRIMARY KEY,
	last_processed_ts BIGINT      NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const leaderboardColumns = `address, score::text, slot_spins, slot_bet::text, slot_won::text, votes,
	vote_amount::text, posts, likes_given, likes_received, swaps, last_block, updated_at`

// Store provides Postgres persistence for the leaderboard.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the leaderboard and indexer_state tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// UpsertLeaderboard inserts or replaces leaderboard rows.
func (s *Store) UpsertLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO leaderboard (
				chain_id, address, score, slot_spins, slot_bet, slot_won, votes, vote_amount,
				posts, likes_given, likes_received, swaps, last_block, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now(),now())
			ON CONFLICT (chain_id, address)
			DO UPDATE SET
				score = EXCLUDED.score,
				slot_spins = EXCLUDED.slot_spins,
				slot_bet = EXCLUDED.slot_bet,
				slot_won = EXCLUDED.slot_won,
				votes = EXCLUDED.votes,
				vote_amount = EXCLUDED.vote_amount,
				posts = EXCLUDED.posts,
				likes_given = EXCLUDED.likes_given,
				likes_received = EXCLUDED.likes_received,
				swaps = EXCLUDED.swaps,
				last_block = GREATEST(leaderboard.last_block, EXCLUDED.last_block),
				updated_at = now()
		`,
			int64(e.ChainID),
			e.Address,
			e.Score,
			int64(e.SlotSpins),
			e.SlotBet,
			e.SlotWon,
			int64(e.Votes),
			e.VoteAmount,
			int64(e.Posts),
			int64(e.LikesGiven),
			int64(e.LikesReceived),
			int64(e.Swaps),
			int64(e.LastBlock),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range entries {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadLeaderboard returns every row for a chain.
func (s *Store) LoadLeaderboard(ctx context.Context, chainID uint64) ([]model.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+leaderboardColumns+` FROM leaderboard WHERE chain_id=$1`,
		int64(chainID))
	if err != nil {
		return nil, err
	}
	return scanEntries(rows, chainID)
}

// TopLeaderboard returns the highest scoring rows for a chain.
func (s *Store) TopLeaderboard(ctx context.Context, chainID uint64, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+leaderboardColumns+` FROM leaderboard WHERE chain_id=$1 ORDER BY score DESC, address LIMIT $2`,
		int64(chainID), limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows, chainID)
}

func scanEntries(rows pgx.Rows, chainID uint64) ([]model.LeaderboardEntry, error) {
	defer rows.Close()

	var out []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		var spins, votes, posts, given, received, swaps, lastBlk int64
		if err := rows.Scan(&e.Address, &e.Score, &spins, &e.SlotBet, &e.SlotWon, &votes,
			&e.VoteAmount, &posts, &given, &received, &swaps, &lastBlk, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.ChainID = chainID
		e.SlotSpins = uint64(spins)
		e.Votes = uint64(votes)
		e.Posts = uint64(posts)
		e.LikesGiven = uint64(given)
		e.LikesReceived = uint64(received)
		e.Swaps = uint64(swaps)
		e.LastBlock = uint64(lastBlk)
		out = append(out, e)
	}
	return out, rows.Err()
}

// LoadState returns last_processed_ts for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var ts int64
	row := s.pool.QueryRow(ctx, `SELECT last_processed_ts FROM indexer_state WHERE name=$1`, name)
	if err := row.Scan(&ts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(ts), true, nil
}

// SaveState upserts last_processed_ts for a name.
func (s *Store) SaveState(ctx context.Context, name string, ts uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO indexer_state (name, last_processed_ts, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_processed_ts = EXCLUDED.last_processed_ts, updated_at = now()
	`, name, int64(ts))
	return err
}
