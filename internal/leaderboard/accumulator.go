package leaderboard

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"monadArcade/internal/events"
	"monadArcade/internal/model"
)

// Accumulator holds the running totals of one address.
type Accumulator struct {
	ChainID       uint64
	Address       string
	SlotSpins     uint64
	SlotBet       *big.Int
	SlotWon       *big.Int
	Votes         uint64
	VoteAmount    *big.Int
	Posts         uint64
	LikesGiven    uint64
	LikesReceived uint64
	Swaps         uint64
	LastBlock     uint64
	dirty         bool
}

func NewAccumulator(chainID uint64, address string) *Accumulator {
	return &Accumulator{
		ChainID:    chainID,
		Address:    address,
		SlotBet:    big.NewInt(0),
		SlotWon:    big.NewInt(0),
		VoteAmount: big.NewInt(0),
	}
}

// FromEntry restores an accumulator from a stored row.
func FromEntry(entry model.LeaderboardEntry) (*Accumulator, error) {
	acc := NewAccumulator(entry.ChainID, addressKey(entry.Address))
	var err error
	if acc.SlotBet, err = parseBigInt(entry.SlotBet); err != nil {
		return nil, err
	}
	if acc.SlotWon, err = parseBigInt(entry.SlotWon); err != nil {
		return nil, err
	}
	if acc.VoteAmount, err = parseBigInt(entry.VoteAmount); err != nil {
		return nil, err
	}
	acc.SlotSpins = entry.SlotSpins
	acc.Votes = entry.Votes
	acc.Posts = entry.Posts
	acc.LikesGiven = entry.LikesGiven
	acc.LikesReceived = entry.LikesReceived
	acc.Swaps = entry.Swaps
	acc.LastBlock = entry.LastBlock
	return acc, nil
}

// Score is MON won from the slot machine plus MON voted, in wei.
func (a *Accumulator) Score() *big.Int {
	return new(big.Int).Add(a.SlotWon, a.VoteAmount)
}

// Entry renders the accumulator as a storable row. Score is in ether units.
func (a *Accumulator) Entry() model.LeaderboardEntry {
	return model.LeaderboardEntry{
		ChainID:       a.ChainID,
		Address:       a.Address,
		Score:         formatTokenAmount(a.Score(), 18),
		SlotSpins:     a.SlotSpins,
		SlotBet:       a.SlotBet.String(),
		SlotWon:       a.SlotWon.String(),
		Votes:         a.Votes,
		VoteAmount:    a.VoteAmount.String(),
		Posts:         a.Posts,
		LikesGiven:    a.LikesGiven,
		LikesReceived: a.LikesReceived,
		Swaps:         a.Swaps,
		LastBlock:     a.LastBlock,
	}
}

func (a *Accumulator) touch(block uint64) {
	if block > a.LastBlock {
		a.LastBlock = block
	}
	a.dirty = true
}

// Ledger folds typed events into per-address accumulators.
type Ledger struct {
	chainID     uint64
	accounts    map[string]*Accumulator
	postAuthors map[string]string
}

func NewLedger(chainID uint64) *Ledger {
	return &Ledger{
		chainID:     chainID,
		accounts:    make(map[string]*Accumulator),
		postAuthors: make(map[string]string),
	}
}

// Seed installs previously stored totals.
func (l *Ledger) Seed(entries []model.LeaderboardEntry) error {
	for _, entry := range entries {
		acc, err := FromEntry(entry)
		if err != nil {
			return fmt.Errorf("seed %s: %w", entry.Address, err)
		}
		l.accounts[acc.Address] = acc
	}
	return nil
}

func (l *Ledger) account(address string) *Accumulator {
	key := addressKey(address)
	acc := l.accounts[key]
	if acc == nil {
		acc = NewAccumulator(l.chainID, key)
		l.accounts[key] = acc
	}
	return acc
}

// Get returns the accumulator of address, if any.
func (l *Ledger) Get(address string) (*Accumulator, bool) {
	acc, ok := l.accounts[addressKey(address)]
	return acc, ok
}

// Len returns the number of tracked addresses.
func (l *Ledger) Len() int {
	return len(l.accounts)
}

// Apply folds one event. Events the leaderboard does not score are ignored.
func (l *Ledger) Apply(record model.TypedEventRecord) error {
	switch record.EventName {
	case events.Spin:
		var spin model.SpinEventData
		if err := json.Unmarshal(record.Decoded, &spin); err != nil {
			return fmt.Errorf("decode spin: %w", err)
		}
		bet, err := parseBigInt(spin.BetAmount)
		if err != nil {
			return err
		}
		won, err := parseBigInt(spin.WinAmount)
		if err != nil {
			return err
		}
		acc := l.account(spin.Player)
		acc.SlotSpins++
		acc.SlotBet.Add(acc.SlotBet, bet)
		acc.SlotWon.Add(acc.SlotWon, won)
		acc.touch(record.BlockNumber)

	case events.Voted:
		var vote model.VotedData
		if err := json.Unmarshal(record.Decoded, &vote); err != nil {
			return fmt.Errorf("decode vote: %w", err)
		}
		amount, err := parseBigInt(vote.Amount)
		if err != nil {
			return err
		}
		acc := l.account(vote.Voter)
		acc.Votes++
		acc.VoteAmount.Add(acc.VoteAmount, amount)
		acc.touch(record.BlockNumber)

	case events.PostCreated:
		var post model.PostCreatedData
		if err := json.Unmarshal(record.Decoded, &post); err != nil {
			return fmt.Errorf("decode post: %w", err)
		}
		l.postAuthors[post.PostID] = addressKey(post.Author)
		acc := l.account(post.Author)
		acc.Posts++
		acc.touch(record.BlockNumber)

	case events.PostLiked:
		var like model.PostLikedData
		if err := json.Unmarshal(record.Decoded, &like); err != nil {
			return fmt.Errorf("decode like: %w", err)
		}
		liker := l.account(like.Liker)
		liker.LikesGiven++
		liker.touch(record.BlockNumber)
		if author, ok := l.postAuthors[like.PostID]; ok {
			acc := l.account(author)
			acc.LikesReceived++
			acc.touch(record.BlockNumber)
		}

	case events.PairSwap:
		if record.Contract != events.ContractPair {
			return nil
		}
		var swap model.PairSwapData
		if err := json.Unmarshal(record.Decoded, &swap); err != nil {
			return fmt.Errorf("decode swap: %w", err)
		}
		acc := l.account(swap.To)
		acc.Swaps++
		acc.touch(record.BlockNumber)
	}
	return nil
}

// Drain returns the rows changed since the last drain and clears their dirty mark.
func (l *Ledger) Drain() []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, 0)
	for _, acc := range l.accounts {
		if !acc.dirty {
			continue
		}
		out = append(out, acc.Entry())
		acc.dirty = false
	}
	return out
}

func parseBigInt(value string) (*big.Int, error) {
	if value == "" {
		return big.NewInt(0), nil
	}
	parsed, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid int: %s", value)
	}
	return parsed, nil
}

func addressKey(address string) string {
	return strings.ToLower(address)
}
