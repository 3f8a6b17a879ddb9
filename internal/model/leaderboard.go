package model

import "time"

// LeaderboardEntry stores the aggregated activity of one address.
type LeaderboardEntry struct {
	ChainID       uint64    `json:"chain_id"`
	Address       string    `json:"address"`
	Score         string    `json:"score"`
	SlotSpins     uint64    `json:"slot_spins"`
	SlotBet       string    `json:"slot_bet"`
	SlotWon       string    `json:"slot_won"`
	Votes         uint64    `json:"votes"`
	VoteAmount    string    `json:"vote_amount"`
	Posts         uint64    `json:"posts"`
	LikesGiven    uint64    `json:"likes_given"`
	LikesReceived uint64    `json:"likes_received"`
	Swaps         uint64    `json:"swaps"`
	LastBlock     uint64    `json:"last_block"`
	UpdatedAt     time.Time `json:"updated_at"`
}
