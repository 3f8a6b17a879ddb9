package model

// SlotPools holds the SlotMachine pool balances in wei.
type SlotPools struct {
	Jackpot string `json:"jackpot"`
	Owner   string `json:"owner"`
}

// SpinResult is the outcome of one slot spin.
type SpinResult struct {
	TxHash    string   `json:"tx_hash"`
	Player    string   `json:"player"`
	BetAmount string   `json:"bet_amount"`
	Result    [3]uint8 `json:"result"`
	Symbols   []string `json:"symbols"`
	WinAmount string   `json:"win_amount"`
	Won       bool     `json:"won"`
	// Streak is the player's consecutive wins in this session, this spin included.
	Streak   int `json:"streak"`
	BonusPct int `json:"bonus_pct"`
}

// Character is an AutoHunt character.
type Character struct {
	Level        string `json:"level"`
	Exp          string `json:"exp"`
	Power        string `json:"power"`
	LastHuntTime uint64 `json:"last_hunt_time"`
	IsHunting    bool   `json:"is_hunting"`
}

// Monster is an AutoHunt monster. ID is its index in the contract's list.
type Monster struct {
	ID       uint64 `json:"id"`
	Level    string `json:"level"`
	HP       string `json:"hp"`
	Exp      string `json:"exp"`
	GCReward string `json:"gc_reward"`
}
