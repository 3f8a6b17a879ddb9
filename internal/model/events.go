package model

// PostCreatedData is the decoded Board PostCreated payload.
type PostCreatedData struct {
	PostID    string `json:"post_id"`
	Author    string `json:"author"`
	MonAmount string `json:"mon_amount"`
}

// PostLikedData is the decoded Board PostLiked payload.
type PostLikedData struct {
	PostID string `json:"post_id"`
	Liker  string `json:"liker"`
}

// NicknameSetData is the decoded Board NicknameSet payload.
type NicknameSetData struct {
	User     string `json:"user"`
	Nickname string `json:"nickname"`
}

// PollCreatedData is the decoded Voting PollCreated payload.
type PollCreatedData struct {
	PollID    string `json:"poll_id"`
	Title     string `json:"title"`
	StartTime uint64 `json:"start_time"`
	EndTime   uint64 `json:"end_time"`
}

// VotedData is the decoded Voting Voted payload.
type VotedData struct {
	PollID      string `json:"poll_id"`
	Voter       string `json:"voter"`
	OptionIndex uint64 `json:"option_index"`
	Amount      string `json:"amount"`
}

// PollEndedData is the decoded Voting PollEnded payload.
type PollEndedData struct {
	PollID string `json:"poll_id"`
}

// SpinEventData is the decoded SlotMachine Spin payload.
type SpinEventData struct {
	Player    string   `json:"player"`
	BetAmount string   `json:"bet_amount"`
	Result    [3]uint8 `json:"result"`
	Symbols   []string `json:"symbols"`
	WinAmount string   `json:"win_amount"`
}

// PairSwapData is the decoded UniswapV2 pair Swap payload.
type PairSwapData struct {
	Sender     string `json:"sender"`
	To         string `json:"to"`
	Amount0In  string `json:"amount0_in"`
	Amount1In  string `json:"amount1_in"`
	Amount0Out string `json:"amount0_out"`
	Amount1Out string `json:"amount1_out"`
}
