package model

// Poll is the result view of a Voting poll. Vote amounts are wei strings.
type Poll struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Votes       []string `json:"votes"`
	TotalVotes  string   `json:"total_votes"`
	StartTime   uint64   `json:"start_time"`
	EndTime     uint64   `json:"end_time"`
	IsActive    bool     `json:"is_active"`
}
