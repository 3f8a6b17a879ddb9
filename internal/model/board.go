package model

// Post is a Board post as shown to readers.
type Post struct {
	ID             uint64 `json:"id"`
	Author         string `json:"author"`
	AuthorNickname string `json:"author_nickname"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Timestamp      uint64 `json:"timestamp"`
	Likes          uint64 `json:"likes"`
	MonAmount      string `json:"mon_amount"`
}

// PostPage is one newest-first page of posts.
type PostPage struct {
	Page    int    `json:"page"`
	Total   uint64 `json:"total"`
	Posts   []Post `json:"posts"`
	HasMore bool   `json:"has_more"`
}
