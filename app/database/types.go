package database

import (
	"time"
)

// Post is a persisted blog post. Identity and creation timestamp are
// assigned on insert and immutable afterwards. Timestamps are UTC
// time.Time at this boundary; no other representation leaves the package.
type Post struct {
	ID        int64
	Title     string
	Subtitle  string // empty when stored as NULL
	Content   string
	CreatedAt time.Time
}

// Page is one page of posts ordered by creation time descending.
type Page struct {
	Posts       []Post
	Total       int
	Pages       int
	CurrentPage int
	HasNext     bool
	HasPrev     bool
}
