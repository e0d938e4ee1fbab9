package api

import (
	"context"

	"github.com/arxivpress/arxivpress/app/blog"
	"github.com/arxivpress/arxivpress/app/database"
)

type PostRepository interface {
	Insert(title, subtitle, content string) (*database.Post, error)
	List(page, perPage int) (*database.Page, error)
	Get(id int64) (*database.Post, error)
	Delete(id int64) (bool, error)
	Count() (int, error)
}

var _ PostRepository = (*database.PostRepository)(nil)

type PostGenerator interface {
	GeneratePost(ctx context.Context) (*database.Post, error)
}

var _ PostGenerator = (*blog.Service)(nil)

type Handler struct {
	postRepo  PostRepository
	generator PostGenerator
	version   string
}

// postPayload is the JSON rendering of a stored post.
type postPayload struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
	Content   string `json:"content,omitempty"`
	CreatedAt string `json:"created_at"`
}

type listPayload struct {
	Posts       []postPayload `json:"posts"`
	Total       int           `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"current_page"`
	HasNext     bool          `json:"has_next"`
	HasPrev     bool          `json:"has_prev"`
}

type createRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Content  string `json:"content"`
}
