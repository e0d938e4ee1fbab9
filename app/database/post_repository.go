package database

import (
	"database/sql"
	"fmt"
	"time"
)

// PostRepository handles database operations for blog posts
type PostRepository struct {
	db *DB
}

func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{db: db}
}

// Insert stores a new post, assigning identity and a UTC creation
// timestamp. The write is transactional: on failure nothing is persisted
// and the error is returned.
func (r *PostRepository) Insert(title, subtitle, content string) (*Post, error) {
	now := time.Now().UTC()

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := tx.Exec(`
		INSERT INTO posts (title, subtitle, content, created_at)
		VALUES (?, NULLIF(?, ''), ?, ?)
	`, title, subtitle, content, now)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit insert: %w", err)
	}

	return &Post{
		ID:        id,
		Title:     title,
		Subtitle:  subtitle,
		Content:   content,
		CreatedAt: now,
	}, nil
}

// List returns one page of posts ordered by creation time descending.
// Page numbers below 1 are clamped to 1.
func (r *PostRepository) List(page, perPage int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	pages := (total + perPage - 1) / perPage

	rows, err := r.db.Query(`
		SELECT id, title, COALESCE(subtitle, ''), content, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]Post, 0, perPage)
	for rows.Next() {
		var post Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Subtitle, &post.Content, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return &Page{
		Posts:       posts,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
		HasNext:     page < pages,
		HasPrev:     page > 1 && total > 0,
	}, nil
}

// Get returns the post with the given id, or nil when absent.
func (r *PostRepository) Get(id int64) (*Post, error) {
	var post Post
	err := r.db.QueryRow(`
		SELECT id, title, COALESCE(subtitle, ''), content, created_at
		FROM posts
		WHERE id = ?
	`, id).Scan(&post.ID, &post.Title, &post.Subtitle, &post.Content, &post.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// Delete removes the post with the given id. Returns true when a row was
// removed. The write is transactional.
func (r *PostRepository) Delete(id int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := tx.Exec("DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit delete: %w", err)
	}

	return affected > 0, nil
}

// Count returns the total number of stored posts.
func (r *PostRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}
