package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arxivpress/arxivpress/app/blog"
	"github.com/arxivpress/arxivpress/app/database"
)

const defaultPerPage = 10

func NewHandler(postRepo PostRepository, generator PostGenerator, version string) *Handler {
	return &Handler{
		postRepo:  postRepo,
		generator: generator,
		version:   version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if postCount, err := h.postRepo.Count(); err == nil {
		health["posts"] = postCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListPosts(c *gin.Context) {
	page := parsePositiveInt(c.Query("page"), 1)
	perPage := parsePositiveInt(c.Query("per_page"), defaultPerPage)

	result, err := h.postRepo.List(page, perPage)
	if err != nil {
		slog.Error("Database error", "operation", "list_posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	posts := make([]postPayload, 0, len(result.Posts))
	for _, p := range result.Posts {
		posts = append(posts, postPayload{
			ID:        p.ID,
			Title:     p.Title,
			Subtitle:  p.Subtitle,
			Excerpt:   excerpt(p.Content),
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, listPayload{
		Posts:       posts,
		Total:       result.Total,
		Pages:       result.Pages,
		CurrentPage: result.CurrentPage,
		HasNext:     result.HasNext,
		HasPrev:     result.HasPrev,
	})
}

func (h *Handler) GetPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	post, err := h.postRepo.Get(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_post", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, renderPost(post))
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.Title == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	post, err := h.postRepo.Insert(req.Title, req.Subtitle, req.Content)
	if err != nil {
		slog.Error("Database error", "operation", "create_post", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, renderPost(post))
}

func (h *Handler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	removed, err := h.postRepo.Delete(id)
	if err != nil {
		slog.Error("Database error", "operation", "delete_post", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
}

func (h *Handler) GeneratePost(c *gin.Context) {
	post, err := h.generator.GeneratePost(c.Request.Context())
	if err != nil {
		if errors.Is(err, blog.ErrNoPapers) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "No recent papers available for generation"})
			return
		}

		slog.Error("Post generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Post generation failed"})
		return
	}

	c.JSON(http.StatusCreated, renderPost(post))
}

func renderPost(p *database.Post) postPayload {
	return postPayload{
		ID:        p.ID,
		Title:     p.Title,
		Subtitle:  p.Subtitle,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
