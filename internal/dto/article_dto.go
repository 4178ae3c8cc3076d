package dto

import (
	"time"

	"github.com/google/uuid"

	"heritage-archive-api/internal/domain"
)

// CreateArticleRequest represents the request to create a new article
type CreateArticleRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=255"`
	Slug    string `json:"slug" binding:"required,min=1,max=255"`
	Summary string `json:"summary" binding:"omitempty,max=1000"`
	Content string `json:"content" binding:"required"`
}

// UpdateArticleRequest is an explicit partial-update structure: only non-nil
// fields are applied, and only these columns are mutable through the API.
type UpdateArticleRequest struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Summary *string `json:"summary,omitempty" binding:"omitempty,max=1000"`
	Content *string `json:"content,omitempty" binding:"omitempty,min=1"`
}

// ArticleResponse represents an article
type ArticleResponse struct {
	ArticleID    uuid.UUID            `json:"articleId"`
	AuthorID     uuid.UUID            `json:"authorId"`
	AuthorName   string               `json:"authorName,omitempty"`
	Slug         string               `json:"slug"`
	Title        string               `json:"title"`
	Summary      string               `json:"summary"`
	Content      string               `json:"content,omitempty"`
	Status       domain.ArticleStatus `json:"status"`
	CommentCount int                  `json:"commentCount"`
	ViewCount    int64                `json:"viewCount"`
	PublishedAt  *time.Time           `json:"publishedAt,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// ArticleListResponse represents a page of articles
type ArticleListResponse struct {
	Articles   []ArticleResponse `json:"articles"`
	Pagination Pagination        `json:"pagination"`
}

// ToArticleResponse converts a domain article to its response shape.
// When summary is true the content body is omitted.
func ToArticleResponse(a *domain.Article, summary bool) ArticleResponse {
	resp := ArticleResponse{
		ArticleID:    a.ID,
		AuthorID:     a.AuthorID,
		AuthorName:   a.Author.DisplayName,
		Slug:         a.Slug,
		Title:        a.Title,
		Summary:      a.Summary,
		Status:       a.Status,
		CommentCount: a.CommentCount,
		ViewCount:    a.ViewCount,
		PublishedAt:  a.PublishedAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if !summary {
		resp.Content = a.Content
	}
	return resp
}
