package dto

import (
	"time"

	"github.com/google/uuid"

	"heritage-archive-api/internal/domain"
)

// Comment sort orders accepted by the list endpoint
const (
	CommentSortNewest = "newest"
	CommentSortOldest = "oldest"
	CommentSortLikes  = "likes"
)

// CreateCommentRequest represents the request to create a new comment.
// parentId, when set, must reference an approved top-level comment on the
// same article.
type CreateCommentRequest struct {
	ArticleID uuid.UUID  `json:"articleId" binding:"required"`
	Content   string     `json:"content" binding:"required"`
	ParentID  *uuid.UUID `json:"parentId,omitempty" binding:"omitempty"`
}

// UpdateCommentRequest represents the request to update a comment's content
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentListQuery represents the query string for listing comments
type CommentListQuery struct {
	ListQuery
	Sort string `form:"sort,default=newest" binding:"omitempty,oneof=newest oldest likes"`
}

// CommentResponse represents a comment, with its approved replies when listed
type CommentResponse struct {
	CommentID  uuid.UUID         `json:"commentId"`
	ArticleID  uuid.UUID         `json:"articleId"`
	UserID     uuid.UUID         `json:"userId"`
	AuthorName string            `json:"authorName,omitempty"`
	ParentID   *uuid.UUID        `json:"parentId,omitempty"`
	Content    string            `json:"content"`
	IsApproved bool              `json:"isApproved"`
	LikeCount  int               `json:"likeCount"`
	ReplyCount int               `json:"replyCount"`
	Replies    []CommentResponse `json:"replies"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// CommentListResponse represents a page of top-level comments
type CommentListResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination Pagination        `json:"pagination"`
}

// ToggleLikeResponse reports the like state after a toggle
type ToggleLikeResponse struct {
	CommentID uuid.UUID `json:"commentId"`
	Liked     bool      `json:"liked"`
	LikeCount int       `json:"likeCount"`
}

// ApproveCommentResponse reports the approval state after an approve call
type ApproveCommentResponse struct {
	CommentID  uuid.UUID `json:"id"`
	IsApproved bool      `json:"isApproved"`
}

// PendingCommentResponse represents an unapproved comment in the moderation
// queue, annotated with its article and author
type PendingCommentResponse struct {
	CommentID    uuid.UUID  `json:"commentId"`
	ArticleID    uuid.UUID  `json:"articleId"`
	ArticleTitle string     `json:"articleTitle"`
	ArticleSlug  string     `json:"articleSlug"`
	UserID       uuid.UUID  `json:"userId"`
	AuthorName   string     `json:"authorName"`
	ParentID     *uuid.UUID `json:"parentId,omitempty"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// PendingCommentListResponse represents the moderation queue
type PendingCommentListResponse struct {
	PendingComments []PendingCommentResponse `json:"pendingComments"`
	Count           int                      `json:"count"`
}

// DeleteCommentResponse confirms a deletion
type DeleteCommentResponse struct {
	Message string `json:"message"`
}

// ToCommentResponse converts a domain comment to its response shape.
// Replies are converted one level deep; deeper nesting never exists.
func ToCommentResponse(c *domain.Comment) CommentResponse {
	resp := CommentResponse{
		CommentID:  c.ID,
		ArticleID:  c.ArticleID,
		UserID:     c.UserID,
		AuthorName: c.User.DisplayName,
		ParentID:   c.ParentID,
		Content:    c.Content,
		IsApproved: c.IsApproved,
		LikeCount:  c.LikeCount,
		ReplyCount: len(c.Replies),
		Replies:    make([]CommentResponse, 0, len(c.Replies)),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	for i := range c.Replies {
		reply := c.Replies[i]
		resp.Replies = append(resp.Replies, CommentResponse{
			CommentID:  reply.ID,
			ArticleID:  reply.ArticleID,
			UserID:     reply.UserID,
			AuthorName: reply.User.DisplayName,
			ParentID:   reply.ParentID,
			Content:    reply.Content,
			IsApproved: reply.IsApproved,
			LikeCount:  reply.LikeCount,
			Replies:    []CommentResponse{},
			CreatedAt:  reply.CreatedAt,
			UpdatedAt:  reply.UpdatedAt,
		})
	}
	return resp
}
