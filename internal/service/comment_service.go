package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/metrics"
	"heritage-archive-api/internal/repository"
	"heritage-archive-api/internal/response"
)

// maxCommentLength caps comment content after trimming
const maxCommentLength = 1000

// CommentService defines the interface for comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, actor *Actor, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, actor *Actor, articleID uuid.UUID, query *dto.CommentListQuery) (*dto.CommentListResponse, error)
	UpdateComment(ctx context.Context, actor *Actor, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actor *Actor, commentID uuid.UUID) error
	ToggleLike(ctx context.Context, actor *Actor, commentID uuid.UUID) (*dto.ToggleLikeResponse, error)
	ApproveComment(ctx context.Context, actor *Actor, commentID uuid.UUID) (*dto.ApproveCommentResponse, error)
	ListPendingComments(ctx context.Context, actor *Actor) (*dto.PendingCommentListResponse, error)
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	articleRepo repository.ArticleRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		metrics:     m,
		logger:      logger,
	}
}

// CreateComment creates a comment on a published article. Comments from
// admins are approved immediately; everyone else lands in the moderation
// queue. A reply must target an approved top-level comment on the same
// article, so threads never nest deeper than one level.
func (s *commentServiceImpl) CreateComment(ctx context.Context, actor *Actor, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, response.NewValidationError("Comment content must not be empty")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, response.NewValidationError("Comment content must not exceed 1000 characters")
	}

	article, err := s.articleRepo.FindByID(ctx, req.ArticleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Article not found")
		}
		return nil, response.NewStorageError("Failed to fetch article", err)
	}
	if article.Status != domain.ArticleStatusPublished {
		return nil, response.NewNotFoundError("Article not found")
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFoundError("Parent comment not found")
			}
			return nil, response.NewStorageError("Failed to fetch parent comment", err)
		}
		if parent.ArticleID != req.ArticleID {
			return nil, response.NewValidationError("Parent comment belongs to a different article")
		}
		if !parent.IsApproved {
			return nil, response.NewValidationError("Parent comment is not approved")
		}
		if !parent.IsTopLevel() {
			return nil, response.NewValidationError("Replies to replies are not allowed")
		}
	}

	comment := &domain.Comment{
		ArticleID:  req.ArticleID,
		UserID:     actor.UserID,
		ParentID:   req.ParentID,
		Content:    content,
		IsApproved: actor.IsAdmin(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewStorageError("Failed to create comment", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}

	// Reload to pick up the author preload; fall back to the in-memory
	// comment if the reload fails
	if created, err := s.commentRepo.FindByID(ctx, comment.ID); err == nil && created != nil {
		comment = created
	}

	resp := dto.ToCommentResponse(comment)
	return &resp, nil
}

// ListComments returns a page of approved top-level comments on a published
// article, each with its approved replies.
func (s *commentServiceImpl) ListComments(ctx context.Context, actor *Actor, articleID uuid.UUID, query *dto.CommentListQuery) (*dto.CommentListResponse, error) {
	query.Normalize()
	if query.Sort == "" {
		query.Sort = dto.CommentSortNewest
	}

	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Article not found")
		}
		return nil, response.NewStorageError("Failed to fetch article", err)
	}
	if article.Status != domain.ArticleStatusPublished && !actor.IsAdmin() {
		return nil, response.NewNotFoundError("Article not found")
	}

	comments, total, err := s.commentRepo.ListApprovedByArticle(ctx, articleID, query.Sort, query.Offset(), query.Limit)
	if err != nil {
		return nil, response.NewStorageError("Failed to list comments", err)
	}

	responses := make([]dto.CommentResponse, len(comments))
	for i, c := range comments {
		responses[i] = dto.ToCommentResponse(c)
	}
	return &dto.CommentListResponse{
		Comments:   responses,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdateComment edits the content of a comment. Only the comment's author and
// admins may edit; editing does not change the approval state.
func (s *commentServiceImpl) UpdateComment(ctx context.Context, actor *Actor, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, response.NewValidationError("Comment content must not be empty")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, response.NewValidationError("Comment content must not exceed 1000 characters")
	}

	comment, err := s.findOwnedComment(ctx, actor, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, response.NewStorageError("Failed to update comment", err)
	}

	resp := dto.ToCommentResponse(comment)
	return &resp, nil
}

// DeleteComment removes the comment along with its replies and likes. Only
// the comment's author and admins may delete.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, actor *Actor, commentID uuid.UUID) error {
	if _, err := s.findOwnedComment(ctx, actor, commentID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return response.NewStorageError("Failed to delete comment", err)
	}
	return nil
}

// ToggleLike flips the actor's like on an approved comment and returns the
// resulting state. Toggling twice restores the original state.
func (s *commentServiceImpl) ToggleLike(ctx context.Context, actor *Actor, commentID uuid.UUID) (*dto.ToggleLikeResponse, error) {
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Comment not found")
		}
		return nil, response.NewStorageError("Failed to fetch comment", err)
	}
	if !comment.IsApproved {
		return nil, response.NewNotFoundError("Comment not found")
	}

	liked, likeCount, err := s.commentRepo.ToggleLike(ctx, commentID, actor.UserID)
	if err != nil {
		return nil, response.NewStorageError("Failed to toggle like", err)
	}

	return &dto.ToggleLikeResponse{
		CommentID: commentID,
		Liked:     liked,
		LikeCount: likeCount,
	}, nil
}

// ApproveComment marks a pending comment as approved. Admin only; approving
// an already approved comment is a no-op.
func (s *commentServiceImpl) ApproveComment(ctx context.Context, actor *Actor, commentID uuid.UUID) (*dto.ApproveCommentResponse, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("Only admins may approve comments")
	}

	if err := s.commentRepo.Approve(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Comment not found")
		}
		return nil, response.NewStorageError("Failed to approve comment", err)
	}

	return &dto.ApproveCommentResponse{
		CommentID:  commentID,
		IsApproved: true,
	}, nil
}

// ListPendingComments returns the moderation queue oldest first. Admin only.
func (s *commentServiceImpl) ListPendingComments(ctx context.Context, actor *Actor) (*dto.PendingCommentListResponse, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("Only admins may view pending comments")
	}

	comments, err := s.commentRepo.ListPending(ctx)
	if err != nil {
		return nil, response.NewStorageError("Failed to list pending comments", err)
	}

	pending := make([]dto.PendingCommentResponse, len(comments))
	for i, c := range comments {
		pending[i] = dto.PendingCommentResponse{
			CommentID:    c.ID,
			ArticleID:    c.ArticleID,
			ArticleTitle: c.Article.Title,
			ArticleSlug:  c.Article.Slug,
			UserID:       c.UserID,
			AuthorName:   c.User.DisplayName,
			ParentID:     c.ParentID,
			Content:      c.Content,
			CreatedAt:    c.CreatedAt,
		}
	}
	return &dto.PendingCommentListResponse{
		PendingComments: pending,
		Count:           len(pending),
	}, nil
}

// findOwnedComment loads the comment and enforces the author-or-admin rule
func (s *commentServiceImpl) findOwnedComment(ctx context.Context, actor *Actor, commentID uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Comment not found")
		}
		return nil, response.NewStorageError("Failed to fetch comment", err)
	}
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}
	if !actor.IsAdmin() && actor.UserID != comment.UserID {
		return nil, response.NewForbiddenError("Only the comment author or an admin may modify this comment")
	}
	return comment, nil
}
