package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListApprovedByArticle(ctx context.Context, articleID uuid.UUID, sort string, offset, limit int) ([]*domain.Comment, int64, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Approve(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context) ([]*domain.Comment, error)
	ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (bool, int, error)
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// Create inserts the comment and bumps the comment count of its article
// in the same transaction.
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Article{}).
			Where("id = ?", comment.ArticleID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

// FindByID finds a comment by ID with its author preloaded
func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListApprovedByArticle returns a page of approved top-level comments on the
// article, each with its approved replies oldest first. Sort is one of
// newest, oldest or likes; ties on like count break newest first.
func (r *commentRepositoryImpl) ListApprovedByArticle(ctx context.Context, articleID uuid.UUID, sort string, offset, limit int) ([]*domain.Comment, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("article_id = ? AND parent_id IS NULL AND is_approved = ?", articleID, true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch sort {
	case "oldest":
		order = "created_at ASC"
	case "likes":
		order = "like_count DESC, created_at DESC"
	}

	var comments []*domain.Comment
	if err := base.
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_approved = ?", true).Order("created_at ASC")
		}).
		Preload("Replies.User").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// Update saves changes to an existing comment
func (r *commentRepositoryImpl) Update(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes the comment, its direct replies and all related likes, and
// decrements the comment count of the article by the number of rows removed.
func (r *commentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment domain.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return err
		}

		var replyIDs []uuid.UUID
		if err := tx.Model(&domain.Comment{}).
			Where("parent_id = ?", id).
			Pluck("id", &replyIDs).Error; err != nil {
			return err
		}

		targets := append([]uuid.UUID{id}, replyIDs...)
		if err := tx.Where("comment_id IN ?", targets).Delete(&domain.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", targets).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Article{}).
			Where("id = ?", comment.ArticleID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", len(targets))).Error
	})
}

// Approve marks the comment as approved. Approving an already approved
// comment is a no-op.
func (r *commentRepositoryImpl) Approve(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("id = ?", id).
		Update("is_approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Update matches already approved rows too, so zero rows means the
		// comment does not exist.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&domain.Comment{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// ListPending returns all unapproved comments oldest first, with the author
// and article preloaded for the moderation queue.
func (r *commentRepositoryImpl) ListPending(ctx context.Context) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Article").
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// ToggleLike adds or removes the user's like on the comment and keeps the
// cached like count in step. It returns whether the user likes the comment
// after the call and the resulting like count. A concurrent duplicate insert
// loses the unique constraint race and is treated as already liked.
func (r *commentRepositoryImpl) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (bool, int, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			Delete(&domain.CommentLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			liked = false
			return tx.Model(&domain.Comment{}).
				Where("id = ?", commentID).
				UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
		}

		like := &domain.CommentLike{CommentID: commentID, UserID: userID}
		if err := tx.Create(like).Error; err != nil {
			if isUniqueViolation(err) {
				liked = true
				return nil
			}
			return err
		}
		liked = true
		return tx.Model(&domain.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return false, 0, err
	}

	var comment domain.Comment
	if err := r.db.WithContext(ctx).Select("like_count").First(&comment, commentID).Error; err != nil {
		return false, 0, err
	}
	return liked, comment.LikeCount, nil
}

// isUniqueViolation reports whether err comes from a unique constraint.
// Covers the translated GORM error plus the raw Postgres and SQLite forms.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
