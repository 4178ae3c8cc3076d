package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// ArticleRepository defines the interface for article data access
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter ArticleFilter, offset, limit int) ([]*domain.Article, int64, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID, delta int64) error
}

// ArticleFilter narrows article listings
type ArticleFilter struct {
	Status   domain.ArticleStatus
	AuthorID *uuid.UUID
}

// articleRepositoryImpl is the GORM implementation of ArticleRepository
type articleRepositoryImpl struct {
	db *gorm.DB
}

// NewArticleRepository creates a new instance of ArticleRepository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepositoryImpl{db: db}
}

// Create creates a new article
func (r *articleRepositoryImpl) Create(ctx context.Context, article *domain.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an article by ID with its author preloaded
func (r *articleRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// FindBySlug finds an article by its slug with its author preloaded
func (r *articleRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("slug = ?", slug).
		First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// ExistsBySlug checks whether any article uses the given slug
func (r *articleRepositoryImpl) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a page of articles matching the filter, newest first
func (r *articleRepositoryImpl) List(ctx context.Context, filter ArticleFilter, offset, limit int) ([]*domain.Article, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Article{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []*domain.Article
	if err := query.
		Preload("Author").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// Update saves changes to an existing article
func (r *articleRepositoryImpl) Update(ctx context.Context, article *domain.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return err
	}
	return nil
}

// Delete soft deletes an article and its comments and likes in one transaction
func (r *articleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("comment_id IN (?)", tx.Model(&domain.Comment{}).Select("id").Where("article_id = ?", id)).
			Delete(&domain.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Article{}, id).Error; err != nil {
			return err
		}
		return nil
	})
}

// IncrementViewCount adds delta to the stored view count of the article
func (r *articleRepositoryImpl) IncrementViewCount(ctx context.Context, id uuid.UUID, delta int64) error {
	if delta == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta)).Error
}
