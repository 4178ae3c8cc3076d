package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// ResearchRepository defines the interface for research item data access
type ResearchRepository interface {
	Create(ctx context.Context, item *domain.ResearchItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ResearchItem, error)
	List(ctx context.Context, offset, limit int) ([]*domain.ResearchItem, int64, error)
	Update(ctx context.Context, item *domain.ResearchItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// researchRepositoryImpl is the GORM implementation of ResearchRepository
type researchRepositoryImpl struct {
	db *gorm.DB
}

// NewResearchRepository creates a new instance of ResearchRepository
func NewResearchRepository(db *gorm.DB) ResearchRepository {
	return &researchRepositoryImpl{db: db}
}

func (r *researchRepositoryImpl) Create(ctx context.Context, item *domain.ResearchItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}
	return nil
}

func (r *researchRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ResearchItem, error) {
	var item domain.ResearchItem
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *researchRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*domain.ResearchItem, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.ResearchItem{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*domain.ResearchItem
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *researchRepositoryImpl) Update(ctx context.Context, item *domain.ResearchItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return err
	}
	return nil
}

func (r *researchRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.ResearchItem{}, id).Error; err != nil {
		return err
	}
	return nil
}
