package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// EducationRepository defines the interface for education resource data access
type EducationRepository interface {
	Create(ctx context.Context, resource *domain.EducationResource) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.EducationResource, error)
	List(ctx context.Context, audience domain.EducationAudience, offset, limit int) ([]*domain.EducationResource, int64, error)
	Update(ctx context.Context, resource *domain.EducationResource) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// educationRepositoryImpl is the GORM implementation of EducationRepository
type educationRepositoryImpl struct {
	db *gorm.DB
}

// NewEducationRepository creates a new instance of EducationRepository
func NewEducationRepository(db *gorm.DB) EducationRepository {
	return &educationRepositoryImpl{db: db}
}

func (r *educationRepositoryImpl) Create(ctx context.Context, resource *domain.EducationResource) error {
	if err := r.db.WithContext(ctx).Create(resource).Error; err != nil {
		return err
	}
	return nil
}

func (r *educationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.EducationResource, error) {
	var resource domain.EducationResource
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&resource, id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// List returns a page of education resources, optionally filtered by audience
func (r *educationRepositoryImpl) List(ctx context.Context, audience domain.EducationAudience, offset, limit int) ([]*domain.EducationResource, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.EducationResource{})
	if audience != "" {
		query = query.Where("audience = ?", audience)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var resources []*domain.EducationResource
	if err := query.
		Preload("Author").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&resources).Error; err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}

func (r *educationRepositoryImpl) Update(ctx context.Context, resource *domain.EducationResource) error {
	if err := r.db.WithContext(ctx).Save(resource).Error; err != nil {
		return err
	}
	return nil
}

func (r *educationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.EducationResource{}, id).Error; err != nil {
		return err
	}
	return nil
}
