package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// OralHistoryRepository defines the interface for oral history data access
type OralHistoryRepository interface {
	Create(ctx context.Context, history *domain.OralHistory) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.OralHistory, error)
	List(ctx context.Context, language string, offset, limit int) ([]*domain.OralHistory, int64, error)
	Update(ctx context.Context, history *domain.OralHistory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// oralHistoryRepositoryImpl is the GORM implementation of OralHistoryRepository
type oralHistoryRepositoryImpl struct {
	db *gorm.DB
}

// NewOralHistoryRepository creates a new instance of OralHistoryRepository
func NewOralHistoryRepository(db *gorm.DB) OralHistoryRepository {
	return &oralHistoryRepositoryImpl{db: db}
}

// Create creates a new oral history
func (r *oralHistoryRepositoryImpl) Create(ctx context.Context, history *domain.OralHistory) error {
	if err := r.db.WithContext(ctx).Create(history).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an oral history by ID with its contributor preloaded
func (r *oralHistoryRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.OralHistory, error) {
	var history domain.OralHistory
	if err := r.db.WithContext(ctx).
		Preload("Contributor").
		First(&history, id).Error; err != nil {
		return nil, err
	}
	return &history, nil
}

// List returns a page of oral histories, optionally filtered by language,
// newest first
func (r *oralHistoryRepositoryImpl) List(ctx context.Context, language string, offset, limit int) ([]*domain.OralHistory, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.OralHistory{})
	if language != "" {
		query = query.Where("language = ?", language)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var histories []*domain.OralHistory
	if err := query.
		Preload("Contributor").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&histories).Error; err != nil {
		return nil, 0, err
	}
	return histories, total, nil
}

// Update saves changes to an existing oral history
func (r *oralHistoryRepositoryImpl) Update(ctx context.Context, history *domain.OralHistory) error {
	if err := r.db.WithContext(ctx).Save(history).Error; err != nil {
		return err
	}
	return nil
}

// Delete soft deletes an oral history by ID
func (r *oralHistoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.OralHistory{}, id).Error; err != nil {
		return err
	}
	return nil
}
