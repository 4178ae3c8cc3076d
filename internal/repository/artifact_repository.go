package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// ArtifactRepository defines the interface for artifact data access
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *domain.Artifact) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Artifact, error)
	ExistsByCatalogNumber(ctx context.Context, catalogNumber string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Artifact, int64, error)
	Update(ctx context.Context, artifact *domain.Artifact) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// artifactRepositoryImpl is the GORM implementation of ArtifactRepository
type artifactRepositoryImpl struct {
	db *gorm.DB
}

// NewArtifactRepository creates a new instance of ArtifactRepository
func NewArtifactRepository(db *gorm.DB) ArtifactRepository {
	return &artifactRepositoryImpl{db: db}
}

// Create creates a new artifact
func (r *artifactRepositoryImpl) Create(ctx context.Context, artifact *domain.Artifact) error {
	if err := r.db.WithContext(ctx).Create(artifact).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an artifact by ID with its curator preloaded
func (r *artifactRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Artifact, error) {
	var artifact domain.Artifact
	if err := r.db.WithContext(ctx).
		Preload("Curator").
		First(&artifact, id).Error; err != nil {
		return nil, err
	}
	return &artifact, nil
}

// ExistsByCatalogNumber checks whether any artifact uses the catalog number
func (r *artifactRepositoryImpl) ExistsByCatalogNumber(ctx context.Context, catalogNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Artifact{}).
		Where("catalog_number = ?", catalogNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a page of artifacts, newest first
func (r *artifactRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*domain.Artifact, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Artifact{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var artifacts []*domain.Artifact
	if err := r.db.WithContext(ctx).
		Preload("Curator").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&artifacts).Error; err != nil {
		return nil, 0, err
	}
	return artifacts, total, nil
}

// Update saves changes to an existing artifact
func (r *artifactRepositoryImpl) Update(ctx context.Context, artifact *domain.Artifact) error {
	if err := r.db.WithContext(ctx).Save(artifact).Error; err != nil {
		return err
	}
	return nil
}

// Delete soft deletes an artifact by ID
func (r *artifactRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Artifact{}, id).Error; err != nil {
		return err
	}
	return nil
}
