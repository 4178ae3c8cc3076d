package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// DonationRepository defines the interface for donation data access
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Donation, int64, error)
	SumCompleted(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus) error
}

// donationRepositoryImpl is the GORM implementation of DonationRepository
type donationRepositoryImpl struct {
	db *gorm.DB
}

// NewDonationRepository creates a new instance of DonationRepository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepositoryImpl{db: db}
}

func (r *donationRepositoryImpl) Create(ctx context.Context, donation *domain.Donation) error {
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		return err
	}
	return nil
}

func (r *donationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	var donation domain.Donation
	if err := r.db.WithContext(ctx).First(&donation, id).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// List returns a page of donations, newest first
func (r *donationRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*domain.Donation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Donation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donations []*domain.Donation
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

// SumCompleted returns the total amount of completed donations
func (r *donationRepositoryImpl) SumCompleted(ctx context.Context) (int64, error) {
	var sum int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Donation{}).
		Where("status = ?", domain.DonationStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

// UpdateStatus changes only the status of the donation
func (r *donationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Donation{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
