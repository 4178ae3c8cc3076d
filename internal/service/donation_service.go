package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/repository"
	"heritage-archive-api/internal/response"
)

// DonationService defines the interface for donation business logic
type DonationService interface {
	CreateDonation(ctx context.Context, actor *Actor, req *dto.CreateDonationRequest) (*dto.DonationResponse, error)
	CompleteDonation(ctx context.Context, actor *Actor, id uuid.UUID) (*dto.DonationResponse, error)
	ListDonations(ctx context.Context, actor *Actor, query *dto.ListQuery) (*dto.DonationListResponse, error)
}

// donationServiceImpl is the implementation of DonationService
type donationServiceImpl struct {
	donationRepo repository.DonationRepository
	logger       *zap.Logger
}

// NewDonationService creates a new instance of DonationService
func NewDonationService(donationRepo repository.DonationRepository, logger *zap.Logger) DonationService {
	return &donationServiceImpl{donationRepo: donationRepo, logger: logger}
}

// CreateDonation records a pending donation. Signed-in donors are linked to
// their account; anonymous donors carry only a display name.
func (s *donationServiceImpl) CreateDonation(ctx context.Context, actor *Actor, req *dto.CreateDonationRequest) (*dto.DonationResponse, error) {
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}

	donation := &domain.Donation{
		DonorName: req.DonorName,
		Amount:    req.Amount,
		Currency:  currency,
		Message:   req.Message,
		Status:    domain.DonationStatusPending,
	}
	if actor != nil {
		donation.DonorID = &actor.UserID
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, response.NewStorageError("Failed to record donation", err)
	}

	s.logger.Info("Donation recorded",
		zap.String("donation_id", donation.ID.String()),
		zap.Int64("amount", donation.Amount),
		zap.String("currency", donation.Currency))

	resp := dto.ToDonationResponse(donation)
	return &resp, nil
}

// CompleteDonation marks a pending donation as completed. Admin only; payment
// settlement happens out of band.
func (s *donationServiceImpl) CompleteDonation(ctx context.Context, actor *Actor, id uuid.UUID) (*dto.DonationResponse, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("Only admins may complete donations")
	}

	if err := s.donationRepo.UpdateStatus(ctx, id, domain.DonationStatusCompleted); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Donation not found")
		}
		return nil, response.NewStorageError("Failed to complete donation", err)
	}

	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, response.NewStorageError("Failed to fetch donation", err)
	}

	resp := dto.ToDonationResponse(donation)
	return &resp, nil
}

// ListDonations returns a page of donations with the completed total. Admin
// only.
func (s *donationServiceImpl) ListDonations(ctx context.Context, actor *Actor, query *dto.ListQuery) (*dto.DonationListResponse, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("Only admins may view donations")
	}
	query.Normalize()

	donations, total, err := s.donationRepo.List(ctx, query.Offset(), query.Limit)
	if err != nil {
		return nil, response.NewStorageError("Failed to list donations", err)
	}

	totalAmount, err := s.donationRepo.SumCompleted(ctx)
	if err != nil {
		return nil, response.NewStorageError("Failed to sum donations", err)
	}

	responses := make([]dto.DonationResponse, len(donations))
	for i, d := range donations {
		responses[i] = dto.ToDonationResponse(d)
	}
	return &dto.DonationListResponse{
		Donations:   responses,
		TotalAmount: totalAmount,
		Pagination:  dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}
