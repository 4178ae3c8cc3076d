package dto

import (
	"time"

	"github.com/google/uuid"

	"heritage-archive-api/internal/domain"
)

// CreateDonationRequest represents the request to record a donation.
// Anonymous donations carry only a display name.
type CreateDonationRequest struct {
	DonorName string `json:"donorName" binding:"omitempty,max=255"`
	Amount    int64  `json:"amount" binding:"required,min=1"`
	Currency  string `json:"currency" binding:"omitempty,len=3"`
	Message   string `json:"message" binding:"omitempty,max=1000"`
}

// DonationResponse represents a donation
type DonationResponse struct {
	DonationID uuid.UUID             `json:"donationId"`
	DonorID    *uuid.UUID            `json:"donorId,omitempty"`
	DonorName  string                `json:"donorName"`
	Amount     int64                 `json:"amount"`
	Currency   string                `json:"currency"`
	Message    string                `json:"message"`
	Status     domain.DonationStatus `json:"status"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// DonationListResponse represents the admin view of donations
type DonationListResponse struct {
	Donations   []DonationResponse `json:"donations"`
	TotalAmount int64              `json:"totalAmount"`
	Pagination  Pagination         `json:"pagination"`
}

// ToDonationResponse converts a domain donation to its response shape
func ToDonationResponse(d *domain.Donation) DonationResponse {
	return DonationResponse{
		DonationID: d.ID,
		DonorID:    d.DonorID,
		DonorName:  d.DonorName,
		Amount:     d.Amount,
		Currency:   d.Currency,
		Message:    d.Message,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
	}
}
