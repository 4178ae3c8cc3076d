package domain

import "github.com/google/uuid"

// DonationStatus represents the status of a donation
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
)

// Donation represents a monetary donation to the archive.
// DonorID is nil for anonymous donations.
type Donation struct {
	BaseModel
	DonorID   *uuid.UUID     `gorm:"type:uuid;index:idx_donations_donor_id" json:"donor_id"`
	DonorName string         `gorm:"type:varchar(255)" json:"donor_name"`
	Amount    int64          `gorm:"not null" json:"amount"`
	Currency  string         `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Message   string         `gorm:"type:text" json:"message"`
	Status    DonationStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_donations_status" json:"status"`
	Donor     *User          `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
}

// TableName specifies the table name for Donation
func (Donation) TableName() string {
	return "donations"
}
