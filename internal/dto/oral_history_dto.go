package dto

import (
	"time"

	"github.com/google/uuid"

	"heritage-archive-api/internal/domain"
)

// CreateOralHistoryRequest represents the request to register a new oral history
type CreateOralHistoryRequest struct {
	Title           string     `json:"title" binding:"required,min=1,max=255"`
	Narrator        string     `json:"narrator" binding:"required,min=1,max=255"`
	Summary         string     `json:"summary" binding:"omitempty"`
	Language        string     `json:"language" binding:"omitempty,max=50"`
	RecordedAt      *time.Time `json:"recordedAt,omitempty"`
	DurationSeconds int        `json:"durationSeconds" binding:"omitempty,min=0"`
}

// UpdateOralHistoryRequest is an explicit partial-update structure
type UpdateOralHistoryRequest struct {
	Title           *string    `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Narrator        *string    `json:"narrator,omitempty" binding:"omitempty,min=1,max=255"`
	Summary         *string    `json:"summary,omitempty"`
	Language        *string    `json:"language,omitempty" binding:"omitempty,max=50"`
	RecordedAt      *time.Time `json:"recordedAt,omitempty"`
	DurationSeconds *int       `json:"durationSeconds,omitempty" binding:"omitempty,min=0"`
}

// OralHistoryResponse represents an oral history recording
type OralHistoryResponse struct {
	OralHistoryID   uuid.UUID  `json:"oralHistoryId"`
	ContributorID   uuid.UUID  `json:"contributorId"`
	Title           string     `json:"title"`
	Narrator        string     `json:"narrator"`
	Summary         string     `json:"summary"`
	Language        string     `json:"language"`
	RecordedAt      *time.Time `json:"recordedAt,omitempty"`
	DurationSeconds int        `json:"durationSeconds"`
	HasMedia        bool       `json:"hasMedia"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// OralHistoryListResponse represents a page of oral histories
type OralHistoryListResponse struct {
	OralHistories []OralHistoryResponse `json:"oralHistories"`
	Pagination    Pagination            `json:"pagination"`
}

// ToOralHistoryResponse converts a domain oral history to its response shape
func ToOralHistoryResponse(o *domain.OralHistory) OralHistoryResponse {
	return OralHistoryResponse{
		OralHistoryID:   o.ID,
		ContributorID:   o.ContributorID,
		Title:           o.Title,
		Narrator:        o.Narrator,
		Summary:         o.Summary,
		Language:        o.Language,
		RecordedAt:      o.RecordedAt,
		DurationSeconds: o.DurationSeconds,
		HasMedia:        o.MediaKey != "",
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
