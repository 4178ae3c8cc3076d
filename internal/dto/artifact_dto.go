package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"heritage-archive-api/internal/domain"
)

// CreateArtifactRequest represents the request to catalogue a new artifact
type CreateArtifactRequest struct {
	Title         string                 `json:"title" binding:"required,min=1,max=255"`
	Description   string                 `json:"description" binding:"omitempty"`
	Origin        string                 `json:"origin" binding:"omitempty,max=255"`
	Period        string                 `json:"period" binding:"omitempty,max=100"`
	CatalogNumber string                 `json:"catalogNumber" binding:"required,min=1,max=100"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateArtifactRequest is an explicit partial-update structure for artifacts
type UpdateArtifactRequest struct {
	Title       *string                `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string                `json:"description,omitempty"`
	Origin      *string                `json:"origin,omitempty" binding:"omitempty,max=255"`
	Period      *string                `json:"period,omitempty" binding:"omitempty,max=100"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// ArtifactResponse represents an artifact
type ArtifactResponse struct {
	ArtifactID    uuid.UUID              `json:"artifactId"`
	CuratorID     uuid.UUID              `json:"curatorId"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Origin        string                 `json:"origin"`
	Period        string                 `json:"period"`
	CatalogNumber string                 `json:"catalogNumber"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	HasMedia      bool                   `json:"hasMedia"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// ArtifactListResponse represents a page of artifacts
type ArtifactListResponse struct {
	Artifacts  []ArtifactResponse `json:"artifacts"`
	Pagination Pagination         `json:"pagination"`
}

// MediaUploadResponse carries a presigned upload URL for artifact or oral
// history media; the client PUTs the file directly to object storage.
type MediaUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	MediaKey  string    `json:"mediaKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MediaDownloadResponse carries a presigned download URL
type MediaDownloadResponse struct {
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// MediaUploadRequest names the file to be uploaded
type MediaUploadRequest struct {
	FileName    string `json:"fileName" binding:"required,min=1,max=255"`
	ContentType string `json:"contentType" binding:"required,min=1,max=100"`
}

// ToArtifactResponse converts a domain artifact to its response shape
func ToArtifactResponse(a *domain.Artifact) ArtifactResponse {
	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		// Ignore unmarshal failures; metadata was validated on the way in
		_ = json.Unmarshal(a.Metadata, &metadata)
	}
	return ArtifactResponse{
		ArtifactID:    a.ID,
		CuratorID:     a.CuratorID,
		Title:         a.Title,
		Description:   a.Description,
		Origin:        a.Origin,
		Period:        a.Period,
		CatalogNumber: a.CatalogNumber,
		Metadata:      metadata,
		HasMedia:      a.MediaKey != "",
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
