package dto

import (
	"time"

	"github.com/google/uuid"

	"heritage-archive-api/internal/domain"
)

// CreateResearchItemRequest represents the request to register research output
type CreateResearchItemRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=255"`
	Abstract string `json:"abstract" binding:"omitempty"`
	Citation string `json:"citation" binding:"omitempty"`
}

// UpdateResearchItemRequest is an explicit partial-update structure
type UpdateResearchItemRequest struct {
	Title    *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Abstract *string `json:"abstract,omitempty"`
	Citation *string `json:"citation,omitempty"`
}

// ResearchItemResponse represents a research item
type ResearchItemResponse struct {
	ResearchItemID uuid.UUID `json:"researchItemId"`
	AuthorID       uuid.UUID `json:"authorId"`
	Title          string    `json:"title"`
	Abstract       string    `json:"abstract"`
	Citation       string    `json:"citation"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ResearchItemListResponse represents a page of research items
type ResearchItemListResponse struct {
	ResearchItems []ResearchItemResponse `json:"researchItems"`
	Pagination    Pagination             `json:"pagination"`
}

// ToResearchItemResponse converts a domain research item to its response shape
func ToResearchItemResponse(r *domain.ResearchItem) ResearchItemResponse {
	return ResearchItemResponse{
		ResearchItemID: r.ID,
		AuthorID:       r.AuthorID,
		Title:          r.Title,
		Abstract:       r.Abstract,
		Citation:       r.Citation,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// CreateEducationResourceRequest represents the request to publish a learning resource
type CreateEducationResourceRequest struct {
	Title       string                   `json:"title" binding:"required,min=1,max=255"`
	Description string                   `json:"description" binding:"omitempty"`
	Audience    domain.EducationAudience `json:"audience" binding:"omitempty,oneof=children students educators general"`
	ResourceURL string                   `json:"resourceUrl" binding:"omitempty,url"`
}

// UpdateEducationResourceRequest is an explicit partial-update structure
type UpdateEducationResourceRequest struct {
	Title       *string                   `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string                   `json:"description,omitempty"`
	Audience    *domain.EducationAudience `json:"audience,omitempty" binding:"omitempty,oneof=children students educators general"`
	ResourceURL *string                   `json:"resourceUrl,omitempty" binding:"omitempty,url"`
}

// EducationResourceResponse represents a learning resource
type EducationResourceResponse struct {
	ResourceID  uuid.UUID                `json:"resourceId"`
	AuthorID    uuid.UUID                `json:"authorId"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Audience    domain.EducationAudience `json:"audience"`
	ResourceURL string                   `json:"resourceUrl"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// EducationResourceListResponse represents a page of learning resources
type EducationResourceListResponse struct {
	Resources  []EducationResourceResponse `json:"resources"`
	Pagination Pagination                  `json:"pagination"`
}

// ToEducationResourceResponse converts a domain resource to its response shape
func ToEducationResourceResponse(e *domain.EducationResource) EducationResourceResponse {
	return EducationResourceResponse{
		ResourceID:  e.ID,
		AuthorID:    e.AuthorID,
		Title:       e.Title,
		Description: e.Description,
		Audience:    e.Audience,
		ResourceURL: e.ResourceURL,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// CreateEventRequest represents the request to schedule an event
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=255"`
	Description string    `json:"description" binding:"omitempty"`
	Venue       string    `json:"venue" binding:"omitempty,max=255"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
	Capacity    int       `json:"capacity" binding:"omitempty,min=0"`
}

// UpdateEventRequest is an explicit partial-update structure
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty"`
	Venue       *string    `json:"venue,omitempty" binding:"omitempty,max=255"`
	StartsAt    *time.Time `json:"startsAt,omitempty"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
	Capacity    *int       `json:"capacity,omitempty" binding:"omitempty,min=0"`
}

// EventResponse represents an event
type EventResponse struct {
	EventID     uuid.UUID `json:"eventId"`
	OrganizerID uuid.UUID `json:"organizerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EventListResponse represents a page of events
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination Pagination      `json:"pagination"`
}

// ToEventResponse converts a domain event to its response shape
func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		EventID:     e.ID,
		OrganizerID: e.OrganizerID,
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Capacity:    e.Capacity,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
