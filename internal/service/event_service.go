package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/repository"
	"heritage-archive-api/internal/response"
)

// EventService defines the interface for event business logic
type EventService interface {
	CreateEvent(ctx context.Context, actor *Actor, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, upcomingOnly bool, query *dto.ListQuery) (*dto.EventListResponse, error)
	UpdateEvent(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, actor *Actor, id uuid.UUID) error
}

// eventServiceImpl is the implementation of EventService
type eventServiceImpl struct {
	eventRepo repository.EventRepository
	logger    *zap.Logger
}

// NewEventService creates a new instance of EventService
func NewEventService(eventRepo repository.EventRepository, logger *zap.Logger) EventService {
	return &eventServiceImpl{eventRepo: eventRepo, logger: logger}
}

// CreateEvent schedules a new event. The end time must not precede the start.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, actor *Actor, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !actor.CanPublish() {
		return nil, response.NewForbiddenError("Only contributors and admins may schedule events")
	}
	if req.EndsAt.Before(req.StartsAt) {
		return nil, response.NewValidationError("Event must not end before it starts")
	}

	event := &domain.Event{
		OrganizerID: actor.UserID,
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, response.NewStorageError("Failed to create event", err)
	}

	resp := dto.ToEventResponse(event)
	return &resp, nil
}

// GetEvent returns a single event
func (s *eventServiceImpl) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	event, err := s.findEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToEventResponse(event)
	return &resp, nil
}

// ListEvents returns a page of events soonest first, optionally limited to
// events that have not yet ended
func (s *eventServiceImpl) ListEvents(ctx context.Context, upcomingOnly bool, query *dto.ListQuery) (*dto.EventListResponse, error) {
	query.Normalize()

	events, total, err := s.eventRepo.List(ctx, upcomingOnly, query.Offset(), query.Limit)
	if err != nil {
		return nil, response.NewStorageError("Failed to list events", err)
	}

	responses := make([]dto.EventResponse, len(events))
	for i, e := range events {
		responses[i] = dto.ToEventResponse(e)
	}
	return &dto.EventListResponse{
		Events:     responses,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdateEvent applies a partial update. Only the organizer and admins may
// edit; the effective time range is validated after the patch.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.findOwnedEvent(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}

	if event.EndsAt.Before(event.StartsAt) {
		return nil, response.NewValidationError("Event must not end before it starts")
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, response.NewStorageError("Failed to update event", err)
	}

	resp := dto.ToEventResponse(event)
	return &resp, nil
}

// DeleteEvent soft deletes an event
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, actor *Actor, id uuid.UUID) error {
	if _, err := s.findOwnedEvent(ctx, actor, id); err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return response.NewStorageError("Failed to delete event", err)
	}
	return nil
}

func (s *eventServiceImpl) findEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Event not found")
		}
		return nil, response.NewStorageError("Failed to fetch event", err)
	}
	return event, nil
}

func (s *eventServiceImpl) findOwnedEvent(ctx context.Context, actor *Actor, id uuid.UUID) (*domain.Event, error) {
	event, err := s.findEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}
	if !actor.IsAdmin() && actor.UserID != event.OrganizerID {
		return nil, response.NewForbiddenError("Only the organizer or an admin may modify this event")
	}
	return event, nil
}
