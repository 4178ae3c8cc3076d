package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context, upcomingOnly bool, offset, limit int) ([]*domain.Event, int64, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// eventRepositoryImpl is the GORM implementation of EventRepository
type eventRepositoryImpl struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepositoryImpl{db: db}
}

func (r *eventRepositoryImpl) Create(ctx context.Context, event *domain.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return err
	}
	return nil
}

func (r *eventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var event domain.Event
	if err := r.db.WithContext(ctx).
		Preload("Organizer").
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns a page of events ordered by start time, soonest first.
// With upcomingOnly set, events that already ended are dropped.
func (r *eventRepositoryImpl) List(ctx context.Context, upcomingOnly bool, offset, limit int) ([]*domain.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Event{})
	if upcomingOnly {
		query = query.Where("ends_at >= ?", time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []*domain.Event
	if err := query.
		Preload("Organizer").
		Order("starts_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepositoryImpl) Update(ctx context.Context, event *domain.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return err
	}
	return nil
}

func (r *eventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Event{}, id).Error; err != nil {
		return err
	}
	return nil
}
