package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event represents an exhibition, lecture or community event
type Event struct {
	BaseModel
	OrganizerID uuid.UUID `gorm:"type:uuid;not null;index:idx_events_organizer_id" json:"organizer_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Venue       string    `gorm:"type:varchar(255)" json:"venue"`
	StartsAt    time.Time `gorm:"type:timestamp;not null;index:idx_events_starts_at" json:"starts_at"`
	EndsAt      time.Time `gorm:"type:timestamp;not null" json:"ends_at"`
	Capacity    int       `gorm:"not null;default:0" json:"capacity"`
	Organizer   User      `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "events"
}
