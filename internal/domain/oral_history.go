package domain

import (
	"time"

	"github.com/google/uuid"
)

// OralHistory represents a recorded oral history contribution
type OralHistory struct {
	BaseModel
	ContributorID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_oral_histories_contributor_id" json:"contributor_id"`
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	Narrator        string     `gorm:"type:varchar(255);not null" json:"narrator"`
	Summary         string     `gorm:"type:text" json:"summary"`
	Language        string     `gorm:"type:varchar(50);not null;default:'en'" json:"language"`
	RecordedAt      *time.Time `gorm:"type:timestamp" json:"recorded_at,omitempty"`
	DurationSeconds int        `gorm:"not null;default:0" json:"duration_seconds"`
	MediaKey        string     `gorm:"type:text" json:"media_key,omitempty"`
	Contributor     User       `gorm:"foreignKey:ContributorID" json:"contributor,omitempty"`
}

// TableName specifies the table name for OralHistory
func (OralHistory) TableName() string {
	return "oral_histories"
}
