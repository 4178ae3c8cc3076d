package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Artifact represents a physical object catalogued in the archive
type Artifact struct {
	BaseModel
	CuratorID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_artifacts_curator_id" json:"curator_id"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Origin        string         `gorm:"type:varchar(255)" json:"origin"`
	Period        string         `gorm:"type:varchar(100)" json:"period"`
	CatalogNumber string         `gorm:"type:varchar(100);not null;uniqueIndex:uq_artifacts_catalog_number" json:"catalog_number"`
	Metadata      datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	MediaKey      string         `gorm:"type:text" json:"media_key,omitempty"`
	Curator       User           `gorm:"foreignKey:CuratorID" json:"curator,omitempty"`
}

// TableName specifies the table name for Artifact
func (Artifact) TableName() string {
	return "artifacts"
}
