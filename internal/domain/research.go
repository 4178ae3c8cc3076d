package domain

import "github.com/google/uuid"

// ResearchItem represents a published research output linked to the archive
type ResearchItem struct {
	BaseModel
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index:idx_research_items_author_id" json:"author_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Abstract    string    `gorm:"type:text" json:"abstract"`
	Citation    string    `gorm:"type:text" json:"citation"`
	DocumentKey string    `gorm:"type:text" json:"document_key,omitempty"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for ResearchItem
func (ResearchItem) TableName() string {
	return "research_items"
}
