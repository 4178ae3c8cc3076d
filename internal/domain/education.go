package domain

import "github.com/google/uuid"

// EducationAudience represents the target audience of an education resource
type EducationAudience string

const (
	AudienceChildren  EducationAudience = "children"
	AudienceStudents  EducationAudience = "students"
	AudienceEducators EducationAudience = "educators"
	AudienceGeneral   EducationAudience = "general"
)

// IsValid reports whether the audience is one of the known values
func (a EducationAudience) IsValid() bool {
	switch a {
	case AudienceChildren, AudienceStudents, AudienceEducators, AudienceGeneral:
		return true
	}
	return false
}

// EducationResource represents a learning resource published by the archive
type EducationResource struct {
	BaseModel
	AuthorID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_education_resources_author_id" json:"author_id"`
	Title       string            `gorm:"type:varchar(255);not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	Audience    EducationAudience `gorm:"type:varchar(20);not null;default:'general';index:idx_education_resources_audience" json:"audience"`
	ResourceURL string            `gorm:"type:text" json:"resource_url"`
	Author      User              `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for EducationResource
func (EducationResource) TableName() string {
	return "education_resources"
}
