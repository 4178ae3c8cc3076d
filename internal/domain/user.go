package domain

// UserRole represents the role of a user
type UserRole string

const (
	UserRoleAdmin       UserRole = "admin"
	UserRoleContributor UserRole = "contributor"
	UserRoleUser        UserRole = "user"
)

// IsValid reports whether the role is one of the known roles
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleContributor, UserRoleUser:
		return true
	}
	return false
}

// CanPublishContent reports whether the role may create archive content
// (articles, artifacts, oral histories, research, education, events)
func (r UserRole) CanPublishContent() bool {
	return r == UserRoleAdmin || r == UserRoleContributor
}

// User represents an account in the archive
type User struct {
	BaseModel
	Email        string   `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName  string   `gorm:"type:varchar(100);not null" json:"display_name"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user';index:idx_users_role" json:"role"`
	Locale       string   `gorm:"type:varchar(10);not null;default:'en'" json:"locale"`
	IsActive     bool     `gorm:"not null;default:true" json:"is_active"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
