package dto

import (
	"time"

	"github.com/google/uuid"

	"heritage-archive-api/internal/domain"
)

// SignupRequest represents the request to create a new account
type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"displayName" binding:"required,min=1,max=100"`
	Locale      string `json:"locale" binding:"omitempty,max=10"`
}

// SigninRequest represents the request to authenticate
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user identity in responses
type UserResponse struct {
	UserID      uuid.UUID       `json:"userId"`
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	Role        domain.UserRole `json:"role"`
	Locale      string          `json:"locale"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AuthResponse represents a successful signin
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   int64        `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// UpdateUserRoleRequest represents an admin role change
type UpdateUserRoleRequest struct {
	Role domain.UserRole `json:"role" binding:"required,oneof=admin contributor user"`
}

// ToUserResponse converts a domain user to its response shape
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Locale:      u.Locale,
		CreatedAt:   u.CreatedAt,
	}
}
