package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// AuthData holds the authenticated identity extracted from the Gin context
type AuthData struct {
	UserID uuid.UUID
	Role   domain.UserRole
	Token  string
}

// ExtractAuthData extracts the authenticated identity set by the auth
// middleware. It writes the 401 itself when the request is not authenticated.
func ExtractAuthData(c *gin.Context) (AuthData, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthenticated, "Authentication required")
		return AuthData{}, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthenticated, "Invalid user ID format")
		return AuthData{}, false
	}

	role := domain.UserRoleUser
	if r, exists := c.Get("user_role"); exists {
		if typed, ok := r.(domain.UserRole); ok {
			role = typed
		}
	}

	token, _ := c.Get("jwtToken")
	tokenStr, _ := token.(string)

	return AuthData{
		UserID: userUUID,
		Role:   role,
		Token:  tokenStr,
	}, true
}

// requireActor converts the authenticated identity into a service actor,
// writing the 401 itself when the request is anonymous.
func requireActor(c *gin.Context) (*service.Actor, bool) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return nil, false
	}
	return &service.Actor{UserID: auth.UserID, Role: auth.Role}, true
}

// optionalActor converts the authenticated identity into a service actor, or
// returns nil for anonymous requests.
func optionalActor(c *gin.Context) *service.Actor {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		return nil
	}

	role := domain.UserRoleUser
	if r, exists := c.Get("user_role"); exists {
		if typed, ok := r.(domain.UserRole); ok {
			role = typed
		}
	}
	return &service.Actor{UserID: userUUID, Role: role}
}

// parseUUIDParam parses a UUID path parameter, writing the 400 itself on
// malformed input.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
