package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/response"
)

// TokenValidator verifies a bearer token, including its blacklist state, and
// returns the user ID it carries.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
}

// Auth returns a middleware that authenticates requests. The token is checked
// through the validator (signature, expiry and logout blacklist), then the
// account is loaded so role changes and deactivations take effect on the next
// request rather than at the next signin.
func Auth(validator TokenValidator, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		userID, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeInvalidCredential, "Invalid or expired token")
			c.Abort()
			return
		}

		var user domain.User
		if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.SendError(c, http.StatusUnauthorized, response.ErrCodeIdentityUnavailable, "Account no longer exists")
			} else {
				response.SendError(c, http.StatusUnauthorized, response.ErrCodeIdentityUnavailable, "Account could not be verified")
			}
			c.Abort()
			return
		}
		if !user.IsActive {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeIdentityUnavailable, "Account is deactivated")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Set("jwtToken", tokenString)

		c.Next()
	}
}

// OptionalAuth behaves like Auth but lets anonymous requests through without
// identity keys set. A present but invalid token is still rejected so a
// caller never silently loses their identity.
func OptionalAuth(validator TokenValidator, db *gorm.DB) gin.HandlerFunc {
	authed := Auth(validator, db)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		authed(c)
	}
}

// bearerToken pulls the token out of the Authorization header, writing the
// 401 itself when the header is missing or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthenticated, "Authorization header is required")
		c.Abort()
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeInvalidCredential, "Invalid authorization header format")
		c.Abort()
		return "", false
	}
	return parts[1], true
}
