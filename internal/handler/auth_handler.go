package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// AuthHandler serves the authentication endpoints
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new account
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, user)
}

// Signin verifies credentials and returns an access token
func (h *AuthHandler) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	auth, err := h.authService.Signin(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, auth)
}

// Logout revokes the presented token
func (h *AuthHandler) Logout(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), auth.Token); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	user, err := h.authService.GetMe(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateUserRole changes another user's role. Admin only.
func (h *AuthHandler) UpdateUserRole(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	if auth.Role != domain.UserRoleAdmin {
		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Only admins may change roles")
		return
	}

	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateUserRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}
