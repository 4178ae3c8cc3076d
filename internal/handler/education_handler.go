package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// EducationHandler serves the education resource endpoints
type EducationHandler struct {
	educationService service.EducationService
}

// NewEducationHandler creates a new EducationHandler
func NewEducationHandler(educationService service.EducationService) *EducationHandler {
	return &EducationHandler{educationService: educationService}
}

// CreateResource publishes a new education resource
func (h *EducationHandler) CreateResource(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateEducationResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	resource, err := h.educationService.CreateResource(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, resource)
}

// GetResource returns a single education resource
func (h *EducationHandler) GetResource(c *gin.Context) {
	resourceID, ok := parseUUIDParam(c, "resourceId")
	if !ok {
		return
	}

	resource, err := h.educationService.GetResource(c.Request.Context(), resourceID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, resource)
}

// ListResources returns a page of education resources, optionally filtered
// by target audience
func (h *EducationHandler) ListResources(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	audience := domain.EducationAudience(c.Query("audience"))
	list, err := h.educationService.ListResources(c.Request.Context(), audience, &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// UpdateResource applies a partial update
func (h *EducationHandler) UpdateResource(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resourceID, ok := parseUUIDParam(c, "resourceId")
	if !ok {
		return
	}

	var req dto.UpdateEducationResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	resource, err := h.educationService.UpdateResource(c.Request.Context(), actor, resourceID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, resource)
}

// DeleteResource removes an education resource
func (h *EducationHandler) DeleteResource(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resourceID, ok := parseUUIDParam(c, "resourceId")
	if !ok {
		return
	}

	if err := h.educationService.DeleteResource(c.Request.Context(), actor, resourceID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Education resource deleted successfully"})
}
