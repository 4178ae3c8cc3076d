package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// ResearchHandler serves the research collection endpoints
type ResearchHandler struct {
	researchService service.ResearchService
}

// NewResearchHandler creates a new ResearchHandler
func NewResearchHandler(researchService service.ResearchService) *ResearchHandler {
	return &ResearchHandler{researchService: researchService}
}

// CreateResearchItem adds a new item to the research collection
func (h *ResearchHandler) CreateResearchItem(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateResearchItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	item, err := h.researchService.CreateResearchItem(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, item)
}

// GetResearchItem returns a single research item
func (h *ResearchHandler) GetResearchItem(c *gin.Context) {
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	item, err := h.researchService.GetResearchItem(c.Request.Context(), itemID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, item)
}

// ListResearchItems returns a page of research items
func (h *ResearchHandler) ListResearchItems(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	list, err := h.researchService.ListResearchItems(c.Request.Context(), &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// UpdateResearchItem applies a partial update
func (h *ResearchHandler) UpdateResearchItem(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	var req dto.UpdateResearchItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	item, err := h.researchService.UpdateResearchItem(c.Request.Context(), actor, itemID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, item)
}

// DeleteResearchItem removes a research item
func (h *ResearchHandler) DeleteResearchItem(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := h.researchService.DeleteResearchItem(c.Request.Context(), actor, itemID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Research item deleted successfully"})
}
