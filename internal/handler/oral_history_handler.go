package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// OralHistoryHandler serves the oral history endpoints
type OralHistoryHandler struct {
	historyService service.OralHistoryService
}

// NewOralHistoryHandler creates a new OralHistoryHandler
func NewOralHistoryHandler(historyService service.OralHistoryService) *OralHistoryHandler {
	return &OralHistoryHandler{historyService: historyService}
}

// CreateOralHistory records a new oral history entry
func (h *OralHistoryHandler) CreateOralHistory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateOralHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	history, err := h.historyService.CreateOralHistory(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, history)
}

// GetOralHistory returns a single oral history entry
func (h *OralHistoryHandler) GetOralHistory(c *gin.Context) {
	historyID, ok := parseUUIDParam(c, "historyId")
	if !ok {
		return
	}

	history, err := h.historyService.GetOralHistory(c.Request.Context(), historyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, history)
}

// ListOralHistories returns a page of oral histories, optionally filtered by
// recording language
func (h *OralHistoryHandler) ListOralHistories(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	list, err := h.historyService.ListOralHistories(c.Request.Context(), c.Query("language"), &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// UpdateOralHistory applies a partial update
func (h *OralHistoryHandler) UpdateOralHistory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	historyID, ok := parseUUIDParam(c, "historyId")
	if !ok {
		return
	}

	var req dto.UpdateOralHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	history, err := h.historyService.UpdateOralHistory(c.Request.Context(), actor, historyID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, history)
}

// DeleteOralHistory removes an oral history entry
func (h *OralHistoryHandler) DeleteOralHistory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	historyID, ok := parseUUIDParam(c, "historyId")
	if !ok {
		return
	}

	if err := h.historyService.DeleteOralHistory(c.Request.Context(), actor, historyID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Oral history deleted successfully"})
}

// RequestMediaUpload issues a presigned upload URL for the recording
func (h *OralHistoryHandler) RequestMediaUpload(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	historyID, ok := parseUUIDParam(c, "historyId")
	if !ok {
		return
	}

	var req dto.MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	upload, err := h.historyService.RequestMediaUpload(c.Request.Context(), actor, historyID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, upload)
}

// GetMediaDownload issues a presigned download URL for the recording
func (h *OralHistoryHandler) GetMediaDownload(c *gin.Context) {
	historyID, ok := parseUUIDParam(c, "historyId")
	if !ok {
		return
	}

	download, err := h.historyService.GetMediaDownload(c.Request.Context(), historyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, download)
}
