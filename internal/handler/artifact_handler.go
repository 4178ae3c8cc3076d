package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// ArtifactHandler serves the artifact catalog endpoints
type ArtifactHandler struct {
	artifactService service.ArtifactService
}

// NewArtifactHandler creates a new ArtifactHandler
func NewArtifactHandler(artifactService service.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{artifactService: artifactService}
}

// CreateArtifact registers a new artifact in the catalog
func (h *ArtifactHandler) CreateArtifact(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	artifact, err := h.artifactService.CreateArtifact(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, artifact)
}

// GetArtifact returns a single artifact
func (h *ArtifactHandler) GetArtifact(c *gin.Context) {
	artifactID, ok := parseUUIDParam(c, "artifactId")
	if !ok {
		return
	}

	artifact, err := h.artifactService.GetArtifact(c.Request.Context(), artifactID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, artifact)
}

// ListArtifacts returns a page of artifacts
func (h *ArtifactHandler) ListArtifacts(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	list, err := h.artifactService.ListArtifacts(c.Request.Context(), &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// UpdateArtifact applies a partial update. The catalog number is immutable.
func (h *ArtifactHandler) UpdateArtifact(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	artifactID, ok := parseUUIDParam(c, "artifactId")
	if !ok {
		return
	}

	var req dto.UpdateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	artifact, err := h.artifactService.UpdateArtifact(c.Request.Context(), actor, artifactID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, artifact)
}

// DeleteArtifact removes an artifact from the catalog
func (h *ArtifactHandler) DeleteArtifact(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	artifactID, ok := parseUUIDParam(c, "artifactId")
	if !ok {
		return
	}

	if err := h.artifactService.DeleteArtifact(c.Request.Context(), actor, artifactID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Artifact deleted successfully"})
}

// RequestMediaUpload issues a presigned upload URL for the artifact's media
func (h *ArtifactHandler) RequestMediaUpload(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	artifactID, ok := parseUUIDParam(c, "artifactId")
	if !ok {
		return
	}

	var req dto.MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	upload, err := h.artifactService.RequestMediaUpload(c.Request.Context(), actor, artifactID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, upload)
}

// GetMediaDownload issues a presigned download URL for the artifact's media
func (h *ArtifactHandler) GetMediaDownload(c *gin.Context) {
	artifactID, ok := parseUUIDParam(c, "artifactId")
	if !ok {
		return
	}

	download, err := h.artifactService.GetMediaDownload(c.Request.Context(), artifactID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, download)
}
