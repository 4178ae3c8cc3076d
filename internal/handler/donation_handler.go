package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// DonationHandler serves the donation endpoints
type DonationHandler struct {
	donationService service.DonationService
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donationService service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// CreateDonation records a donation pledge. Anonymous donations are allowed,
// so this endpoint accepts requests without authentication.
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	donation, err := h.donationService.CreateDonation(c.Request.Context(), optionalActor(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, donation)
}

// CompleteDonation marks a pending donation as completed. Admin only.
func (h *DonationHandler) CompleteDonation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	donationID, ok := parseUUIDParam(c, "donationId")
	if !ok {
		return
	}

	donation, err := h.donationService.CompleteDonation(c.Request.Context(), actor, donationID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, donation)
}

// ListDonations returns donations with a completed-amount total. Admin only.
func (h *DonationHandler) ListDonations(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	list, err := h.donationService.ListDonations(c.Request.Context(), actor, &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}
