package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// EventHandler serves the community event endpoints
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEvent schedules a new event
func (h *EventHandler) CreateEvent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, event)
}

// GetEvent returns a single event
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, event)
}

// ListEvents returns a page of events. With ?upcoming=true only events that
// have not yet ended are returned, soonest first.
func (h *EventHandler) ListEvents(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	upcomingOnly := c.Query("upcoming") == "true"
	list, err := h.eventService.ListEvents(c.Request.Context(), upcomingOnly, &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// UpdateEvent applies a partial update
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), actor, eventID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, event)
}

// DeleteEvent removes an event
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), actor, eventID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
