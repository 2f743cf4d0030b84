package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/venuehub/service-bookings/internal/application"
	"github.com/venuehub/service-bookings/internal/middleware"
)

// SlotHandler serves venue occupancy. Any authenticated caller may read it;
// responses never carry user or pricing data.
type SlotHandler struct {
	service *application.SlotService
}

// NewSlotHandler creates a new SlotHandler.
func NewSlotHandler(service *application.SlotService) *SlotHandler {
	return &SlotHandler{service: service}
}

// RegisterRoutes registers the slot routes on the given router group.
func (h *SlotHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/venues/:venue_id/slots", middleware.Identity(), h.GetSlots)
}

// GetSlots handles GET /api/v1/venues/:venue_id/slots.
func (h *SlotHandler) GetSlots(c *gin.Context) {
	venueID, err := uuid.Parse(c.Param("venue_id"))
	if err != nil {
		BadRequest(c, "invalid venue ID")
		return
	}

	slots, err := h.service.GetSlots(c.Request.Context(), venueID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, slots)
}
