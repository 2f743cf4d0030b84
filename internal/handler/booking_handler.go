package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/venuehub/service-bookings/internal/application"
	"github.com/venuehub/service-bookings/internal/domain/booking"
	"github.com/venuehub/service-bookings/internal/domain/identity"
	"github.com/venuehub/service-bookings/internal/middleware"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(middleware.Identity())
	{
		bookings.POST("", middleware.RequireScope(identity.ScopeBookingsWrite), h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.DELETE("/:id", middleware.RequireScope(identity.ScopeAdminDelete), h.DeleteBooking)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		Error(c, err)
		return
	}
	Created(c, result)
}

// ListBookings handles GET /api/v1/bookings. Visibility depends on the
// caller's scopes; query filters only narrow within that.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	q, err := parseListQuery(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListBookings(c.Request.Context(), actor, q)
	if err != nil {
		Error(c, err)
		return
	}
	Paginated(c, result, q.Page, q.PageSize)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, result)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/v1/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid booking ID")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	target, err := booking.ParseBookingStatus(req.Status)
	if err != nil {
		Error(c, err)
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), actor, id, target)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, result)
}

// DeleteBooking handles DELETE /api/v1/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), actor, id); err != nil {
		Error(c, err)
		return
	}
	NoContent(c)
}

func parseListQuery(c *gin.Context) (application.ListQuery, error) {
	q := application.ListQuery{}
	q.Page, q.PageSize = parsePagination(c)

	if raw := c.Query("venue_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return q, err
		}
		q.VenueID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status, err := booking.ParseBookingStatus(raw)
		if err != nil {
			return q, err
		}
		q.Status = &status
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return q, err
		}
		q.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return q, err
		}
		q.To = &t
	}
	return q, nil
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
