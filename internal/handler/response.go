package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venuehub/service-bookings/internal/domain"
)

// Success writes a 200 response with the payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 response with items and paging metadata.
func Paginated(c *gin.Context, items interface{}, page, pageSize int) {
	c.JSON(http.StatusOK, gin.H{
		"data":      items,
		"page":      page,
		"page_size": pageSize,
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Error maps a domain error to its HTTP status. Unknown errors become 500
// without leaking internals.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case domain.KindInvalidInterval:
		status = http.StatusBadRequest
		message = err.Error()
	case domain.KindInvalidTransition:
		status = http.StatusBadRequest
		message = err.Error()
	case domain.KindConflict:
		status = http.StatusConflict
		message = err.Error()
	case domain.KindForbidden:
		status = http.StatusForbidden
		message = err.Error()
	case domain.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case domain.KindUpstream:
		status = http.StatusBadGateway
		message = err.Error()
	case domain.KindStorage:
		status = http.StatusInternalServerError
		message = "internal server error"
	}

	c.JSON(status, gin.H{"error": message})
}
