package response

import (
	"errors"
	"net/http"

	"github.com/Manoj814/SaiStarBooking/internal/domain/schedule"
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body for all endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PaginatedEnvelope wraps list responses with paging metadata.
type PaginatedEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: message})
}

// Paginated writes a 200 list response with paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, PaginatedEnvelope{Success: true, Data: items, Total: total, Page: page, Limit: limit})
}

// Error maps a domain error to its HTTP status. Validation failures are the
// caller's to correct (400), a missing booking means a stale view (404), and
// both overlap and revision conflicts surface as 409.
func Error(c *gin.Context, err error) {
	var (
		invalidInterval *schedule.InvalidIntervalError
		validation      *schedule.ValidationError
		overlap         *schedule.OverlapError
		notFound        *schedule.NotFoundError
		conflict        *schedule.ConflictError
	)

	switch {
	case errors.As(err, &invalidInterval), errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
	case errors.As(err, &overlap):
		c.JSON(http.StatusConflict, gin.H{
			"success":   false,
			"error":     err.Error(),
			"conflicts": overlap.Conflicts,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, Envelope{Success: false, Error: err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, Envelope{Success: false, Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Envelope{Success: false, Error: "internal server error"})
	}
}
