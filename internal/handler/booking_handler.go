package handler

import (
	"strconv"

	"github.com/Manoj814/SaiStarBooking/internal/application"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/auth"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/middleware"
	"github.com/Manoj814/SaiStarBooking/internal/pkg/response"
	"github.com/gin-gonic/gin"
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
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	operator := middleware.RequireRole(auth.RoleOperator)

	bookings := r.Group("/api/v1/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", operator, h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", operator, h.UpdateBooking)
		bookings.DELETE("/:id", operator, h.DeleteBooking)
		bookings.POST("/:id/payments", operator, h.RecordPayment)
	}

	availability := r.Group("/api/v1/availability")
	availability.Use(authMW)
	{
		availability.GET("", h.GetAvailability)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListBookings handles GET /api/v1/bookings. The view query parameter selects
// the upcoming calendar (default) or past history; q filters by customer name
// or date substring.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	query := c.Query("q")

	switch c.DefaultQuery("view", "upcoming") {
	case "history":
		result, err := h.service.ListHistory(c.Request.Context(), query)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, result)
	case "upcoming":
		result, err := h.service.ListUpcoming(c.Request.Context(), query)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, result)
	default:
		response.BadRequest(c, "view must be 'upcoming' or 'history'")
	}
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBooking handles PUT /api/v1/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBooking handles DELETE /api/v1/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// RecordPayment handles POST /api/v1/bookings/:id/payments.
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req application.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetAvailability handles GET /api/v1/availability?date=YYYY-MM-DD.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, "date query parameter is required")
		return
	}

	result, err := h.service.GetAvailability(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parseBookingID extracts the numeric booking id from the path, writing a 400
// on failure.
func parseBookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid booking ID")
		return 0, false
	}
	return id, true
}
