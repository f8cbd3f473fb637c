package handlers

import (
	"net/http"

	"karigar/middleware"
	"karigar/models"
	"karigar/services/booking"
	"karigar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultBookingsPerPage = 10
	maxBookingsPerPage     = 100
)

// BookingHandler serves the booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(service booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: service}
}

// CreateBookingHandler handles POST /bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	userID := middleware.UserID(c)
	b, err := h.Service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		utils.GetLogger().Warn("Create booking failed", zap.String("userID", userID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Booking created successfully", "booking": b})
}

// GetMyBookingsHandler handles GET /bookings/my-bookings.
func (h *BookingHandler) GetMyBookingsHandler(c *gin.Context) {
	page := utils.ParsePage(c, defaultBookingsPerPage, maxBookingsPerPage)
	result, err := h.Service.ListCustomerBookings(c.Request.Context(), middleware.UserID(c), parseStatuses(c.Query("status")), page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope("bookings", result))
}

// GetProviderBookingsHandler handles GET /bookings/provider.
func (h *BookingHandler) GetProviderBookingsHandler(c *gin.Context) {
	page := utils.ParsePage(c, defaultBookingsPerPage, maxBookingsPerPage)
	result, err := h.Service.ListProviderBookings(c.Request.Context(), middleware.UserID(c), parseStatuses(c.Query("status")), page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope("bookings", result))
}

// GetProviderHistoryHandler handles GET /bookings/provider/history.
func (h *BookingHandler) GetProviderHistoryHandler(c *gin.Context) {
	page := utils.ParsePage(c, defaultBookingsPerPage, maxBookingsPerPage)
	result, err := h.Service.ProviderHistory(c.Request.Context(), middleware.UserID(c), page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope("bookings", result))
}

// GetBookingHandler handles GET /bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// UpdateStatusHandler handles PUT /bookings/:id/status.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.StatusUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Service.UpdateStatus(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	h.respondTransition(c, b, err, "Booking status updated")
}

// AcceptBookingHandler handles PUT /bookings/:id/accept.
func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	b, err := h.Service.AcceptBooking(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	h.respondTransition(c, b, err, "Booking accepted")
}

// RejectBookingHandler handles PUT /bookings/:id/reject.
func (h *BookingHandler) RejectBookingHandler(c *gin.Context) {
	var req models.RejectRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Service.RejectBooking(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Reason)
	h.respondTransition(c, b, err, "Booking rejected")
}

// RescheduleBookingHandler handles PUT /bookings/:id/reschedule.
func (h *BookingHandler) RescheduleBookingHandler(c *gin.Context) {
	var req models.RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Service.RescheduleBooking(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	h.respondTransition(c, b, err, "Booking rescheduled")
}

// StartBookingHandler handles PUT /bookings/:id/start.
func (h *BookingHandler) StartBookingHandler(c *gin.Context) {
	b, err := h.Service.StartBooking(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	h.respondTransition(c, b, err, "Booking started")
}

// CompleteBookingHandler handles PUT /bookings/:id/complete.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	b, err := h.Service.CompleteBooking(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	h.respondTransition(c, b, err, "Booking completed")
}

// AddMessageHandler handles POST /bookings/:id/messages.
func (h *BookingHandler) AddMessageHandler(c *gin.Context) {
	var req models.MessageRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Service.AddMessage(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Message)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message added", "messages": b.Messages})
}

func (h *BookingHandler) respondTransition(c *gin.Context, b *models.Booking, err error, message string) {
	if err != nil {
		utils.GetLogger().Info("Booking transition refused",
			zap.String("bookingID", c.Param("id")),
			zap.String("userID", middleware.UserID(c)),
			zap.Error(err),
		)
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "booking": b})
}
