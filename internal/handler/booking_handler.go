package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kestrel-academy/booking-api/internal/models"
	"github.com/kestrel-academy/booking-api/internal/service"
	appErrors "github.com/kestrel-academy/booking-api/pkg/errors"
	"github.com/kestrel-academy/booking-api/pkg/response"
)

// MatchSessionRequest is the payload for booking a 1:1 session. Referential
// and value checks (student/course existence, duration, slots) happen inside
// the matching pipeline so callers always get a structured BookingResult.
type MatchSessionRequest struct {
	StudentID       string                  `json:"student_id"`
	CourseID        string                  `json:"course_id"`
	DurationMinutes int                     `json:"duration_minutes"`
	Criteria        models.MatchingCriteria `json:"criteria"`
	Priority        string                  `json:"priority"`
}

// BookingHandler wires the matching engine and booking reads to HTTP routes.
type BookingHandler struct {
	matcher  *service.MatchingService
	bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(matcher *service.MatchingService, bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{matcher: matcher, bookings: bookings}
}

// Match godoc
// @Summary Book a 1:1 session
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body MatchSessionRequest true "Booking request"
// @Success 200 {object} response.Envelope
// @Router /bookings/match [post]
func (h *BookingHandler) Match(c *gin.Context) {
	var req MatchSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}

	result := h.matcher.BookOneOnOne(c.Request.Context(), models.BookingRequest{
		ID:              uuid.NewString(),
		StudentID:       req.StudentID,
		CourseID:        req.CourseID,
		DurationMinutes: req.DurationMinutes,
		Criteria:        req.Criteria,
		RequestType:     "one_on_one",
		Priority:        req.Priority,
		Status:          models.RequestPending,
		RequestedAt:     time.Now().UTC(),
	})

	response.JSON(c, http.StatusOK, result, nil)
}

// Preview godoc
// @Summary Preview teachers eligible for a booking request
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body MatchSessionRequest true "Booking request"
// @Success 200 {object} response.Envelope
// @Router /bookings/preview [post]
func (h *BookingHandler) Preview(c *gin.Context) {
	var req MatchSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}

	teachers, err := h.matcher.AvailableTeachers(c.Request.Context(), models.BookingRequest{
		StudentID:       req.StudentID,
		CourseID:        req.CourseID,
		DurationMinutes: req.DurationMinutes,
		Criteria:        req.Criteria,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}

// Get godoc
// @Summary Get booking detail
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Confirmation godoc
// @Summary Download booking confirmation PDF
// @Tags Bookings
// @Produce application/pdf
// @Param id path string true "Booking ID"
// @Success 200 {file} binary
// @Router /bookings/{id}/confirmation [get]
func (h *BookingHandler) Confirmation(c *gin.Context) {
	payload, err := h.bookings.Confirmation(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=booking-confirmation.pdf")
	c.Data(http.StatusOK, "application/pdf", payload)
}
