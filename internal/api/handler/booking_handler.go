package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// BookingHandler serves the hire-request workflow.
type BookingHandler struct {
	bookingService ports.BookingService
}

func NewBookingHandler(bookingService ports.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type createBookingRequest struct {
	ProfessionalID string `json:"professional_id" validate:"required"`
	EventType      string `json:"event_type" validate:"required"`
	Date           string `json:"date" validate:"required"`
	Location       string `json:"location" validate:"required"`
	Duration       string `json:"duration"`
	Budget         string `json:"budget"`
	Requirements   string `json:"requirements"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected completed"`
}

type submitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// Create files a hire request against a professional.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookingService.Create(c.Request().Context(), ports.CreateBookingInput{
		ClientID:       user.ID,
		ProfessionalID: req.ProfessionalID,
		EventType:      req.EventType,
		Date:           req.Date,
		Location:       req.Location,
		Duration:       req.Duration,
		Budget:         req.Budget,
		Requirements:   req.Requirements,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

// MyBookings lists the caller's bookings as a client, newest first.
//
// @Summary      List own bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Booking
// @Router       /api/v1/bookings/my-bookings [get]
func (h *BookingHandler) MyBookings(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	bookings, err := h.bookingService.MyBookings(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// JobRequests lists bookings addressed to the caller as a professional.
//
// @Summary      List incoming job requests
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Booking
// @Router       /api/v1/bookings/job-requests [get]
func (h *BookingHandler) JobRequests(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	bookings, err := h.bookingService.JobRequests(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// UpdateStatus advances the booking state machine. Only the professional may
// accept or reject; either party may complete an accepted booking.
//
// @Summary      Update booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Booking id"
// @Param        body  body      updateBookingStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Booking
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookingService.UpdateStatus(c.Request().Context(), c.Param("id"), user.ID, domain.BookingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// SubmitReview attaches the client's one-time review to a completed booking.
//
// @Summary      Review a completed booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Booking id"
// @Param        body  body      submitReviewRequest  true  "Review"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/bookings/{id}/review [post]
func (h *BookingHandler) SubmitReview(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookingService.SubmitReview(c.Request().Context(), ports.SubmitReviewInput{
		BookingID:  c.Param("id"),
		ClientID:   user.ID,
		ClientName: user.Name,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}
