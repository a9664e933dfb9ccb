package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// AdminHandler serves the admin-only user listing and platform stats.
type AdminHandler struct {
	userService ports.UserService
	users       ports.UserRepository
	courses     ports.CourseRepository
	bookings    ports.BookingRepository
	certs       ports.CertificationRepository
}

func NewAdminHandler(
	userService ports.UserService,
	users ports.UserRepository,
	courses ports.CourseRepository,
	bookings ports.BookingRepository,
	certs ports.CertificationRepository,
) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		users:       users,
		courses:     courses,
		bookings:    bookings,
		certs:       certs,
	}
}

type statsResponse struct {
	Users          int64 `json:"users"`
	Courses        int64 `json:"courses"`
	Bookings       int64 `json:"bookings"`
	Certifications int64 `json:"certifications"`
}

// ListUsers returns every account on the platform.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Stats returns headline collection counts.
//
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	userCount, err := h.users.Count(ctx)
	if err != nil {
		return err
	}
	courseCount, err := h.courses.Count(ctx)
	if err != nil {
		return err
	}
	bookingCount, err := h.bookings.Count(ctx)
	if err != nil {
		return err
	}
	certCount, err := h.certs.Count(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statsResponse{
		Users:          userCount,
		Courses:        courseCount,
		Bookings:       bookingCount,
		Certifications: certCount,
	})
}
