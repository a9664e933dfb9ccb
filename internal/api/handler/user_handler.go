package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// UserHandler serves own-profile reads/updates and the talent directory.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type portfolioEntryRequest struct {
	Title       string `json:"title" validate:"required"`
	URL         string `json:"url" validate:"required"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
}

type updateProfileRequest struct {
	Name         *string                 `json:"name" validate:"omitempty,min=1"`
	Email        *string                 `json:"email" validate:"omitempty,email"`
	Title        *string                 `json:"title"`
	Avatar       *string                 `json:"avatar"`
	HourlyRate   *float64                `json:"hourly_rate" validate:"omitempty,gte=0"`
	Experience   *string                 `json:"experience"`
	Portfolio    []portfolioEntryRequest `json:"portfolio" validate:"omitempty,dive"`
	IsOpenToWork *bool                   `json:"is_open_to_work"`
	Availability *string                 `json:"availability" validate:"omitempty,oneof=full-time part-time both freelance"`
}

type talentProfileResponse struct {
	User           *domain.User           `json:"user"`
	Certifications []domain.Certification `json:"certifications"`
}

// Me returns the authenticated user's own record.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	me, err := h.userService.Me(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, me)
}

// UpdateMe applies a partial update to the caller's own profile. Absent
// fields are left untouched; the password cannot be changed on this path.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/users/update-me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := domain.ProfileUpdate{
		Name:         req.Name,
		Email:        req.Email,
		Title:        req.Title,
		Avatar:       req.Avatar,
		HourlyRate:   req.HourlyRate,
		Experience:   req.Experience,
		IsOpenToWork: req.IsOpenToWork,
	}
	if req.Availability != nil {
		av := domain.Availability(*req.Availability)
		update.Availability = &av
	}
	if req.Portfolio != nil {
		update.Portfolio = make([]domain.PortfolioEntry, 0, len(req.Portfolio))
		for _, p := range req.Portfolio {
			update.Portfolio = append(update.Portfolio, domain.PortfolioEntry{
				Title:       p.Title,
				URL:         p.URL,
				Thumbnail:   p.Thumbnail,
				Description: p.Description,
			})
		}
	}

	updated, err := h.userService.UpdateMe(c.Request().Context(), user.ID, update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// ListTalent returns every professional open to work.
//
// @Summary      Browse the talent directory
// @Tags         talent
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /api/v1/users/talent [get]
func (h *UserHandler) ListTalent(c echo.Context) error {
	talent, err := h.userService.ListTalent(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, talent)
}

// TalentProfile returns one professional's public profile with their earned
// certifications resolved to course titles.
//
// @Summary      Get a talent profile
// @Tags         talent
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  talentProfileResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) TalentProfile(c echo.Context) error {
	profile, err := h.userService.TalentProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, talentProfileResponse{
		User:           profile.User,
		Certifications: profile.Certifications,
	})
}
