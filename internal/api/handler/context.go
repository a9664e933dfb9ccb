package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// authUser is the identity the Auth middleware placed on the request context.
type authUser struct {
	ID   string
	Name string
	Role domain.Role
}

// ctxUser extracts the authenticated identity. Every protected handler calls
// this first; an empty user id means the middleware never ran or the token
// carried no subject, so the request is rejected before any service call.
func ctxUser(c echo.Context) (authUser, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return authUser{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	name, _ := c.Get("name").(string)
	role, _ := c.Get("role").(string)
	return authUser{ID: id, Name: name, Role: domain.Role(role)}, nil
}
