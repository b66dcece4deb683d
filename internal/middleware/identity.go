package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/mealora/food-ordering/internal/authz"
	"github.com/mealora/food-ordering/internal/model"
)

// ErrNoPrincipal is returned when no authenticated identity is present
// in the request context.
var ErrNoPrincipal = errors.New("no authenticated principal in context")

// Principal builds the policy principal for the current request from the
// claims JWTAuth stored in the context.  Every data-access decision is
// made against this value rather than any ambient global state.
func Principal(c echo.Context) (authz.Principal, error) {
	id, ok := c.Get(ctxUserID).(string)
	if !ok || id == "" {
		return authz.Principal{}, ErrNoPrincipal
	}
	var roles []model.Role
	if names, ok := c.Get(ctxRoles).([]string); ok {
		roles = make([]model.Role, 0, len(names))
		for _, n := range names {
			roles = append(roles, model.Role(n))
		}
	}
	return authz.Principal{ID: id, Roles: roles}, nil
}
