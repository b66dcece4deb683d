package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mealora/food-ordering/internal/model"
)

// RequireRole returns middleware that admits the request when the
// authenticated user holds at least one of the given roles.  Users may
// hold several roles at once; any match passes.  It assumes JWTAuth has
// already stored the roles claim in the context.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			held, ok := c.Get(ctxRoles).([]string)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			for _, r := range held {
				if allowed[r] {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}
}
