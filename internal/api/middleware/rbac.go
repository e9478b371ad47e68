package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireProfile gates a route to the given access profiles. This is a
// presentation-level convenience only; the account service re-checks
// authorization on every operation it performs.
func RequireProfile(allowedProfiles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedProfiles))
	for _, p := range allowedProfiles {
		allowed[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profile, _ := c.Get("profile").(string)
			if _, ok := allowed[profile]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
