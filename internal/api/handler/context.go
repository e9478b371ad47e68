package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware.
// A non-empty profile proves the middleware ran. The user id may be zero;
// the account service treats zero as an absent id.
func ctxClaims(c echo.Context) (userID int64, profile string, err error) {
	profile, _ = c.Get("profile").(string)
	if profile == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get("user_id").(int64)
	return userID, profile, nil
}
