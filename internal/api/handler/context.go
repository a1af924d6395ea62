package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propamit/propamit-api/internal/api/middleware"
)

// userID extracts the authenticated user's id injected by RequireUser. An
// empty id means the middleware did not run on this route, which is a wiring
// bug; fail closed with 401 rather than querying with an empty id.
func userID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.UserIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
