package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/tasktracker/internal/api/middleware"
)

// ctxCallerID extracts the verified caller identity injected by the Auth
// middleware. Presence of a non-empty user_id proves the middleware ran;
// its absence means the route was wired without auth — reject with 401
// rather than proceed without an authorization context.
func ctxCallerID(c echo.Context) (string, error) {
	callerID, _ := c.Get(middleware.CtxUserID).(string)
	if callerID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return callerID, nil
}
