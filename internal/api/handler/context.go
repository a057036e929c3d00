package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the role and the
// numeric subject must be present, otherwise the token never passed through
// the middleware.
func ctxIdentity(c echo.Context) (userID uint, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, ok := c.Get("user_id").(uint)
	if !ok || userID == 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	return userID, role, nil
}
