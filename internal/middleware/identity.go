package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// UserIDKey holds the acting user's id in the echo context.
const UserIDKey = "shareit.userID"

// RequireUser reads the acting user id from header and rejects requests
// where it is missing or not a positive integer.
func RequireUser(header string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(header))
			if raw == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing "+header+" header")
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid "+header+" header")
			}
			c.Set(UserIDKey, uint(id))
			return next(c)
		}
	}
}

// UserID returns the id stored by RequireUser.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(UserIDKey).(uint)
	return id, ok
}
