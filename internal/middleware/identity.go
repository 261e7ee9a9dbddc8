package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// UserID returns the id stored by RequireAuth.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(userIDKey).(uint64)
	return id, ok && id != 0
}

// userKey is the user component of rate-limit keys: the decimal id, or
// "anon" on unauthenticated routes.
func userKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
