package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking-api/internal/apperr"
)

// TokenVerifier resolves a session token, optionally prefixed with
// "Bearer ", to a user id.
type TokenVerifier interface {
	VerifyToken(raw string) (uint64, error)
}

// RequireAuth rejects requests without a valid session token in the
// Authorization header.  On success the user id is stored in the context
// under "user_id" as a uint64.
func RequireAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := v.VerifyToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				msg := "Invalid token"
				if apperr.Is(err, apperr.KindAuth) {
					msg = apperr.Message(err)
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
			}
			c.Set(userIDKey, id)
			return next(c)
		}
	}
}
