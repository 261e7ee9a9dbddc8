package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking-api/internal/apperr"
)

// writeError maps a service error onto its status and an {"error": msg}
// body.  Storage and upstream causes are logged, never sent to the client.
func writeError(c echo.Context, err error) error {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, echo.Map{"error": apperr.Message(err)})
}

// writeLegacyError is writeError for the /api/register, /api/bookings and
// /api/users/:id/bookings endpoints, which report every failure as 400.
func writeLegacyError(c echo.Context, err error) error {
	if apperr.Status(err) >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": apperr.Message(err)})
}

// HTTPErrorHandler renders errors that escape handlers and middleware,
// including router 404/405s, with the same {"error": msg} shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(he.Code)
			return
		}
		_ = c.JSON(he.Code, echo.Map{"error": msg})
		return
	}
	_ = writeError(c, err)
}
