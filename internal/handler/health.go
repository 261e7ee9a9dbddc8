package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe used by load balancers.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Home answers the root path so a browser pointed at the API sees it is up.
func Home(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Flight Booking API is running!</h1><p>Search airports at <a href=\"/api/airports?q=del\">/api/airports?q=del</a>.</p>")
}
