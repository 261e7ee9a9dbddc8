package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking-api/internal/model"
)

// AirportDirectory is implemented by airport.Directory.
type AirportDirectory interface {
	Search(query string) []model.Airport
	Lookup(code string) (model.Coordinates, bool)
}

// AirportHandler serves the airport lookup helper.
type AirportHandler struct {
	Dir AirportDirectory
}

func NewAirportHandler(d AirportDirectory) *AirportHandler { return &AirportHandler{Dir: d} }

// Search: GET /api/airports?q=.  An empty query or no match is still a 200.
func (h *AirportHandler) Search(c echo.Context) error {
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	if q == "" {
		return c.JSON(http.StatusOK, echo.Map{"airports": []model.Airport{}, "message": "Please provide a search query"})
	}
	results := h.Dir.Search(q)
	if len(results) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"airports": results, "message": "No airports found matching your query"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"airports": results,
		"message":  fmt.Sprintf("Found %d airports matching %q", len(results), q),
	})
}

// Lookup: GET /api/airports/:code.
func (h *AirportHandler) Lookup(c echo.Context) error {
	coords, ok := h.Dir.Lookup(c.Param("code"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Airport not found"})
	}
	return c.JSON(http.StatusOK, coords)
}
