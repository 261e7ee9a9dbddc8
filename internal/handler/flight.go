package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking-api/internal/amadeus"
	"github.com/iliyamo/flight-booking-api/internal/model"
)

// FlightSearcher is implemented by amadeus.Client.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, req amadeus.SearchRequest) (amadeus.SearchResult, error)
}

// RouteMeter is implemented by airport.Directory.
type RouteMeter interface {
	DistanceKm(from, to string) (float64, bool)
}

// FlightHandler serves the flight search proxy.
type FlightHandler struct {
	Flights  FlightSearcher
	Airports RouteMeter
}

func NewFlightHandler(f FlightSearcher, a RouteMeter) *FlightHandler {
	return &FlightHandler{Flights: f, Airports: a}
}

type optimizeReq struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

// Optimize: POST /api/optimize.  The upstream client carries its own
// timeout, so no handler deadline is added here.
func (h *FlightHandler) Optimize(c echo.Context) error {
	var req optimizeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No request data provided"})
	}

	res, err := h.Flights.SearchFlights(c.Request().Context(), amadeus.SearchRequest{
		Source:      req.Source,
		Destination: req.Destination,
		Date:        req.Date,
	})
	if err != nil {
		return writeError(c, err)
	}
	// An upstream answer with no offers gets the message shape; offers that
	// were all dropped during normalization still get the full shape.
	if res.Received == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"flights": []model.FlightOffer{},
			"message": "No flights found for the specified route and date",
		})
	}

	src := strings.ToUpper(strings.TrimSpace(req.Source))
	dst := strings.ToUpper(strings.TrimSpace(req.Destination))
	flights := res.Flights
	if flights == nil {
		flights = []model.FlightOffer{}
	}
	resp := echo.Map{
		"flights":       flights,
		"source":        src,
		"destination":   dst,
		"date":          strings.TrimSpace(req.Date),
		"total_flights": len(flights),
	}
	if h.Airports != nil {
		if km, ok := h.Airports.DistanceKm(src, dst); ok {
			resp["distance_km"] = km
		}
	}
	return c.JSON(http.StatusOK, resp)
}
