package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking-api/internal/apperr"
	"github.com/iliyamo/flight-booking-api/internal/model"
	"github.com/iliyamo/flight-booking-api/internal/service"
)

// BookingManager is implemented by service.BookingService.
type BookingManager interface {
	QuickRegister(ctx context.Context, email, name string) (model.User, error)
	CreateBooking(ctx context.Context, in service.BookingInput) (model.Booking, error)
	ListUserBookings(ctx context.Context, userID uint64) ([]model.Booking, error)
}

// BookingHandler serves the booking flow endpoints.  Every failure on
// these routes is reported as 400.
type BookingHandler struct {
	Bookings BookingManager
}

func NewBookingHandler(b BookingManager) *BookingHandler { return &BookingHandler{Bookings: b} }

type quickRegisterReq struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// flexUint accepts a JSON number or a decimal string.
type flexUint uint64

func (f *flexUint) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("not an id: %s", s)
	}
	*f = flexUint(n)
	return nil
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	*f = flexFloat(n)
	return nil
}

type createBookingReq struct {
	UserID        flexUint  `json:"user_id"`
	FlightNumber  string    `json:"flight_number"`
	Airline       string    `json:"airline"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time"`
	Price         flexFloat `json:"price"`
	Currency      string    `json:"currency"`
	CabinClass    string    `json:"cabin_class"`
}

// timeLayouts are the accepted departure/arrival formats.  Values without a
// zone are taken as UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseTime(field, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, apperr.Validation(field + " is required")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperr.Validation("invalid " + field + ": " + v)
}

// QuickRegister: POST /api/register.
func (h *BookingHandler) QuickRegister(c echo.Context) error {
	var req quickRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Bookings.QuickRegister(ctx, req.Email, req.Name)
	if err != nil {
		return writeLegacyError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user_id": u.ID, "email": u.Email, "name": u.Name})
}

// Create: POST /api/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	dep, err := parseTime("departure_time", req.DepartureTime)
	if err != nil {
		return writeLegacyError(c, err)
	}
	arr, err := parseTime("arrival_time", req.ArrivalTime)
	if err != nil {
		return writeLegacyError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.CreateBooking(ctx, service.BookingInput{
		UserID:        uint64(req.UserID),
		FlightNumber:  req.FlightNumber,
		Airline:       req.Airline,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: dep,
		ArrivalTime:   arr,
		Price:         float64(req.Price),
		Currency:      req.Currency,
		CabinClass:    req.CabinClass,
	})
	if err != nil {
		return writeLegacyError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking_reference": b.BookingReference})
}

// ListByUser: GET /api/users/:id/bookings.
func (h *BookingHandler) ListByUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListUserBookings(ctx, id)
	if err != nil {
		return writeLegacyError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
