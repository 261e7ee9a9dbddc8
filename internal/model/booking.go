package model

import "time"

// Booking statuses.  Only BookingConfirmed is written today; the others
// exist in the schema enum.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Defaults applied when a booking request omits them.
const (
	DefaultCurrency   = "INR"
	DefaultCabinClass = "ECONOMY"
)

// Booking mirrors the `bookings` table.  BookingReference is the
// customer-facing identifier; ID is internal.
type Booking struct {
	ID               uint64    `json:"id"`
	UserID           uint64    `json:"user_id"`
	FlightNumber     string    `json:"flight_number"`
	Airline          string    `json:"airline"`
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Price            float64   `json:"price"`
	Currency         string    `json:"currency"`
	CabinClass       string    `json:"cabin_class"`
	BookingReference string    `json:"booking_reference"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}
