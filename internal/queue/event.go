// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// BookingQueue is the durable queue booking events are routed to.
const BookingQueue = "booking.created"

// BookingCreatedEvent is published after a booking row is committed.  It
// carries enough of the booking for downstream consumers to log or notify
// without querying the primary database.
type BookingCreatedEvent struct {
	BookingID        uint64  `json:"booking_id"`
	BookingReference string  `json:"booking_reference"`
	UserID           uint64  `json:"user_id"`
	FlightNumber     string  `json:"flight_number"`
	Airline          string  `json:"airline"`
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	DepartureTime    string  `json:"departure_time"`
	ArrivalTime      string  `json:"arrival_time"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	CabinClass       string  `json:"cabin_class"`
	CreatedAt        string  `json:"created_at"`
}
