package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/flight-booking-api/internal/model"
)

// BookingRepo provides insert and per-user listing of bookings.  All
// timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts b and returns its generated ID.  Status and CreatedAt are
// left to the column defaults.
func (r *BookingRepo) Create(ctx context.Context, b model.Booking) (uint64, error) {
	const q = `INSERT INTO bookings (
		user_id, flight_number, airline, origin, destination,
		departure_time, arrival_time, price, currency, cabin_class, booking_reference
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.UserID, b.FlightNumber, b.Airline, b.Origin, b.Destination,
		b.DepartureTime.UTC(), b.ArrivalTime.UTC(), b.Price, b.Currency, b.CabinClass, b.BookingReference)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns every booking owned by userID, newest departure first.
// A user without bookings yields an empty, non-nil slice.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT id, user_id, flight_number, airline, origin, destination,
		departure_time, arrival_time, price, currency, cabin_class, booking_reference, status, created_at
		FROM bookings WHERE user_id = ? ORDER BY departure_time DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.FlightNumber, &b.Airline, &b.Origin, &b.Destination,
			&b.DepartureTime, &b.ArrivalTime, &b.Price, &b.Currency, &b.CabinClass,
			&b.BookingReference, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
