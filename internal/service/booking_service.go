package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/flight-booking-api/internal/apperr"
	"github.com/iliyamo/flight-booking-api/internal/model"
	"github.com/iliyamo/flight-booking-api/internal/queue"
	"github.com/iliyamo/flight-booking-api/internal/repository"
)

// BookingStore is the subset of the booking repository the service needs.
type BookingStore interface {
	Create(ctx context.Context, b model.Booking) (uint64, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
}

// BookingPublisher announces committed bookings.  Failures never fail the
// booking itself.
type BookingPublisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

const publishTimeout = 3 * time.Second

// BookingInput is a booking request after the handler has parsed times and
// price.  Currency and CabinClass fall back to the model defaults.
type BookingInput struct {
	UserID        uint64
	FlightNumber  string
	Airline       string
	Origin        string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Price         float64
	Currency      string
	CabinClass    string
}

// BookingService creates and lists bookings, and backs the password-less
// quick registration used by the booking flow.
type BookingService struct {
	users     UserStore
	bookings  BookingStore
	publisher BookingPublisher
	newRef    func() string
	now       func() time.Time
}

func NewBookingService(users UserStore, bookings BookingStore, publisher BookingPublisher) *BookingService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &BookingService{
		users:     users,
		bookings:  bookings,
		publisher: publisher,
		newRef:    func() string { return uuid.NewString() },
		now:       time.Now,
	}
}

// QuickRegister creates a user with only an email and a name.  The account
// has no password and cannot log in until one is set.
func (s *BookingService) QuickRegister(ctx context.Context, email, name string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" {
		return model.User{}, apperr.Validation("email is required")
	}
	if name == "" {
		return model.User{}, apperr.Validation("name is required")
	}

	u := model.User{Email: email, Name: name}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, apperr.Conflict("Email already registered")
		}
		return model.User{}, apperr.Storage("could not create user", err)
	}
	u.ID = id
	return u, nil
}

// CreateBooking stores a confirmed booking under a fresh booking reference
// and publishes a BookingCreatedEvent once the row is committed.
func (s *BookingService) CreateBooking(ctx context.Context, in BookingInput) (model.Booking, error) {
	if err := validateBooking(in); err != nil {
		return model.Booking{}, err
	}
	b := model.Booking{
		UserID:           in.UserID,
		FlightNumber:     strings.TrimSpace(in.FlightNumber),
		Airline:          strings.TrimSpace(in.Airline),
		Origin:           strings.ToUpper(strings.TrimSpace(in.Origin)),
		Destination:      strings.ToUpper(strings.TrimSpace(in.Destination)),
		DepartureTime:    in.DepartureTime.UTC(),
		ArrivalTime:      in.ArrivalTime.UTC(),
		Price:            in.Price,
		Currency:         orDefault(in.Currency, model.DefaultCurrency),
		CabinClass:       orDefault(in.CabinClass, model.DefaultCabinClass),
		BookingReference: s.newRef(),
		Status:           model.BookingConfirmed,
		CreatedAt:        s.now().UTC(),
	}

	id, err := s.bookings.Create(ctx, b)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidReference):
			return model.Booking{}, apperr.Validation("user_id does not reference an existing user")
		case errors.Is(err, repository.ErrDuplicate):
			return model.Booking{}, apperr.Conflict("booking reference already exists")
		}
		return model.Booking{}, apperr.Storage("could not create booking", err)
	}
	b.ID = id
	s.publish(ctx, b)
	return b, nil
}

// ListUserBookings returns a user's bookings, most recent departure first.
// A user without bookings gets an empty slice.
func (s *BookingService) ListUserBookings(ctx context.Context, userID uint64) ([]model.Booking, error) {
	list, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("could not list bookings", err)
	}
	if list == nil {
		list = []model.Booking{}
	}
	return list, nil
}

func (s *BookingService) publish(ctx context.Context, b model.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	ev := queue.BookingCreatedEvent{
		BookingID:        b.ID,
		BookingReference: b.BookingReference,
		UserID:           b.UserID,
		FlightNumber:     b.FlightNumber,
		Airline:          b.Airline,
		Origin:           b.Origin,
		Destination:      b.Destination,
		DepartureTime:    b.DepartureTime.Format(time.RFC3339),
		ArrivalTime:      b.ArrivalTime.Format(time.RFC3339),
		Price:            b.Price,
		Currency:         b.Currency,
		CabinClass:       b.CabinClass,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
	if err := s.publisher.PublishBookingCreated(ctx, ev); err != nil {
		log.Printf("booking: event for %s not published: %v", b.BookingReference, err)
	}
}

func validateBooking(in BookingInput) error {
	switch {
	case in.UserID == 0:
		return apperr.Validation("user_id is required")
	case strings.TrimSpace(in.FlightNumber) == "":
		return apperr.Validation("flight_number is required")
	case strings.TrimSpace(in.Airline) == "":
		return apperr.Validation("airline is required")
	case strings.TrimSpace(in.Origin) == "":
		return apperr.Validation("origin is required")
	case strings.TrimSpace(in.Destination) == "":
		return apperr.Validation("destination is required")
	case in.DepartureTime.IsZero():
		return apperr.Validation("departure_time is required")
	case in.ArrivalTime.IsZero():
		return apperr.Validation("arrival_time is required")
	case in.Price < 0:
		return apperr.Validation("price must not be negative")
	}
	return nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
