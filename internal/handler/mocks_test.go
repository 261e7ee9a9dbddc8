package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/flight-booking-api/internal/amadeus"
	"github.com/iliyamo/flight-booking-api/internal/model"
	"github.com/iliyamo/flight-booking-api/internal/service"
)

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Register(ctx context.Context, in service.RegisterInput) (service.Session, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(service.Session), args.Error(1)
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, password string) (service.Session, error) {
	args := m.Called(ctx, identifier, password)
	return args.Get(0).(service.Session), args.Error(1)
}

func (m *MockAuthenticator) GetProfile(ctx context.Context, userID uint64) (model.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Profile), args.Error(1)
}

type MockBookingManager struct{ mock.Mock }

func (m *MockBookingManager) QuickRegister(ctx context.Context, email, name string) (model.User, error) {
	args := m.Called(ctx, email, name)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockBookingManager) CreateBooking(ctx context.Context, in service.BookingInput) (model.Booking, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Booking), args.Error(1)
}

func (m *MockBookingManager) ListUserBookings(ctx context.Context, userID uint64) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

type MockFlightSearcher struct{ mock.Mock }

func (m *MockFlightSearcher) SearchFlights(ctx context.Context, req amadeus.SearchRequest) (amadeus.SearchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return amadeus.SearchResult{}, args.Error(1)
	}
	return args.Get(0).(amadeus.SearchResult), args.Error(1)
}

type stubDirectory struct {
	airports []model.Airport
}

func (s stubDirectory) Search(q string) []model.Airport {
	if q == "none" {
		return []model.Airport{}
	}
	return s.airports
}

func (s stubDirectory) Lookup(code string) (model.Coordinates, bool) {
	for _, a := range s.airports {
		if a.IATA == code {
			return model.Coordinates{IATA: a.IATA, Lat: a.Latitude, Lng: a.Longitude}, true
		}
	}
	return model.Coordinates{}, false
}

func (s stubDirectory) DistanceKm(from, to string) (float64, bool) {
	if from == "DEL" && to == "BOM" {
		return 1137.4, true
	}
	return 0, false
}
