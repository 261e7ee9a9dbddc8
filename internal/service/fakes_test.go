package service

import (
	"context"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/flight-booking-api/internal/model"
	"github.com/iliyamo/flight-booking-api/internal/queue"
	"github.com/iliyamo/flight-booking-api/internal/repository"
)

// memUsers is an in-memory UserStore enforcing the same unique keys as the
// users table.
type memUsers struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]model.User
	err    error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[uint64]model.User{}} }

func (m *memUsers) Create(_ context.Context, u model.User) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for _, x := range m.byID {
		if x.Email == u.Email || (u.Mobile != "" && x.Mobile == u.Mobile) {
			return 0, repository.ErrDuplicate
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.byID[u.ID] = u
	return u.ID, nil
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.User{}, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByIdentifier(_ context.Context, identifier string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.User{}, m.err
	}
	for _, u := range m.byID {
		if u.Email == strings.ToLower(identifier) || (u.Mobile != "" && u.Mobile == identifier) {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memUsers) ExistsByEmailOrMobile(_ context.Context, email, mobile string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.byID {
		if u.Email == email || (mobile != "" && u.Mobile == mobile) {
			return true, nil
		}
	}
	return false, nil
}

type mockBookingStore struct{ mock.Mock }

func (m *mockBookingStore) Create(ctx context.Context, b model.Booking) (uint64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockBookingStore) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error {
	return m.Called(ctx, ev).Error(0)
}
