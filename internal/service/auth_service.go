// Package service holds the application logic that sits between the HTTP
// handlers and the repositories.  Every error it returns is an *apperr.Error
// so handlers can map it to a status without inspecting driver errors.
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iliyamo/flight-booking-api/internal/apperr"
	"github.com/iliyamo/flight-booking-api/internal/model"
	"github.com/iliyamo/flight-booking-api/internal/repository"
	"github.com/iliyamo/flight-booking-api/internal/utils"
)

// UserStore is the subset of the user repository the services need.
type UserStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (model.User, error)
	ExistsByEmailOrMobile(ctx context.Context, email, mobile string) (bool, error)
}

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

// MaxPasswordBytes is the bcrypt input limit.
const MaxPasswordBytes = 72

var errInvalidCredentials = apperr.Auth("Invalid email/mobile or password")

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Mobile   string
}

// Session is a freshly minted token together with the profile it belongs to.
type Session struct {
	Token utils.SessionToken
	User  model.Profile
}

// AuthService registers users, checks credentials and issues session tokens.
type AuthService struct {
	users  UserStore
	secret string
	ttl    time.Duration
	cost   int
	now    func() time.Time

	// dummyHash is compared against when a login identifier matches nobody,
	// so both failure paths cost one bcrypt comparison.
	dummyHash string
}

func NewAuthService(users UserStore, secret string, ttl time.Duration, bcryptCost int) *AuthService {
	dummy, err := utils.HashPassword("not-a-real-password", bcryptCost)
	if err != nil {
		log.Printf("auth: dummy hash: %v", err)
	}
	return &AuthService{users: users, secret: secret, ttl: ttl, cost: bcryptCost, now: time.Now, dummyHash: dummy}
}

// Register validates in, stores a new user with a bcrypt hash and returns a
// session for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Mobile = strings.TrimSpace(in.Mobile)
	if err := validateRegistration(in); err != nil {
		return Session{}, err
	}

	exists, err := s.users.ExistsByEmailOrMobile(ctx, in.Email, in.Mobile)
	if err != nil {
		return Session{}, apperr.Storage("Database error occurred during registration", err)
	}
	if exists {
		return Session{}, apperr.Conflict("Email or mobile number already registered")
	}

	hash, err := utils.HashPassword(in.Password, s.cost)
	if err != nil {
		return Session{}, apperr.Storage("An error occurred during registration", err)
	}
	u := model.User{Email: in.Email, PasswordHash: hash, Name: in.Name, Mobile: in.Mobile}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		// A concurrent registration can win the race between the check and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return Session{}, apperr.Conflict("Email or mobile number already registered")
		}
		return Session{}, apperr.Storage("Database error occurred during registration", err)
	}
	u.ID = id
	log.Printf("auth: registered user id=%d", id)
	return s.session(u)
}

func validateRegistration(in RegisterInput) error {
	switch {
	case in.Name == "":
		return apperr.Validation("name is required")
	case in.Email == "":
		return apperr.Validation("email is required")
	case in.Password == "":
		return apperr.Validation("password is required")
	case in.Mobile == "":
		return apperr.Validation("mobile is required")
	case !strings.Contains(in.Email, "@"):
		return apperr.Validation("Invalid email format")
	case !isMobile(in.Mobile):
		return apperr.Validation("Mobile number must be 10 digits")
	case utf8.RuneCountInString(in.Password) < MinPasswordLength:
		return apperr.Validation("Password must be at least 6 characters long")
	case len(in.Password) > MaxPasswordBytes:
		return apperr.Validation("Password must be at most 72 bytes long")
	}
	return nil
}

func isMobile(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Login authenticates by email or mobile.  An unknown identifier and a wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return Session{}, apperr.Validation("Email/Mobile and password are required")
	}

	u, err := s.users.GetByIdentifier(ctx, identifier)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.VerifyPassword(s.dummyHash, password)
		return Session{}, errInvalidCredentials
	case err != nil:
		return Session{}, apperr.Storage("Database error occurred", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return Session{}, errInvalidCredentials
	}
	return s.session(u)
}

// VerifyToken returns the user id carried by a valid session token.  raw may
// carry a "Bearer " prefix.
func (s *AuthService) VerifyToken(raw string) (uint64, error) {
	id, err := utils.ParseSessionToken(s.secret, raw, s.now())
	if err != nil {
		if errors.Is(err, utils.ErrTokenMissing) {
			return 0, apperr.Auth("Token is missing")
		}
		return 0, apperr.Auth("Invalid token")
	}
	return id, nil
}

// GetProfile returns the public fields of a user.
func (s *AuthService) GetProfile(ctx context.Context, userID uint64) (model.Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Profile{}, apperr.NotFound("User not found")
		}
		return model.Profile{}, apperr.Storage("Database error occurred", err)
	}
	return u.Profile(), nil
}

func (s *AuthService) session(u model.User) (Session, error) {
	tok, err := utils.NewSessionToken(s.secret, u.ID, s.now(), s.ttl)
	if err != nil {
		return Session{}, apperr.Storage("could not issue session token", err)
	}
	return Session{Token: tok, User: u.Profile()}, nil
}
