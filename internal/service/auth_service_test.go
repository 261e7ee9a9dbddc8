package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/flight-booking-api/internal/apperr"
	"github.com/iliyamo/flight-booking-api/internal/model"
)

func newTestAuth(users UserStore) *AuthService {
	s := NewAuthService(users, "test-secret", 24*time.Hour, bcrypt.MinCost)
	return s
}

func validRegistration() RegisterInput {
	return RegisterInput{Name: "Asha", Email: "Asha@Example.com", Password: "secret1", Mobile: "9876543210"}
}

func TestRegister_ProfileRoundTrips(t *testing.T) {
	users := newMemUsers()
	s := newTestAuth(users)
	ctx := context.Background()

	sess, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token.Token)
	assert.Equal(t, "asha@example.com", sess.User.Email)
	assert.Equal(t, "9876543210", sess.User.Mobile)

	id, err := s.VerifyToken(sess.Token.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, id)

	prof, err := s.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sess.User, prof)

	stored := users.byID[id]
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRegister_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		msg    string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = " " }, "name is required"},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, "email is required"},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, "password is required"},
		{"missing mobile", func(in *RegisterInput) { in.Mobile = "" }, "mobile is required"},
		{"email without at", func(in *RegisterInput) { in.Email = "asha.example.com" }, "Invalid email format"},
		{"short mobile", func(in *RegisterInput) { in.Mobile = "12345" }, "Mobile number must be 10 digits"},
		{"mobile with letters", func(in *RegisterInput) { in.Mobile = "98765abcde" }, "Mobile number must be 10 digits"},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }, "Password must be at least 6 characters long"},
		{"short multibyte password", func(in *RegisterInput) { in.Password = "ééé" }, "Password must be at least 6 characters long"},
		{"password over bcrypt limit", func(in *RegisterInput) { in.Password = strings.Repeat("a", 73) }, "Password must be at most 72 bytes long"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := newMemUsers()
			s := newTestAuth(users)
			in := validRegistration()
			tc.mutate(&in)

			_, err := s.Register(context.Background(), in)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
			assert.Equal(t, tc.msg, apperr.Message(err))
			assert.Empty(t, users.byID)
		})
	}
}

func TestRegister_Conflicts(t *testing.T) {
	s := newTestAuth(newMemUsers())
	ctx := context.Background()
	_, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)

	sameEmail := validRegistration()
	sameEmail.Mobile = "1111111111"
	_, err = s.Register(ctx, sameEmail)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	sameMobile := validRegistration()
	sameMobile.Email = "other@example.com"
	_, err = s.Register(ctx, sameMobile)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, 400, apperr.Status(err))
}

func TestRegister_StorageFailure(t *testing.T) {
	users := newMemUsers()
	users.err = errors.New("connection refused")
	s := newTestAuth(users)

	_, err := s.Register(context.Background(), validRegistration())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindStorage))
	assert.NotContains(t, apperr.Message(err), "connection refused")
}

func TestLogin_ByEmailOrMobile(t *testing.T) {
	s := newTestAuth(newMemUsers())
	ctx := context.Background()
	reg, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)

	for _, ident := range []string{"asha@example.com", "ASHA@example.com", "9876543210"} {
		sess, err := s.Login(ctx, ident, "secret1")
		require.NoError(t, err, ident)
		assert.Equal(t, reg.User, sess.User)
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	s := newTestAuth(newMemUsers())
	ctx := context.Background()
	_, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, wrongPassword := s.Login(ctx, "asha@example.com", "not-it")
	_, noUser := s.Login(ctx, "nobody@example.com", "secret1")

	require.Error(t, wrongPassword)
	require.Error(t, noUser)
	assert.Equal(t, apperr.Message(wrongPassword), apperr.Message(noUser))
	assert.Equal(t, apperr.Status(wrongPassword), apperr.Status(noUser))
	assert.Equal(t, 401, apperr.Status(noUser))
}

func TestLogin_PasswordlessAccountCannotLogin(t *testing.T) {
	users := newMemUsers()
	_, err := users.Create(context.Background(), model.User{Email: "quick@example.com", Name: "Quick"})
	require.NoError(t, err)
	s := newTestAuth(users)

	_, err = s.Login(context.Background(), "quick@example.com", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = s.Login(context.Background(), "quick@example.com", "anything")
	assert.True(t, apperr.Is(err, apperr.KindAuth))
}

func TestVerifyToken_Expiry(t *testing.T) {
	s := newTestAuth(newMemUsers())
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	sess, err := s.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(23 * time.Hour) }
	_, err = s.VerifyToken("Bearer " + sess.Token.Token)
	assert.NoError(t, err)

	s.now = func() time.Time { return issued.Add(24*time.Hour + time.Second) }
	_, err = s.VerifyToken(sess.Token.Token)
	assert.True(t, apperr.Is(err, apperr.KindAuth))
}

func TestVerifyToken_Missing(t *testing.T) {
	s := newTestAuth(newMemUsers())
	_, err := s.VerifyToken("")
	assert.Equal(t, "Token is missing", apperr.Message(err))
	_, err = s.VerifyToken("invalid.token.here")
	assert.Equal(t, "Invalid token", apperr.Message(err))
}

func TestGetProfile_NotFound(t *testing.T) {
	s := newTestAuth(newMemUsers())
	_, err := s.GetProfile(context.Background(), 99)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, 404, apperr.Status(err))
}
