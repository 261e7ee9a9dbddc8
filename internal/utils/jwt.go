package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"  // sentinel errors for token parsing
	"strconv" // user ids are carried as decimal strings in "sub"
	"strings" // bearer prefix handling
	"time"    // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed JWT along with its expiry.  Session
// tokens are stateless: nothing about them is stored server side.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

var (
	ErrTokenMissing = errors.New("token is missing")
	ErrTokenInvalid = errors.New("invalid token")
)

// NewSessionToken builds and signs an HS256 JWT for a user.  The subject
// claim is the decimal user id; iat and exp are set from now and ttl.
func NewSessionToken(secret string, userID uint64, now time.Time, ttl time.Duration) (SessionToken, error) {
	now = now.UTC()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates raw (optionally prefixed with "Bearer ") and
// returns the user id in its subject.  Signature, algorithm and expiry are
// all checked against now.
func ParseSessionToken(secret, raw string, now time.Time) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if after, ok := strings.CutPrefix(raw, "Bearer "); ok {
		raw = strings.TrimSpace(after)
	}
	if raw == "" {
		return 0, ErrTokenMissing
	}

	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !tok.Valid {
		return 0, ErrTokenInvalid
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrTokenInvalid
	}
	return id, nil
}
