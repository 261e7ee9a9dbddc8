// Package amadeus is the client for the third-party flight-offer API.  It
// owns the process-wide upstream access token and serializes refreshes so
// that at most one client-credentials exchange is in flight at a time.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenSafetyMargin is subtracted from the server-declared token lifetime.
const TokenSafetyMargin = 300 * time.Second

const tokenPath = "/v1/security/oauth2/token"

// Config holds the upstream endpoint and credentials.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client talks to the flight-offer API.  The zero value is not usable; call New.
type Client struct {
	baseURL string
	http    *http.Client
	creds   clientcredentials.Config
	now     func() time.Time

	mu     sync.Mutex
	token  string    // empty while Absent
	expiry time.Time // already reduced by TokenSafetyMargin
}

// New returns a Client whose outbound calls are bounded by cfg.Timeout.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		creds: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     base + tokenPath,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		now: time.Now,
	}
}

// Token returns the cached access token while it is valid and performs a
// client-credentials exchange otherwise.  On failure the cache is left empty.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.token != "" && now.Before(c.expiry) {
		return c.token, nil
	}
	c.token, c.expiry = "", time.Time{}

	tok, err := c.creds.Token(context.WithValue(ctx, oauth2.HTTPClient, c.http))
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("token exchange: empty access token")
	}

	c.token = tok.AccessToken
	c.expiry = now.Add(lifetime(tok, now) - TokenSafetyMargin)
	return c.token, nil
}

// Invalidate drops the cached token if it is still stale.  A token that was
// already replaced by a concurrent refresh is kept.
func (c *Client) Invalidate(stale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == stale {
		c.token, c.expiry = "", time.Time{}
	}
}

// lifetime reads expires_in from the token response, falling back to the
// library-computed expiry.
func lifetime(tok *oauth2.Token, now time.Time) time.Duration {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return time.Duration(v) * time.Second
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return time.Duration(n) * time.Second
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	if !tok.Expiry.IsZero() {
		return tok.Expiry.Sub(now)
	}
	return 0
}
