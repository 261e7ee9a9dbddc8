package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking-api/internal/middleware"
	"github.com/iliyamo/flight-booking-api/internal/model"
	"github.com/iliyamo/flight-booking-api/internal/service"
)

// Authenticator is implemented by service.AuthService.
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) (service.Session, error)
	Login(ctx context.Context, identifier, password string) (service.Session, error)
	GetProfile(ctx context.Context, userID uint64) (model.Profile, error)
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	Auth Authenticator
}

func NewAuthHandler(a Authenticator) *AuthHandler { return &AuthHandler{Auth: a} }

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
}

type loginReq struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"` // older clients send the identifier as email
	Password   string `json:"password"`
}

type authResp struct {
	Message   string        `json:"message"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      model.Profile `json:"user"`
}

// Register: create the account and return a session for it.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sess, err := h.Auth.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, authResp{
		Message:   "User registered successfully",
		Token:     sess.Token.Token,
		ExpiresAt: sess.Token.Exp,
		User:      sess.User,
	})
}

// Login: authenticate by email or mobile.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ident := req.Identifier
	if ident == "" {
		ident = req.Email
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sess, err := h.Auth.Login(ctx, ident, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, authResp{
		Message:   "Login successful",
		Token:     sess.Token.Token,
		ExpiresAt: sess.Token.Exp,
		User:      sess.User,
	})
}

// Me returns the profile of the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token is missing"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	prof, err := h.Auth.GetProfile(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, prof)
}
