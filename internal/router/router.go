// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/flight-booking-api/internal/config"
	"github.com/iliyamo/flight-booking-api/internal/handler"
	"github.com/iliyamo/flight-booking-api/internal/middleware"
)

// Deps collects everything the routes need.  Redis may be nil, which turns
// rate limiting and response caching into pass-throughs.
type Deps struct {
	FrontendOrigin string
	Verifier       middleware.TokenVerifier
	Redis          *redis.Client
	RateLimit      config.RateLimitConfig
	Cache          config.CacheConfig

	Auth     *handler.AuthHandler
	Bookings *handler.BookingHandler
	Airports *handler.AirportHandler
	Flights  *handler.FlightHandler
}

// New builds the Echo instance with global middleware and all routes.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Pre(middleware.CORS(d.FrontendOrigin))
	e.Use(echomw.Recover())
	e.Use(requestLogger())

	Register(e, d)
	return e
}

// Register maps every route.  Rate limiting guards the endpoints that hash
// passwords or call the upstream API; the airport routes are cached.
func Register(e *echo.Echo, d Deps) {
	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)

	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis)
	cache := middleware.NewRedisCache(d.Cache, d.Redis)

	auth := e.Group("/api/auth")
	auth.POST("/register", d.Auth.Register, limit)
	auth.POST("/login", d.Auth.Login, limit)
	auth.GET("/me", d.Auth.Me, middleware.RequireAuth(d.Verifier))

	api := e.Group("/api")
	api.POST("/register", d.Bookings.QuickRegister)
	api.POST("/bookings", d.Bookings.Create)
	api.GET("/users/:id/bookings", d.Bookings.ListByUser)

	api.GET("/airports", d.Airports.Search, cache)
	api.GET("/airports/:code", d.Airports.Lookup, cache)

	api.POST("/optimize", d.Flights.Optimize, limit)
}
