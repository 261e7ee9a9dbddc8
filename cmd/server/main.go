package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/iliyamo/flight-booking-api/internal/airport"
	"github.com/iliyamo/flight-booking-api/internal/amadeus"
	"github.com/iliyamo/flight-booking-api/internal/config"
	"github.com/iliyamo/flight-booking-api/internal/database"
	"github.com/iliyamo/flight-booking-api/internal/handler"
	"github.com/iliyamo/flight-booking-api/internal/repository"
	"github.com/iliyamo/flight-booking-api/internal/router"
	"github.com/iliyamo/flight-booking-api/internal/service"
	"github.com/iliyamo/flight-booking-api/internal/telemetry"
)

func main() {
	cfg := config.Load()

	shutdownTelemetry := telemetry.Setup("flight-booking-api")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.EnsureSchema(ctx, db)
	cancel()
	if err != nil {
		log.Fatalf("db schema: %v", err)
	}

	airports, err := airport.Load(cfg.AirportsFile)
	if err != nil {
		log.Fatalf("airports: %v", err)
	}
	log.Printf("airports: %d loaded", airports.Len())

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	var publisher service.BookingPublisher = service.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		publisher = service.AMQPPublisher{URL: cfg.RabbitMQURL}
	} else {
		log.Printf("rabbitmq: RABBITMQ_URL not set, booking events disabled")
	}

	users := repository.NewUserRepo(db)
	bookings := repository.NewBookingRepo(db)
	authSvc := service.NewAuthService(users, cfg.JWTSecret, cfg.SessionTTL, cfg.BcryptCost)
	bookingSvc := service.NewBookingService(users, bookings, publisher)
	flights := amadeus.New(amadeus.Config{
		BaseURL:      cfg.AmadeusBaseURL,
		ClientID:     cfg.AmadeusKey,
		ClientSecret: cfg.AmadeusSecret,
		Timeout:      cfg.UpstreamTimeout,
	})

	e := router.New(router.Deps{
		FrontendOrigin: cfg.FrontendOrigin,
		Verifier:       authSvc,
		Redis:          rdb,
		RateLimit:      config.LoadRateLimitConfig(),
		Cache:          config.LoadCacheConfig(),
		Auth:           handler.NewAuthHandler(authSvc),
		Bookings:       handler.NewBookingHandler(bookingSvc),
		Airports:       handler.NewAirportHandler(airports),
		Flights:        handler.NewFlightHandler(flights, airports),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(e, "flight-booking-api"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (env=%s)", server.Addr, cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
