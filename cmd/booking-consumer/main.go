package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/flight-booking-api/internal/config"
	"github.com/iliyamo/flight-booking-api/internal/queue"
)

func main() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := queue.Consumer{URL: config.RabbitMQURL(), LogPath: os.Getenv("BOOKING_LOG_FILE")}
	log.Printf("booking-consumer: consuming %s", queue.BookingQueue)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("booking-consumer: %v", err)
	}
	log.Printf("booking-consumer: stopped")
}
