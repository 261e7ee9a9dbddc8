package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/flight-booking-api/internal/queue"
)

// AMQPPublisher publishes booking events to RabbitMQ.  Each publish opens
// its own connection; errors are logged and returned so the caller can
// ignore them without interrupting the request.
type AMQPPublisher struct {
	URL string
}

// PublishBookingCreated sends ev to the durable booking queue as a
// persistent JSON message.
func (p AMQPPublisher) PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error {
	url := p.URL
	if url == "" {
		url = queue.DefaultURL
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.BookingQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.BookingReference,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.BookingQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}

// NoopPublisher drops every event.  It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingCreated(context.Context, queue.BookingCreatedEvent) error {
	return nil
}
