package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/venue-booking/internal/queue"
)

// EventPublisher publishes booking events to the broker.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// QueuePublisher publishes to RabbitMQ, dialing a fresh connection per
// message.
type QueuePublisher struct {
	url    string
	logger *slog.Logger
}

func NewQueuePublisher(url string, logger *slog.Logger) *QueuePublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueuePublisher{url: url, logger: logger}
}

// PublishBookingCreated sends ev to the durable booking.created queue as a
// persistent message.
func (p *QueuePublisher) PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.BookingCreatedQueue, // name
		true,                      // durable
		false,                     // autoDelete
		false,                     // exclusive
		false,                     // noWait
		nil,                       // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}
	if err := ch.PublishWithContext(ctx, "", queue.BookingCreatedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	p.logger.DebugContext(ctx, "booking event published", "type", string(ev.Type), "booking_id", ev.BookingID)
	return nil
}
