// Package queue defines the messages exchanged over RabbitMQ and the
// worker-side consumer.
package queue

import "github.com/iliyamo/venue-booking/internal/model"

// BookingCreatedQueue is the durable queue that carries BookingCreatedEvent.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published after a booking was stored and automatic
// confirmations are enabled.  Consumers reload the record by primary id.
type BookingCreatedEvent struct {
	Type      model.BookingType `json:"type"`
	BookingID uint64            `json:"booking_id"`
	DisplayID string            `json:"display_id,omitempty"`
	CreatedAt string            `json:"created_at"`
}
