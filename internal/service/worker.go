package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
)

// BookingLoader loads one booking from a known collection.
type BookingLoader interface {
	Load(ctx context.Context, t model.BookingType, id uint64) (model.Booking, error)
}

// BookingDispatcher sends the confirmation of a stored booking.
type BookingDispatcher interface {
	Dispatch(ctx context.Context, b model.Booking) ConfirmationResult
}

// NewConfirmationHandler returns the queue handler that confirms a booking
// published by QueueNotifier.  Absent records and failed sends are
// permanent so the provider is never called twice for one event; datastore
// errors are retried by the consumer.
func NewConfirmationHandler(bookings BookingLoader, d BookingDispatcher, logger *slog.Logger) queue.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, ev queue.BookingCreatedEvent) error {
		if _, ok := model.CollectionOf(ev.Type); !ok || ev.BookingID == 0 {
			return fmt.Errorf("%w: bad event type=%q id=%d", queue.ErrPermanent, ev.Type, ev.BookingID)
		}
		b, err := bookings.Load(ctx, ev.Type, ev.BookingID)
		if err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return fmt.Errorf("%w: %s %d not found", queue.ErrPermanent, ev.Type, ev.BookingID)
			}
			return fmt.Errorf("load %s %d: %w", ev.Type, ev.BookingID, err)
		}

		res := d.Dispatch(ctx, b)
		if !res.Success {
			return fmt.Errorf("%w: confirmation %s: %s", queue.ErrPermanent, res.Code, res.Error)
		}
		logger.InfoContext(ctx, "confirmation sent",
			"type", ev.Type, "booking_id", ev.BookingID, "message_id", res.MessageID)
		return nil
	}
}
