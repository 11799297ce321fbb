package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/iliyamo/venue-booking/internal/bookingid"
	"github.com/iliyamo/venue-booking/internal/model"
)

// DisplayIDWriter persists a freshly assigned display id.
type DisplayIDWriter interface {
	SetDisplayID(ctx context.Context, id uint64, displayID string) error
}

// DisplayIDHook assigns display ids to bookings after they are created.
type DisplayIDHook struct {
	writers map[model.Collection]DisplayIDWriter
	logger  *slog.Logger
}

func NewDisplayIDHook(hostels, auditoriums DisplayIDWriter, logger *slog.Logger) *DisplayIDHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &DisplayIDHook{
		writers: map[model.Collection]DisplayIDWriter{
			model.CollectionHostel:     hostels,
			model.CollectionAuditorium: auditoriums,
		},
		logger: logger,
	}
}

// AfterChange runs after a booking row changed.  On create it encodes the
// display id and writes it back in a second call.  A failed write is
// logged and reported as ("", false); the booking itself stays as stored.
func (h *DisplayIDHook) AfterChange(ctx context.Context, op model.Operation, coll model.Collection, id uint64) (string, bool) {
	if op != model.OpCreate {
		return "", false
	}
	w, ok := h.writers[coll]
	if !ok || w == nil || id == 0 {
		return "", false
	}
	displayID := bookingid.Encode(coll.Type(), strconv.FormatUint(id, 10))
	if err := w.SetDisplayID(ctx, id, displayID); err != nil {
		h.logger.ErrorContext(ctx, "display id write-back failed",
			"collection", string(coll), "id", id, "display_id", displayID, "error", err)
		return "", false
	}
	return displayID, true
}
