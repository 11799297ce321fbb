// Package service holds the booking flows that sit between HTTP handlers
// and the repositories: lookup across both collections, confirmation
// dispatch, display id assignment and booking creation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iliyamo/venue-booking/internal/bookingid"
	"github.com/iliyamo/venue-booking/internal/metrics"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
)

// HostelReader loads hostel bookings by primary id.
type HostelReader interface {
	GetByID(ctx context.Context, id uint64) (*model.HostelBooking, error)
}

// AuditoriumReader loads auditorium bookings by primary id.
type AuditoriumReader interface {
	GetByID(ctx context.Context, id uint64) (*model.AuditoriumBooking, error)
}

// LookupOutcome is one of Found, Conflict, NotFound or Failure.
type LookupOutcome interface {
	outcome() string
}

// Found means exactly one collection holds the key.
type Found struct {
	Type    model.BookingType
	Booking model.Booking
}

// Conflict means both collections hold a record under the same key.
type Conflict struct {
	Hostel     *model.HostelBooking
	Auditorium *model.AuditoriumBooking
}

// NotFound means neither collection holds the key.
type NotFound struct{}

// Failure means a datastore error prevented a decision.
type Failure struct {
	Err error
}

func (Found) outcome() string    { return "found" }
func (Conflict) outcome() string { return "conflict" }
func (NotFound) outcome() string { return "not_found" }
func (Failure) outcome() string  { return "failure" }

// OutcomeName returns the metric label of an outcome.
func OutcomeName(o LookupOutcome) string { return o.outcome() }

// Lookup resolves booking keys across the hostel and auditorium collections.
type Lookup struct {
	hostels     HostelReader
	auditoriums AuditoriumReader
	metrics     *metrics.BookingMetrics
	logger      *slog.Logger
}

func NewLookup(hostels HostelReader, auditoriums AuditoriumReader, m *metrics.BookingMetrics, logger *slog.Logger) *Lookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lookup{hostels: hostels, auditoriums: auditoriums, metrics: m, logger: logger}
}

type probe struct {
	hostel     *model.HostelBooking
	auditorium *model.AuditoriumBooking
	err        error
}

// Find probes both collections concurrently and decides once both have
// answered.  A key with an HST- or AUD- prefix only probes its own
// collection.  Keys that are not decimal ids cannot exist as primary ids
// and count as absent.
func (l *Lookup) Find(ctx context.Context, key string) LookupOutcome {
	ctx, span := tracer.Start(ctx, "Lookup.Find")
	defer span.End()

	out := l.find(ctx, strings.TrimSpace(key))
	span.SetAttributes(attribute.String("booking.lookup.outcome", out.outcome()))
	if f, ok := out.(Failure); ok {
		span.RecordError(f.Err)
		span.SetStatus(codes.Error, "lookup failed")
		l.logger.ErrorContext(ctx, "booking lookup failed", "key", key, "error", f.Err)
	}
	l.metrics.ObserveLookup(out.outcome())
	return out
}

func (l *Lookup) find(ctx context.Context, key string) LookupOutcome {
	typ, raw := bookingid.Decode(key)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return NotFound{}
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("booking.key_type", string(typ)),
		attribute.Int64("booking.id", int64(id)),
	)

	var (
		wg         sync.WaitGroup
		hostel     probe
		auditorium probe
	)
	if typ == model.BookingUnknown || typ == model.BookingHostel {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hostel.hostel, hostel.err = l.hostels.GetByID(ctx, id)
		}()
	}
	if typ == model.BookingUnknown || typ == model.BookingAuditorium {
		wg.Add(1)
		go func() {
			defer wg.Done()
			auditorium.auditorium, auditorium.err = l.auditoriums.GetByID(ctx, id)
		}()
	}
	wg.Wait()

	var errs []error
	for _, p := range []*probe{&hostel, &auditorium} {
		if p.err == nil {
			continue
		}
		if errors.Is(p.err, repository.ErrBookingNotFound) {
			p.hostel, p.auditorium = nil, nil
			continue
		}
		errs = append(errs, p.err)
	}
	if len(errs) > 0 {
		return Failure{Err: errors.Join(errs...)}
	}

	switch {
	case hostel.hostel != nil && auditorium.auditorium != nil:
		return Conflict{Hostel: hostel.hostel, Auditorium: auditorium.auditorium}
	case hostel.hostel != nil:
		return Found{Type: model.BookingHostel, Booking: hostel.hostel}
	case auditorium.auditorium != nil:
		return Found{Type: model.BookingAuditorium, Booking: auditorium.auditorium}
	}
	return NotFound{}
}

// Load fetches a single booking from the collection of type t.  It
// returns repository.ErrBookingNotFound when the record is absent.
func (l *Lookup) Load(ctx context.Context, t model.BookingType, id uint64) (model.Booking, error) {
	ctx, span := tracer.Start(ctx, "Lookup.Load",
		trace.WithAttributes(attribute.String("booking.type", string(t)), attribute.Int64("booking.id", int64(id))))
	defer span.End()

	switch t {
	case model.BookingHostel:
		b, err := l.hostels.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return b, nil
	case model.BookingAuditorium:
		b, err := l.auditoriums.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("load booking: unknown type %q", t)
}
