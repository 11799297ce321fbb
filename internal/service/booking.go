package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/iliyamo/venue-booking/internal/metrics"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
)

// ValidationError reports an invalid booking form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// HostelStore is the persistence the creation flow needs for hostel bookings.
type HostelStore interface {
	Create(ctx context.Context, b *model.HostelBooking) error
}

// AuditoriumStore is the persistence the creation flow needs for auditorium bookings.
type AuditoriumStore interface {
	Create(ctx context.Context, b *model.AuditoriumBooking) error
}

// SettingsReader reads the settings singleton.
type SettingsReader interface {
	Get(ctx context.Context) (model.Settings, error)
}

// ChangeHook observes booking changes.
type ChangeHook interface {
	AfterChange(ctx context.Context, op model.Operation, coll model.Collection, id uint64) (string, bool)
}

// Notifier delivers the confirmation of a newly created booking.
type Notifier interface {
	Notify(ctx context.Context, b model.Booking) ConfirmationResult
}

// InlineNotifier dispatches within the request.
type InlineNotifier struct{ Dispatcher *Dispatcher }

func (n InlineNotifier) Notify(ctx context.Context, b model.Booking) ConfirmationResult {
	return n.Dispatcher.Dispatch(ctx, b)
}

// QueueNotifier hands the booking to the worker through RabbitMQ.
type QueueNotifier struct{ Publisher EventPublisher }

func (n QueueNotifier) Notify(ctx context.Context, b model.Booking) ConfirmationResult {
	ev := queue.BookingCreatedEvent{
		Type:      b.Type(),
		BookingID: b.PrimaryID(),
		DisplayID: b.DisplayID(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := n.Publisher.PublishBookingCreated(ctx, ev); err != nil {
		return ConfirmationResult{Code: CodeQueueError, Error: err.Error()}
	}
	return ConfirmationResult{Success: true, Queued: true}
}

// CreateResult is returned by the creation flow.  Confirmation is nil when
// automatic confirmations are off.
type CreateResult struct {
	Booking      model.Booking
	Confirmation *ConfirmationResult
}

// BookingService runs the public booking form flow: insert, assign the
// display id, then confirm when the settings flag asks for it.
type BookingService struct {
	hostels     HostelStore
	auditoriums AuditoriumStore
	settings    SettingsReader
	hook        ChangeHook
	notifier    Notifier
	metrics     *metrics.BookingMetrics
	logger      *slog.Logger
}

type BookingServiceDeps struct {
	Hostels     HostelStore
	Auditoriums AuditoriumStore
	Settings    SettingsReader
	Hook        ChangeHook
	Notifier    Notifier
	Metrics     *metrics.BookingMetrics
	Logger      *slog.Logger
}

func NewBookingService(d BookingServiceDeps) *BookingService {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{
		hostels:     d.Hostels,
		auditoriums: d.Auditoriums,
		settings:    d.Settings,
		hook:        d.Hook,
		notifier:    d.Notifier,
		metrics:     d.Metrics,
		logger:      logger,
	}
}

// CreateHostel validates and stores a hostel booking.
func (s *BookingService) CreateHostel(ctx context.Context, b *model.HostelBooking) (CreateResult, error) {
	ctx, span := tracer.Start(ctx, "BookingService.CreateHostel")
	defer span.End()

	if err := validateHostel(b); err != nil {
		return CreateResult{}, err
	}
	if err := s.hostels.Create(ctx, b); err != nil {
		span.RecordError(err)
		return CreateResult{}, fmt.Errorf("create hostel booking: %w", err)
	}
	if id, ok := s.hook.AfterChange(ctx, model.OpCreate, model.CollectionHostel, b.ID); ok {
		b.BookingID = &id
	}
	return s.afterCreate(ctx, b), nil
}

// CreateAuditorium validates and stores an auditorium booking.
func (s *BookingService) CreateAuditorium(ctx context.Context, b *model.AuditoriumBooking) (CreateResult, error) {
	ctx, span := tracer.Start(ctx, "BookingService.CreateAuditorium")
	defer span.End()

	if err := validateAuditorium(b); err != nil {
		return CreateResult{}, err
	}
	if err := s.auditoriums.Create(ctx, b); err != nil {
		span.RecordError(err)
		return CreateResult{}, fmt.Errorf("create auditorium booking: %w", err)
	}
	if id, ok := s.hook.AfterChange(ctx, model.OpCreate, model.CollectionAuditorium, b.ID); ok {
		b.BookingID = &id
	}
	return s.afterCreate(ctx, b), nil
}

func (s *BookingService) afterCreate(ctx context.Context, b model.Booking) CreateResult {
	s.metrics.ObserveCreated(string(b.Type()))
	res := CreateResult{Booking: b}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "settings unavailable, skipping confirmation",
			"booking_id", b.PrimaryID(), "error", err)
		return res
	}
	if !settings.SendConfirmationAutomatically || s.notifier == nil {
		return res
	}
	conf := s.notifier.Notify(ctx, b)
	if !conf.Success {
		s.logger.WarnContext(ctx, "automatic confirmation failed",
			"type", string(b.Type()), "booking_id", b.PrimaryID(), "code", conf.Code, "error", conf.Error)
	}
	res.Confirmation = &conf
	return res
}

func validateHostel(b *model.HostelBooking) error {
	if b == nil {
		return &ValidationError{Field: "booking", Message: "is required"}
	}
	trimAll(&b.GuestName, &b.Email, &b.WhatsAppNumber, &b.Phone, &b.Institution, &b.RoomType, &b.Notes)
	switch {
	case b.GuestName == "":
		return &ValidationError{Field: "guestName", Message: "is required"}
	case b.RoomType == "":
		return &ValidationError{Field: "roomType", Message: "is required"}
	case b.NumberOfGuests < 1:
		return &ValidationError{Field: "numberOfGuests", Message: "must be at least 1"}
	case b.StayDuration.CheckInDate.IsZero():
		return &ValidationError{Field: "stayDuration.checkInDate", Message: "is required"}
	case b.StayDuration.CheckOutDate.IsZero():
		return &ValidationError{Field: "stayDuration.checkOutDate", Message: "is required"}
	case !b.StayDuration.CheckOutDate.After(b.StayDuration.CheckInDate.Time):
		return &ValidationError{Field: "stayDuration.checkOutDate", Message: "must be after check-in"}
	}
	return validateContact(b.Email, b.WhatsAppNumber)
}

func validateAuditorium(b *model.AuditoriumBooking) error {
	if b == nil {
		return &ValidationError{Field: "booking", Message: "is required"}
	}
	trimAll(&b.EventName, &b.EventType, &b.StartTime, &b.EndTime, &b.ContactName, &b.Organization,
		&b.Email, &b.WhatsAppNumber, &b.CouponCode, &b.Notes)
	switch {
	case b.EventName == "":
		return &ValidationError{Field: "eventName", Message: "is required"}
	case b.ContactName == "":
		return &ValidationError{Field: "contactName", Message: "is required"}
	case b.EventDate.IsZero():
		return &ValidationError{Field: "eventDate", Message: "is required"}
	case b.ExpectedAttendees < 1:
		return &ValidationError{Field: "expectedAttendees", Message: "must be at least 1"}
	}
	if b.StartTime != "" && b.EndTime != "" {
		start, err1 := time.Parse("15:04", b.StartTime)
		end, err2 := time.Parse("15:04", b.EndTime)
		if err1 != nil || err2 != nil {
			return &ValidationError{Field: "startTime", Message: "times must be HH:MM"}
		}
		if !end.After(start) {
			return &ValidationError{Field: "endTime", Message: "must be after start time"}
		}
	}
	return validateContact(b.Email, b.WhatsAppNumber)
}

func validateContact(email, whatsapp string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Message: "is not a valid address"}
	}
	if whatsapp == "" {
		return &ValidationError{Field: "whatsappNumber", Message: "is required"}
	}
	digits := 0
	for _, r := range whatsapp {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-':
		default:
			return &ValidationError{Field: "whatsappNumber", Message: "may only contain digits, spaces, + and -"}
		}
	}
	if digits < 8 || digits > 15 {
		return &ValidationError{Field: "whatsappNumber", Message: "must have 8 to 15 digits"}
	}
	return nil
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// IsValidation reports whether err is a booking form validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
