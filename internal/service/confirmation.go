package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/iliyamo/venue-booking/internal/bookingid"
	"github.com/iliyamo/venue-booking/internal/metrics"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/utils"
	"github.com/iliyamo/venue-booking/internal/whatsapp"
)

// Failure codes carried by ConfirmationResult.Code.
const (
	CodeMissingWhatsApp = "missing_whatsapp"
	CodeProviderError   = "provider_error"
	CodeInvalidBooking  = "invalid_booking"
	CodeQueueError      = "queue_error"
)

// Sender delivers a confirmation through the messaging provider.
type Sender interface {
	SendConfirmation(ctx context.Context, req whatsapp.ConfirmationRequest) (*whatsapp.SendResponse, error)
}

// ConfirmationResult is the outcome of a confirmation attempt.  Callers
// branch on Success; the dispatcher never returns an error or panics.
type ConfirmationResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Queued    bool   `json:"queued,omitempty"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DocumentLinks builds the confirmation document URL handed to the
// provider.  With a Secret the URL carries a signature the PDF endpoint
// checks.  An empty BaseURL disables links.
type DocumentLinks struct {
	BaseURL string
	Secret  string
}

// URL returns the document link for a booking, or "".
func (l DocumentLinks) URL(coll model.Collection, primaryID string) string {
	base := strings.TrimRight(l.BaseURL, "/")
	if base == "" {
		return ""
	}
	u := fmt.Sprintf("%s/api/confirmation/%s/%s.pdf", base, coll, url.PathEscape(primaryID))
	if l.Secret != "" {
		u += "?sig=" + utils.SignDocument(l.Secret, string(coll), primaryID)
	}
	return u
}

// Dispatcher turns booking records into provider confirmation requests.
type Dispatcher struct {
	sender  Sender
	links   DocumentLinks
	metrics *metrics.BookingMetrics
	logger  *slog.Logger
}

// NewDispatcher builds a Dispatcher.
func NewDispatcher(sender Sender, links DocumentLinks, m *metrics.BookingMetrics, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sender: sender, links: links, metrics: m, logger: logger}
}

// Dispatch sends the confirmation for a stored booking.
func (d *Dispatcher) Dispatch(ctx context.Context, b model.Booking) ConfirmationResult {
	if b == nil {
		return ConfirmationResult{Code: CodeInvalidBooking, Error: "booking is required"}
	}
	return d.send(ctx, b, strconv.FormatUint(b.PrimaryID(), 10))
}

// DispatchData sends a confirmation for caller-supplied booking data
// without reading the datastore.  id is the booking's primary id and may
// carry a display id prefix.
func (d *Dispatcher) DispatchData(ctx context.Context, t model.BookingType, id string, data json.RawMessage) ConfirmationResult {
	_, primary := bookingid.Decode(strings.TrimSpace(id))
	if primary == "" {
		return ConfirmationResult{Code: CodeInvalidBooking, Error: "bookingId is required"}
	}
	if len(data) == 0 {
		return ConfirmationResult{Code: CodeInvalidBooking, Error: "bookingData is required"}
	}
	numeric, _ := strconv.ParseUint(primary, 10, 64)

	var b model.Booking
	switch t {
	case model.BookingHostel:
		var h model.HostelBooking
		if err := json.Unmarshal(data, &h); err != nil {
			return ConfirmationResult{Code: CodeInvalidBooking, Error: "invalid bookingData: " + err.Error()}
		}
		if h.ID == 0 {
			h.ID = numeric
		}
		b = &h
	case model.BookingAuditorium:
		var a model.AuditoriumBooking
		if err := json.Unmarshal(data, &a); err != nil {
			return ConfirmationResult{Code: CodeInvalidBooking, Error: "invalid bookingData: " + err.Error()}
		}
		if a.ID == 0 {
			a.ID = numeric
		}
		b = &a
	default:
		return ConfirmationResult{Code: CodeInvalidBooking, Error: fmt.Sprintf("unknown booking type %q", t)}
	}
	return d.send(ctx, b, primary)
}

func (d *Dispatcher) send(ctx context.Context, b model.Booking, primaryID string) (res ConfirmationResult) {
	ctx, span := tracer.Start(ctx, "Dispatcher.Send")
	defer span.End()
	span.SetAttributes(attribute.String("booking.type", string(b.Type())), attribute.String("booking.id", primaryID))

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "confirmation sender panicked", "booking_id", primaryID, "panic", r)
			res = ConfirmationResult{Code: CodeProviderError, Error: fmt.Sprintf("confirmation sender panicked: %v", r)}
		}
		result := "success"
		if !res.Success {
			result = res.Code
			span.SetStatus(codes.Error, res.Error)
		}
		d.metrics.ObserveConfirmation(string(b.Type()), result, time.Since(start).Seconds())
	}()

	// Step 1: project into the provider payload.
	req, err := d.buildRequest(b, primaryID)
	if err != nil {
		return ConfirmationResult{Code: CodeInvalidBooking, Error: err.Error()}
	}

	// Step 2: no number, no outbound call.
	if strings.TrimSpace(req.To) == "" {
		d.logger.WarnContext(ctx, "confirmation skipped: no whatsapp number", "type", req.Type, "booking_id", primaryID)
		return ConfirmationResult{Code: CodeMissingWhatsApp, Error: "booking has no WhatsApp number"}
	}
	if d.sender == nil {
		return ConfirmationResult{Code: CodeProviderError, Error: "confirmation sender not configured"}
	}

	// Step 3: call the provider once.
	resp, err := d.sender.SendConfirmation(ctx, req)
	if err != nil {
		span.RecordError(err)
		d.logger.ErrorContext(ctx, "confirmation send failed", "type", req.Type, "booking_id", primaryID, "error", err)
		return ConfirmationResult{Code: CodeProviderError, Error: err.Error()}
	}
	if resp == nil {
		return ConfirmationResult{Code: CodeProviderError, Error: "empty provider response"}
	}

	// Step 4: report.
	d.logger.InfoContext(ctx, "confirmation sent", "type", req.Type, "booking_id", primaryID, "message_id", resp.MessageID)
	return ConfirmationResult{Success: true, MessageID: resp.MessageID}
}

func (d *Dispatcher) buildRequest(b model.Booking, primaryID string) (whatsapp.ConfirmationRequest, error) {
	req := whatsapp.ConfirmationRequest{
		To:        strings.TrimSpace(b.WhatsApp()),
		BookingID: primaryID,
		DisplayID: b.DisplayID(),
	}
	if req.DisplayID == "" {
		req.DisplayID = bookingid.Encode(b.Type(), primaryID)
	}
	switch v := b.(type) {
	case *model.HostelBooking:
		p := ProjectHostel(v)
		req.Type = whatsapp.TypeHostel
		req.Hostel = &p
	case *model.AuditoriumBooking:
		p := ProjectAuditorium(v)
		req.Type = whatsapp.TypeAuditorium
		req.Auditorium = &p
	default:
		return req, errors.New("unsupported booking variant")
	}
	if coll, ok := model.CollectionOf(b.Type()); ok {
		req.DocumentURL = d.links.URL(coll, primaryID)
	}
	return req, nil
}

// ProjectHostel reshapes a hostel booking into the provider payload.
func ProjectHostel(b *model.HostelBooking) whatsapp.HostelConfirmation {
	return whatsapp.HostelConfirmation{
		GuestName:      b.GuestName,
		Email:          b.Email,
		WhatsAppNumber: strings.TrimSpace(b.WhatsAppNumber),
		Phone:          b.Phone,
		Institution:    b.Institution,
		RoomType:       b.RoomType,
		NumberOfGuests: b.NumberOfGuests,
		CheckInDate:    DisplayDate(b.StayDuration.CheckInDate),
		CheckOutDate:   DisplayDate(b.StayDuration.CheckOutDate),
		Nights:         b.StayDuration.Nights(),
		Services:       nonNil(b.Services),
		Notes:          b.Notes,
	}
}

// ProjectAuditorium reshapes an auditorium booking into the provider payload.
func ProjectAuditorium(b *model.AuditoriumBooking) whatsapp.AuditoriumConfirmation {
	return whatsapp.AuditoriumConfirmation{
		EventName:         b.EventName,
		EventType:         b.EventType,
		EventDate:         DisplayDate(b.EventDate),
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		ContactName:       b.ContactName,
		Organization:      b.Organization,
		Email:             b.Email,
		WhatsAppNumber:    strings.TrimSpace(b.WhatsAppNumber),
		ExpectedAttendees: b.ExpectedAttendees,
		Exclusions:        nonNil(b.Exclusions),
		CouponCode:        b.CouponCode,
		Notes:             b.Notes,
	}
}

// DisplayDate applies utils.ShiftForDisplay and formats the result as
// RFC 3339 UTC.  Missing dates become the empty string.
func DisplayDate(d model.Date) string {
	if d.IsZero() {
		return ""
	}
	return utils.ShiftForDisplay(d.UTC()).Format(time.RFC3339)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
