// Package pdf renders booking confirmation documents.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/iliyamo/venue-booking/internal/bookingid"
	"github.com/iliyamo/venue-booking/internal/model"
)

const (
	qrSize     = 256
	dateLayout = "2 January 2006"
)

// Renderer draws confirmation PDFs with a QR code of the display id.
type Renderer struct {
	VenueName string
}

func NewRenderer(venueName string) *Renderer {
	if strings.TrimSpace(venueName) == "" {
		venueName = "Venue"
	}
	return &Renderer{VenueName: venueName}
}

type line struct{ label, value string }

// Render returns the PDF bytes for b.  Calendar dates are printed as
// stored, in UTC.
func (r *Renderer) Render(b model.Booking) ([]byte, error) {
	if b == nil {
		return nil, errors.New("pdf: booking is required")
	}
	displayID := b.DisplayID()
	if displayID == "" {
		displayID = bookingid.Encode(b.Type(), strconv.FormatUint(b.PrimaryID(), 10))
	}

	var (
		title string
		lines []line
	)
	switch v := b.(type) {
	case *model.HostelBooking:
		title = "Hostel Booking Confirmation"
		lines = []line{
			{"Guest", v.GuestName},
			{"Institution", v.Institution},
			{"Room type", v.RoomType},
			{"Guests", strconv.Itoa(v.NumberOfGuests)},
			{"Check-in", formatDate(v.StayDuration.CheckInDate)},
			{"Check-out", formatDate(v.StayDuration.CheckOutDate)},
			{"Nights", strconv.Itoa(v.StayDuration.Nights())},
			{"Services", strings.Join(v.Services, ", ")},
			{"Email", v.Email},
			{"WhatsApp", v.WhatsAppNumber},
		}
	case *model.AuditoriumBooking:
		title = "Auditorium Booking Confirmation"
		lines = []line{
			{"Event", v.EventName},
			{"Event type", v.EventType},
			{"Date", formatDate(v.EventDate)},
			{"Time", timeRange(v.StartTime, v.EndTime)},
			{"Contact", v.ContactName},
			{"Organization", v.Organization},
			{"Attendees", strconv.Itoa(v.ExpectedAttendees)},
			{"Exclusions", strings.Join(v.Exclusions, ", ")},
			{"Coupon", v.CouponCode},
			{"Email", v.Email},
			{"WhatsApp", v.WhatsAppNumber},
		}
	default:
		return nil, fmt.Errorf("pdf: unsupported booking %T", b)
	}

	qrPNG, err := qrcode.Encode(displayID, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("pdf: qr code: %w", err)
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(title+" "+displayID, true)
	doc.AddPage()

	doc.SetFont("Arial", "B", 18)
	doc.Cell(0, 10, tr(r.VenueName))
	doc.Ln(12)
	doc.SetFont("Arial", "B", 14)
	doc.Cell(0, 10, title)
	doc.Ln(10)
	doc.SetFont("Arial", "", 12)
	doc.Cell(0, 10, "Booking ID: "+displayID)
	doc.Ln(14)

	for _, l := range lines {
		if strings.TrimSpace(l.value) == "" {
			continue
		}
		doc.SetFont("Arial", "B", 11)
		doc.CellFormat(40, 8, l.label, "", 0, "L", false, 0, "")
		doc.SetFont("Arial", "", 11)
		doc.MultiCell(0, 8, tr(l.value), "", "L", false)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	doc.ImageOptions("qr", 150, 40, 40, 40, false, opts, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: output: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(d model.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.UTC().Format(dateLayout)
}

func timeRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	}
	return end
}
