package model

import "time"

// BookingType tags which of the two booking collections a record lives in.
type BookingType string

const (
	BookingHostel     BookingType = "hostel"
	BookingAuditorium BookingType = "auditorium"
	BookingUnknown    BookingType = "unknown"
)

// ParseBookingType accepts the type names used by the public API.
func ParseBookingType(s string) (BookingType, bool) {
	switch BookingType(s) {
	case BookingHostel:
		return BookingHostel, true
	case BookingAuditorium:
		return BookingAuditorium, true
	}
	return BookingUnknown, false
}

// Collection is the slug of a booking collection as exposed to admins.
type Collection string

const (
	CollectionHostel     Collection = "hostel-bookings"
	CollectionAuditorium Collection = "auditorium-bookings"
)

// ParseCollection validates a collection slug.
func ParseCollection(s string) (Collection, bool) {
	switch Collection(s) {
	case CollectionHostel, CollectionAuditorium:
		return Collection(s), true
	}
	return "", false
}

// Type maps the collection onto its booking type.
func (c Collection) Type() BookingType {
	switch c {
	case CollectionHostel:
		return BookingHostel
	case CollectionAuditorium:
		return BookingAuditorium
	}
	return BookingUnknown
}

// CollectionOf maps a booking type onto its collection slug.
func CollectionOf(t BookingType) (Collection, bool) {
	switch t {
	case BookingHostel:
		return CollectionHostel, true
	case BookingAuditorium:
		return CollectionAuditorium, true
	}
	return "", false
}

// Operation names the kind of change a record-change hook observes.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
)

// Booking is the behaviour shared by both booking variants.
type Booking interface {
	PrimaryID() uint64
	Type() BookingType
	WhatsApp() string
	DisplayID() string
}

// StayDuration holds the hostel stay window.
type StayDuration struct {
	CheckInDate  Date `json:"checkInDate"`
	CheckOutDate Date `json:"checkOutDate"`
}

// Nights returns the number of nights between check-in and check-out, or
// zero when either date is missing or the range is inverted.
func (s StayDuration) Nights() int {
	if s.CheckInDate.IsZero() || s.CheckOutDate.IsZero() {
		return 0
	}
	d := s.CheckOutDate.Sub(s.CheckInDate.Time)
	if d <= 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// HostelBooking mirrors a row of the hostel_bookings table.
type HostelBooking struct {
	ID             uint64       `json:"id"`
	BookingID      *string      `json:"bookingId,omitempty"`
	GuestName      string       `json:"guestName"`
	Email          string       `json:"email"`
	WhatsAppNumber string       `json:"whatsappNumber"`
	Phone          string       `json:"phone,omitempty"`
	Institution    string       `json:"institution,omitempty"`
	RoomType       string       `json:"roomType"`
	NumberOfGuests int          `json:"numberOfGuests"`
	StayDuration   StayDuration `json:"stayDuration"`
	Services       []string     `json:"services,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (b *HostelBooking) PrimaryID() uint64 { return b.ID }
func (b *HostelBooking) Type() BookingType { return BookingHostel }
func (b *HostelBooking) WhatsApp() string  { return b.WhatsAppNumber }

func (b *HostelBooking) DisplayID() string {
	if b.BookingID == nil {
		return ""
	}
	return *b.BookingID
}

// AuditoriumBooking mirrors a row of the auditorium_bookings table.
type AuditoriumBooking struct {
	ID                uint64    `json:"id"`
	BookingID         *string   `json:"bookingId,omitempty"`
	EventName         string    `json:"eventName"`
	EventType         string    `json:"eventType,omitempty"`
	EventDate         Date      `json:"eventDate"`
	StartTime         string    `json:"startTime,omitempty"`
	EndTime           string    `json:"endTime,omitempty"`
	ContactName       string    `json:"contactName"`
	Organization      string    `json:"organization,omitempty"`
	Email             string    `json:"email"`
	WhatsAppNumber    string    `json:"whatsappNumber"`
	ExpectedAttendees int       `json:"expectedAttendees"`
	Exclusions        []string  `json:"exclusions,omitempty"`
	CouponCode        string    `json:"couponCode,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (b *AuditoriumBooking) PrimaryID() uint64 { return b.ID }
func (b *AuditoriumBooking) Type() BookingType { return BookingAuditorium }
func (b *AuditoriumBooking) WhatsApp() string  { return b.WhatsAppNumber }

func (b *AuditoriumBooking) DisplayID() string {
	if b.BookingID == nil {
		return ""
	}
	return *b.BookingID
}
