package whatsapp

import (
	"errors"
	"strings"
)

// Confirmation types understood by the provider.
const (
	TypeHostel     = "hostel"
	TypeAuditorium = "auditorium"
)

// HostelConfirmation is the provider-shaped projection of a hostel booking.
// Dates are RFC 3339 strings already shifted for display.
type HostelConfirmation struct {
	GuestName      string   `json:"guestName"`
	Email          string   `json:"email"`
	WhatsAppNumber string   `json:"whatsappNumber"`
	Phone          string   `json:"phone,omitempty"`
	Institution    string   `json:"institution,omitempty"`
	RoomType       string   `json:"roomType"`
	NumberOfGuests int      `json:"numberOfGuests"`
	CheckInDate    string   `json:"checkInDate"`
	CheckOutDate   string   `json:"checkOutDate"`
	Nights         int      `json:"nights"`
	Services       []string `json:"services"`
	Notes          string   `json:"notes,omitempty"`
}

// AuditoriumConfirmation is the provider-shaped projection of an auditorium booking.
type AuditoriumConfirmation struct {
	EventName         string   `json:"eventName"`
	EventType         string   `json:"eventType,omitempty"`
	EventDate         string   `json:"eventDate"`
	StartTime         string   `json:"startTime,omitempty"`
	EndTime           string   `json:"endTime,omitempty"`
	ContactName       string   `json:"contactName"`
	Organization      string   `json:"organization,omitempty"`
	Email             string   `json:"email"`
	WhatsAppNumber    string   `json:"whatsappNumber"`
	ExpectedAttendees int      `json:"expectedAttendees"`
	Exclusions        []string `json:"exclusions"`
	CouponCode        string   `json:"couponCode,omitempty"`
	Notes             string   `json:"notes,omitempty"`
}

// ConfirmationRequest is the body of a send-confirmation call.  BookingID is
// the primary id; the provider uses it to fetch the confirmation document.
type ConfirmationRequest struct {
	Type        string                  `json:"type"`
	To          string                  `json:"to"`
	BookingID   string                  `json:"bookingId"`
	DisplayID   string                  `json:"displayId,omitempty"`
	DocumentURL string                  `json:"documentUrl,omitempty"`
	Hostel      *HostelConfirmation     `json:"hostel,omitempty"`
	Auditorium  *AuditoriumConfirmation `json:"auditorium,omitempty"`
}

func (r ConfirmationRequest) validate() error {
	if strings.TrimSpace(r.To) == "" {
		return errors.New("whatsapp: recipient number required")
	}
	if strings.TrimSpace(r.BookingID) == "" {
		return errors.New("whatsapp: booking id required")
	}
	switch r.Type {
	case TypeHostel:
		if r.Hostel == nil || r.Auditorium != nil {
			return errors.New("whatsapp: hostel request needs exactly the hostel payload")
		}
	case TypeAuditorium:
		if r.Auditorium == nil || r.Hostel != nil {
			return errors.New("whatsapp: auditorium request needs exactly the auditorium payload")
		}
	default:
		return errors.New("whatsapp: unknown confirmation type " + r.Type)
	}
	return nil
}

// SendResponse is the provider's answer to a send-confirmation call.
type SendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Error     string `json:"error,omitempty"`
}
