// Package bookingid encodes and decodes the human-facing booking
// identifiers printed on confirmations (HST-42, AUD-7).
package bookingid

import (
	"strings"

	"github.com/iliyamo/venue-booking/internal/model"
)

const (
	HostelPrefix     = "HST"
	AuditoriumPrefix = "AUD"
	separator        = "-"
)

// Prefix returns the three-letter prefix for t, or "" for unknown types.
func Prefix(t model.BookingType) string {
	switch t {
	case model.BookingHostel:
		return HostelPrefix
	case model.BookingAuditorium:
		return AuditoriumPrefix
	}
	return ""
}

// Encode builds the display id for a booking.  The primary id is appended
// verbatim.  Unknown types yield the primary id unchanged.
func Encode(t model.BookingType, primaryID string) string {
	p := Prefix(t)
	if p == "" {
		return primaryID
	}
	return p + separator + primaryID
}

// Decode splits a display id into its booking type and primary id.  Ids
// without a recognised prefix (issued before prefixes existed) come back
// unchanged with type unknown.
func Decode(displayID string) (model.BookingType, string) {
	switch {
	case strings.HasPrefix(displayID, HostelPrefix+separator):
		return model.BookingHostel, displayID[len(HostelPrefix)+len(separator):]
	case strings.HasPrefix(displayID, AuditoriumPrefix+separator):
		return model.BookingAuditorium, displayID[len(AuditoriumPrefix)+len(separator):]
	}
	return model.BookingUnknown, displayID
}
