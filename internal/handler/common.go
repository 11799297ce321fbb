// Package handler contains the echo HTTP handlers.  Booking endpoints
// answer {"success": bool, ...}; the rest answer {"error": "..."} on failure.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/service"
)

// requestTimeout bounds datastore and provider work per request.
const requestTimeout = 15 * time.Second

// BookingFinder resolves lookup keys across both collections.
type BookingFinder interface {
	Find(ctx context.Context, key string) service.LookupOutcome
}

// BookingLoader loads one booking from a known collection.
type BookingLoader interface {
	Load(ctx context.Context, t model.BookingType, id uint64) (model.Booking, error)
}

// ConfirmationDispatcher sends booking confirmations.
type ConfirmationDispatcher interface {
	Dispatch(ctx context.Context, b model.Booking) service.ConfirmationResult
	DispatchData(ctx context.Context, t model.BookingType, id string, data json.RawMessage) service.ConfirmationResult
}

var errBadID = errors.New("bookingId must be a string or a number")

// parseFlexibleID accepts a JSON string or a JSON number and returns its
// textual form.
func parseFlexibleID(raw json.RawMessage) (string, error) {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if _, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return n.String(), nil
		}
	}
	return "", errBadID
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}

// confirmationStatus maps a failed result onto an HTTP status.
func confirmationStatus(res service.ConfirmationResult) int {
	switch res.Code {
	case service.CodeMissingWhatsApp, service.CodeInvalidBooking:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}
