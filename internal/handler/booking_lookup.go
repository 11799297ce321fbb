package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/service"
)

// BookingLookupHandler serves GET /api/booking/:id.
type BookingLookupHandler struct {
	finder BookingFinder
}

func NewBookingLookupHandler(f BookingFinder) *BookingLookupHandler {
	return &BookingLookupHandler{finder: f}
}

type typedBooking struct {
	Type    model.BookingType `json:"type"`
	Booking model.Booking     `json:"booking"`
}

// Get looks a booking up by primary or display id in both collections.
func (h *BookingLookupHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	switch out := h.finder.Find(ctx, c.Param("id")).(type) {
	case service.Found:
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"type":    out.Type,
			"booking": out.Booking,
		})
	case service.Conflict:
		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"conflict": true,
			"bookings": []typedBooking{
				{Type: model.BookingHostel, Booking: out.Hostel},
				{Type: model.BookingAuditorium, Booking: out.Auditorium},
			},
		})
	case service.NotFound:
		return fail(c, http.StatusNotFound, "booking not found")
	default:
		return fail(c, http.StatusInternalServerError, "failed to look up booking")
	}
}
