package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/service"
)

// BookingCreator runs the public booking form flow.
type BookingCreator interface {
	CreateHostel(ctx context.Context, b *model.HostelBooking) (service.CreateResult, error)
	CreateAuditorium(ctx context.Context, b *model.AuditoriumBooking) (service.CreateResult, error)
}

// BookingCreateHandler serves the booking form submissions.
type BookingCreateHandler struct {
	svc BookingCreator
}

func NewBookingCreateHandler(s BookingCreator) *BookingCreateHandler {
	return &BookingCreateHandler{svc: s}
}

// CreateHostel handles POST /api/bookings/hostel.
func (h *BookingCreateHandler) CreateHostel(c echo.Context) error {
	var b model.HostelBooking
	if err := c.Bind(&b); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	b.ID, b.BookingID = 0, nil

	ctx, cancel := withTimeout(c)
	defer cancel()

	res, err := h.svc.CreateHostel(ctx, &b)
	return h.respond(c, res, err)
}

// CreateAuditorium handles POST /api/bookings/auditorium.
func (h *BookingCreateHandler) CreateAuditorium(c echo.Context) error {
	var b model.AuditoriumBooking
	if err := c.Bind(&b); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	b.ID, b.BookingID = 0, nil

	ctx, cancel := withTimeout(c)
	defer cancel()

	res, err := h.svc.CreateAuditorium(ctx, &b)
	return h.respond(c, res, err)
}

func (h *BookingCreateHandler) respond(c echo.Context, res service.CreateResult, err error) error {
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"error":   ve.Message,
				"field":   ve.Field,
			})
		}
		return fail(c, http.StatusInternalServerError, "failed to create booking")
	}
	body := echo.Map{"success": true, "booking": res.Booking}
	if res.Confirmation != nil {
		body["confirmation"] = res.Confirmation
	}
	return c.JSON(http.StatusCreated, body)
}
