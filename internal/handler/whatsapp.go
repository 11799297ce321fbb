package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/model"
)

// WhatsAppHandler serves POST /api/whatsapp/send-confirmation, which sends
// a confirmation for caller-supplied booking data.
type WhatsAppHandler struct {
	dispatcher ConfirmationDispatcher
}

func NewWhatsAppHandler(d ConfirmationDispatcher) *WhatsAppHandler {
	return &WhatsAppHandler{dispatcher: d}
}

type sendConfirmationReq struct {
	Type        string          `json:"type"`
	BookingData json.RawMessage `json:"bookingData"`
	BookingID   json.RawMessage `json:"bookingId"`
}

func (h *WhatsAppHandler) SendConfirmation(c echo.Context) error {
	var req sendConfirmationReq
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	id, err := parseFlexibleID(req.BookingID)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if req.Type == "" || id == "" || len(req.BookingData) == 0 || string(req.BookingData) == "null" {
		return fail(c, http.StatusBadRequest, "type, bookingData and bookingId are required")
	}
	typ, ok := model.ParseBookingType(req.Type)
	if !ok {
		return fail(c, http.StatusBadRequest, "type must be hostel or auditorium")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	res := h.dispatcher.DispatchData(ctx, typ, id, req.BookingData)
	if !res.Success {
		return fail(c, confirmationStatus(res), res.Error)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "messageId": res.MessageID})
}
