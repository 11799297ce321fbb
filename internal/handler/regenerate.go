package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/bookingid"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
)

// RegenerateHandler serves POST /api/regenerate-pdf: it reloads a stored
// booking and sends its confirmation again.
type RegenerateHandler struct {
	bookings   BookingLoader
	dispatcher ConfirmationDispatcher
}

func NewRegenerateHandler(b BookingLoader, d ConfirmationDispatcher) *RegenerateHandler {
	return &RegenerateHandler{bookings: b, dispatcher: d}
}

type regenerateReq struct {
	BookingID      json.RawMessage `json:"bookingId"`
	CollectionSlug string          `json:"collectionSlug"`
}

func (h *RegenerateHandler) Regenerate(c echo.Context) error {
	var req regenerateReq
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	key, err := parseFlexibleID(req.BookingID)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if key == "" || req.CollectionSlug == "" {
		return fail(c, http.StatusBadRequest, "bookingId and collectionSlug are required")
	}
	coll, ok := model.ParseCollection(req.CollectionSlug)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid collectionSlug")
	}
	typ, raw := bookingid.Decode(key)
	if typ != model.BookingUnknown && typ != coll.Type() {
		return fail(c, http.StatusBadRequest, "bookingId does not belong to collectionSlug")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusNotFound, "booking not found")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	b, err := h.bookings.Load(ctx, coll.Type(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return fail(c, http.StatusNotFound, "booking not found")
		}
		return fail(c, http.StatusInternalServerError, "failed to load booking")
	}

	res := h.dispatcher.Dispatch(ctx, b)
	if !res.Success {
		return fail(c, confirmationStatus(res), res.Error)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"messageId": res.MessageID,
		"bookingId": b.PrimaryID(),
	})
}
