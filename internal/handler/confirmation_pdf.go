package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/utils"
)

// DocumentRenderer renders a booking confirmation document.
type DocumentRenderer interface {
	Render(b model.Booking) ([]byte, error)
}

// ConfirmationPDFHandler serves GET /api/confirmation/:collection/:file,
// the document the provider request links to.
type ConfirmationPDFHandler struct {
	bookings BookingLoader
	renderer DocumentRenderer
	secret   string
}

// NewConfirmationPDFHandler builds the handler.  With a non-empty secret
// the ?sig= query parameter must match the signed document link.
func NewConfirmationPDFHandler(b BookingLoader, r DocumentRenderer, secret string) *ConfirmationPDFHandler {
	return &ConfirmationPDFHandler{bookings: b, renderer: r, secret: secret}
}

func (h *ConfirmationPDFHandler) Get(c echo.Context) error {
	coll, ok := model.ParseCollection(c.Param("collection"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown collection"})
	}
	raw, ok := strings.CutSuffix(c.Param("file"), ".pdf")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	if h.secret != "" && !utils.VerifyDocument(h.secret, string(coll), raw, c.QueryParam("sig")) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid signature"})
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	b, err := h.bookings.Load(ctx, coll.Type(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	doc, err := h.renderer.Render(b)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+raw+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", doc)
}
