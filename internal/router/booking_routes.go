package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"

	"github.com/iliyamo/venue-booking/internal/handler"
)

// BookingHandlers groups the booking API handlers.
type BookingHandlers struct {
	Lookup     *handler.BookingLookupHandler
	Regenerate *handler.RegenerateHandler
	WhatsApp   *handler.WhatsAppHandler
	Create     *handler.BookingCreateHandler
	Document   *handler.ConfirmationPDFHandler
	Settings   *handler.SettingsHandler
}

// RegisterBooking registers the public booking API under /api.  limit is
// applied to every POST, cache to the confirmation documents.  The booking
// forms accept cross-origin submissions from origins.
func RegisterBooking(e *echo.Echo, h BookingHandlers, origins []string, limit, cache echo.MiddlewareFunc) {
	g := e.Group("/api")

	g.GET("/booking/:id", h.Lookup.Get)
	g.POST("/regenerate-pdf", h.Regenerate.Regenerate, limit)

	forms := echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{echo.HeaderContentType},
	}).Handler)
	g.POST("/bookings/hostel", h.Create.CreateHostel, forms, limit)
	g.POST("/bookings/auditorium", h.Create.CreateAuditorium, forms, limit)
	g.OPTIONS("/bookings/hostel", noContent, forms)
	g.OPTIONS("/bookings/auditorium", noContent, forms)
	g.GET("/confirmation/:collection/:file", h.Document.Get, cache)
	g.GET("/settings", h.Settings.Get)

	// Any origin may call send-confirmation; rs/cors answers the preflight.
	anyOrigin := echo.WrapMiddleware(cors.AllowAll().Handler)
	g.POST("/whatsapp/send-confirmation", h.WhatsApp.SendConfirmation, anyOrigin, limit)
	g.OPTIONS("/whatsapp/send-confirmation", noContent, anyOrigin)
}

func noContent(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
