package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/middleware"
)

// RegisterSite registers the locale-prefixed site pages.  Registered last
// so the static /api, /v1 and operational prefixes take precedence.
func RegisterSite(e *echo.Echo, cache echo.MiddlewareFunc) {
	e.GET("/", handler.RootRedirect)
	e.GET("/:locale", handler.Page, middleware.RequireLocale, cache)
	e.GET("/:locale/:page", handler.Page, middleware.RequireLocale, cache)
}
