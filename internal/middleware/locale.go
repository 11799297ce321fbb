package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/locale"
)

// Context keys set by RequireLocale.
const (
	CtxLocale = "locale"
	CtxDir    = "dir"
)

// RequireLocale resolves the :locale path parameter.  Unsupported locales
// are answered with 404.
func RequireLocale(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l, ok := locale.Resolve(c.Param("locale"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unsupported locale"})
		}
		c.Set(CtxLocale, l)
		c.Set(CtxDir, locale.Direction(l))
		c.Response().Header().Set("Content-Language", string(l))
		return next(c)
	}
}
