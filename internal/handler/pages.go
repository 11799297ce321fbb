package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/locale"
	"github.com/iliyamo/venue-booking/internal/middleware"
)

// Pages served under every locale prefix.
var pages = map[string]bool{
	"home":       true,
	"hostel":     true,
	"auditorium": true,
	"booking":    true,
	"gallery":    true,
	"contact":    true,
}

// RootRedirect sends "/" to the default locale.
func RootRedirect(c echo.Context) error {
	return c.Redirect(http.StatusFound, locale.Path(locale.Default, ""))
}

// Page returns the metadata the site renders a page from.  It runs behind
// RequireLocale; a missing :page parameter means home.
func Page(c echo.Context) error {
	l, _ := c.Get(middleware.CtxLocale).(locale.Locale)
	dir, _ := c.Get(middleware.CtxDir).(locale.Dir)
	page := c.Param("page")
	if page == "" {
		page = "home"
	}
	if !pages[page] {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "page not found"})
	}

	sub := page
	if page == "home" {
		sub = ""
	}
	alternates := make(map[string]string, len(locale.Supported))
	for _, other := range locale.Supported {
		alternates[string(other)] = locale.Path(other, sub)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"locale":     l,
		"dir":        dir,
		"page":       page,
		"path":       locale.Path(l, sub),
		"alternates": alternates,
	})
}
