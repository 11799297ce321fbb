package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/logging"
	"github.com/iliyamo/venue-booking/internal/model"
)

type memSettings struct{ s model.Settings }

func (m *memSettings) Get(context.Context) (model.Settings, error) { return m.s, nil }
func (m *memSettings) Update(_ context.Context, s model.Settings) (model.Settings, error) {
	m.s = s
	return s, nil
}

func noop(next echo.HandlerFunc) echo.HandlerFunc { return next }

func newTestServer() *echo.Echo {
	e := New(logging.Discard())
	settings := handler.NewSettingsHandler(&memSettings{})
	RegisterRoutes(e, nil, prometheus.NewRegistry())
	RegisterBooking(e, BookingHandlers{Settings: settings}, []string{"https://venue.example"}, noop, noop)
	RegisterAdmin(e, settings, "secret")
	RegisterSite(e, noop)
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestOperationalRoutes(t *testing.T) {
	e := newTestServer()

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestSendConfirmationPreflightAllowsAnyOrigin(t *testing.T) {
	e := newTestServer()
	req := httptest.NewRequest(http.MethodOptions, "/api/whatsapp/send-confirmation", nil)
	req.Header.Set("Origin", "https://partner.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := serve(e, req)
	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestBookingFormPreflightUsesConfiguredOrigins(t *testing.T) {
	e := newTestServer()
	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/bookings/hostel", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		return serve(e, req)
	}

	assert.Equal(t, "https://venue.example", preflight("https://venue.example").Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, preflight("https://evil.example").Header().Get("Access-Control-Allow-Origin"))
}

func TestAdminSettingsRequiresToken(t *testing.T) {
	e := newTestServer()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(`{"sendConfirmationAutomatically":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := serve(e, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSiteRoutes(t *testing.T) {
	e := newTestServer()

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/id", rec.Header().Get("Location"))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/ar/contact", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dir":"rtl"`)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/fr", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/en/pricing/extra", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}
