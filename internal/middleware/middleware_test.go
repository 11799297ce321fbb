package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/logging"
	"github.com/iliyamo/venue-booking/internal/utils"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func serve(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketBlocksAfterCapacity(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1,
		RefillInterval: time.Hour, TTL: 2 * time.Hour, Prefix: "test", KeyStrategy: "ip_route",
	}
	e := echo.New()
	e.POST("/api/bookings/hostel", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, NewTokenBucket(cfg, rdb, logging.Discard()))

	for i := 0; i < 2; i++ {
		rec := serve(e, http.MethodPost, "/api/bookings/hostel", nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := serve(e, http.MethodPost, "/api/bookings/hostel", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestTokenBucketDisabledOrNoRedis(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/", nil).Code)
	}
}

func TestRedisCacheHitAndMiss(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled: true, Methods: map[string]bool{http.MethodGet: true},
		TTL: time.Minute, Prefix: "c", MaxBodyBytes: 1024,
	}
	var calls int32
	e := echo.New()
	e.GET("/id/home", func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusOK, echo.Map{"page": "home"})
	}, NewRedisCache(cfg, rdb, logging.Discard()))

	first := serve(e, http.MethodGet, "/id/home", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := serve(e, http.MethodGet, "/id/home", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, echo.MIMEApplicationJSON, second.Header().Get(echo.HeaderContentType))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRedisCacheSkipsErrorsAndLargeBodies(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled: true, Methods: map[string]bool{http.MethodGet: true},
		TTL: time.Minute, Prefix: "c", MaxBodyBytes: 8,
	}
	e := echo.New()
	mw := NewRedisCache(cfg, rdb, logging.Discard())
	e.GET("/missing", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "nope"})
	}, mw)
	e.GET("/big", func(c echo.Context) error {
		return c.String(http.StatusOK, "this body is longer than eight bytes")
	}, mw)

	for _, path := range []string{"/missing", "/big"} {
		serve(e, http.MethodGet, path, nil)
		rec := serve(e, http.MethodGet, path, nil)
		assert.Equal(t, "MISS", rec.Header().Get("X-Cache"), path)
	}
}

func TestCacheEntryRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/pdf"}}
	bs, err := encodeEntry(http.StatusOK, hdr, []byte("%PDF-1.3"))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodeEntry(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", gotHdr.Get("Content-Type"))
	assert.Equal(t, "%PDF-1.3", string(body))

	_, _, _, ok = decodeEntry([]byte{0, 1})
	assert.False(t, ok)
}

func TestJWTAuthAndRequireRole(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()
	e.PUT("/api/admin/settings", func(c echo.Context) error {
		uid, ok := UserID(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"uid": uid})
	}, JWTAuth(secret), RequireRole("ADMIN"))

	admin, err := utils.NewAccessToken(secret, 3, "ADMIN", time.Minute)
	require.NoError(t, err)
	staff, err := utils.NewAccessToken(secret, 4, "STAFF", time.Minute)
	require.NoError(t, err)

	bearer := func(tok string) http.Header { return http.Header{"Authorization": {"Bearer " + tok}} }

	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodPut, "/api/admin/settings", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodPut, "/api/admin/settings", bearer("junk")).Code)
	assert.Equal(t, http.StatusForbidden, serve(e, http.MethodPut, "/api/admin/settings", bearer(staff.Token)).Code)

	rec := serve(e, http.MethodPut, "/api/admin/settings", bearer(admin.Token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uid":3}`, rec.Body.String())
}

func TestRequireLocale(t *testing.T) {
	e := echo.New()
	e.GET("/:locale", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"locale": c.Get(CtxLocale), "dir": c.Get(CtxDir)})
	}, RequireLocale)

	rec := serve(e, http.MethodGet, "/ar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"locale":"ar","dir":"rtl"}`, rec.Body.String())
	assert.Equal(t, "ar", rec.Header().Get("Content-Language"))

	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/fr", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/EN", nil).Code)
}
