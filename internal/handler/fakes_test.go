package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/service"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type fakeFinder struct {
	out service.LookupOutcome
	key string
}

func (f *fakeFinder) Find(_ context.Context, key string) service.LookupOutcome {
	f.key = key
	return f.out
}

type fakeLoader struct {
	rows  map[uint64]model.Booking
	err   error
	calls int
}

func (f *fakeLoader) Load(_ context.Context, _ model.BookingType, id uint64) (model.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return b, nil
}

type fakeDispatcher struct {
	res       service.ConfirmationResult
	calls     int
	dataCalls int
	lastType  model.BookingType
	lastID    string
}

func (f *fakeDispatcher) Dispatch(_ context.Context, b model.Booking) service.ConfirmationResult {
	f.calls++
	f.lastType = b.Type()
	return f.res
}

func (f *fakeDispatcher) DispatchData(_ context.Context, t model.BookingType, id string, _ json.RawMessage) service.ConfirmationResult {
	f.dataCalls++
	f.lastType, f.lastID = t, id
	return f.res
}

type fakeCreator struct {
	res service.CreateResult
	err error
}

func (f *fakeCreator) CreateHostel(_ context.Context, b *model.HostelBooking) (service.CreateResult, error) {
	if f.err != nil {
		return service.CreateResult{}, f.err
	}
	b.ID = 7
	res := f.res
	res.Booking = b
	return res, nil
}

func (f *fakeCreator) CreateAuditorium(_ context.Context, b *model.AuditoriumBooking) (service.CreateResult, error) {
	if f.err != nil {
		return service.CreateResult{}, f.err
	}
	b.ID = 9
	res := f.res
	res.Booking = b
	return res, nil
}

type fakeSettingsStore struct {
	s   model.Settings
	err error
}

func (f *fakeSettingsStore) Get(context.Context) (model.Settings, error) { return f.s, f.err }

func (f *fakeSettingsStore) Update(_ context.Context, s model.Settings) (model.Settings, error) {
	if f.err != nil {
		return model.Settings{}, f.err
	}
	f.s = s
	return s, nil
}

type fakeUsers struct {
	byEmail map[string]model.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

type fakeTokens struct {
	stored     map[string]uint64
	revoked    []string
	revokedAll []uint64
}

func (f *fakeTokens) StoreRefresh(_ context.Context, userID uint64, hash string, _ time.Time) error {
	if f.stored == nil {
		f.stored = map[string]uint64{}
	}
	f.stored[hash] = userID
	return nil
}

func (f *fakeTokens) Rotate(_ context.Context, oldHash, newHash string, _ time.Time) (uint64, error) {
	uid, ok := f.stored[oldHash]
	if !ok {
		return 0, repository.ErrRefreshInvalid
	}
	delete(f.stored, oldHash)
	f.stored[newHash] = uid
	return uid, nil
}

func (f *fakeTokens) RevokeByHash(_ context.Context, hash string) error {
	f.revoked = append(f.revoked, hash)
	delete(f.stored, hash)
	return nil
}

func (f *fakeTokens) RevokeAllForUser(_ context.Context, userID uint64) error {
	f.revokedAll = append(f.revokedAll, userID)
	return nil
}

type fakeRenderer struct{ err error }

func (f fakeRenderer) Render(model.Booking) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

func strPtr(s string) *string { return &s }
