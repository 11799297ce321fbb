package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/model"
)

var hostelCols = []string{
	"id", "booking_id", "guest_name", "email", "whatsapp_number", "phone", "institution",
	"room_type", "number_of_guests", "check_in_date", "check_out_date", "services", "notes",
	"created_at", "updated_at",
}

func TestHostelBookingRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewHostelBookingRepo(db)

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	in := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM hostel_bookings WHERE id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(hostelCols).AddRow(
			7, "HST-7", "Ayu", "ayu@example.com", "+628111", nil, "UGM",
			"dorm", 2, in, out, `["breakfast","laundry"]`, nil, now, now))

	b, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), b.ID)
	assert.Equal(t, "HST-7", b.DisplayID())
	assert.Equal(t, "+628111", b.WhatsApp())
	assert.Equal(t, []string{"breakfast", "laundry"}, b.Services)
	assert.Equal(t, 2, b.StayDuration.Nights())
	assert.Empty(t, b.Phone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHostelBookingRepo_GetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM hostel_bookings").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(hostelCols))

	_, err = NewHostelBookingRepo(db).GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestHostelBookingRepo_GetByIDDatastoreError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("FROM hostel_bookings").WillReturnError(boom)

	_, err = NewHostelBookingRepo(db).GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, boom)
}

func TestHostelBookingRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	b := &model.HostelBooking{
		GuestName:      "Ayu",
		Email:          "ayu@example.com",
		WhatsAppNumber: "+628111",
		RoomType:       "dorm",
		NumberOfGuests: 1,
		StayDuration: model.StayDuration{
			CheckInDate:  model.MustParseDate("2024-01-10"),
			CheckOutDate: model.MustParseDate("2024-01-11"),
		},
		Services: []string{"breakfast"},
	}

	mock.ExpectExec("INSERT INTO hostel_bookings").
		WithArgs("Ayu", "ayu@example.com", "+628111", "", "", "dorm", 1,
			sqlmock.AnyArg(), sqlmock.AnyArg(), `["breakfast"]`, "").
		WillReturnResult(sqlmock.NewResult(15, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM hostel_bookings").
		WithArgs(uint64(15)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, NewHostelBookingRepo(db).Create(context.Background(), b))
	assert.Equal(t, uint64(15), b.ID)
	assert.Equal(t, now, b.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetDisplayID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE hostel_bookings").
		WithArgs("HST-3", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE auditorium_bookings").
		WithArgs("AUD-3", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	require.NoError(t, NewHostelBookingRepo(db).SetDisplayID(ctx, 3, "HST-3"))
	assert.ErrorIs(t, NewAuditoriumBookingRepo(db).SetDisplayID(ctx, 3, "AUD-3"), ErrDisplayIDUnchanged)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditoriumBookingRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{
		"id", "booking_id", "event_name", "event_type", "event_date", "start_time", "end_time",
		"contact_name", "organization", "email", "whatsapp_number", "expected_attendees", "exclusions",
		"coupon_code", "notes", "created_at", "updated_at",
	}
	mock.ExpectQuery("FROM auditorium_bookings WHERE id").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			7, nil, "Seminar", "academic", now, "09:00", "12:00",
			"Budi", nil, "budi@example.com", "", 120, `["catering"]`,
			nil, nil, now, now))

	b, err := NewAuditoriumBookingRepo(db).GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Seminar", b.EventName)
	assert.Empty(t, b.DisplayID())
	assert.Equal(t, []string{"catering"}, b.Exclusions)
	assert.Equal(t, model.BookingAuditorium, b.Type())
}

func TestSettingsRepo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	mock.ExpectQuery("FROM settings WHERE id").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"send_confirmation_automatically", "updated_at"}))
	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.False(t, s.SendConfirmationAutomatically, "missing row defaults to off")

	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectExec("INSERT INTO settings").
		WithArgs(1, true).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("FROM settings WHERE id").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"send_confirmation_automatically", "updated_at"}).
			AddRow(true, now))
	s, err = repo.Update(ctx, model.Settings{SendConfirmationAutomatically: true})
	require.NoError(t, err)
	assert.True(t, s.SendConfirmationAutomatically)
	require.NoError(t, mock.ExpectationsWereMet())
}
