package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/venue-booking/internal/model"
)

// AuditoriumBookingRepo encapsulates the queries against auditorium_bookings.
// Its primary ids form an address space independent from hostel bookings.
type AuditoriumBookingRepo struct {
	db *sql.DB
}

// NewAuditoriumBookingRepo returns a new AuditoriumBookingRepo bound to the given database.
func NewAuditoriumBookingRepo(db *sql.DB) *AuditoriumBookingRepo {
	return &AuditoriumBookingRepo{db: db}
}

const auditoriumColumns = `id, booking_id, event_name, event_type, event_date, start_time, end_time,
	contact_name, organization, email, whatsapp_number, expected_attendees, exclusions, coupon_code,
	notes, created_at, updated_at`

// Create inserts a new auditorium booking and populates its ID and timestamps.
func (r *AuditoriumBookingRepo) Create(ctx context.Context, b *model.AuditoriumBooking) error {
	exclusions, err := encodeList(b.Exclusions)
	if err != nil {
		return err
	}
	const q = `INSERT INTO auditorium_bookings
		(event_name, event_type, event_date, start_time, end_time, contact_name, organization,
		 email, whatsapp_number, expected_attendees, exclusions, coupon_code, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.EventName, b.EventType, b.EventDate, b.StartTime, b.EndTime, b.ContactName, b.Organization,
		b.Email, b.WhatsAppNumber, b.ExpectedAttendees, exclusions, b.CouponCode, b.Notes)
	if err != nil {
		return fmt.Errorf("insert auditorium booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert auditorium booking: %w", err)
	}
	b.ID = uint64(id)

	const sel = `SELECT created_at, updated_at FROM auditorium_bookings WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("reload auditorium booking %d: %w", b.ID, err)
	}
	return nil
}

// GetByID fetches an auditorium booking by primary id.  It returns
// ErrBookingNotFound if no row exists.
func (r *AuditoriumBookingRepo) GetByID(ctx context.Context, id uint64) (*model.AuditoriumBooking, error) {
	q := `SELECT ` + auditoriumColumns + ` FROM auditorium_bookings WHERE id = ?`
	b, err := scanAuditorium(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get auditorium booking %d: %w", id, err)
	}
	return b, nil
}

// SetDisplayID stores the display id of a booking that does not have one yet.
func (r *AuditoriumBookingRepo) SetDisplayID(ctx context.Context, id uint64, displayID string) error {
	const q = `UPDATE auditorium_bookings
		SET booking_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND booking_id IS NULL`
	res, err := r.db.ExecContext(ctx, q, displayID, id)
	if err != nil {
		return fmt.Errorf("set auditorium display id %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDisplayIDUnchanged
	}
	return nil
}

func scanAuditorium(row rowScanner) (*model.AuditoriumBooking, error) {
	var (
		b          model.AuditoriumBooking
		displayID  sql.NullString
		eventType  sql.NullString
		startTime  sql.NullString
		endTime    sql.NullString
		org        sql.NullString
		exclusions sql.NullString
		coupon     sql.NullString
		notes      sql.NullString
	)
	if err := row.Scan(
		&b.ID, &displayID, &b.EventName, &eventType, &b.EventDate, &startTime, &endTime,
		&b.ContactName, &org, &b.Email, &b.WhatsAppNumber, &b.ExpectedAttendees, &exclusions, &coupon,
		&notes, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if displayID.Valid {
		v := displayID.String
		b.BookingID = &v
	}
	b.EventType = eventType.String
	b.StartTime = startTime.String
	b.EndTime = endTime.String
	b.Organization = org.String
	b.CouponCode = coupon.String
	b.Notes = notes.String
	list, err := decodeList(exclusions)
	if err != nil {
		return nil, err
	}
	b.Exclusions = list
	return &b, nil
}
