package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/venue-booking/internal/model"
)

// HostelBookingRepo encapsulates the queries against hostel_bookings.  All
// timestamps are stored in UTC.
type HostelBookingRepo struct {
	db *sql.DB
}

// NewHostelBookingRepo constructs a HostelBookingRepo with the provided DB handle.
func NewHostelBookingRepo(db *sql.DB) *HostelBookingRepo {
	return &HostelBookingRepo{db: db}
}

const hostelColumns = `id, booking_id, guest_name, email, whatsapp_number, phone, institution,
	room_type, number_of_guests, check_in_date, check_out_date, services, notes, created_at, updated_at`

// Create inserts a new hostel booking.  On success the booking's ID and
// timestamps are populated from the database.
func (r *HostelBookingRepo) Create(ctx context.Context, b *model.HostelBooking) error {
	services, err := encodeList(b.Services)
	if err != nil {
		return err
	}
	const q = `INSERT INTO hostel_bookings
		(guest_name, email, whatsapp_number, phone, institution, room_type, number_of_guests,
		 check_in_date, check_out_date, services, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.GuestName, b.Email, b.WhatsAppNumber, b.Phone, b.Institution, b.RoomType, b.NumberOfGuests,
		b.StayDuration.CheckInDate, b.StayDuration.CheckOutDate, services, b.Notes)
	if err != nil {
		return fmt.Errorf("insert hostel booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert hostel booking: %w", err)
	}
	b.ID = uint64(id)

	const sel = `SELECT created_at, updated_at FROM hostel_bookings WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("reload hostel booking %d: %w", b.ID, err)
	}
	return nil
}

// GetByID fetches a hostel booking by primary id.  It returns
// ErrBookingNotFound if no row exists.
func (r *HostelBookingRepo) GetByID(ctx context.Context, id uint64) (*model.HostelBooking, error) {
	q := `SELECT ` + hostelColumns + ` FROM hostel_bookings WHERE id = ?`
	b, err := scanHostel(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get hostel booking %d: %w", id, err)
	}
	return b, nil
}

// SetDisplayID stores the display id of a booking that does not have one
// yet.  A display id is never overwritten; ErrDisplayIDUnchanged is
// returned when no row was updated.
func (r *HostelBookingRepo) SetDisplayID(ctx context.Context, id uint64, displayID string) error {
	const q = `UPDATE hostel_bookings
		SET booking_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND booking_id IS NULL`
	res, err := r.db.ExecContext(ctx, q, displayID, id)
	if err != nil {
		return fmt.Errorf("set hostel display id %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDisplayIDUnchanged
	}
	return nil
}

func scanHostel(row rowScanner) (*model.HostelBooking, error) {
	var (
		b         model.HostelBooking
		displayID sql.NullString
		phone     sql.NullString
		inst      sql.NullString
		services  sql.NullString
		notes     sql.NullString
	)
	if err := row.Scan(
		&b.ID, &displayID, &b.GuestName, &b.Email, &b.WhatsAppNumber, &phone, &inst,
		&b.RoomType, &b.NumberOfGuests, &b.StayDuration.CheckInDate, &b.StayDuration.CheckOutDate,
		&services, &notes, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if displayID.Valid {
		v := displayID.String
		b.BookingID = &v
	}
	b.Phone = phone.String
	b.Institution = inst.String
	b.Notes = notes.String
	list, err := decodeList(services)
	if err != nil {
		return nil, err
	}
	b.Services = list
	return &b, nil
}
