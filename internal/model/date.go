package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iliyamo/venue-booking/internal/utils"
)

// Date is a booking date normalized to a UTC instant.  It accepts the
// heterogeneous shapes booking forms send (ISO strings, bare calendar
// dates, epoch numbers) and always serializes as RFC 3339.
type Date struct {
	time.Time
}

// NewDate wraps t, normalizing it to UTC.
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{Time: t.UTC()}
}

// MustParseDate is a test and seed helper; it panics on malformed input.
func MustParseDate(s string) Date {
	t, err := utils.NormalizeDate(s)
	if err != nil {
		panic(fmt.Sprintf("model: parse date %q: %v", s, err))
	}
	return Date{Time: t}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		d.Time = time.Time{}
		return nil
	}
	if s, ok := raw.(string); ok && s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := utils.NormalizeDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// Scan implements sql.Scanner so DATETIME columns map straight onto Date.
func (d *Date) Scan(src any) error {
	if src == nil {
		d.Time = time.Time{}
		return nil
	}
	t, err := utils.NormalizeDate(src)
	if err != nil {
		return fmt.Errorf("model: scan date: %w", err)
	}
	d.Time = t
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.UTC(), nil
}
