package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyDate is returned when a date input carries no value at all.
var ErrEmptyDate = errors.New("empty date")

// ErrUnsupportedDate is returned for inputs that cannot be read as a date.
var ErrUnsupportedDate = errors.New("unsupported date value")

// dateLayouts are tried in order.  Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"20060102",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
// 1e11 seconds is in the year 5138, 1e11 milliseconds is March 1973.
const epochMillisThreshold = 1e11

// NormalizeDate reads a date from the shapes booking forms and stored
// records produce (time values, ISO strings, bare calendar dates, epoch
// numbers) and returns it as a UTC instant.
func NormalizeDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, ErrEmptyDate
	case time.Time:
		if t.IsZero() {
			return time.Time{}, ErrEmptyDate
		}
		return t.UTC(), nil
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, ErrEmptyDate
		}
		return t.UTC(), nil
	case string:
		return parseDateString(t)
	case []byte:
		return parseDateString(string(t))
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return fromEpoch(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedDate, t.String())
		}
		return fromEpoch(int64(f)), nil
	case float64:
		return fromEpoch(int64(t)), nil
	case int64:
		return fromEpoch(t), nil
	case int:
		return fromEpoch(int64(t)), nil
	case map[string]any:
		// {"$date": "..."} style wrappers emitted by some exports
		if inner, ok := t["$date"]; ok {
			return NormalizeDate(inner)
		}
	}
	return time.Time{}, fmt.Errorf("%w: %T", ErrUnsupportedDate, v)
}

func parseDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	if isDigits(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil && len(s) >= 9 {
			return fromEpoch(n), nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedDate, s)
}

func fromEpoch(n int64) time.Time {
	if n >= epochMillisThreshold || n <= -epochMillisThreshold {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// ShiftForDisplay moves a date forward by exactly one calendar day.
// Confirmation recipients render dates in the venue's display timezone and
// expect this shift on check-in, check-out and event dates.
func ShiftForDisplay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.AddDate(0, 0, 1)
}
