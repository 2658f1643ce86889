package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date exchanged on the wire as YYYY-MM-DD and stored in
// DATE columns. The embedded instant is always midnight UTC.
type Date struct {
	time.Time
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current UTC calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{Time: d.Time.AddDate(0, 0, days)}
}

// String renders the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

// MarshalJSON renders the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts YYYY-MM-DD as well as full RFC3339 timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		*d = DateOf(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", raw, err)
	}
	*d = DateOf(t)
	return nil
}

// Value implements driver.Valuer for DATE columns.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) parse(raw string) error {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", raw, err)
	}
	*d = DateOf(t)
	return nil
}
