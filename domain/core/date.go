package core

import (
	"time"
)

// Date represents a calendar day with time-of-day discarded
type Date time.Time

// DateFormat is the canonical wire format for dates
const DateFormat = "2006-01-02"

// NewDate creates a Date from time.Time, truncating to midnight UTC
func NewDate(t time.Time) Date {
	return Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// Time returns the underlying time.Time
func (d Date) Time() time.Time {
	return time.Time(d)
}

// IsZero checks if the date is zero
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// Before returns true if d is before u
func (d Date) Before(u Date) bool {
	return time.Time(d).Before(time.Time(u))
}

// After returns true if d is after u
func (d Date) After(u Date) bool {
	return time.Time(d).After(time.Time(u))
}

// Equal returns true if d and u are the same calendar day
func (d Date) Equal(u Date) bool {
	return time.Time(d).Equal(time.Time(u))
}

// String returns the canonical YYYY-MM-DD representation
func (d Date) String() string {
	return time.Time(d).Format(DateFormat)
}

// MarshalJSON encodes the date in canonical format
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a canonical-format date
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return err
	}
	*d = NewDate(t)
	return nil
}
