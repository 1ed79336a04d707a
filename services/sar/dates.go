package sar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (HTML5 date inputs use it too)
const DateLayout = "2006-01-02"

// ParseDate parses a date string in typical formats (YYYY-MM-DD).
// RFC 3339 timestamps are accepted and truncated to their calendar date.
func ParseDate(dateStr string) (time.Time, error) {
	if parsed, err := time.Parse(DateLayout, dateStr); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return DateOf(parsed), nil
	}
	return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
}

// DateOf truncates t to midnight UTC of its calendar date
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays moves a calendar date by n days
func AddDays(t time.Time, n int) time.Time {
	return DateOf(t).AddDate(0, 0, n)
}

// DaysBetween returns the signed number of calendar days from one date to another
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

// Date is a calendar date that reads and writes as YYYY-MM-DD in JSON
type Date struct {
	time.Time
}

// NewDate wraps t as a calendar date
func NewDate(t time.Time) Date {
	return Date{DateOf(t)}
}

// Ptr returns the date as a *time.Time, nil for a nil receiver
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := DateOf(d.Time)
	return &t
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}
