// Package civiltime converts instants to the hotel's civil time (IST, UTC+05:30)
// and renders them in the three encodings used across the front desk.
package civiltime

import (
	"strings"
	"time"
)

// Zone is the fixed UTC+05:30 offset the hotel operates in. India has no DST.
var Zone = time.FixedZone("IST", 5*60*60+30*60)

const (
	// StorageLayout is the encoding written to booking and history rows.
	StorageLayout = "2006-01-02 15:04:05"
	// InputLayout matches a datetime-local form field.
	InputLayout = "2006-01-02T15:04"
	// DisplayLayout is shown on screens and invoices.
	DisplayLayout = "02/01/2006 03:04 PM"

	Day = 24 * time.Hour
)

// ToCivil returns t expressed in Zone. Applying it twice is a no-op.
func ToCivil(t time.Time) time.Time {
	return t.In(Zone)
}

func FormatStorage(t time.Time) string {
	return ToCivil(t).Format(StorageLayout)
}

func FormatInput(t time.Time) string {
	return ToCivil(t).Format(InputLayout)
}

func FormatDisplay(t time.Time) string {
	return ToCivil(t).Format(DisplayLayout)
}

// ParseStorage reads a storage-encoded value as civil time.
// A trailing RFC 3339 form is accepted too since some drivers hand back full timestamps.
func ParseStorage(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(StorageLayout, s, Zone); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return ToCivil(t), nil
}

// ParseInput reads a datetime-local value as civil time.
func ParseInput(s string) (time.Time, error) {
	return time.ParseInLocation(InputLayout, strings.TrimSpace(s), Zone)
}

// AddDays moves t forward by n calendar days keeping the time of day.
func AddDays(t time.Time, n int) time.Time {
	return ToCivil(t).AddDate(0, 0, n)
}

// DaysBetween is the number of started 24-hour periods from `from` to `to`,
// never less than 1.
func DaysBetween(to, from time.Time) int {
	elapsed := to.Sub(from)
	days := int(elapsed / Day)
	if elapsed%Day > 0 {
		days++
	}
	if days < 1 {
		return 1
	}
	return days
}

// StartOfDay is civil midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	c := ToCivil(t)
	return time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, Zone)
}

// StartOfWeek is civil midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func StartOfMonth(t time.Time) time.Time {
	c := ToCivil(t)
	return time.Date(c.Year(), c.Month(), 1, 0, 0, 0, 0, Zone)
}

func StartOfYear(t time.Time) time.Time {
	return time.Date(ToCivil(t).Year(), time.January, 1, 0, 0, 0, 0, Zone)
}
