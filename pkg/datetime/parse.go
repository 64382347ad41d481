// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/inflation-estimator/pkg/constants"
)

const (
	// DateLayout is the format expected for input dates and is also the
	// machine-readable output date format.
	DateLayout = constants.DateLayout
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MustParseDate parses a date string using DateLayout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseDate(dateStr string) time.Time {
	t, err := ParseDate(dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a YYYY-MM-DD date into a UTC midnight time.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(dateStr))
}

// CalendarDate truncates t to midnight UTC of its own calendar date, so the
// wall-clock date is kept regardless of the location t was expressed in.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from start to end.
// The result is negative when end is before start. Unix seconds are used
// instead of time.Duration, which saturates for spans beyond ~292 years.
func DaysBetween(start, end time.Time) int {
	delta := CalendarDate(end).Unix() - CalendarDate(start).Unix()
	return int(delta / constants.SecondsPerDay)
}

// FormatLongDate renders a date in long form for the given base language,
// e.g. "1 de enero de 2023" for "es" and "January 1, 2023" otherwise.
func FormatLongDate(t time.Time, lang string) string {
	switch lang {
	case "es":
		return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
	default:
		return t.Format("January 2, 2006")
	}
}
