package utils

import (
	"time"

	"github.com/julianstephens/norton/internal/constants"
)

// DateKey returns the local calendar day of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Local().Format(constants.DateFormat)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight local time.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, key, time.Local)
}

// ValidDateKey reports whether key is a well-formed calendar day.
func ValidDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// ShiftDateKey moves a date key by the given number of days. Invalid keys
// are returned unchanged.
func ShiftDateKey(key string, days int) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return key
	}
	return DateKey(t.AddDate(0, 0, days))
}

// InMonth reports whether the epoch-millisecond instant ms falls in the
// given local calendar month.
func InMonth(ms int64, year int, month time.Month) bool {
	t := time.UnixMilli(ms).Local()
	return t.Year() == year && t.Month() == month
}

// StartOfMonth returns local midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}
