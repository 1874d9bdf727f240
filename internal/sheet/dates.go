package sheet

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Sheet cells hand back dates in three shapes: a day-count serial number, a
// "Date(y,m,d)" literal (month 0-based), or a plain date string. Everything
// is normalized to DD/MM/YYYY for display and DD/MM/YYYY HH:MM:SS for
// write-back so that reads and writes round-trip through the same format.

// serialEpochOffset is the number of days between the spreadsheet serial
// epoch (30 Dec 1899) and the Unix epoch.
const serialEpochOffset = 25569

const secondsPerDay = 86400

var dateLiteralRe = regexp.MustCompile(`^Date\((\d{4}),(\d{1,2}),(\d{1,2})(?:,(\d{1,2}),(\d{1,2}),(\d{1,2}))?\)$`)

// FromSerial converts a spreadsheet day-count serial to a UTC time.
func FromSerial(serial float64) time.Time {
	secs := (serial - serialEpochOffset) * secondsPerDay
	rounded := math.Round(secs)
	return time.Unix(int64(rounded), 0).UTC()
}

// ToSerial converts a time back to the spreadsheet serial. Inverse of
// FromSerial for the same epoch offset.
func ToSerial(t time.Time) float64 {
	return float64(t.UTC().Unix())/secondsPerDay + serialEpochOffset
}

// FormatDate normalizes a raw date cell to DD/MM/YYYY. Unrecognized values
// come back unchanged, matching how the sheet views render them.
func FormatDate(raw string) string {
	if raw == "" {
		return ""
	}

	if m := dateLiteralRe.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		// The literal carries a 0-based month.
		return fmt.Sprintf("%02d/%02d/%04d", day, month+1, year)
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t := FromSerial(serial)
		return t.Format("02/01/2006")
	}

	for _, layout := range []string{
		"02/01/2006 15:04:05",
		"02/01/2006",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02",
		"1/2/2006",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02/01/2006")
		}
	}

	return raw
}

// Timestamp renders a time in the sheet's write-back format.
func Timestamp(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}

// ParseTimestamp reads a creation-timestamp cell for trend bucketing. It
// accepts the write-back format, a bare DD/MM/YYYY, a serial number, or a
// handful of common layouts.
func ParseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{
		"02/01/2006 15:04:05",
		"02/01/2006",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	if m := dateLiteralRe.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC), true
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return FromSerial(serial), true
	}

	return time.Time{}, false
}
