package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
)

// DateKeyLayout is the canonical yyyy-mm-dd key for one local calendar day.
const DateKeyLayout = "2006-01-02"

var shortDateRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}$`)

// ParseTradeDate turns a raw export date cell into a local timestamp.
// Accepted inputs, tried in order:
//   - Excel serial number (days since 1900-01-01, with the classic off-by-two
//     adjustment for Excel's fake 1900 leap year)
//   - M/D/YY (two-digit years are read as 2000-2099)
//   - M/D/YYYY
//   - RFC3339 and plain yyyy-mm-dd
//
// Anything unparseable falls back to now so a single bad row never aborts a
// whole import.
func ParseTradeDate(raw string, now func() time.Time) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return now()
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return excelSerialToTime(serial)
	}

	if shortDateRe.MatchString(s) {
		parts := strings.Split(s, "/")
		month, _ := strconv.Atoi(parts[0])
		day, _ := strconv.Atoi(parts[1])
		year, _ := strconv.Atoi(parts[2])
		return time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	}

	layouts := []string{
		"1/2/2006",
		time.RFC3339,
		"2006-01-02 15:04:05",
		DateKeyLayout,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}

	logger.WithField("date", raw).Warn("Unparseable trade date, falling back to now")
	return now()
}

// excelSerialToTime converts an Excel date serial to local time. Excel counts
// days from 1900-01-01 and wrongly treats 1900 as a leap year, so two days
// are subtracted before the offset is applied.
func excelSerialToTime(serial float64) time.Time {
	epoch := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.Local)
	return epoch.Add(time.Duration((serial - 2) * 24 * float64(time.Hour)))
}

// StartOfDay resets a timestamp to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateKey formats the local calendar day of t as yyyy-mm-dd.
func DateKey(t time.Time) string {
	return StartOfDay(t).Format(DateKeyLayout)
}

// ParseDateKey reads a yyyy-mm-dd key back into a local midnight timestamp.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}
