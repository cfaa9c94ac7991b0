// Package dateutils parses the heterogeneous date strings found in ledger
// exports into canonical epoch milliseconds.
package dateutils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Common layouts seen in ledger exports, tried in order.
var commonLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02-01-2006",
	"02/01/2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var dateSeparators = regexp.MustCompile(`[-/\s]+`)

// ParseMillis parses a bill-date cell into epoch milliseconds at local
// midnight. It returns 0 when the text cannot be parsed; callers must treat
// 0 as "no valid date", never as the epoch start.
func ParseMillis(dateStr string) int64 {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return 0
	}

	for _, layout := range commonLayouts {
		if t, err := time.ParseInLocation(layout, dateStr, time.Local); err == nil {
			return midnight(t).UnixMilli()
		}
	}

	if t, ok := parseTokens(dateStr); ok {
		return t.UnixMilli()
	}

	return 0
}

// parseTokens is the fallback for day/month/year triples split on dashes,
// slashes, or whitespace. The month may be numeric or a name; only the first
// three letters of a name are significant. Two-digit years are read as 20XX.
func parseTokens(dateStr string) (time.Time, bool) {
	tokens := dateSeparators.Split(dateStr, -1)
	if len(tokens) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(tokens[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	month, ok := parseMonth(tokens[1])
	if !ok {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(tokens[2])
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (e.g. Feb 31); reject such inputs.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

func parseMonth(token string) (time.Month, bool) {
	if n, err := strconv.Atoi(token); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	if len(token) < 3 {
		return 0, false
	}
	m, ok := monthsByPrefix[strings.ToLower(token[:3])]
	return m, ok
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// MillisToTime converts epoch milliseconds back to a local time. The zero
// value means "no date".
func MillisToTime(millis int64) time.Time {
	return time.UnixMilli(millis).In(time.Local)
}
