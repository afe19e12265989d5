package core

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// parseISODate returns the calendar date of an ISO 8601 date or datetime.
//
// Dates are YYYY-MM-DD, YYYYMMDD, YYYY-Www[-D] or YYYYWww[D]. A time may
// follow after any single separator character: HH[:MM[:SS[.f]]] in extended
// or basic form, then an optional Z or ±HH[:MM[:SS[.f]]] offset. The time and
// offset are validated and discarded.
func parseISODate(s string) (time.Time, bool) {
	n := isoDateLen(s)
	if n == 0 {
		return time.Time{}, false
	}
	date, ok := parseISODatePart(s[:n])
	if !ok {
		return time.Time{}, false
	}
	rest := s[n:]
	if rest == "" {
		return date, true
	}
	_, size := utf8.DecodeRuneInString(rest)
	if !validISOTime(rest[size:]) {
		return time.Time{}, false
	}
	return date, true
}

// isoDateLen returns the length of the date part of s, or 0.
func isoDateLen(s string) int {
	if len(s) < 7 {
		return 0
	}
	n := 8
	switch s[4] {
	case '-':
		n = 10
		if s[5] == 'W' && (len(s) < 10 || s[8] != '-') {
			n = 8
		}
	case 'W':
		n = 7
		if len(s) > 7 && isDigit(s[7]) {
			n = 8
		}
	}
	if n > len(s) {
		return 0
	}
	return n
}

func parseISODatePart(d string) (time.Time, bool) {
	if strings.Contains(d, "W") {
		return parseISOWeekDate(d)
	}
	layout := DateLayout
	if len(d) == 8 {
		layout = "20060102"
	}
	if !digitsAt(d, layout) {
		return time.Time{}, false
	}
	t, err := time.Parse(layout, d)
	return t, err == nil
}

// digitsAt reports whether d has digits wherever layout does.
func digitsAt(d, layout string) bool {
	if len(d) != len(layout) {
		return false
	}
	for i := 0; i < len(d); i++ {
		if isDigit(layout[i]) != isDigit(d[i]) || (!isDigit(d[i]) && d[i] != layout[i]) {
			return false
		}
	}
	return true
}

// parseISOWeekDate handles YYYY-Www[-D] and YYYYWww[D]; the day defaults to Monday.
func parseISOWeekDate(d string) (time.Time, bool) {
	if !allDigits(d[:4]) {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(d[:4])
	rest := d[4:]
	extended := rest[0] == '-'
	if extended {
		rest = rest[1:]
	}
	if len(rest) < 3 || rest[0] != 'W' || !allDigits(rest[1:3]) {
		return time.Time{}, false
	}
	week, _ := strconv.Atoi(rest[1:3])
	rest = rest[3:]

	day := 1
	if rest != "" {
		if extended {
			if rest[0] != '-' {
				return time.Time{}, false
			}
			rest = rest[1:]
		}
		if len(rest) != 1 || !isDigit(rest[0]) {
			return time.Time{}, false
		}
		day = int(rest[0] - '0')
	}
	return isoWeekDay(year, week, day)
}

// isoWeekDay returns day (1 = Monday) of ISO week of year.
func isoWeekDay(year, week, day int) (time.Time, bool) {
	if week < 1 || week > 53 || day < 1 || day > 7 {
		return time.Time{}, false
	}
	// week 1 holds January 4th
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	t := monday.AddDate(0, 0, (week-1)*7+day-1)
	if _, w := t.ISOWeek(); w != week {
		return time.Time{}, false
	}
	return t, true
}

func validISOTime(s string) bool {
	clock, zone := s, ""
	if i := strings.IndexAny(s, "Z+-"); i >= 0 {
		clock, zone = s[:i], s[i:]
	}
	if !validClock(clock) {
		return false
	}
	switch {
	case zone == "":
		return true
	case zone[0] == 'Z':
		return zone == "Z"
	default:
		return validClock(zone[1:])
	}
}

// validClock checks HH[[:]MM[[:]SS[(.|,)f+]]] with one separator style throughout.
func validClock(s string) bool {
	if !twoDigitsUpTo(s, 23) {
		return false
	}
	s = s[2:]
	if s == "" {
		return true
	}
	extended := s[0] == ':'
	for range 2 {
		if s == "" {
			return true
		}
		if extended {
			if s[0] != ':' {
				return false
			}
			s = s[1:]
		}
		if !twoDigitsUpTo(s, 59) {
			return false
		}
		s = s[2:]
	}
	if s == "" {
		return true
	}
	return (s[0] == '.' || s[0] == ',') && len(s) > 1 && allDigits(s[1:])
}

func twoDigitsUpTo(s string, limit int) bool {
	if len(s) < 2 || !allDigits(s[:2]) {
		return false
	}
	v, _ := strconv.Atoi(s[:2])
	return v <= limit
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
