package core

import (
	"strings"
	"time"
)

// DateLayout is the canonical entry date format.
const DateLayout = "2006-01-02"

// fallbackLayouts are the alternates, in order: DD-MM-YYYY, DD/MM/YYYY, YYYY/MM/DD.
var fallbackLayouts = []string{
	"2-1-2006",
	"2/1/2006",
	"2006/1/2",
}

// InvalidDateError carries the value that no accepted layout could parse.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return ErrInvalidDateFormat.Error() + ": " + e.Value
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDateFormat
}

// NormalizeDate canonicalizes raw to YYYY-MM-DD. Empty input means today.
func NormalizeDate(raw string) (string, error) {
	return normalizeDateAt(raw, time.Now())
}

func normalizeDateAt(raw string, now time.Time) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return now.Format(DateLayout), nil
	}
	if t, ok := parseISODate(s); ok {
		return t.Format(DateLayout), nil
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", &InvalidDateError{Value: raw}
}

// ParseCanonicalDate parses a YYYY-MM-DD string and nothing else.
func ParseCanonicalDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: s}
	}
	return t, nil
}

// Month is the inclusive [Start, End] range of one calendar month.
type Month struct {
	Start time.Time
	End   time.Time
	Label string // e.g. "October 2025"
}

// MonthBounds returns the calendar month containing date (YYYY-MM-DD).
func MonthBounds(date string) (Month, error) {
	d, err := ParseCanonicalDate(date)
	if err != nil {
		return Month{}, err
	}
	return MonthOf(d), nil
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	// first day of next month minus one day; AddDate rolls December into January
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return Month{
		Start: start,
		End:   end,
		Label: start.Format("January 2006"),
	}
}

func (m Month) StartDate() string { return m.Start.Format(DateLayout) }

func (m Month) EndDate() string { return m.End.Format(DateLayout) }

// Contains reports whether date (YYYY-MM-DD) falls inside the month.
func (m Month) Contains(date string) bool {
	return date >= m.StartDate() && date <= m.EndDate()
}

// Filename is the CSV attachment name, e.g. expenses_October_2025.csv.
func (m Month) Filename() string {
	return "expenses_" + strings.ReplaceAll(m.Label, " ", "_") + ".csv"
}

// ShiftDate moves a canonical date by days, used for day-to-day navigation.
func ShiftDate(date string, days int) (string, error) {
	d, err := ParseCanonicalDate(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, days).Format(DateLayout), nil
}
