package core

import (
	"fmt"
	"strings"
	"time"
)

// CanonicalDateLayout is the storage form for every date. It sorts
// lexicographically, which the range queries rely on.
const CanonicalDateLayout = "2006-01-02"

// ClockLayout is the wall-clock time recorded at insertion.
const ClockLayout = "15:04:05"

// userDateLayouts is the lenient input grammar, tried in order.
// The unpadded layouts accept both "5/3/25" and "05/03/25".
var userDateLayouts = []string{
	"2/1/06",
	"2/1/2006",
	CanonicalDateLayout,
}

// Today returns now's date in canonical form.
func Today(now time.Time) string {
	return now.Format(CanonicalDateLayout)
}

// Clock returns now's wall-clock time in HH:MM:SS form.
func Clock(now time.Time) string {
	return now.Format(ClockLayout)
}

// ParseUserDate normalizes a user-supplied date into canonical form.
// Accepted forms: DD/MM/YY, DD/MM/YYYY, DD/MM (current year) and the
// canonical YYYY-MM-DD. Impossible dates such as 31/02 are rejected,
// never clamped.
func ParseUserDate(input string, now time.Time) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrInvalidDate
	}
	for _, layout := range userDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(CanonicalDateLayout), nil
		}
	}
	// DD/MM without a year.
	if t, err := time.Parse("2/1", s); err == nil {
		d := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow (29/02 in a non-leap year); reject it.
		if d.Day() != t.Day() || d.Month() != t.Month() {
			return "", ErrInvalidDate
		}
		return d.Format(CanonicalDateLayout), nil
	}
	return "", ErrInvalidDate
}

// MonthKey extracts the YYYY-MM prefix of a canonical date.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// YearKey extracts the YYYY prefix of a canonical date.
func YearKey(date string) string {
	if len(date) < 4 {
		return date
	}
	return date[:4]
}

// MonthRangeFor returns the inclusive canonical bounds of a YYYY-MM key.
func MonthRangeFor(monthKey string) (start, end string, err error) {
	t, perr := time.Parse("2006-01", monthKey)
	if perr != nil {
		return "", "", ErrInvalidDate
	}
	start = t.Format(CanonicalDateLayout)
	end = t.AddDate(0, 1, -1).Format(CanonicalDateLayout)
	return start, end, nil
}

// YearRangeFor returns the inclusive canonical bounds of a YYYY key.
func YearRangeFor(yearKey string) (start, end string, err error) {
	if _, perr := time.Parse("2006", yearKey); perr != nil {
		return "", "", ErrInvalidDate
	}
	return yearKey + "-01-01", yearKey + "-12-31", nil
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// monthMappings maps lenient month input (English and Portuguese names plus
// bare numbers) to the two-digit month.
var monthMappings = map[string]string{
	"january": "01", "janeiro": "01", "1": "01", "01": "01",
	"february": "02", "fevereiro": "02", "2": "02", "02": "02",
	"march": "03", "março": "03", "marco": "03", "3": "03", "03": "03",
	"april": "04", "abril": "04", "4": "04", "04": "04",
	"may": "05", "maio": "05", "5": "05", "05": "05",
	"june": "06", "junho": "06", "6": "06", "06": "06",
	"july": "07", "julho": "07", "7": "07", "07": "07",
	"august": "08", "agosto": "08", "8": "08", "08": "08",
	"september": "09", "setembro": "09", "9": "09", "09": "09",
	"october": "10", "outubro": "10", "10": "10",
	"november": "11", "novembro": "11", "11": "11",
	"december": "12", "dezembro": "12", "12": "12",
}

// ParseMonthInput resolves a month name or number to "01".."12".
func ParseMonthInput(s string) (string, bool) {
	m, ok := monthMappings[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}

// MonthLabel renders a YYYY-MM key as "November 2025".
func MonthLabel(monthKey string) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return monthKey
	}
	return fmt.Sprintf("%s %d", monthNames[int(t.Month())-1], t.Year())
}

// MonthName returns the English name for a two-digit month.
func MonthName(month string) string {
	t, err := time.Parse("01", month)
	if err != nil {
		return month
	}
	return monthNames[int(t.Month())-1]
}
