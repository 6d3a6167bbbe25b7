package core

import (
	"testing"
	"time"
)

func TestParseUserDate(t *testing.T) {
	now := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"short year", "15/11/25", "2025-11-15", true},
		{"full year", "15/11/2025", "2025-11-15", true},
		{"no year uses current", "15/11", "2025-11-15", true},
		{"no year unpadded", "5/3", "2025-03-05", true},
		{"canonical passthrough", "2025-11-15", "2025-11-15", true},
		{"impossible date", "31/02/25", "", false},
		{"leap day in non-leap year", "29/02", "", false},
		{"garbage", "not-a-date", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUserDate(tt.input, now)
			if tt.ok != (err == nil) {
				t.Fatalf("ParseUserDate(%q) error = %v, want ok=%v", tt.input, err, tt.ok)
			}
			if tt.ok && got != tt.want {
				t.Fatalf("ParseUserDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseUserDateRoundTrip(t *testing.T) {
	// Any valid DD/MM/YY reparses to the same calendar date.
	now := time.Now()
	inputs := []string{"01/01/20", "29/02/24", "31/12/99", "15/06/25"}
	for _, in := range inputs {
		canonical, err := ParseUserDate(in, now)
		if err != nil {
			t.Fatalf("ParseUserDate(%q): %v", in, err)
		}
		parsed, err := time.Parse(CanonicalDateLayout, canonical)
		if err != nil {
			t.Fatalf("canonical %q does not parse: %v", canonical, err)
		}
		if got := parsed.Format("02/01/06"); got != in {
			t.Fatalf("round trip of %q produced %q", in, got)
		}
	}
}

func TestMonthRangeFor(t *testing.T) {
	start, end, err := MonthRangeFor("2025-11")
	if err != nil {
		t.Fatalf("MonthRangeFor: %v", err)
	}
	if start != "2025-11-01" || end != "2025-11-30" {
		t.Fatalf("got [%s, %s]", start, end)
	}

	start, end, err = MonthRangeFor("2024-02")
	if err != nil {
		t.Fatalf("MonthRangeFor: %v", err)
	}
	if start != "2024-02-01" || end != "2024-02-29" {
		t.Fatalf("leap february: got [%s, %s]", start, end)
	}

	if _, _, err := MonthRangeFor("nope"); err == nil {
		t.Fatal("expected error for invalid month key")
	}
}

func TestYearRangeFor(t *testing.T) {
	start, end, err := YearRangeFor("2025")
	if err != nil {
		t.Fatalf("YearRangeFor: %v", err)
	}
	if start != "2025-01-01" || end != "2025-12-31" {
		t.Fatalf("got [%s, %s]", start, end)
	}
}

func TestParseMonthInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"november", "11", true},
		{"novembro", "11", true},
		{"11", "11", true},
		{"3", "03", true},
		{"March", "03", true},
		{"marco", "03", true},
		{"13", "", false},
		{"smarch", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMonthInput(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParseMonthInput(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel("2025-11"); got != "November 2025" {
		t.Fatalf("MonthLabel = %q", got)
	}
}
