package core

import (
	"errors"
	"testing"
)

func TestParseAmountToCents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		err   error
	}{
		{"simple", "12.34", 1234, nil},
		{"comma separator", "12,34", 1234, nil},
		{"integer", "1000", 100000, nil},
		{"rounds down third decimal", "12.344", 1234, nil},
		{"rounds up third decimal", "12.346", 1235, nil},
		{"lower boundary", "0.01", 1, nil},
		{"upper boundary", "999999", 99_999_900, nil},
		{"just above upper boundary", "1000000", 0, ErrAmountTooLarge},
		{"zero", "0", 0, ErrAmountNotPositive},
		{"zero with decimals", "0.00", 0, ErrAmountNotPositive},
		{"negative", "-50", 0, ErrAmountNotPositive},
		{"explicit plus", "+5", 0, ErrInvalidAmount},
		{"empty", "", 0, ErrInvalidAmount},
		{"text", "abc", 0, ErrInvalidAmount},
		{"infinity", "inf", 0, ErrInvalidAmount},
		{"not a number", "nan", 0, ErrInvalidAmount},
		{"double separator", "1.2.3", 0, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmountToCents(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("ParseAmountToCents(%q) error = %v, want %v", tt.input, err, tt.err)
			}
			if err == nil && got != tt.want {
				t.Fatalf("ParseAmountToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	m := Money{Cents: 123456}
	if got := m.String(); got != "€1234.56" {
		t.Fatalf("String() = %q, want %q", got, "€1234.56")
	}
}
