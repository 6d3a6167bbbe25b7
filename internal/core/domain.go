package core

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

// IncomesCategory is the sentinel category that routes an entry to the
// income side of the ledger.
const IncomesCategory = "Incomes"

// MaxDescriptionLen is the cap applied to free-text descriptions.
// Longer input is truncated, never rejected.
const MaxDescriptionLen = 200

type (
	Kind string

	// Entry is one recorded expense or income row.
	Entry struct {
		ID          int64
		UserID      int64
		Date        string // canonical YYYY-MM-DD
		Time        string // HH:MM:SS, insertion wall clock
		Category    string
		Subcategory string
		Amount      Money
		Description string
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrAmountTooLarge    = errors.New("amount too large")
	ErrInvalidDate       = errors.New("invalid date")
)

// KindFor returns the ledger side an entry with the given category lands on.
func KindFor(category string) Kind {
	if category == IncomesCategory {
		return Income
	}
	return Expense
}

// Table returns the persisted table name for the kind.
func (k Kind) Table() string {
	if k == Income {
		return "incomes"
	}
	return "expenses"
}

// TruncateDescription clips s to MaxDescriptionLen runes.
// The second return reports whether anything was cut.
func TruncateDescription(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= MaxDescriptionLen {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:MaxDescriptionLen]), true
}
