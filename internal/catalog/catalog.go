// Package catalog holds the static category configuration driving the
// conversation flows: which categories exist, which subcategories they
// offer, which pairs auto-fill the description and which categories take a
// typed subcategory instead of a menu.
package catalog

import (
	"strings"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

const (
	// FreeTextMin and FreeTextMax bound typed subcategories.
	FreeTextMin = 2
	FreeTextMax = 50
)

// Catalog is an immutable category tree. Construct it once at startup and
// pass it by value; it never changes at runtime.
type Catalog struct {
	categoryRows    [][]string
	subcategoryRows map[string][][]string
	// autoDescription maps a category to the subcategories that skip the
	// description step. A nil slice means every subcategory skips it.
	autoDescription map[string][]string
	freeText        map[string]bool
}

// Default returns the catalog the bot ships with.
func Default() Catalog {
	return Catalog{
		categoryRows: [][]string{
			{"Home", "Car"},
			{"Lazer", "Travel"},
			{"Needs", "Health"},
			{"Streaming", "Subscriptions"},
			{"Others", "Incomes"},
		},
		subcategoryRows: map[string][][]string{
			"Home": {
				{"Rent", "Light"},
				{"Water", "Net"},
				{"Groceries", "Me Mimei"},
				{"Other"},
			},
			"Car": {
				{"Fuel", "Insurance"},
				{"Maintenance", "Parking"},
				{"Via Verde", "Other"},
			},
			"Lazer": {
				{"Dining Out", "Movies/Shows"},
				{"Hobbies", "Coffees"},
				{"Other"},
			},
			"Travel": {
				{"Flights", "Hotels"},
				{"Transportation", "Food"},
				{"Activities", "Other"},
			},
			"Streaming": {
				{"Prime", "Netflix"},
				{"Disney+", "Crunchyroll"},
			},
			"Needs": {
				{"Clothing", "Personal Care"},
				{"Other"},
			},
			"Health": {
				{"Doctor", "Pharmacy"},
				{"Hospital_Urgency", "Gym"},
				{"Supplements", "Other"},
			},
			"Others": {
				{"Gifts", "Pet"},
				{"Mi Mimei", "Maomao"},
				{"Other"},
			},
			"Incomes": {
				{"Refeição", "Subsídio"},
				{"Bónus", "Salary"},
				{"Interest", "Others"},
			},
		},
		autoDescription: map[string][]string{
			"Home":          {"Rent", "Light", "Water", "Net", "Groceries"},
			"Car":           {"Fuel", "Insurance", "Via Verde"},
			"Health":        {"Doctor", "Pharmacy", "Gym", "Other"},
			"Streaming":     nil, // all subcategories
			"Subscriptions": nil, // all subcategories
			"Incomes":       {"Refeição", "Subsídio", "Bónus", "Interest", "Salary"},
		},
		freeText: map[string]bool{
			"Subscriptions": true,
		},
	}
}

// CategoryRows returns the category keyboard layout. The rows matter only
// for rendering; semantically the categories are a flat set.
func (c Catalog) CategoryRows() [][]string {
	return c.categoryRows
}

// ExpenseCategoryRows returns the category keyboard without the income
// sentinel, for flows that already chose the expense kind.
func (c Catalog) ExpenseCategoryRows() [][]string {
	rows := make([][]string, 0, len(c.categoryRows))
	for _, row := range c.categoryRows {
		out := make([]string, 0, len(row))
		for _, cat := range row {
			if cat != core.IncomesCategory {
				out = append(out, cat)
			}
		}
		if len(out) > 0 {
			rows = append(rows, out)
		}
	}
	return rows
}

// SubcategoryRows returns the keyboard rows for a category, or nil when the
// category has none (the flow then skips straight to amount entry).
func (c Catalog) SubcategoryRows(category string) [][]string {
	return c.subcategoryRows[category]
}

// Subcategories flattens the rows of a category into an ordered set.
func (c Catalog) Subcategories(category string) []string {
	var out []string
	for _, row := range c.subcategoryRows[category] {
		out = append(out, row...)
	}
	return out
}

// Canonical resolves a user-typed label to the canonical category name.
// Matching is case-insensitive but otherwise exact.
func (c Catalog) Canonical(input string) (string, bool) {
	input = strings.TrimSpace(input)
	for _, row := range c.categoryRows {
		for _, cat := range row {
			if strings.EqualFold(cat, input) {
				return cat, true
			}
		}
	}
	return "", false
}

// IsSubcategory reports whether sub is a valid menu choice under category.
func (c Catalog) IsSubcategory(category, sub string) (string, bool) {
	sub = strings.TrimSpace(sub)
	for _, s := range c.Subcategories(category) {
		if strings.EqualFold(s, sub) {
			return s, true
		}
	}
	return "", false
}

// RequiresFreeText reports whether the category's subcategory is typed
// rather than chosen from a menu.
func (c Catalog) RequiresFreeText(category string) bool {
	return c.freeText[category]
}

// SkipDescription reports whether the pair auto-fills its description.
func (c Catalog) SkipDescription(category, subcategory string) bool {
	subs, ok := c.autoDescription[category]
	if !ok {
		return false
	}
	if subs == nil {
		return true
	}
	for _, s := range subs {
		if s == subcategory {
			return true
		}
	}
	return false
}

// IsIncome reports whether the category routes to the income ledger.
func (c Catalog) IsIncome(category string) bool {
	return category == core.IncomesCategory
}

// AutoDescription is the fixed placeholder stored when description entry is
// skipped.
func AutoDescription(category, subcategory string) string {
	return category + " - " + subcategory
}
