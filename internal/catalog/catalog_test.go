package catalog

import "testing"

func TestSkipDescription(t *testing.T) {
	c := Default()

	tests := []struct {
		category    string
		subcategory string
		want        bool
	}{
		{"Streaming", "Netflix", true},
		{"Streaming", "anything at all", true}, // configured as "all"
		{"Subscriptions", "Patreon", true},
		{"Home", "Rent", true},
		{"Home", "Other", false}, // not in the explicit subset
		{"Home", "Me Mimei", false},
		{"Lazer", "Coffees", false}, // category not configured
		{"Incomes", "Salary", true},
		{"Incomes", "Others", false},
	}

	for _, tt := range tests {
		if got := c.SkipDescription(tt.category, tt.subcategory); got != tt.want {
			t.Errorf("SkipDescription(%q, %q) = %v, want %v", tt.category, tt.subcategory, got, tt.want)
		}
	}
}

func TestCanonical(t *testing.T) {
	c := Default()

	if got, ok := c.Canonical("home"); !ok || got != "Home" {
		t.Fatalf("Canonical(home) = %q, %v", got, ok)
	}
	if got, ok := c.Canonical(" STREAMING "); !ok || got != "Streaming" {
		t.Fatalf("Canonical(STREAMING) = %q, %v", got, ok)
	}
	if _, ok := c.Canonical("Groceries"); ok {
		t.Fatal("a subcategory must not resolve as a category")
	}
	if _, ok := c.Canonical("nope"); ok {
		t.Fatal("unknown label must not resolve")
	}
}

func TestIsSubcategory(t *testing.T) {
	c := Default()

	if got, ok := c.IsSubcategory("Home", "rent"); !ok || got != "Rent" {
		t.Fatalf("IsSubcategory = %q, %v", got, ok)
	}
	if _, ok := c.IsSubcategory("Home", "Fuel"); ok {
		t.Fatal("subcategory of another category must not match")
	}
}

func TestRequiresFreeText(t *testing.T) {
	c := Default()

	if !c.RequiresFreeText("Subscriptions") {
		t.Fatal("Subscriptions takes a typed subcategory")
	}
	if c.RequiresFreeText("Home") {
		t.Fatal("Home uses a fixed menu")
	}
}

func TestIsIncome(t *testing.T) {
	c := Default()

	if !c.IsIncome("Incomes") {
		t.Fatal("Incomes is the income category")
	}
	if c.IsIncome("Home") {
		t.Fatal("Home is not an income category")
	}
}

func TestExpenseCategoryRowsExcludeIncomes(t *testing.T) {
	c := Default()

	for _, row := range c.ExpenseCategoryRows() {
		for _, cat := range row {
			if cat == "Incomes" {
				t.Fatal("expense keyboard must not offer Incomes")
			}
		}
	}
}

func TestAutoDescription(t *testing.T) {
	if got := AutoDescription("Home", "Rent"); got != "Home - Rent" {
		t.Fatalf("AutoDescription = %q", got)
	}
}
