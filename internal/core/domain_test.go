package core

import (
	"strings"
	"testing"
)

func TestKindFor(t *testing.T) {
	if KindFor("Incomes") != Income {
		t.Fatal("Incomes category must route to the income kind")
	}
	if KindFor("Home") != Expense {
		t.Fatal("regular categories must route to the expense kind")
	}
}

func TestKindTable(t *testing.T) {
	if Expense.Table() != "expenses" || Income.Table() != "incomes" {
		t.Fatalf("unexpected tables: %s / %s", Expense.Table(), Income.Table())
	}
}

func TestTruncateDescription(t *testing.T) {
	short, cut := TruncateDescription("  lunch  ")
	if cut || short != "lunch" {
		t.Fatalf("got %q cut=%v", short, cut)
	}

	long := strings.Repeat("x", MaxDescriptionLen+50)
	got, cut := TruncateDescription(long)
	if !cut {
		t.Fatal("expected truncation")
	}
	if len([]rune(got)) != MaxDescriptionLen {
		t.Fatalf("truncated length = %d", len([]rune(got)))
	}
}

func TestSumEntries(t *testing.T) {
	entries := []Entry{
		{Amount: Money{Cents: 100}},
		{Amount: Money{Cents: 250}},
	}
	if got := SumEntries(entries); got.Cents != 350 {
		t.Fatalf("SumEntries = %d", got.Cents)
	}
}
