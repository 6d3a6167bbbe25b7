package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustInsert(t *testing.T, s *Store, e NewEntry) core.Entry {
	t.Helper()
	entry, err := s.Insert(context.Background(), e)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return entry
}

func TestInsertRoutesByKind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustInsert(t, store, NewEntry{
		UserID: 1, Category: "Home", Subcategory: "Rent",
		AmountCents: 100000, Description: "Home - Rent", Date: "2025-11-15",
	})
	mustInsert(t, store, NewEntry{
		UserID: 1, Category: "Incomes", Subcategory: "Salary",
		AmountCents: 200000, Description: "Incomes - Salary", Date: "2025-11-15",
	})

	expenses, err := store.EntriesForDate(ctx, 1, core.Expense, "2025-11-15")
	if err != nil {
		t.Fatalf("EntriesForDate: %v", err)
	}
	incomes, err := store.EntriesForDate(ctx, 1, core.Income, "2025-11-15")
	if err != nil {
		t.Fatalf("EntriesForDate: %v", err)
	}

	if len(expenses) != 1 || expenses[0].Category != "Home" {
		t.Fatalf("expenses = %+v", expenses)
	}
	if len(incomes) != 1 || incomes[0].Subcategory != "Salary" {
		t.Fatalf("incomes = %+v", incomes)
	}
}

func TestTenantIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owned := mustInsert(t, store, NewEntry{
		UserID: 67890, Category: "Home", Subcategory: "Rent",
		AmountCents: 5000, Description: "rent", Date: "2025-11-15",
	})

	t.Run("delete by another user is a no-op", func(t *testing.T) {
		ok, err := store.Delete(ctx, 12345, core.Expense, owned.ID)
		if err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if ok {
			t.Fatal("delete must report not-found for a foreign entry")
		}
		rows, err := store.EntriesForDate(ctx, 67890, core.Expense, "2025-11-15")
		if err != nil {
			t.Fatalf("EntriesForDate: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("row count changed: %d", len(rows))
		}
	})

	t.Run("update by another user is a no-op", func(t *testing.T) {
		ok, err := store.UpdateAmount(ctx, 12345, core.Expense, owned.ID, 1)
		if err != nil {
			t.Fatalf("UpdateAmount: %v", err)
		}
		if ok {
			t.Fatal("update must report not-found for a foreign entry")
		}
		got, found, err := store.GetEntry(ctx, 67890, core.Expense, owned.ID)
		if err != nil || !found {
			t.Fatalf("GetEntry: %v found=%v", err, found)
		}
		if got.Amount.Cents != 5000 {
			t.Fatalf("amount changed to %d", got.Amount.Cents)
		}
	})

	t.Run("reads never cross users", func(t *testing.T) {
		rows, err := store.EntriesForDate(ctx, 12345, core.Expense, "2025-11-15")
		if err != nil {
			t.Fatalf("EntriesForDate: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("user 12345 sees %d foreign rows", len(rows))
		}
	})
}

func TestOwnerUpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	e := mustInsert(t, store, NewEntry{
		UserID: 7, Category: "Car", Subcategory: "Fuel",
		AmountCents: 4200, Description: "Car - Fuel", Date: "2025-10-01",
	})

	ok, err := store.UpdateAmount(ctx, 7, core.Expense, e.ID, 5000)
	if err != nil || !ok {
		t.Fatalf("UpdateAmount: ok=%v err=%v", ok, err)
	}
	ok, err = store.UpdateDescription(ctx, 7, core.Expense, e.ID, "full tank")
	if err != nil || !ok {
		t.Fatalf("UpdateDescription: ok=%v err=%v", ok, err)
	}

	got, found, err := store.GetEntry(ctx, 7, core.Expense, e.ID)
	if err != nil || !found {
		t.Fatalf("GetEntry: %v found=%v", err, found)
	}
	if got.Amount.Cents != 5000 || got.Description != "full tank" {
		t.Fatalf("entry after updates: %+v", got)
	}

	ok, err = store.Delete(ctx, 7, core.Expense, e.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if _, found, _ := store.GetEntry(ctx, 7, core.Expense, e.ID); found {
		t.Fatal("entry still present after delete")
	}
}

func TestEntriesForRangeOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, d := range []string{"2025-11-01", "2025-11-15", "2025-11-07"} {
		mustInsert(t, store, NewEntry{
			UserID: 1, Category: "Home", Subcategory: "Other",
			AmountCents: 100, Description: "x", Date: d,
		})
	}

	desc, err := store.EntriesForRange(ctx, 1, core.Expense, "2025-11-01", "2025-11-30")
	if err != nil {
		t.Fatalf("EntriesForRange: %v", err)
	}
	if len(desc) != 3 || desc[0].Date != "2025-11-15" || desc[2].Date != "2025-11-01" {
		t.Fatalf("descending order broken: %+v", desc)
	}

	asc, err := store.EntriesForRangeAsc(ctx, 1, core.Expense, "2025-11-01", "2025-11-30")
	if err != nil {
		t.Fatalf("EntriesForRangeAsc: %v", err)
	}
	if asc[0].Date != "2025-11-01" || asc[2].Date != "2025-11-15" {
		t.Fatalf("ascending order broken: %+v", asc)
	}

	// Inclusive bounds.
	edge, err := store.EntriesForRange(ctx, 1, core.Expense, "2025-11-15", "2025-11-15")
	if err != nil {
		t.Fatalf("EntriesForRange: %v", err)
	}
	if len(edge) != 1 {
		t.Fatalf("inclusive bound returned %d rows", len(edge))
	}
}

func TestAggregateByCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustInsert(t, store, NewEntry{UserID: 1, Category: "Home", Subcategory: "Rent", AmountCents: 50000, Description: "r", Date: "2025-11-01"})
	mustInsert(t, store, NewEntry{UserID: 1, Category: "Home", Subcategory: "Rent", AmountCents: 50000, Description: "r", Date: "2025-11-20"})
	mustInsert(t, store, NewEntry{UserID: 1, Category: "Car", Subcategory: "Fuel", AmountCents: 10000, Description: "f", Date: "2025-11-10"})
	// Income in the same month must not leak into the expense aggregate.
	mustInsert(t, store, NewEntry{UserID: 1, Category: "Incomes", Subcategory: "Salary", AmountCents: 999, Description: "s", Date: "2025-11-10"})

	totals, err := store.AggregateByCategory(ctx, 1, core.Expense, "2025-11-01", "2025-11-30")
	if err != nil {
		t.Fatalf("AggregateByCategory: %v", err)
	}

	want := map[string]core.CategoryTotal{
		"Car/Fuel":  {Category: "Car", Subcategory: "Fuel", Total: core.Money{Cents: 10000}, Count: 1},
		"Home/Rent": {Category: "Home", Subcategory: "Rent", Total: core.Money{Cents: 100000}, Count: 2},
	}
	if len(totals) != len(want) {
		t.Fatalf("got %d groups: %+v", len(totals), totals)
	}
	for _, ct := range totals {
		w, ok := want[ct.Category+"/"+ct.Subcategory]
		if !ok {
			t.Fatalf("unexpected group %+v", ct)
		}
		if ct.Total != w.Total || ct.Count != w.Count {
			t.Fatalf("group %s/%s = %+v, want %+v", ct.Category, ct.Subcategory, ct, w)
		}
	}
}

func TestDistinctPeriods(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustInsert(t, store, NewEntry{UserID: 1, Category: "Home", Subcategory: "Rent", AmountCents: 1, Description: "x", Date: "2025-11-01"})
	mustInsert(t, store, NewEntry{UserID: 1, Category: "Home", Subcategory: "Rent", AmountCents: 1, Description: "x", Date: "2025-11-20"})
	mustInsert(t, store, NewEntry{UserID: 1, Category: "Incomes", Subcategory: "Salary", AmountCents: 1, Description: "x", Date: "2024-03-05"})
	mustInsert(t, store, NewEntry{UserID: 2, Category: "Home", Subcategory: "Rent", AmountCents: 1, Description: "x", Date: "2023-01-01"})

	months, err := store.DistinctMonths(ctx, 1)
	if err != nil {
		t.Fatalf("DistinctMonths: %v", err)
	}
	if len(months) != 2 || months[0] != "2025-11" || months[1] != "2024-03" {
		t.Fatalf("months = %v", months)
	}

	years, err := store.DistinctYears(ctx, 1)
	if err != nil {
		t.Fatalf("DistinctYears: %v", err)
	}
	if len(years) != 2 || years[0] != "2025" || years[1] != "2024" {
		t.Fatalf("years = %v", years)
	}
}

func TestInsertStampsTodayWhenDateOmitted(t *testing.T) {
	store := newTestStore(t)

	e := mustInsert(t, store, NewEntry{
		UserID: 1, Category: "Home", Subcategory: "Rent",
		AmountCents: 1, Description: "x",
	})
	if len(e.Date) != 10 || e.Date[4] != '-' || e.Date[7] != '-' {
		t.Fatalf("date not canonical: %q", e.Date)
	}
	if len(e.Time) != 8 {
		t.Fatalf("time not stamped: %q", e.Time)
	}
}

func TestPurgeUserBefore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustInsert(t, store, NewEntry{UserID: 1, Category: "Home", Subcategory: "Rent", AmountCents: 1, Description: "old", Date: "2020-01-01"})
	mustInsert(t, store, NewEntry{UserID: 1, Category: "Home", Subcategory: "Rent", AmountCents: 1, Description: "new", Date: "2025-01-01"})
	mustInsert(t, store, NewEntry{UserID: 2, Category: "Home", Subcategory: "Rent", AmountCents: 1, Description: "other user", Date: "2020-01-01"})

	n, err := store.PurgeUserBefore(ctx, 1, core.Expense, "2024-01-01")
	if err != nil {
		t.Fatalf("PurgeUserBefore: %v", err)
	}
	if n != 1 {
		t.Fatalf("purged %d rows, want 1", n)
	}

	// User 2's old row must survive a user-1 purge.
	rows, err := store.EntriesForDate(ctx, 2, core.Expense, "2020-01-01")
	if err != nil {
		t.Fatalf("EntriesForDate: %v", err)
	}
	if len(rows) != 1 {
		t.Fatal("purge leaked into another user's rows")
	}
}
