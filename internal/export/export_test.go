package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

func sampleReport() Report {
	return Report{
		PeriodLabel: "November 2025",
		StartDate:   "2025-11-01",
		EndDate:     "2025-11-30",
		Expenses: []core.Entry{
			{ID: 1, UserID: 1, Date: "2025-11-03", Time: "10:00:00", Category: "Home", Subcategory: "Rent", Amount: core.Money{Cents: 50000}, Description: "Home - Rent"},
			{ID: 2, UserID: 1, Date: "2025-11-10", Time: "18:30:00", Category: "Car", Subcategory: "Fuel", Amount: core.Money{Cents: 6050}, Description: "Car - Fuel"},
			{ID: 3, UserID: 1, Date: "2025-11-12", Time: "12:00:00", Category: "Lazer", Subcategory: "Dining Out", Amount: core.Money{Cents: 2500}, Description: "a very long description that will certainly not fit on a single report line"},
		},
		Incomes: []core.Entry{
			{ID: 1, UserID: 1, Date: "2025-11-01", Time: "09:00:00", Category: "Incomes", Subcategory: "Salary", Amount: core.Money{Cents: 200000}, Description: "Incomes - Salary"},
		},
	}
}

func TestReportTotals(t *testing.T) {
	r := sampleReport()
	if got := r.TotalExpenses().Cents; got != 58550 {
		t.Fatalf("TotalExpenses = %d", got)
	}
	if got := r.TotalIncomes().Cents; got != 200000 {
		t.Fatalf("TotalIncomes = %d", got)
	}
	if got := r.Balance().Cents; got != 141450 {
		t.Fatalf("Balance = %d", got)
	}
}

func TestExpenseGroups(t *testing.T) {
	r := sampleReport()
	r.Expenses = append(r.Expenses, core.Entry{
		Category: "Home", Subcategory: "Rent", Amount: core.Money{Cents: 1000},
	})
	groups := r.expenseGroups()
	if len(groups) != 3 {
		t.Fatalf("got %d groups", len(groups))
	}
	if groups[0].Category != "Home" || groups[0].Total.Cents != 51000 || groups[0].Count != 2 {
		t.Fatalf("Home group = %+v", groups[0])
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(sampleReport())
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", data[:8])
	}
}

func TestRenderXLSX(t *testing.T) {
	data, err := RenderXLSX(sampleReport())
	if err != nil {
		t.Fatalf("RenderXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Summary", "Expenses", "Incomes"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("missing sheet %s", sheet)
		}
	}

	v, err := f.GetCellValue("Expenses", "C2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "Home" {
		t.Fatalf("Expenses!C2 = %q", v)
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 25); got != "short" {
		t.Fatalf("clip(short) = %q", got)
	}
	long := strings.Repeat("x", 30)
	got := clip(long, 25)
	if got != strings.Repeat("x", 25)+"..." {
		t.Fatalf("clip(long) = %q", got)
	}
}
