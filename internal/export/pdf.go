package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

// detailDescriptionMax clips long descriptions in the detail tables so the
// row stays on one line.
const detailDescriptionMax = 25

// RenderPDF produces the period report: header, totals summary, expenses
// grouped by category, then detail tables for both kinds.
func RenderPDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Finance Report"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Period: %s (%s to %s)", r.PeriodLabel, r.StartDate, r.EndDate)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Incomes: %s", r.TotalIncomes())), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Expenses: %s", r.TotalExpenses())), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Balance: %s", r.Balance())), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if groups := r.expenseGroups(); len(groups) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Expenses by category", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, g := range groups {
			pdf.CellFormat(90, 6, tr(fmt.Sprintf("%s > %s", g.Category, g.Subcategory)), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, tr(g.Total.String()), "", 0, "R", false, 0, "")
			pdf.CellFormat(0, 6, fmt.Sprintf("%d", g.Count), "", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	writeDetail(pdf, tr, "Expenses", r.Expenses)
	writeDetail(pdf, tr, "Incomes", r.Incomes)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDetail(pdf *gofpdf.Fpdf, tr func(string) string, title string, entries []core.Entry) {
	if len(entries) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(24, 6, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(55, 6, "Category", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Amount", "B", 0, "R", false, 0, "")
	pdf.CellFormat(0, 6, "Description", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, e := range entries {
		pdf.CellFormat(24, 6, e.Date, "", 0, "L", false, 0, "")
		pdf.CellFormat(55, 6, tr(fmt.Sprintf("%s > %s", e.Category, e.Subcategory)), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, tr(e.Amount.String()), "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 6, tr(clip(e.Description, detailDescriptionMax)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
