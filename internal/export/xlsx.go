package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

// RenderXLSX produces a workbook with Summary, Expenses and Incomes sheets.
func RenderXLSX(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]any{
		{"Period", r.PeriodLabel},
		{"From", r.StartDate},
		{"To", r.EndDate},
		{},
		{"Incomes", r.TotalIncomes().Euros()},
		{"Expenses", r.TotalExpenses().Euros()},
		{"Balance", r.Balance().Euros()},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, fmt.Errorf("write summary row: %w", err)
		}
	}

	if err := writeEntrySheet(f, "Expenses", r.Expenses); err != nil {
		return nil, err
	}
	if err := writeEntrySheet(f, "Incomes", r.Incomes); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntrySheet(f *excelize.File, name string, entries []core.Entry) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	header := []any{"Date", "Time", "Category", "Subcategory", "Amount", "Description"}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, e := range entries {
		row := []any{e.Date, e.Time, e.Category, e.Subcategory, e.Amount.Euros(), e.Description}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write entry row: %w", err)
		}
	}
	return nil
}
