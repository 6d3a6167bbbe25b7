// Package export renders period reports as PDF or XLSX documents. It only
// reads the entry slices it is handed; filtering and ordering are the
// caller's job.
package export

import (
	"github.com/diogoviieira/register-track-bot/internal/core"
)

// Report is the input to both renderers. Entries are expected in
// chronological order.
type Report struct {
	PeriodLabel string
	StartDate   string
	EndDate     string
	Expenses    []core.Entry
	Incomes     []core.Entry
}

func (r Report) TotalExpenses() core.Money {
	return core.SumEntries(r.Expenses)
}

func (r Report) TotalIncomes() core.Money {
	return core.SumEntries(r.Incomes)
}

// Balance is incomes minus expenses; negative when the period overspent.
func (r Report) Balance() core.Money {
	return core.Money{Cents: r.TotalIncomes().Cents - r.TotalExpenses().Cents}
}

// expenseGroups folds the expense entries by (category, subcategory) in
// first-seen order, for the by-category table.
func (r Report) expenseGroups() []core.CategoryTotal {
	index := make(map[string]int)
	var out []core.CategoryTotal
	for _, e := range r.Expenses {
		key := e.Category + "\x00" + e.Subcategory
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, core.CategoryTotal{Category: e.Category, Subcategory: e.Subcategory})
		}
		out[i].Total.Cents += e.Amount.Cents
		out[i].Count++
	}
	return out
}
