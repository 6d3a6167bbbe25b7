package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

// viewState lists a user's entries for a picked period.
type viewState struct {
	kind   core.Kind
	picker periodPicker
}

func (*viewState) SessionState() {}

// summaryState aggregates expenses by category for a picked period.
type summaryState struct {
	picker periodPicker
}

func (*summaryState) SessionState() {}

func (e *Engine) startView(ctx context.Context, userID int64, dateFirst bool) error {
	st := &viewState{kind: core.Expense}
	e.sessions.Replace(userID, st)
	return e.startPicker(ctx, userID, &st.picker, "View expenses for which period?", dateFirst)
}

func (e *Engine) handleView(ctx context.Context, userID int64, st *viewState, input string) error {
	res, err := e.advancePicker(ctx, userID, &st.picker, input)
	if res != periodResolved {
		return err
	}
	defer e.sessions.Clear(userID)
	return e.sendListing(ctx, userID, st.kind, st.picker.start, st.picker.end, st.picker.label)
}

func (e *Engine) startSummary(ctx context.Context, userID int64) error {
	st := &summaryState{}
	e.sessions.Replace(userID, st)
	return e.startPicker(ctx, userID, &st.picker, "Summary for which period?", false)
}

func (e *Engine) handleSummary(ctx context.Context, userID int64, st *summaryState, input string) error {
	res, err := e.advancePicker(ctx, userID, &st.picker, input)
	if res != periodResolved {
		return err
	}
	defer e.sessions.Clear(userID)

	totals, err := e.ledger.AggregateByCategory(ctx, userID, core.Expense, st.picker.start, st.picker.end)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	if len(totals) == 0 {
		return e.send(ctx, userID, fmt.Sprintf("No expenses recorded for %s.", st.picker.label), nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summary for %s:\n", st.picker.label)
	var grand int64
	for _, ct := range totals {
		fmt.Fprintf(&b, "%s > %s: %s (%d)\n", ct.Category, ct.Subcategory, ct.Total, ct.Count)
		grand += ct.Total.Cents
	}
	fmt.Fprintf(&b, "Total: %s", core.Money{Cents: grand})
	return e.send(ctx, userID, b.String(), nil)
}

// monthListing handles the /month and /income argument commands: a direct
// query for a named month of the current year, no session needed.
func (e *Engine) monthListing(ctx context.Context, userID int64, kind core.Kind, args []string) error {
	usage := "Usage: /month <name or number>, for example /month november or /month 11."
	if kind == core.Income {
		usage = "Usage: /income <name or number>, for example /income november or /income 11."
	}
	if len(args) == 0 {
		return e.send(ctx, userID, usage, nil)
	}
	mm, ok := core.ParseMonthInput(args[0])
	if !ok {
		return e.send(ctx, userID, usage, nil)
	}

	key := fmt.Sprintf("%04d-%s", e.now().Year(), mm)
	start, end, err := core.MonthRangeFor(key)
	if err != nil {
		return fmt.Errorf("month range for %q: %w", key, err)
	}
	return e.sendListing(ctx, userID, kind, start, end, core.MonthLabel(key))
}

func (e *Engine) sendListing(ctx context.Context, userID int64, kind core.Kind, start, end, label string) error {
	entries, err := e.ledger.EntriesForRange(ctx, userID, kind, start, end)
	if err != nil {
		return fmt.Errorf("entries for range: %w", err)
	}

	noun := "expenses"
	if kind == core.Income {
		noun = "incomes"
	}
	if len(entries) == 0 {
		return e.send(ctx, userID, fmt.Sprintf("No %s recorded for %s.", noun, label), nil)
	}

	body := fmt.Sprintf("%s for %s:\n%s\nTotal: %s",
		strings.ToUpper(noun[:1])+noun[1:], label, formatEntryList(entries), core.SumEntries(entries))
	return e.send(ctx, userID, body, nil)
}
