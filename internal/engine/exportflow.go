package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/diogoviieira/register-track-bot/internal/core"
	"github.com/diogoviieira/register-track-bot/internal/export"
	"github.com/diogoviieira/register-track-bot/internal/log"
)

type exportStep int

const (
	exportAwaitPeriod exportStep = iota
	exportAwaitFormat
)

type exportState struct {
	step   exportStep
	picker periodPicker
}

func (*exportState) SessionState() {}

var formatKeyboard = [][]string{{"PDF", "Excel"}, {"Cancel"}}

func (e *Engine) startExport(ctx context.Context, userID int64) error {
	st := &exportState{step: exportAwaitPeriod}
	e.sessions.Replace(userID, st)
	return e.startPicker(ctx, userID, &st.picker, "Export which period?", false)
}

func (e *Engine) handleExport(ctx context.Context, userID int64, st *exportState, input string) error {
	switch st.step {
	case exportAwaitPeriod:
		res, err := e.advancePicker(ctx, userID, &st.picker, input)
		if res != periodResolved {
			return err
		}
		st.step = exportAwaitFormat
		return e.send(ctx, userID, "PDF or Excel?", formatKeyboard)

	case exportAwaitFormat:
		var asPDF bool
		switch {
		case equalsFold(input, "PDF"):
			asPDF = true
		case equalsFold(input, "Excel"):
			asPDF = false
		default:
			return e.send(ctx, userID, "Please choose PDF or Excel.", formatKeyboard)
		}
		return e.renderExport(ctx, userID, st, asPDF)
	}
	return nil
}

func (e *Engine) renderExport(ctx context.Context, userID int64, st *exportState, asPDF bool) error {
	defer e.sessions.Clear(userID)

	// Reports read chronologically.
	expenses, err := e.ledger.EntriesForRangeAsc(ctx, userID, core.Expense, st.picker.start, st.picker.end)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}
	incomes, err := e.ledger.EntriesForRangeAsc(ctx, userID, core.Income, st.picker.start, st.picker.end)
	if err != nil {
		return fmt.Errorf("load incomes: %w", err)
	}
	if len(expenses) == 0 && len(incomes) == 0 {
		return e.send(ctx, userID, fmt.Sprintf("No data to export for %s.", st.picker.label), nil)
	}

	rep := export.Report{
		PeriodLabel: st.picker.label,
		StartDate:   st.picker.start,
		EndDate:     st.picker.end,
		Expenses:    expenses,
		Incomes:     incomes,
	}

	var (
		data []byte
		name string
	)
	if asPDF {
		data, err = export.RenderPDF(rep)
		name = exportFilename(st.picker.label, "pdf")
	} else {
		data, err = export.RenderXLSX(rep)
		name = exportFilename(st.picker.label, "xlsx")
	}
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	e.logger.InfoContext(ctx, "Report exported",
		log.FieldUserID, userID,
		log.FieldPeriod, st.picker.label,
		log.FieldOperation, log.OpExport)
	return e.sink.SendDocument(ctx, userID, Document{
		Name:    name,
		Caption: fmt.Sprintf("Report for %s", st.picker.label),
		Data:    data,
	})
}

func exportFilename(label, ext string) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), " ", "_"))
	return fmt.Sprintf("report_%s.%s", slug, ext)
}
