package engine

import (
	"context"
	"fmt"

	"github.com/diogoviieira/register-track-bot/internal/core"
	"github.com/diogoviieira/register-track-bot/internal/log"
)

type deleteStep int

const (
	deleteAwaitPeriod deleteStep = iota
	deleteAwaitNumber
)

// deleteState mirrors the edit flow's numbered selection with a delete as
// the terminal action.
type deleteState struct {
	step    deleteStep
	picker  periodPicker
	entries []core.Entry
}

func (*deleteState) SessionState() {}

func (e *Engine) startDelete(ctx context.Context, userID int64, dateFirst bool) error {
	st := &deleteState{step: deleteAwaitPeriod}
	e.sessions.Replace(userID, st)
	return e.startPicker(ctx, userID, &st.picker, "Delete an entry from which period?", dateFirst)
}

func (e *Engine) handleDelete(ctx context.Context, userID int64, st *deleteState, input string) error {
	switch st.step {
	case deleteAwaitPeriod:
		res, err := e.advancePicker(ctx, userID, &st.picker, input)
		if res != periodResolved {
			return err
		}
		entries, err := e.ledger.EntriesForRange(ctx, userID, core.Expense, st.picker.start, st.picker.end)
		if err != nil {
			return fmt.Errorf("entries for range: %w", err)
		}
		if len(entries) == 0 {
			e.sessions.Clear(userID)
			return e.send(ctx, userID, fmt.Sprintf(msgNoEntriesFmt, st.picker.label), nil)
		}
		st.entries = entries
		st.step = deleteAwaitNumber
		return e.send(ctx, userID, formatEntryList(entries)+"\n\nReply with the number of the entry to delete.", nil)

	case deleteAwaitNumber:
		idx, ok := parseSelection(input, len(st.entries))
		if !ok {
			return e.send(ctx, userID,
				fmt.Sprintf("Pick a number between 1 and %d.", len(st.entries)), nil)
		}
		// Snapshot before the delete so the confirmation can echo it.
		snap := st.entries[idx]
		defer e.sessions.Clear(userID)

		deleted, err := e.ledger.DeleteEntry(ctx, userID, core.KindFor(snap.Category), snap.ID)
		if err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}
		if !deleted {
			return e.send(ctx, userID, msgEntryGone, nil)
		}

		e.logger.InfoContext(ctx, "Entry deleted",
			log.FieldUserID, userID,
			log.FieldEntryID, snap.ID)
		return e.send(ctx, userID, "Deleted:\n"+formatEntryLine(snap), nil)
	}
	return nil
}
