package engine

import (
	"context"
	"fmt"

	"github.com/diogoviieira/register-track-bot/internal/core"
	"github.com/diogoviieira/register-track-bot/internal/log"
)

type editStep int

const (
	editAwaitPeriod editStep = iota
	editAwaitNumber
	editAwaitField
	editAwaitValue
)

// editState walks period -> numbered entry -> field -> new value. The
// fetched candidate list stays cached so a bad selection never refetches.
type editState struct {
	step    editStep
	picker  periodPicker
	entries []core.Entry
	target  core.Entry
	field   string // "amount" or "description"
}

func (*editState) SessionState() {}

var fieldKeyboard = [][]string{{"Amount", "Description"}, {"Cancel"}}

const (
	msgPickEntry    = "Reply with the number of the entry to edit."
	msgPickField    = "What do you want to change?"
	msgBadField     = "Please choose Amount or Description."
	msgEntryGone    = "Entry not found."
	msgNewAmount    = "Send the new amount:"
	msgNewDesc      = "Send the new description:"
	msgNoEntriesFmt = "No expenses recorded for %s."
)

func (e *Engine) startEdit(ctx context.Context, userID int64, dateFirst bool) error {
	st := &editState{step: editAwaitPeriod}
	e.sessions.Replace(userID, st)
	return e.startPicker(ctx, userID, &st.picker, "Edit an entry from which period?", dateFirst)
}

func (e *Engine) handleEdit(ctx context.Context, userID int64, st *editState, input string) error {
	switch st.step {
	case editAwaitPeriod:
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
		st.step = editAwaitNumber
		return e.send(ctx, userID, formatEntryList(entries)+"\n\n"+msgPickEntry, nil)

	case editAwaitNumber:
		idx, ok := parseSelection(input, len(st.entries))
		if !ok {
			return e.send(ctx, userID,
				fmt.Sprintf("Pick a number between 1 and %d.", len(st.entries)), nil)
		}
		st.target = st.entries[idx]
		st.step = editAwaitField
		return e.send(ctx, userID, msgPickField, fieldKeyboard)

	case editAwaitField:
		switch {
		case equalsFold(input, "Amount"):
			st.field = "amount"
			st.step = editAwaitValue
			return e.send(ctx, userID, msgNewAmount, nil)
		case equalsFold(input, "Description"):
			st.field = "description"
			st.step = editAwaitValue
			return e.send(ctx, userID, msgNewDesc, nil)
		default:
			return e.send(ctx, userID, msgBadField, fieldKeyboard)
		}

	case editAwaitValue:
		return e.applyEdit(ctx, userID, st, input)
	}
	return nil
}

func (e *Engine) applyEdit(ctx context.Context, userID int64, st *editState, input string) error {
	kind := core.KindFor(st.target.Category)

	var (
		ok      bool
		err     error
		summary string
	)
	switch st.field {
	case "amount":
		cents, perr := core.ParseAmountToCents(input)
		if perr != nil {
			// Re-prompt, session stays in place.
			return e.send(ctx, userID, amountErrorMessage(perr), nil)
		}
		ok, err = e.ledger.UpdateAmount(ctx, userID, kind, st.target.ID, cents)
		summary = fmt.Sprintf("Amount updated to %s.", core.Money{Cents: cents})
	case "description":
		desc, truncated := core.TruncateDescription(input)
		if truncated {
			if serr := e.send(ctx, userID,
				fmt.Sprintf(msgTruncated, core.MaxDescriptionLen, core.MaxDescriptionLen), nil); serr != nil {
				return serr
			}
		}
		ok, err = e.ledger.UpdateDescription(ctx, userID, kind, st.target.ID, desc)
		summary = "Description updated."
	}

	defer e.sessions.Clear(userID)
	if err != nil {
		return fmt.Errorf("update %s: %w", st.field, err)
	}
	if !ok {
		// The conditional update matched no row under this user.
		return e.send(ctx, userID, msgEntryGone, nil)
	}

	e.logger.InfoContext(ctx, "Entry updated",
		log.FieldUserID, userID,
		log.FieldEntryID, st.target.ID,
		log.FieldOperation, st.field)
	return e.send(ctx, userID, summary+"\n"+formatEntryLine(st.target), nil)
}
