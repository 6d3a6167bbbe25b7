package engine

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/diogoviieira/register-track-bot/internal/catalog"
	"github.com/diogoviieira/register-track-bot/internal/core"
	"github.com/diogoviieira/register-track-bot/internal/log"
	"github.com/diogoviieira/register-track-bot/internal/storage"
)

type addStep int

const (
	addAwaitDate addStep = iota
	addAwaitKind
	addAwaitCategory
	addAwaitSubcategory
	addAwaitAmount
	addAwaitDescription
)

// addState carries the partially collected entry through the add flow.
type addState struct {
	step        addStep
	date        string // canonical, empty means today
	category    string
	subcategory string
	amountCents int64
}

func (*addState) SessionState() {}

var kindKeyboard = [][]string{{"Expense", "Income"}, {"Cancel"}}

const (
	msgAskDate        = "Which date? Send it as DD/MM/YY (or DD/MM for this year)."
	msgBadDate        = "I couldn't read that date. Send it as DD/MM/YY, for example 05/03/25."
	msgAskKind        = "What would you like to record?"
	msgBadKind        = "Please choose Expense or Income."
	msgAskCategory    = "Pick a category:"
	msgBadCategory    = "That's not a category I know. Pick one from the menu."
	msgAskSubcategory = "Pick a subcategory:"
	msgBadSubcategory = "That's not a subcategory of %s. Pick one from the menu."
	msgAskFreeText    = "Type the subscription name:"
	msgFreeTextShort  = "That name is too short, it needs at least %d characters."
	msgFreeTextLong   = "That name is too long, keep it under %d characters."
	msgAskAmount      = "How much? Send the amount, for example 12.50."
	msgAskDescription = "Add a short description:"
	msgTruncated      = "That description was over %d characters, I kept the first %d."
)

func (e *Engine) startAdd(ctx context.Context, userID int64, withDate bool) error {
	st := &addState{}
	if withDate {
		st.step = addAwaitDate
		e.sessions.Replace(userID, st)
		return e.send(ctx, userID, msgAskDate, nil)
	}
	st.step = addAwaitKind
	e.sessions.Replace(userID, st)
	return e.send(ctx, userID, msgAskKind, kindKeyboard)
}

func (e *Engine) handleAdd(ctx context.Context, userID int64, st *addState, input string) error {
	switch st.step {
	case addAwaitDate:
		date, err := core.ParseUserDate(input, e.now())
		if err != nil {
			return e.send(ctx, userID, msgBadDate, nil)
		}
		st.date = date
		st.step = addAwaitKind
		return e.send(ctx, userID, msgAskKind, kindKeyboard)

	case addAwaitKind:
		switch {
		case equalsFold(input, "Expense"):
			st.step = addAwaitCategory
			return e.send(ctx, userID, msgAskCategory, e.catalog.ExpenseCategoryRows())
		case equalsFold(input, "Income"):
			// Income is the fixed sentinel category; skip straight to its
			// subcategory menu.
			st.category = core.IncomesCategory
			st.step = addAwaitSubcategory
			return e.send(ctx, userID, msgAskSubcategory, e.catalog.SubcategoryRows(st.category))
		default:
			return e.send(ctx, userID, msgBadKind, kindKeyboard)
		}

	case addAwaitCategory:
		cat, ok := e.catalog.Canonical(input)
		if !ok {
			return e.send(ctx, userID, msgBadCategory, e.catalog.ExpenseCategoryRows())
		}
		st.category = cat
		if e.catalog.RequiresFreeText(cat) {
			st.step = addAwaitSubcategory
			return e.send(ctx, userID, msgAskFreeText, nil)
		}
		rows := e.catalog.SubcategoryRows(cat)
		if len(rows) == 0 {
			st.subcategory = "N/A"
			st.step = addAwaitAmount
			return e.send(ctx, userID, msgAskAmount, nil)
		}
		st.step = addAwaitSubcategory
		return e.send(ctx, userID, msgAskSubcategory, rows)

	case addAwaitSubcategory:
		if e.catalog.RequiresFreeText(st.category) {
			n := utf8.RuneCountInString(input)
			if n < catalog.FreeTextMin {
				return e.send(ctx, userID, fmt.Sprintf(msgFreeTextShort, catalog.FreeTextMin), nil)
			}
			if n > catalog.FreeTextMax {
				return e.send(ctx, userID, fmt.Sprintf(msgFreeTextLong, catalog.FreeTextMax), nil)
			}
			st.subcategory = input
		} else {
			sub, ok := e.catalog.IsSubcategory(st.category, input)
			if !ok {
				return e.send(ctx, userID,
					fmt.Sprintf(msgBadSubcategory, st.category),
					e.catalog.SubcategoryRows(st.category))
			}
			st.subcategory = sub
		}
		st.step = addAwaitAmount
		return e.send(ctx, userID, msgAskAmount, nil)

	case addAwaitAmount:
		cents, err := core.ParseAmountToCents(input)
		if err != nil {
			return e.send(ctx, userID, amountErrorMessage(err), nil)
		}
		st.amountCents = cents
		if e.catalog.SkipDescription(st.category, st.subcategory) {
			return e.finishAdd(ctx, userID, st, catalog.AutoDescription(st.category, st.subcategory))
		}
		st.step = addAwaitDescription
		return e.send(ctx, userID, msgAskDescription, nil)

	case addAwaitDescription:
		desc, truncated := core.TruncateDescription(input)
		if truncated {
			if err := e.send(ctx, userID,
				fmt.Sprintf(msgTruncated, core.MaxDescriptionLen, core.MaxDescriptionLen), nil); err != nil {
				return err
			}
		}
		return e.finishAdd(ctx, userID, st, desc)
	}
	return nil
}

// finishAdd is the terminal state: persist and confirm. The session is
// cleared no matter how the insert goes, so a storage failure never leaves
// the user stuck mid-flow.
func (e *Engine) finishAdd(ctx context.Context, userID int64, st *addState, description string) error {
	defer e.sessions.Clear(userID)

	entry, err := e.ledger.CreateEntry(ctx, storage.NewEntry{
		UserID:      userID,
		Category:    st.category,
		Subcategory: st.subcategory,
		AmountCents: st.amountCents,
		Description: description,
		Date:        st.date,
	})
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	e.logger.InfoContext(ctx, "Entry recorded",
		log.FieldUserID, userID,
		log.FieldEntryID, entry.ID,
		log.FieldKind, string(core.KindFor(entry.Category)),
		log.FieldCategory, entry.Category)

	noun := "Expense"
	if core.KindFor(entry.Category) == core.Income {
		noun = "Income"
	}
	body := fmt.Sprintf("%s recorded:\n%s > %s\n%s on %s\n%s",
		noun, entry.Category, entry.Subcategory, entry.Amount, entry.Date, entry.Description)
	return e.send(ctx, userID, body, nil)
}

func amountErrorMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrAmountNotPositive):
		return "The amount must be greater than zero."
	case errors.Is(err, core.ErrAmountTooLarge):
		return fmt.Sprintf("That's too much, the most I can record is %s.", core.Money{Cents: core.MaxAmountCents})
	default:
		return "I couldn't read that amount. Send a number like 12.50."
	}
}
