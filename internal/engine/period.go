package engine

import (
	"context"
	"fmt"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

type periodStep int

const (
	periodAwaitChoice periodStep = iota
	periodAwaitDay
	periodAwaitMonth
	periodAwaitYear
)

type periodResult int

const (
	// periodPending means the picker asked a follow-up and stays active.
	periodPending periodResult = iota
	// periodResolved means start/end/label are set and the owning flow
	// continues.
	periodResolved
	// periodAborted means the picker ended the flow (no data to pick from)
	// and the session was cleared.
	periodAborted
)

// periodPicker is the Today / Specific Day / Month / Year sub-flow shared
// by the view, summary, edit, delete and export flows. Month and year menus
// are built only from periods that actually contain data.
type periodPicker struct {
	step   periodStep
	months map[string]string // display label -> YYYY-MM key
	years  map[string]bool
	start  string
	end    string
	label  string
}

var periodKeyboard = [][]string{{"Today", "Specific Day"}, {"Month", "Year"}, {"Cancel"}}

const (
	msgBadPeriodChoice = "Please choose Today, Specific Day, Month or Year."
	msgNoMonths        = "You have no recorded entries yet."
	msgBadMonthChoice  = "Pick one of the listed months."
	msgBadYearChoice   = "Pick one of the listed years."
)

// startPicker sends the period menu, or jumps straight to the date prompt
// for the _d command variants.
func (e *Engine) startPicker(ctx context.Context, userID int64, p *periodPicker, title string, dateFirst bool) error {
	if dateFirst {
		p.step = periodAwaitDay
		return e.send(ctx, userID, msgAskDate, nil)
	}
	p.step = periodAwaitChoice
	return e.send(ctx, userID, title, periodKeyboard)
}

func (e *Engine) advancePicker(ctx context.Context, userID int64, p *periodPicker, input string) (periodResult, error) {
	switch p.step {
	case periodAwaitChoice:
		switch {
		case equalsFold(input, "Today"):
			today := core.Today(e.now())
			p.start, p.end, p.label = today, today, today
			return periodResolved, nil
		case equalsFold(input, "Specific Day"):
			p.step = periodAwaitDay
			return periodPending, e.send(ctx, userID, msgAskDate, nil)
		case equalsFold(input, "Month"):
			keys, err := e.ledger.DistinctMonths(ctx, userID)
			if err != nil {
				return periodAborted, fmt.Errorf("distinct months: %w", err)
			}
			if len(keys) == 0 {
				e.sessions.Clear(userID)
				return periodAborted, e.send(ctx, userID, msgNoMonths, nil)
			}
			p.months = make(map[string]string, len(keys))
			labels := make([]string, 0, len(keys))
			for _, k := range keys {
				label := core.MonthLabel(k)
				p.months[label] = k
				labels = append(labels, label)
			}
			p.step = periodAwaitMonth
			return periodPending, e.send(ctx, userID, "Which month?", keyboardRows(labels, 2))
		case equalsFold(input, "Year"):
			keys, err := e.ledger.DistinctYears(ctx, userID)
			if err != nil {
				return periodAborted, fmt.Errorf("distinct years: %w", err)
			}
			if len(keys) == 0 {
				e.sessions.Clear(userID)
				return periodAborted, e.send(ctx, userID, msgNoMonths, nil)
			}
			p.years = make(map[string]bool, len(keys))
			for _, k := range keys {
				p.years[k] = true
			}
			p.step = periodAwaitYear
			return periodPending, e.send(ctx, userID, "Which year?", keyboardRows(keys, 3))
		default:
			return periodPending, e.send(ctx, userID, msgBadPeriodChoice, periodKeyboard)
		}

	case periodAwaitDay:
		date, err := core.ParseUserDate(input, e.now())
		if err != nil {
			return periodPending, e.send(ctx, userID, msgBadDate, nil)
		}
		p.start, p.end, p.label = date, date, date
		return periodResolved, nil

	case periodAwaitMonth:
		key, ok := p.months[input]
		if !ok {
			return periodPending, e.send(ctx, userID, msgBadMonthChoice, nil)
		}
		start, end, err := core.MonthRangeFor(key)
		if err != nil {
			return periodAborted, fmt.Errorf("month range for %q: %w", key, err)
		}
		p.start, p.end, p.label = start, end, core.MonthLabel(key)
		return periodResolved, nil

	case periodAwaitYear:
		if !p.years[input] {
			return periodPending, e.send(ctx, userID, msgBadYearChoice, nil)
		}
		start, end, err := core.YearRangeFor(input)
		if err != nil {
			return periodAborted, fmt.Errorf("year range for %q: %w", input, err)
		}
		p.start, p.end, p.label = start, end, input
		return periodResolved, nil
	}
	return periodPending, nil
}
