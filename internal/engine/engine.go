// Package engine is the conversation state machine. Inbound chat events are
// dispatched against the user's active session; handlers validate one field
// at a time, re-prompting on bad input, and terminate into a ledger write or
// query. All user-facing text originates here; the transport only renders it.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/diogoviieira/register-track-bot/internal/catalog"
	"github.com/diogoviieira/register-track-bot/internal/core"
	"github.com/diogoviieira/register-track-bot/internal/log"
	"github.com/diogoviieira/register-track-bot/internal/session"
	"github.com/diogoviieira/register-track-bot/internal/storage"
)

// Command is an inbound slash command, name without the leading slash.
type Command struct {
	Name   string
	Args   []string
	UserID int64
	Raw    string
}

// Text is an inbound free-text message.
type Text struct {
	Content string
	UserID  int64
}

// Document is an outbound file attachment.
type Document struct {
	Name    string
	Caption string
	Data    []byte
}

// Sink delivers replies back to the user. Choices, when non-nil, are
// keyboard rows the transport may render as a picker.
type Sink interface {
	SendText(ctx context.Context, userID int64, body string, choices [][]string) error
	SendDocument(ctx context.Context, userID int64, doc Document) error
}

// Ledger is the slice of the ledger service the engine drives.
type Ledger interface {
	CreateEntry(ctx context.Context, e storage.NewEntry) (core.Entry, error)
	EntriesForRange(ctx context.Context, userID int64, kind core.Kind, start, end string) ([]core.Entry, error)
	EntriesForRangeAsc(ctx context.Context, userID int64, kind core.Kind, start, end string) ([]core.Entry, error)
	AggregateByCategory(ctx context.Context, userID int64, kind core.Kind, start, end string) ([]core.CategoryTotal, error)
	DistinctMonths(ctx context.Context, userID int64) ([]string, error)
	DistinctYears(ctx context.Context, userID int64) ([]string, error)
	UpdateAmount(ctx context.Context, userID int64, kind core.Kind, entryID, cents int64) (bool, error)
	UpdateDescription(ctx context.Context, userID int64, kind core.Kind, entryID int64, description string) (bool, error)
	DeleteEntry(ctx context.Context, userID int64, kind core.Kind, entryID int64) (bool, error)
}

// Engine routes events to flow handlers keyed by the user's session state.
type Engine struct {
	ledger   Ledger
	catalog  catalog.Catalog
	sessions *session.Store
	sink     Sink
	logger   *log.Logger
	now      func() time.Time
}

func New(ledger Ledger, cat catalog.Catalog, sessions *session.Store, sink Sink, logger *log.Logger) *Engine {
	return &Engine{
		ledger:   ledger,
		catalog:  cat,
		sessions: sessions,
		sink:     sink,
		logger:   logger.WithComponent(log.ComponentEngine),
		now:      time.Now,
	}
}

const (
	msgHelp = "Commands:\n" +
		"/add - record an expense or income\n" +
		"/add_d - record for another date\n" +
		"/view - list expenses for a period\n" +
		"/summary - totals by category\n" +
		"/month <name> - expenses for a month this year\n" +
		"/income <name> - incomes for a month this year\n" +
		"/edit - edit an entry\n" +
		"/delete - delete an entry\n" +
		"/export - PDF or Excel report\n" +
		"/cancel - abandon the current operation"
	msgWelcome        = "Welcome! I track your expenses and incomes.\n\n" + msgHelp
	msgUnknownCommand = "I don't know that command.\n\n" + msgHelp
	msgIdleText       = "Nothing in progress. Use /add to record an entry or /help for the full list."
	msgCancelled      = "Operation cancelled."
	msgGenericFailure = "Something went wrong, please try again."
)

// HandleCommand processes one slash command. A flow-starting command
// replaces whatever session was active, which is the supersede rule.
func (e *Engine) HandleCommand(ctx context.Context, cmd Command) {
	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	e.guard(ctx, cmd.UserID, "command /"+name, func(ctx context.Context) error {
		switch name {
		case "start":
			e.sessions.Clear(cmd.UserID)
			return e.send(ctx, cmd.UserID, msgWelcome, nil)
		case "help":
			return e.send(ctx, cmd.UserID, msgHelp, nil)
		case "cancel":
			e.sessions.Clear(cmd.UserID)
			return e.send(ctx, cmd.UserID, msgCancelled, nil)
		case "add":
			return e.startAdd(ctx, cmd.UserID, false)
		case "add_d":
			return e.startAdd(ctx, cmd.UserID, true)
		case "view":
			return e.startView(ctx, cmd.UserID, false)
		case "view_d":
			return e.startView(ctx, cmd.UserID, true)
		case "summary":
			return e.startSummary(ctx, cmd.UserID)
		case "month":
			return e.monthListing(ctx, cmd.UserID, core.Expense, cmd.Args)
		case "income":
			return e.monthListing(ctx, cmd.UserID, core.Income, cmd.Args)
		case "edit":
			return e.startEdit(ctx, cmd.UserID, false)
		case "edit_d":
			return e.startEdit(ctx, cmd.UserID, true)
		case "delete":
			return e.startDelete(ctx, cmd.UserID, false)
		case "delete_d":
			return e.startDelete(ctx, cmd.UserID, true)
		case "export":
			return e.startExport(ctx, cmd.UserID)
		default:
			return e.send(ctx, cmd.UserID, msgUnknownCommand, nil)
		}
	})
}

// HandleText processes free text against the user's active session. Idle
// users get a hint instead of silence.
func (e *Engine) HandleText(ctx context.Context, txt Text) {
	input := strings.TrimSpace(txt.Content)
	if strings.EqualFold(input, "cancel") {
		e.guard(ctx, txt.UserID, "cancel", func(ctx context.Context) error {
			e.sessions.Clear(txt.UserID)
			return e.send(ctx, txt.UserID, msgCancelled, nil)
		})
		return
	}

	switch st := e.sessions.Active(txt.UserID).(type) {
	case *addState:
		e.guard(ctx, txt.UserID, "add", func(ctx context.Context) error {
			return e.handleAdd(ctx, txt.UserID, st, input)
		})
	case *viewState:
		e.guard(ctx, txt.UserID, "view", func(ctx context.Context) error {
			return e.handleView(ctx, txt.UserID, st, input)
		})
	case *summaryState:
		e.guard(ctx, txt.UserID, "summary", func(ctx context.Context) error {
			return e.handleSummary(ctx, txt.UserID, st, input)
		})
	case *editState:
		e.guard(ctx, txt.UserID, "edit", func(ctx context.Context) error {
			return e.handleEdit(ctx, txt.UserID, st, input)
		})
	case *deleteState:
		e.guard(ctx, txt.UserID, "delete", func(ctx context.Context) error {
			return e.handleDelete(ctx, txt.UserID, st, input)
		})
	case *exportState:
		e.guard(ctx, txt.UserID, "export", func(ctx context.Context) error {
			return e.handleExport(ctx, txt.UserID, st, input)
		})
	default:
		e.guard(ctx, txt.UserID, "idle text", func(ctx context.Context) error {
			return e.send(ctx, txt.UserID, msgIdleText, nil)
		})
	}
}

// guard is the per-operation fence: a panic or error in one handler is
// logged and answered with a generic failure, never allowed to take down
// the event loop.
func (e *Engine) guard(ctx context.Context, userID int64, op string, fn func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "Handler panicked",
				log.FieldOperation, op,
				log.FieldUserID, userID,
				"panic", r)
			_ = e.sink.SendText(ctx, userID, msgGenericFailure, nil)
		}
	}()

	if err := fn(ctx); err != nil {
		e.logger.ErrorContext(ctx, "Handler failed",
			log.FieldOperation, op,
			log.FieldUserID, userID,
			log.FieldError, err.Error())
		_ = e.sink.SendText(ctx, userID, msgGenericFailure, nil)
	}
}

func (e *Engine) send(ctx context.Context, userID int64, body string, choices [][]string) error {
	return e.sink.SendText(ctx, userID, body, choices)
}
