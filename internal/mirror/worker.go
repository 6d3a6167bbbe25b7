package mirror

import (
	"context"
	"fmt"

	"github.com/diogoviieira/register-track-bot/internal/amqp"
	"github.com/diogoviieira/register-track-bot/internal/core"
	"github.com/diogoviieira/register-track-bot/internal/log"
	"github.com/diogoviieira/register-track-bot/internal/storage"
)

// EntryAppender is the sheet surface the worker writes to.
type EntryAppender interface {
	AppendEntry(ctx context.Context, kind core.Kind, e core.Entry) (string, error)
}

// Worker turns entry events into sheet appends. It loads the row from the
// database itself, so events only need to carry coordinates.
type Worker struct {
	store    *storage.Store
	appender EntryAppender
	logger   *log.Logger
}

func NewWorker(store *storage.Store, appender EntryAppender, logger *log.Logger) *Worker {
	return &Worker{
		store:    store,
		appender: appender,
		logger:   logger.WithComponent(log.ComponentMirror),
	}
}

// HandleEvent processes one entry event. Updates and deletes are logged and
// skipped: appended sheet rows have no stable id to find them by, so the
// mirror only grows. Returning nil acks the message either way.
func (w *Worker) HandleEvent(ctx context.Context, event *amqp.EntryEvent) error {
	switch event.Op {
	case amqp.OpEntryCreated:
		return w.mirrorCreate(ctx, event)
	case amqp.OpEntryUpdated, amqp.OpEntryDeleted:
		w.logger.InfoContext(ctx, "Skipping non-append event, sheet rows are immutable",
			log.FieldOperation, event.Op,
			log.FieldEntryID, event.ID)
		return nil
	default:
		w.logger.WarnContext(ctx, "Unknown entry event op",
			log.FieldOperation, event.Op,
			log.FieldEntryID, event.ID)
		return nil
	}
}

func (w *Worker) mirrorCreate(ctx context.Context, event *amqp.EntryEvent) error {
	entry, found, err := w.store.GetEntry(ctx, event.UserID, event.Kind, event.ID)
	if err != nil {
		return fmt.Errorf("load entry %d: %w", event.ID, err)
	}
	if !found {
		// Deleted between publish and consume. Nothing to mirror.
		w.logger.InfoContext(ctx, "Entry vanished before mirroring",
			log.FieldEntryID, event.ID,
			log.FieldUserID, event.UserID)
		return nil
	}

	ref, err := w.appender.AppendEntry(ctx, event.Kind, entry)
	if err != nil {
		return fmt.Errorf("append entry %d: %w", event.ID, err)
	}

	w.logger.InfoContext(ctx, "Entry mirrored",
		log.FieldEntryID, entry.ID,
		log.FieldUserID, entry.UserID,
		log.FieldSheetsRef, ref,
		log.FieldOperation, log.OpMirror)
	return nil
}
