// Package services composes the storage layer with event publishing. The
// engine talks to a LedgerService, never to the store or broker directly.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/diogoviieira/register-track-bot/internal/amqp"
	"github.com/diogoviieira/register-track-bot/internal/core"
	"github.com/diogoviieira/register-track-bot/internal/log"
	"github.com/diogoviieira/register-track-bot/internal/storage"
)

// EventPublisher is the slice of the AMQP client the service needs. A nil
// publisher disables events entirely.
type EventPublisher interface {
	PublishEntryEvent(ctx context.Context, event *amqp.EntryEvent) error
	Close() error
}

// LedgerService wraps the store with best-effort entry events: the ledger
// write is authoritative, a failed publish is logged and swallowed so chat
// flows never fail because the broker is down.
type LedgerService struct {
	store     *storage.Store
	publisher EventPublisher
	logger    *log.Logger
}

func NewLedgerService(store *storage.Store, publisher EventPublisher, logger *log.Logger) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
}

func (s *LedgerService) CreateEntry(ctx context.Context, e storage.NewEntry) (core.Entry, error) {
	entry, err := s.store.Insert(ctx, e)
	if err != nil {
		return core.Entry{}, err
	}
	s.publish(ctx, amqp.OpEntryCreated, core.KindFor(entry.Category), entry.ID, entry.UserID)
	return entry, nil
}

func (s *LedgerService) UpdateAmount(ctx context.Context, userID int64, kind core.Kind, entryID, cents int64) (bool, error) {
	ok, err := s.store.UpdateAmount(ctx, userID, kind, entryID, cents)
	if err == nil && ok {
		s.publish(ctx, amqp.OpEntryUpdated, kind, entryID, userID)
	}
	return ok, err
}

func (s *LedgerService) UpdateDescription(ctx context.Context, userID int64, kind core.Kind, entryID int64, description string) (bool, error) {
	ok, err := s.store.UpdateDescription(ctx, userID, kind, entryID, description)
	if err == nil && ok {
		s.publish(ctx, amqp.OpEntryUpdated, kind, entryID, userID)
	}
	return ok, err
}

func (s *LedgerService) DeleteEntry(ctx context.Context, userID int64, kind core.Kind, entryID int64) (bool, error) {
	ok, err := s.store.Delete(ctx, userID, kind, entryID)
	if err == nil && ok {
		s.publish(ctx, amqp.OpEntryDeleted, kind, entryID, userID)
	}
	return ok, err
}

// Reads pass straight through to the store.

func (s *LedgerService) EntriesForRange(ctx context.Context, userID int64, kind core.Kind, start, end string) ([]core.Entry, error) {
	return s.store.EntriesForRange(ctx, userID, kind, start, end)
}

func (s *LedgerService) EntriesForRangeAsc(ctx context.Context, userID int64, kind core.Kind, start, end string) ([]core.Entry, error) {
	return s.store.EntriesForRangeAsc(ctx, userID, kind, start, end)
}

func (s *LedgerService) AggregateByCategory(ctx context.Context, userID int64, kind core.Kind, start, end string) ([]core.CategoryTotal, error) {
	return s.store.AggregateByCategory(ctx, userID, kind, start, end)
}

func (s *LedgerService) DistinctMonths(ctx context.Context, userID int64) ([]string, error) {
	return s.store.DistinctMonths(ctx, userID)
}

func (s *LedgerService) DistinctYears(ctx context.Context, userID int64) ([]string, error) {
	return s.store.DistinctYears(ctx, userID)
}

func (s *LedgerService) publish(ctx context.Context, op string, kind core.Kind, entryID, userID int64) {
	if s.publisher == nil {
		return
	}
	event := amqp.NewEntryEvent(op, kind, entryID, userID)
	if err := s.publisher.PublishEntryEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Entry event publish failed",
			log.FieldOperation, op,
			log.FieldEntryID, entryID,
			log.FieldUserID, userID,
			log.FieldError, err.Error())
	}
}

// Close shuts down the publisher and store, collecting both errors.
func (s *LedgerService) Close() error {
	var errs []error
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}
