// Package storage is the durable ledger: two parallel tables (expenses,
// incomes) in one embedded SQLite file, every query scoped by user_id.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/diogoviieira/register-track-bot/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open creates the database file if needed, runs migrations and returns a
// ready store. The *sql.DB pool inside is safe for concurrent use; every
// multi-step mutation runs in its own transaction.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewEntry is the boundary-validated input for Insert. Date may be empty,
// in which case today's date is stamped.
type NewEntry struct {
	UserID      int64
	Category    string
	Subcategory string
	AmountCents int64
	Description string
	Date        string // canonical YYYY-MM-DD or empty
}

// Insert writes one row to the kind-appropriate table and returns the
// stored entry. The write is atomic: on any failure the ledger is left
// unchanged.
func (s *Store) Insert(ctx context.Context, e NewEntry) (core.Entry, error) {
	kind := core.KindFor(e.Category)
	now := time.Now()

	date := e.Date
	if date == "" {
		date = core.Today(now)
	}
	clock := core.Clock(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Entry{}, fmt.Errorf("begin insert tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (user_id, date, time, category, subcategory, amount_cents, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, kind.Table()),
		e.UserID, date, clock, e.Category, e.Subcategory, e.AmountCents, e.Description)
	if err != nil {
		return core.Entry{}, fmt.Errorf("insert %s: %w", kind, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Entry{}, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Entry{}, fmt.Errorf("commit insert: %w", err)
	}

	slog.DebugContext(ctx, "Entry saved",
		"kind", string(kind),
		"entry_id", id,
		"user_id", e.UserID,
		"category", e.Category,
		"subcategory", e.Subcategory,
		"amount_cents", e.AmountCents,
		"date", date)

	return core.Entry{
		ID:          id,
		UserID:      e.UserID,
		Date:        date,
		Time:        clock,
		Category:    e.Category,
		Subcategory: e.Subcategory,
		Amount:      core.Money{Cents: e.AmountCents},
		Description: e.Description,
	}, nil
}

const entryColumns = "id, user_id, date, time, category, subcategory, amount_cents, description"

func scanEntries(rows *sql.Rows) ([]core.Entry, error) {
	var out []core.Entry
	for rows.Next() {
		var e core.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Time,
			&e.Category, &e.Subcategory, &e.Amount.Cents, &e.Description); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EntriesForDate returns a user's entries for one canonical date, newest
// first.
func (s *Store) EntriesForDate(ctx context.Context, userID int64, kind core.Kind, date string) ([]core.Entry, error) {
	return s.EntriesForRange(ctx, userID, kind, date, date)
}

// EntriesForRange returns a user's entries with date in [start, end]
// inclusive, ordered by date then time descending. Canonical dates sort
// lexicographically, so string comparison is safe here.
func (s *Store) EntriesForRange(ctx context.Context, userID int64, kind core.Kind, start, end string) ([]core.Entry, error) {
	return s.entriesForRange(ctx, userID, kind, start, end, "DESC")
}

// EntriesForRangeAsc is the chronological variant used by report
// generation.
func (s *Store) EntriesForRangeAsc(ctx context.Context, userID int64, kind core.Kind, start, end string) ([]core.Entry, error) {
	return s.entriesForRange(ctx, userID, kind, start, end, "ASC")
}

func (s *Store) entriesForRange(ctx context.Context, userID int64, kind core.Kind, start, end, dir string) ([]core.Entry, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date %s, time %s`, entryColumns, kind.Table(), dir, dir),
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query %s range: %w", kind, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// AggregateByCategory sums a user's entries over [start, end] grouped by
// the (category, subcategory) pair.
func (s *Store) AggregateByCategory(ctx context.Context, userID int64, kind core.Kind, start, end string) ([]core.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT category, subcategory, SUM(amount_cents), COUNT(*)
		FROM %s
		WHERE user_id = ? AND date >= ? AND date <= ?
		GROUP BY category, subcategory
		ORDER BY category, subcategory`, kind.Table()),
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", kind, err)
	}
	defer rows.Close()

	var out []core.CategoryTotal
	for rows.Next() {
		var ct core.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Subcategory, &ct.Total.Cents, &ct.Count); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// DistinctMonths returns the YYYY-MM keys that contain data for the user,
// across both kinds, newest first. Drives the month picker menus so users
// only ever see periods with entries.
func (s *Store) DistinctMonths(ctx context.Context, userID int64) ([]string, error) {
	return s.distinctPeriods(ctx, userID, 7)
}

// DistinctYears returns the YYYY keys with data for the user, newest first.
func (s *Store) DistinctYears(ctx context.Context, userID int64) ([]string, error) {
	return s.distinctPeriods(ctx, userID, 4)
}

func (s *Store) distinctPeriods(ctx context.Context, userID int64, prefixLen int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT DISTINCT substr(date, 1, %d) AS period FROM expenses WHERE user_id = ?
		UNION
		SELECT DISTINCT substr(date, 1, %d) AS period FROM incomes WHERE user_id = ?
		ORDER BY period DESC`, prefixLen, prefixLen),
		userID, userID)
	if err != nil {
		return nil, fmt.Errorf("query distinct periods: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateAmount changes an entry's amount. The update is conditional on
// ownership: it reports false when the id does not exist under this user,
// which is also the tenant-isolation enforcement point.
func (s *Store) UpdateAmount(ctx context.Context, userID int64, kind core.Kind, entryID, cents int64) (bool, error) {
	return s.updateField(ctx, userID, kind, entryID, "amount_cents", cents)
}

// UpdateDescription changes an entry's description, ownership-scoped like
// UpdateAmount.
func (s *Store) UpdateDescription(ctx context.Context, userID int64, kind core.Kind, entryID int64, description string) (bool, error) {
	return s.updateField(ctx, userID, kind, entryID, "description", description)
}

func (s *Store) updateField(ctx context.Context, userID int64, kind core.Kind, entryID int64, column string, value any) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin update tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, fmt.Sprintf(
		"UPDATE %s SET %s = ? WHERE id = ? AND user_id = ?", kind.Table(), column),
		value, entryID, userID)
	if err != nil {
		return false, fmt.Errorf("update %s.%s: %w", kind, column, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit update: %w", err)
	}

	return affected > 0, nil
}

// Delete removes an entry, ownership-scoped. Returns false when no row
// matched, leaving other users' rows untouched even for a guessed id.
func (s *Store) Delete(ctx context.Context, userID int64, kind core.Kind, entryID int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, fmt.Sprintf(
		"DELETE FROM %s WHERE id = ? AND user_id = ?", kind.Table()),
		entryID, userID)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", kind, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}

	return affected > 0, nil
}

// GetEntry loads one entry by id, ownership-scoped.
func (s *Store) GetEntry(ctx context.Context, userID int64, kind core.Kind, entryID int64) (core.Entry, bool, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = ? AND user_id = ?", entryColumns, kind.Table()),
		entryID, userID)

	var e core.Entry
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Time,
		&e.Category, &e.Subcategory, &e.Amount.Cents, &e.Description)
	if err == sql.ErrNoRows {
		return core.Entry{}, false, nil
	}
	if err != nil {
		return core.Entry{}, false, fmt.Errorf("get %s entry: %w", kind, err)
	}
	return e, true, nil
}
