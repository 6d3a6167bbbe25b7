package storage

import (
	"context"
	"fmt"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

// UserStat summarizes one user's footprint in one kind-table.
type UserStat struct {
	UserID     int64
	Count      int64
	TotalCents int64
	FirstDate  string
	LastDate   string
}

// UserStats returns per-user row counts and totals for one table, used by
// the admin CLI.
func (s *Store) UserStats(ctx context.Context, kind core.Kind) ([]UserStat, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT user_id, COUNT(*), SUM(amount_cents), MIN(date), MAX(date)
		FROM %s
		GROUP BY user_id
		ORDER BY user_id`, kind.Table()))
	if err != nil {
		return nil, fmt.Errorf("query %s stats: %w", kind, err)
	}
	defer rows.Close()

	var out []UserStat
	for rows.Next() {
		var st UserStat
		if err := rows.Scan(&st.UserID, &st.Count, &st.TotalCents, &st.FirstDate, &st.LastDate); err != nil {
			return nil, fmt.Errorf("scan stat: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// RecentEntries lists the newest entries of one kind. userID 0 means all
// users (admin inspection only; the bot itself never queries unscoped).
func (s *Store) RecentEntries(ctx context.Context, kind core.Kind, userID int64, limit int) ([]core.Entry, error) {
	where := ""
	args := []any{}
	if userID != 0 {
		where = "WHERE user_id = ?"
		args = append(args, userID)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM %s
		%s
		ORDER BY date DESC, time DESC
		LIMIT ?`, entryColumns, kind.Table(), where), args...)
	if err != nil {
		return nil, fmt.Errorf("query recent %s: %w", kind, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// PurgeUserBefore deletes one user's rows strictly older than the cutoff
// date. Deliberately user-scoped: out-of-band cleanup honors the same
// tenant isolation as the bot.
func (s *Store) PurgeUserBefore(ctx context.Context, userID int64, kind core.Kind, cutoff string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin purge tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, fmt.Sprintf(
		"DELETE FROM %s WHERE user_id = ? AND date < ?", kind.Table()),
		userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge %s: %w", kind, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit purge: %w", err)
	}

	return affected, nil
}
