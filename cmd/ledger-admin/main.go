// ledger-admin is the out-of-band inspection and cleanup CLI. Every
// destructive operation is user-scoped, the same tenant isolation the bot
// enforces.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/diogoviieira/register-track-bot/internal/core"
	"github.com/diogoviieira/register-track-bot/internal/storage"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "stats":
		err = runStats(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "purge":
		err = runPurge(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: ledger-admin <command> [flags]

commands:
  stats   per-user row counts and totals for both tables
  list    recent entries, optionally scoped to one user
  purge   delete one user's rows older than a cutoff date

run "ledger-admin <command> -h" for command flags`)
}

func dbPathFlag(fs *flag.FlagSet) *string {
	def := os.Getenv("SQLITE_DB_PATH")
	if def == "" {
		def = "./data/finance_tracker.db"
	}
	return fs.String("db", def, "path to the SQLite database")
}

func kindFlag(fs *flag.FlagSet) *string {
	return fs.String("kind", "expense", "ledger side: expense or income")
}

func parseKind(s string) (core.Kind, error) {
	switch s {
	case "expense", "expenses":
		return core.Expense, nil
	case "income", "incomes":
		return core.Income, nil
	default:
		return "", fmt.Errorf("unknown kind %q (want expense or income)", s)
	}
}

func openStore(path string) (*storage.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database %s: %w", path, err)
	}
	return storage.Open(path)
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	dbPath := dbPathFlag(fs)
	fs.Parse(args)

	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, kind := range []core.Kind{core.Expense, core.Income} {
		stats, err := store.UserStats(ctx, kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", kind.Table())
		fmt.Fprintln(w, "  user\trows\ttotal\tfirst\tlast")
		for _, st := range stats {
			fmt.Fprintf(w, "  %d\t%d\t%s\t%s\t%s\n",
				st.UserID, st.Count, core.Money{Cents: st.TotalCents}, st.FirstDate, st.LastDate)
		}
		if len(stats) == 0 {
			fmt.Fprintln(w, "  (empty)")
		}
	}
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := dbPathFlag(fs)
	kindName := kindFlag(fs)
	userID := fs.Int64("user", 0, "only this user's entries (0 = all users)")
	limit := fs.Int("limit", 20, "number of entries to show")
	fs.Parse(args)

	kind, err := parseKind(*kindName)
	if err != nil {
		return err
	}
	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.RecentEntries(context.Background(), kind, *userID, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no entries")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "id\tuser\tdate\ttime\tcategory\tamount\tdescription")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s > %s\t%s\t%s\n",
			e.ID, e.UserID, e.Date, e.Time, e.Category, e.Subcategory, e.Amount, e.Description)
	}
	return nil
}

func runPurge(args []string) error {
	fs := flag.NewFlagSet("purge", flag.ExitOnError)
	dbPath := dbPathFlag(fs)
	kindName := kindFlag(fs)
	userID := fs.Int64("user", 0, "owner of the rows to purge (required)")
	before := fs.String("before", "", "cutoff date YYYY-MM-DD, rows strictly older are deleted (required)")
	fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("-user is required")
	}
	kind, err := parseKind(*kindName)
	if err != nil {
		return err
	}
	if _, err := time.Parse(core.CanonicalDateLayout, *before); err != nil {
		return fmt.Errorf("-before must be YYYY-MM-DD: %w", err)
	}

	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.PurgeUserBefore(context.Background(), *userID, kind, *before)
	if err != nil {
		return err
	}
	fmt.Printf("purged %d %s rows for user %d before %s\n", n, kind, *userID, *before)
	return nil
}
