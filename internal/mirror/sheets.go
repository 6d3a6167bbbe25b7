// Package mirror replicates ledger rows to a Google Sheet. The sheet is a
// read-only convenience copy; the SQLite ledger stays authoritative.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

// SheetsClient appends ledger rows to one spreadsheet. Sheet names are
// year-prefixed ("2026 Ledger") so each year gets its own tab.
type SheetsClient struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string
}

// NewSheetsClientFromEnv builds a client from the environment.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials in one of
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: GOOGLE_SHEET_NAME (default
// "Ledger").
func NewSheetsClientFromEnv(ctx context.Context) (*SheetsClient, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetBase := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetBase == "" {
		sheetBase = "Ledger"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsClient{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     sheetBase,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// yearPrefixedSheet returns the tab name for a canonical date, for example
// "2026 Ledger" for "2026-08-24".
func yearPrefixedSheet(base, date string) string {
	return fmt.Sprintf("%s %s", core.YearKey(date), base)
}

// AppendEntry appends one entry as a row on the tab for its year. The row
// shape matches the XLSX export so both surfaces read the same.
func (c *SheetsClient) AppendEntry(ctx context.Context, kind core.Kind, e core.Entry) (string, error) {
	sheet := yearPrefixedSheet(c.sheetBase, e.Date)
	values := &gsheet.ValueRange{
		Values: [][]any{entryRow(kind, e)},
	}

	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, fmt.Sprintf("'%s'!A:G", sheet), values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %q: %w", sheet, err)
	}

	ref := sheet
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	return ref, nil
}

// entryRow is the appended row layout. The trailing timestamp disambiguates
// otherwise identical rows.
func entryRow(kind core.Kind, e core.Entry) []any {
	return []any{
		e.Date,
		e.Time,
		string(kind),
		e.Category,
		e.Subcategory,
		e.Amount.Euros(),
		fmt.Sprintf("%s [id:%d ts:%d]", e.Description, e.ID, time.Now().UnixMilli()),
	}
}
