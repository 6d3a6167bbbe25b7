package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

func equalsFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}

// keyboardRows lays out labels into rows of the given width.
func keyboardRows(labels []string, width int) [][]string {
	var rows [][]string
	for len(labels) > 0 {
		n := width
		if n > len(labels) {
			n = len(labels)
		}
		rows = append(rows, labels[:n])
		labels = labels[n:]
	}
	return rows
}

func formatEntryLine(e core.Entry) string {
	line := fmt.Sprintf("%s  %s > %s  %s", e.Date, e.Category, e.Subcategory, e.Amount)
	if e.Description != "" {
		line += "  " + e.Description
	}
	return line
}

// formatEntryList renders a 1-based numbered list; the numbers index into
// the slice the caller cached in the session.
func formatEntryList(entries []core.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, formatEntryLine(e))
	}
	return strings.TrimRight(b.String(), "\n")
}

// parseSelection validates a numbered-selection input against a candidate
// list of length n. Returns a zero-based index.
func parseSelection(input string, n int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}
