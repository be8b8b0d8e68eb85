// Package history turns the tail of the workout log into prompt context.
package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaronromeo/powerbuilder/internal/logbook"
)

const (
	DefaultLimit = 5
	NoHistory    = "No previous history found."
)

// FetchRecent reads the log and formats its last limit rows. It never fails:
// read errors come back as a sentence that is sent to the model in place of
// the history.
func FetchRecent(ctx context.Context, r logbook.Reader, limit int) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			out = couldNotFetch(fmt.Errorf("%v", rec))
		}
	}()

	rows, err := r.Rows(ctx)
	if err != nil {
		return couldNotFetch(err)
	}
	if len(rows) < 2 {
		return NoHistory
	}
	return Format(Recent(rows, limit))
}

func couldNotFetch(err error) string {
	return fmt.Sprintf("Could not fetch history (Error: %v)", err)
}

// Recent drops the header row, keeps the last n rows in sheet order and then
// skips rows with fewer than four columns.
func Recent(rows [][]string, n int) []logbook.LogRow {
	if len(rows) < 2 {
		return nil
	}
	if n <= 0 {
		n = DefaultLimit
	}
	data := rows[1:]
	if len(data) > n {
		data = data[len(data)-n:]
	}
	out := make([]logbook.LogRow, 0, len(data))
	for _, v := range data {
		if row, ok := logbook.RowFromValues(v); ok {
			out = append(out, row)
		}
	}
	return out
}

// Format renders one "- On {date} ({workout}): {result}" line per row.
func Format(rows []logbook.LogRow) string {
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "- On %s (%s): %s\n", r.Date, r.Workout, r.Result)
	}
	return b.String()
}
