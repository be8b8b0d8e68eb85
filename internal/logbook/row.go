package logbook

// DateLayout is the column 1 date format.
const DateLayout = "2006-01-02"

// LogRow is one persisted workout session. Columns are positional:
// date, gym, workout, free-text result.
type LogRow struct {
	Date    string
	Gym     string
	Workout string
	Result  string
}

// Values returns the row in column order.
func (r LogRow) Values() []string {
	return []string{r.Date, r.Gym, r.Workout, r.Result}
}

// RowFromValues reads the first four columns. ok is false for short rows.
func RowFromValues(v []string) (row LogRow, ok bool) {
	if len(v) < 4 {
		return LogRow{}, false
	}
	return LogRow{Date: v[0], Gym: v[1], Workout: v[2], Result: v[3]}, true
}
