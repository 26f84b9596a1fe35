package features

import "github.com/rustyeddy/tsprep/series"

// Calendar column names, in the order WithCalendar adds them.
const (
	ColMonth   = "month"
	ColWeek    = "week" // ISO week number
	ColDay     = "day"  // day of month
	ColWeekday = "weekday"
)

// CalendarColumns lists the columns WithCalendar adds.
func CalendarColumns() []string {
	return []string{ColMonth, ColWeek, ColDay, ColWeekday}
}

// WithCalendar appends month, ISO week, day-of-month, and day-of-week columns
// derived per row from the timestamp. Stateless per-row transform; no
// windowing, no nulls.
func WithCalendar(t *series.Table) (*series.Table, error) {
	if t.NumRows() == 0 {
		return nil, series.ErrEmpty
	}

	n := t.NumRows()
	months := make([]float64, n)
	weeks := make([]float64, n)
	days := make([]float64, n)
	weekdays := make([]float64, n)
	for i, ts := range t.Times {
		_, week := ts.ISOWeek()
		months[i] = float64(ts.Month())
		weeks[i] = float64(week)
		days[i] = float64(ts.Day())
		weekdays[i] = float64(ts.Weekday())
	}

	out := t.Clone()
	for _, c := range []struct {
		name string
		vals []float64
	}{
		{ColMonth, months},
		{ColWeek, weeks},
		{ColDay, days},
		{ColWeekday, weekdays},
	} {
		if err := out.AddColumn(c.name, c.vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}
