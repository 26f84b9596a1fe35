// Package series provides the in-memory table that every pipeline stage
// consumes and produces: an ordered sequence of timestamps paired with one or
// more named float64 columns. Missing values are represented as NaN.
package series

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	// ErrEmpty is returned when an operation needs at least one row.
	ErrEmpty = errors.New("series: empty table")

	// ErrBadTimestamp is returned when a timestamp cell cannot be parsed
	// under the declared layout.
	ErrBadTimestamp = errors.New("series: bad timestamp")

	// ErrBadNumber is returned when a numeric cell cannot be parsed.
	ErrBadNumber = errors.New("series: bad numeric value")

	// ErrColumnMismatch is returned when a column's length disagrees with
	// the table's row count.
	ErrColumnMismatch = errors.New("series: column length mismatch")

	// ErrNoColumn is returned when a named column does not exist.
	ErrNoColumn = errors.New("series: no such column")
)

// Null is the missing-value marker for float64 cells.
func Null() float64 { return math.NaN() }

// IsNull reports whether v is the missing-value marker.
func IsNull(v float64) bool { return math.IsNaN(v) }

// Column is a named float64 vector. Length always matches the owning table's
// row count.
type Column struct {
	Name   string
	Values []float64
}

// Table is a chronological table: one timestamp per row plus an ordered set
// of named numeric columns. Stages treat it as immutable and return new
// tables rather than mutating their input.
type Table struct {
	TimeName string
	Times    []time.Time
	Columns  []Column
}

// New creates a table with the given timestamp column name and times, and no
// value columns yet.
func New(timeName string, times []time.Time) *Table {
	return &Table{
		TimeName: timeName,
		Times:    times,
	}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.Times) }

// NumCols returns the number of value columns (the timestamp column is not
// counted).
func (t *Table) NumCols() int { return len(t.Columns) }

// Names returns the value-column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Col returns the values of the named column.
func (t *Table) Col(name string) ([]float64, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c.Values, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrNoColumn)
}

// HasCol reports whether the named column exists.
func (t *Table) HasCol(name string) bool {
	_, err := t.Col(name)
	return err == nil
}

// AddColumn appends a value column. The column length must equal the row
// count, and the name must not collide with an existing column or the
// timestamp column.
func (t *Table) AddColumn(name string, values []float64) error {
	if len(values) != len(t.Times) {
		return fmt.Errorf("%q has %d values for %d rows: %w",
			name, len(values), len(t.Times), ErrColumnMismatch)
	}
	if name == t.TimeName || t.HasCol(name) {
		return fmt.Errorf("duplicate column %q", name)
	}
	t.Columns = append(t.Columns, Column{Name: name, Values: values})
	return nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{
		TimeName: t.TimeName,
		Times:    make([]time.Time, len(t.Times)),
		Columns:  make([]Column, len(t.Columns)),
	}
	copy(out.Times, t.Times)
	for i, c := range t.Columns {
		vals := make([]float64, len(c.Values))
		copy(vals, c.Values)
		out.Columns[i] = Column{Name: c.Name, Values: vals}
	}
	return out
}

// Slice returns a copy of rows [start, end). Bounds are clamped to the table.
func (t *Table) Slice(start, end int) *Table {
	if start < 0 {
		start = 0
	}
	if end > len(t.Times) {
		end = len(t.Times)
	}
	if start > end {
		start = end
	}
	out := New(t.TimeName, append([]time.Time(nil), t.Times[start:end]...))
	for _, c := range t.Columns {
		out.Columns = append(out.Columns, Column{
			Name:   c.Name,
			Values: append([]float64(nil), c.Values[start:end]...),
		})
	}
	return out
}

// Select returns a copy containing only the named columns, in the given
// order. Timestamps are kept.
func (t *Table) Select(names ...string) (*Table, error) {
	out := New(t.TimeName, append([]time.Time(nil), t.Times...))
	for _, name := range names {
		vals, err := t.Col(name)
		if err != nil {
			return nil, err
		}
		out.Columns = append(out.Columns, Column{
			Name:   name,
			Values: append([]float64(nil), vals...),
		})
	}
	return out, nil
}

// SortByTime returns a copy with rows stably sorted ascending by timestamp.
func (t *Table) SortByTime() *Table {
	idx := make([]int, len(t.Times))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.Times[idx[a]].Before(t.Times[idx[b]])
	})

	out := New(t.TimeName, make([]time.Time, len(t.Times)))
	for i, j := range idx {
		out.Times[i] = t.Times[j]
	}
	for _, c := range t.Columns {
		vals := make([]float64, len(c.Values))
		for i, j := range idx {
			vals[i] = c.Values[j]
		}
		out.Columns = append(out.Columns, Column{Name: c.Name, Values: vals})
	}
	return out
}

// NullCount returns the number of null cells across all value columns.
func (t *Table) NullCount() int {
	n := 0
	for _, c := range t.Columns {
		for _, v := range c.Values {
			if IsNull(v) {
				n++
			}
		}
	}
	return n
}

// RowHasNull reports whether any value column is null at row i.
func (t *Table) RowHasNull(i int) bool {
	for _, c := range t.Columns {
		if IsNull(c.Values[i]) {
			return true
		}
	}
	return false
}
