package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ReadOptions declares how a delimited file maps onto a Table. The timestamp
// layout is declared per file, never auto-detected.
type ReadOptions struct {
	// TimeColumn is the header name of the timestamp column. Defaults to
	// "Date".
	TimeColumn string

	// TimeLayout is the Go reference layout for the timestamp column, e.g.
	// "01/02/2006" or "01/02/2006 15:04".
	TimeLayout string

	// Fields restricts which value columns are loaded. Empty means every
	// non-timestamp column.
	Fields []string

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

func (o ReadOptions) timeColumn() string {
	if o.TimeColumn == "" {
		return "Date"
	}
	return o.TimeColumn
}

// ReadCSV parses a delimited stream with a header row into a Table. Empty
// numeric cells become nulls; unparseable cells are errors. Rows are sorted
// chronologically on return.
func ReadCSV(r io.Reader, opts ReadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	timeIdx := -1
	for i, name := range header {
		if strings.TrimSpace(name) == opts.timeColumn() {
			timeIdx = i
			break
		}
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("time column %q: %w", opts.timeColumn(), ErrNoColumn)
	}

	wanted := func(name string) bool {
		if len(opts.Fields) == 0 {
			return true
		}
		for _, f := range opts.Fields {
			if f == name {
				return true
			}
		}
		return false
	}

	var colIdx []int
	var colNames []string
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == timeIdx || !wanted(name) {
			continue
		}
		colIdx = append(colIdx, i)
		colNames = append(colNames, name)
	}
	for _, f := range opts.Fields {
		found := false
		for _, name := range colNames {
			if name == f {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("field %q: %w", f, ErrNoColumn)
		}
	}

	var times []time.Time
	values := make([][]float64, len(colIdx))

	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++

		ts, err := time.Parse(opts.TimeLayout, strings.TrimSpace(rec[timeIdx]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %q under layout %q: %w",
				row, rec[timeIdx], opts.TimeLayout, ErrBadTimestamp)
		}
		times = append(times, ts)

		for j, idx := range colIdx {
			cell := strings.TrimSpace(rec[idx])
			if cell == "" {
				values[j] = append(values[j], Null())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %q: %w",
					row, colNames[j], cell, ErrBadNumber)
			}
			values[j] = append(values[j], v)
		}
	}

	if len(times) == 0 {
		return nil, ErrEmpty
	}

	t := New(opts.timeColumn(), times)
	for j, name := range colNames {
		if err := t.AddColumn(name, values[j]); err != nil {
			return nil, err
		}
	}
	return t.SortByTime(), nil
}

// ReadFile opens path and parses it with ReadCSV.
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteCSV writes the table as delimited text with a header row. Timestamps
// use the given layout (RFC 3339 when empty); nulls are written as empty
// cells.
func WriteCSV(w io.Writer, t *Table, layout string) error {
	if layout == "" {
		layout = time.RFC3339
	}
	cw := csv.NewWriter(w)

	header := append([]string{t.TimeName}, t.Names()...)
	if err := cw.Write(header); err != nil {
		return err
	}

	rec := make([]string, len(header))
	for i := range t.Times {
		rec[0] = t.Times[i].Format(layout)
		for j, c := range t.Columns {
			if IsNull(c.Values[i]) {
				rec[j+1] = ""
				continue
			}
			rec[j+1] = strconv.FormatFloat(c.Values[i], 'f', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to path with WriteCSV.
func WriteFile(path string, t *Table, layout string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, t, layout); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
