package features

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/tsprep/series"
)

// NullPolicy selects how nulls remaining after feature construction (the
// initial rolling windows, or unfilled boundary runs) are resolved before the
// table is handed to a model.
type NullPolicy string

const (
	// NullMeanFill replaces each null with its column's overall mean.
	// Keeps every row, at the cost of flattening the series start.
	NullMeanFill NullPolicy = "mean_fill"

	// NullDrop removes any row that still has a null. Shrinks the table by
	// roughly the largest window length.
	NullDrop NullPolicy = "drop"
)

// Valid reports whether p names a known policy.
func (p NullPolicy) Valid() bool {
	return p == NullMeanFill || p == NullDrop
}

// ResolveNulls applies the declared residual-null policy. Under NullMeanFill
// a column that is entirely null cannot be filled; it is left as-is and
// reported in the returned warnings. The input is not modified.
func ResolveNulls(t *series.Table, policy NullPolicy) (*series.Table, []string, error) {
	if t.NumRows() == 0 {
		return nil, nil, series.ErrEmpty
	}
	if !policy.Valid() {
		return nil, nil, fmt.Errorf("unknown null policy %q", policy)
	}

	if policy == NullDrop {
		keep := make([]int, 0, t.NumRows())
		for i := 0; i < t.NumRows(); i++ {
			if !t.RowHasNull(i) {
				keep = append(keep, i)
			}
		}
		out := series.New(t.TimeName, make([]time.Time, 0, len(keep)))
		for _, i := range keep {
			out.Times = append(out.Times, t.Times[i])
		}
		for _, c := range t.Columns {
			vals := make([]float64, 0, len(keep))
			for _, i := range keep {
				vals = append(vals, c.Values[i])
			}
			out.Columns = append(out.Columns, series.Column{Name: c.Name, Values: vals})
		}
		return out, nil, nil
	}

	out := t.Clone()
	var warnings []string
	buf := make([]float64, 0, t.NumRows())
	for ci := range out.Columns {
		col := &out.Columns[ci]
		buf = buf[:0]
		for _, v := range col.Values {
			if !series.IsNull(v) {
				buf = append(buf, v)
			}
		}
		if len(buf) == len(col.Values) {
			continue
		}
		if len(buf) == 0 {
			warnings = append(warnings, fmt.Sprintf(
				"column %q is entirely null; mean fill impossible", col.Name))
			continue
		}
		mean := stat.Mean(buf, nil)
		for i, v := range col.Values {
			if series.IsNull(v) {
				col.Values[i] = mean
			}
		}
	}
	return out, warnings, nil
}
