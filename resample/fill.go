package resample

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tsprep/series"
)

// Policy selects how nulls left by resampling (or present upstream) are
// removed.
type Policy string

const (
	// PolicyDrop removes any row with a null in any column. Appropriate
	// when nulls are rare enough to discard.
	PolicyDrop Policy = "drop"

	// PolicyInterpolate fills interior nulls by linear interpolation over
	// elapsed time between the nearest non-null neighbors. Null runs at
	// the table boundary have no neighbor on one side; they pass through
	// as nulls and are reported, for a later stage to resolve.
	PolicyInterpolate Policy = "interpolate"
)

// Valid reports whether p names a known policy.
func (p Policy) Valid() bool {
	return p == PolicyDrop || p == PolicyInterpolate
}

// BoundaryRun describes a run of nulls at the start or end of a column that
// interpolation could not fill.
type BoundaryRun struct {
	Column string
	Start  int // first row index of the run
	Len    int
	AtEnd  bool
}

func (b BoundaryRun) String() string {
	side := "start"
	if b.AtEnd {
		side = "end"
	}
	return fmt.Sprintf("%s: %d null row(s) at table %s left unfilled", b.Column, b.Len, side)
}

// Report summarizes what Fill did, so a reader of the downstream results can
// judge how much of the table is measured versus reconstructed.
type Report struct {
	RowsIn       int
	RowsOut      int
	Filled       int // cells filled by interpolation
	Dropped      int // rows removed under PolicyDrop
	Remaining    int // null cells still present after filling
	BoundaryRuns []BoundaryRun
}

// Fill applies the given null policy and returns the new table plus a report.
// The input is not modified.
func Fill(t *series.Table, policy Policy) (*series.Table, *Report, error) {
	if t.NumRows() == 0 {
		return nil, nil, series.ErrEmpty
	}
	if !policy.Valid() {
		return nil, nil, fmt.Errorf("unknown fill policy %q", policy)
	}

	rep := &Report{RowsIn: t.NumRows()}

	var out *series.Table
	switch policy {
	case PolicyDrop:
		out = dropNullRows(t, rep)
	case PolicyInterpolate:
		out = interpolate(t, rep)
	}

	rep.RowsOut = out.NumRows()
	rep.Remaining = out.NullCount()
	return out, rep, nil
}

func dropNullRows(t *series.Table, rep *Report) *series.Table {
	keep := make([]int, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		if t.RowHasNull(i) {
			rep.Dropped++
			continue
		}
		keep = append(keep, i)
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
	return out
}

func interpolate(t *series.Table, rep *Report) *series.Table {
	out := t.Clone()
	for ci := range out.Columns {
		col := &out.Columns[ci]
		i := 0
		for i < len(col.Values) {
			if !series.IsNull(col.Values[i]) {
				i++
				continue
			}

			// Run of nulls [i, j).
			j := i
			for j < len(col.Values) && series.IsNull(col.Values[j]) {
				j++
			}

			if i == 0 || j == len(col.Values) {
				rep.BoundaryRuns = append(rep.BoundaryRuns, BoundaryRun{
					Column: col.Name,
					Start:  i,
					Len:    j - i,
					AtEnd:  i != 0,
				})
				i = j
				continue
			}

			// Linear over elapsed time between the neighbors.
			t0, t1 := out.Times[i-1], out.Times[j]
			v0, v1 := col.Values[i-1], col.Values[j]
			span := t1.Sub(t0).Seconds()
			for k := i; k < j; k++ {
				frac := out.Times[k].Sub(t0).Seconds() / span
				col.Values[k] = v0 + (v1-v0)*frac
				rep.Filled++
			}
			i = j
		}
	}
	return out
}
