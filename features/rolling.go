// Package features widens a regularized series table with model inputs:
// rolling-statistic lag columns and calendar columns. The builder never adds
// or reorders rows, and a derived value at row t only ever depends on rows
// strictly before t.
package features

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/tsprep/series"
)

// RollingSpec declares which lag columns to build.
type RollingSpec struct {
	// Fields are the source columns to summarize.
	Fields []string

	// Windows are trailing window lengths in rows.
	Windows []int

	// MinPeriods is the minimum number of non-null samples a window must
	// contain for the statistic to be defined. Zero means any partial
	// window counts; only an empty window yields null.
	MinPeriods int
}

// Validate checks the spec against a table.
func (s RollingSpec) Validate(t *series.Table) error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("no source fields declared")
	}
	if len(s.Windows) == 0 {
		return fmt.Errorf("no windows declared")
	}
	for _, f := range s.Fields {
		if !t.HasCol(f) {
			return fmt.Errorf("source field %q: %w", f, series.ErrNoColumn)
		}
	}
	for _, w := range s.Windows {
		if w <= 0 {
			return fmt.Errorf("window must be positive, got %d", w)
		}
	}
	if s.MinPeriods < 0 {
		return fmt.Errorf("min_periods must be >= 0, got %d", s.MinPeriods)
	}
	return nil
}

// ColumnNames returns the names of the columns Rolling will add, in order.
func (s RollingSpec) ColumnNames() []string {
	var names []string
	for _, f := range s.Fields {
		for _, w := range s.Windows {
			names = append(names, meanName(f, w), stdName(f, w))
		}
	}
	return names
}

func meanName(field string, w int) string { return fmt.Sprintf("%s_mean_lag%d", field, w) }
func stdName(field string, w int) string  { return fmt.Sprintf("%s_std_lag%d", field, w) }

// Rolling appends, for each source field f and window W, the columns
// f_mean_lagW and f_std_lagW. The window for row t covers rows [t-W, t-1]:
// it ends at the previous row, so the row's own value never feeds its own
// feature. At the first row the window is empty and the statistic is null.
// The standard deviation is the sample deviation and needs at least two
// samples regardless of MinPeriods.
//
// Returned warnings flag windows whose MinPeriods can never be satisfied.
// The input is not modified; row count and order are preserved.
func Rolling(t *series.Table, spec RollingSpec) (*series.Table, []string, error) {
	if t.NumRows() == 0 {
		return nil, nil, series.ErrEmpty
	}
	if err := spec.Validate(t); err != nil {
		return nil, nil, err
	}

	var warnings []string
	for _, w := range spec.Windows {
		if spec.MinPeriods > w {
			warnings = append(warnings, fmt.Sprintf(
				"window %d can never satisfy min_periods %d; its columns will be all null",
				w, spec.MinPeriods))
		}
	}

	out := t.Clone()
	n := t.NumRows()
	buf := make([]float64, 0, maxWindow(spec.Windows))

	for _, field := range spec.Fields {
		src, err := t.Col(field)
		if err != nil {
			return nil, nil, err
		}
		for _, w := range spec.Windows {
			means := make([]float64, n)
			stds := make([]float64, n)
			for i := 0; i < n; i++ {
				lo := i - w
				if lo < 0 {
					lo = 0
				}
				buf = buf[:0]
				for _, v := range src[lo:i] {
					if !series.IsNull(v) {
						buf = append(buf, v)
					}
				}
				switch {
				case len(buf) == 0 || len(buf) < spec.MinPeriods:
					means[i] = series.Null()
				default:
					means[i] = stat.Mean(buf, nil)
				}
				switch {
				case len(buf) < 2 || len(buf) < spec.MinPeriods:
					stds[i] = series.Null()
				default:
					stds[i] = stat.StdDev(buf, nil)
				}
			}
			if err := out.AddColumn(meanName(field, w), means); err != nil {
				return nil, nil, err
			}
			if err := out.AddColumn(stdName(field, w), stds); err != nil {
				return nil, nil, err
			}
		}
	}
	return out, warnings, nil
}

func maxWindow(windows []int) int {
	max := 0
	for _, w := range windows {
		if w > max {
			max = w
		}
	}
	return max
}
