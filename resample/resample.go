// Package resample regularizes a raw series table onto a fixed frequency
// grid and removes the nulls that regularization introduces.
package resample

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/tsprep/series"
)

// Resample aggregates a raw table onto a dense grid at the given frequency.
// The grid covers [min(ts), max(ts)] with one row per period; a field's value
// at a period is the mean of the raw samples falling in that period, and a
// period with no samples gets a null for every field. Raw timestamps need not
// be unique or evenly spaced. The input is not modified.
func Resample(t *series.Table, freq time.Duration) (*series.Table, error) {
	if t.NumRows() == 0 {
		return nil, series.ErrEmpty
	}
	if freq <= 0 {
		return nil, fmt.Errorf("frequency must be positive, got %s", freq)
	}

	sorted := t.SortByTime()
	start := sorted.Times[0].Truncate(freq)
	end := sorted.Times[len(sorted.Times)-1].Truncate(freq)
	n := int(end.Sub(start)/freq) + 1

	times := make([]time.Time, n)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * freq)
	}

	// Collect per-period samples, then reduce each bucket to its mean.
	buckets := make([][][]float64, len(sorted.Columns))
	for j := range buckets {
		buckets[j] = make([][]float64, n)
	}
	for i, ts := range sorted.Times {
		idx := int(ts.Truncate(freq).Sub(start) / freq)
		for j, c := range sorted.Columns {
			if series.IsNull(c.Values[i]) {
				continue
			}
			buckets[j][idx] = append(buckets[j][idx], c.Values[i])
		}
	}

	out := series.New(t.TimeName, times)
	for j, c := range sorted.Columns {
		vals := make([]float64, n)
		for i := range vals {
			if len(buckets[j][i]) == 0 {
				vals[i] = series.Null()
				continue
			}
			vals[i] = stat.Mean(buckets[j][i], nil)
		}
		if err := out.AddColumn(c.Name, vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}
