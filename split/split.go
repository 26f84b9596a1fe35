// Package split partitions a chronological table into training and
// validation ranges by position. Time series are never shuffled; the
// validation range is always the temporal suffix.
package split

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/tsprep/series"
)

// ErrFraction is returned when the split fraction is outside (0, 1).
var ErrFraction = errors.New("split: fraction must be in (0, 1)")

// Chronological splits t at floor(N*fraction): train gets rows
// [0, floor(N*f)), valid gets the rest. Together they reconstruct the input
// exactly, with no overlap.
func Chronological(t *series.Table, fraction float64) (train, valid *series.Table, err error) {
	if t.NumRows() == 0 {
		return nil, nil, series.ErrEmpty
	}
	if fraction <= 0 || fraction >= 1 || math.IsNaN(fraction) {
		return nil, nil, fmt.Errorf("%w, got %v", ErrFraction, fraction)
	}

	cut := int(math.Floor(float64(t.NumRows()) * fraction))
	return t.Slice(0, cut), t.Slice(cut, t.NumRows()), nil
}
