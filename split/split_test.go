package split

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tsprep/series"
)

func tableOfLen(t *testing.T, n int) *series.Table {
	t.Helper()

	times := make([]time.Time, n)
	vals := make([]float64, n)
	for i := range times {
		times[i] = time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		vals[i] = float64(i)
	}
	tbl := series.New("Date", times)
	require.NoError(t, tbl.AddColumn("v", vals))
	return tbl
}

func TestChronologicalFloorBoundary(t *testing.T) {
	tbl := tableOfLen(t, 10)

	train, valid, err := Chronological(tbl, 0.75)
	require.NoError(t, err)

	assert.Equal(t, 7, train.NumRows(), "floor(10*0.75) = 7")
	assert.Equal(t, 3, valid.NumRows())
}

func TestChronologicalCompleteAndDisjoint(t *testing.T) {
	tbl := tableOfLen(t, 9)

	for _, f := range []float64{0.1, 0.5, 0.8, 0.999} {
		train, valid, err := Chronological(tbl, f)
		require.NoError(t, err)

		assert.Equal(t, tbl.NumRows(), train.NumRows()+valid.NumRows(), "f=%v", f)

		if train.NumRows() > 0 && valid.NumRows() > 0 {
			last := train.Times[train.NumRows()-1]
			first := valid.Times[0]
			assert.True(t, last.Before(first), "train precedes valid, f=%v", f)
		}

		// Concatenated values reconstruct the original column.
		tv, _ := train.Col("v")
		vv, _ := valid.Col("v")
		orig, _ := tbl.Col("v")
		assert.Equal(t, orig, append(append([]float64{}, tv...), vv...), "f=%v", f)
	}
}

func TestChronologicalErrors(t *testing.T) {
	empty := series.New("Date", nil)
	_, _, err := Chronological(empty, 0.5)
	assert.ErrorIs(t, err, series.ErrEmpty)

	tbl := tableOfLen(t, 5)
	for _, f := range []float64{0, 1, -0.5, 1.5} {
		_, _, err := Chronological(tbl, f)
		assert.ErrorIs(t, err, ErrFraction, "f=%v", f)
	}
}
