package resample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tsprep/series"
)

func ts(day, hour int) time.Time {
	return time.Date(2020, 3, 1+day, hour, 0, 0, 0, time.UTC)
}

func TestResampleDailyMean(t *testing.T) {
	// Two samples on day 0, one on day 1, none on day 2, one on day 3.
	tbl := series.New("Date", []time.Time{ts(0, 6), ts(0, 18), ts(1, 12), ts(3, 0)})
	require.NoError(t, tbl.AddColumn("temp", []float64{10, 20, 30, 40}))

	out, err := Resample(tbl, 24*time.Hour)
	require.NoError(t, err)

	require.Equal(t, 4, out.NumRows(), "grid covers min..max inclusive")
	assert.Equal(t, ts(0, 0), out.Times[0])
	assert.Equal(t, ts(3, 0), out.Times[3])

	temp, err := out.Col("temp")
	require.NoError(t, err)
	assert.Equal(t, 15.0, temp[0], "day with two samples averages them")
	assert.Equal(t, 30.0, temp[1])
	assert.True(t, series.IsNull(temp[2]), "empty period is null, not skipped")
	assert.Equal(t, 40.0, temp[3])
}

func TestResampleUnsortedInput(t *testing.T) {
	tbl := series.New("Date", []time.Time{ts(2, 0), ts(0, 0), ts(1, 0)})
	require.NoError(t, tbl.AddColumn("v", []float64{3, 1, 2}))

	out, err := Resample(tbl, 24*time.Hour)
	require.NoError(t, err)

	v, err := out.Col("v")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, v)
}

func TestResampleIdempotent(t *testing.T) {
	tbl := series.New("Date", []time.Time{ts(0, 0), ts(1, 0), ts(2, 0)})
	require.NoError(t, tbl.AddColumn("v", []float64{1.5, 2.5, 3.5}))

	once, err := Resample(tbl, 24*time.Hour)
	require.NoError(t, err)
	twice, err := Resample(once, 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, once.Times, twice.Times)
	v1, _ := once.Col("v")
	v2, _ := twice.Col("v")
	assert.InDeltaSlice(t, v1, v2, 1e-12)
}

func TestResampleErrors(t *testing.T) {
	empty := series.New("Date", nil)
	_, err := Resample(empty, 24*time.Hour)
	assert.ErrorIs(t, err, series.ErrEmpty)

	tbl := series.New("Date", []time.Time{ts(0, 0)})
	require.NoError(t, tbl.AddColumn("v", []float64{1}))
	_, err = Resample(tbl, 0)
	assert.Error(t, err)
}

func TestResampleIgnoresNullSamples(t *testing.T) {
	tbl := series.New("Date", []time.Time{ts(0, 6), ts(0, 18)})
	require.NoError(t, tbl.AddColumn("v", []float64{series.Null(), 20}))

	out, err := Resample(tbl, 24*time.Hour)
	require.NoError(t, err)

	v, err := out.Col("v")
	require.NoError(t, err)
	assert.Equal(t, 20.0, v[0], "null raw samples do not poison the period mean")
}
