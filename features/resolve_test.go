package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tsprep/series"
)

func TestWithCalendar(t *testing.T) {
	// Tue 2020-03-03 is day 3 of month 3, ISO week 10.
	tbl := series.New("Date", []time.Time{
		time.Date(2020, 3, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, tbl.AddColumn("v", []float64{1}))

	out, err := WithCalendar(tbl)
	require.NoError(t, err)

	for name, want := range map[string]float64{
		ColMonth:   3,
		ColWeek:    10,
		ColDay:     3,
		ColWeekday: float64(time.Tuesday),
	} {
		vals, err := out.Col(name)
		require.NoError(t, err)
		assert.Equal(t, want, vals[0], name)
	}
}

func TestResolveNullsMeanFill(t *testing.T) {
	tbl := dailyTable(t, "v", series.Null(), 2, 4)

	out, warns, err := ResolveNulls(tbl, NullMeanFill)
	require.NoError(t, err)
	assert.Empty(t, warns)

	v, err := out.Col("v")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2, 4}, v, "null filled with mean of non-null values")
	assert.Equal(t, 3, out.NumRows())
}

func TestResolveNullsDrop(t *testing.T) {
	tbl := dailyTable(t, "v", series.Null(), 2, 4)

	out, warns, err := ResolveNulls(tbl, NullDrop)
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.Equal(t, 2, out.NumRows())
	assert.Equal(t, 0, out.NullCount())
}

func TestResolveNullsAllNullColumn(t *testing.T) {
	tbl := dailyTable(t, "v", series.Null(), series.Null())

	out, warns, err := ResolveNulls(tbl, NullMeanFill)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, 2, out.NullCount(), "all-null column passes through")
}

func TestResolveNullsBadPolicy(t *testing.T) {
	tbl := dailyTable(t, "v", 1)
	_, _, err := ResolveNulls(tbl, NullPolicy("zero_fill"))
	assert.Error(t, err)
}
