package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tsprep/resample"
	"github.com/rustyeddy/tsprep/series"
)

func testConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Path:       "./data.csv",
			TimeColumn: "Date",
			TimeLayout: "01/02/2006",
			Fields:     []string{"v"},
		},
		Resample: ResampleConfig{Frequency: "24h"},
		Fill:     FillConfig{Policy: "interpolate"},
		Features: FeaturesConfig{
			Target:     "v",
			Fields:     []string{"v"},
			Windows:    []int{2},
			MinPeriods: 0,
			Calendar:   false,
			NullPolicy: "mean_fill",
		},
		Split:   SplitConfig{Fraction: 0.8},
		Journal: JournalConfig{Type: "none"},
	}
}

// Five consecutive days with the middle observation missing: interpolation
// reconstructs the straight line, and the 2-day mean lag at the last row
// averages the two rows before it only.
func TestRunEndToEnd(t *testing.T) {
	times := make([]time.Time, 5)
	for i := range times {
		times[i] = time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
	}
	raw := series.New("Date", times)
	require.NoError(t, raw.AddColumn("v", []float64{1, 2, series.Null(), 4, 5}))

	p, err := New(testConfig(), nil)
	require.NoError(t, err)

	res, err := p.Run(raw)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Report.RowsIn)
	assert.Equal(t, 5, res.Report.RowsResampled)
	assert.Equal(t, 1, res.Report.CellsFilled)
	assert.Equal(t, 0, res.Report.NullsRemaining)
	assert.Equal(t, 4, res.Report.TrainRows, "floor(5*0.8) = 4")
	assert.Equal(t, 1, res.Report.ValidRows)

	// Filled series is 1..5.
	trainV, err := res.TrainTarget()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3, 4}, trainV, 1e-12)

	// Valid row is day 5 (value 5.0); its 2-day mean lag covers the filled
	// rows 3.0 and 4.0, never its own value.
	vf, err := res.ValidFeatures()
	require.NoError(t, err)
	mean, err := vf.Col("v_mean_lag2")
	require.NoError(t, err)
	require.Len(t, mean, 1)
	assert.InDelta(t, 3.5, mean[0], 1e-12)

	assert.Equal(t, []string{"v_mean_lag2", "v_std_lag2"}, res.FeatureColumns)
}

func TestRunCalendarColumns(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Calendar = true

	times := make([]time.Time, 10)
	vals := make([]float64, 10)
	for i := range times {
		times[i] = time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		vals[i] = float64(i)
	}
	raw := series.New("Date", times)
	require.NoError(t, raw.AddColumn("v", vals))

	p, err := New(cfg, nil)
	require.NoError(t, err)
	res, err := p.Run(raw)
	require.NoError(t, err)

	assert.Contains(t, res.FeatureColumns, "month")
	assert.Contains(t, res.FeatureColumns, "weekday")

	tf, err := res.TrainFeatures()
	require.NoError(t, err)
	assert.Equal(t, len(res.FeatureColumns), tf.NumCols())
}

func TestRunBoundaryWarning(t *testing.T) {
	cfg := testConfig()

	// First observation missing: interpolation has no left neighbor.
	times := make([]time.Time, 5)
	for i := range times {
		times[i] = time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
	}
	raw := series.New("Date", times)
	require.NoError(t, raw.AddColumn("v", []float64{series.Null(), 2, 3, 4, 5}))

	p, err := New(cfg, nil)
	require.NoError(t, err)
	res, err := p.Run(raw)
	require.NoError(t, err)

	assert.NotEmpty(t, res.Report.Warnings)
	// The boundary null is then resolved by the declared mean_fill policy.
	assert.Equal(t, 0, res.Report.NullsRemaining)
}

func TestRunDropPolicies(t *testing.T) {
	cfg := testConfig()
	cfg.Fill.Policy = string(resample.PolicyDrop)
	cfg.Features.NullPolicy = "drop"

	times := make([]time.Time, 10)
	vals := make([]float64, 10)
	for i := range times {
		times[i] = time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		vals[i] = float64(i)
	}
	vals[4] = series.Null()
	raw := series.New("Date", times)
	require.NoError(t, raw.AddColumn("v", vals))

	p, err := New(cfg, nil)
	require.NoError(t, err)
	res, err := p.Run(raw)
	require.NoError(t, err)

	// One row dropped by fill; the feature null policy then drops the first
	// two rows, where the lag std has fewer than two prior samples.
	assert.Equal(t, 1, res.Report.RowsDropped)
	assert.Equal(t, 0, res.Report.NullsRemaining)
	assert.Equal(t, 7, res.Report.TrainRows+res.Report.ValidRows)
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	csv := "Date,v\n03/01/2020,1\n03/02/2020,2\n03/03/2020,3\n03/04/2020,4\n03/05/2020,5\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	cfg := testConfig()
	cfg.Source.Path = path

	p, err := New(cfg, nil)
	require.NoError(t, err)

	res, err := p.RunFile()
	require.NoError(t, err)
	assert.Equal(t, 5, res.Report.RowsIn)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Split.Fraction = 0
	_, err := New(cfg, nil)
	assert.Error(t, err)
}
