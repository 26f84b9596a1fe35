// Package pipeline composes ingestion, resampling, gap filling, feature
// construction, and the chronological split into one deterministic run. Each
// stage is a pure transformation from table to table; the pipeline only
// decides the order and carries the configuration and the data-quality
// report.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/tsprep/features"
	"github.com/rustyeddy/tsprep/resample"
	"github.com/rustyeddy/tsprep/series"
	"github.com/rustyeddy/tsprep/split"
)

// Pipeline runs a validated configuration against input tables.
type Pipeline struct {
	cfg *Config
	log *zap.SugaredLogger
}

// New builds a pipeline from a config. A nil logger disables logging.
func New(cfg *Config, logger *zap.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, log: logger.Sugar()}, nil
}

// Report summarizes one run for a human reader: how many rows each stage saw,
// how much of the table is reconstructed rather than measured, and every
// data-quality warning raised along the way.
type Report struct {
	RowsIn         int      `json:"rows_in"`
	RowsResampled  int      `json:"rows_resampled"`
	NullsResampled int      `json:"nulls_after_resample"`
	CellsFilled    int      `json:"cells_filled"`
	RowsDropped    int      `json:"rows_dropped"`
	NullsRemaining int      `json:"nulls_remaining"`
	TrainRows      int      `json:"train_rows"`
	ValidRows      int      `json:"valid_rows"`
	Warnings       []string `json:"warnings,omitempty"`
}

// Result is the pipeline's hand-off to a downstream model: the training and
// validation ranges plus the declared ordered list of feature columns.
type Result struct {
	Train          *series.Table
	Valid          *series.Table
	Target         string
	FeatureColumns []string
	Report         Report
}

// TrainTarget returns the target column over the training range.
func (r *Result) TrainTarget() ([]float64, error) { return r.Train.Col(r.Target) }

// ValidTarget returns the target column over the validation range.
func (r *Result) ValidTarget() ([]float64, error) { return r.Valid.Col(r.Target) }

// TrainFeatures returns only the feature columns over the training range.
func (r *Result) TrainFeatures() (*series.Table, error) {
	return r.Train.Select(r.FeatureColumns...)
}

// ValidFeatures returns only the feature columns over the validation range.
func (r *Result) ValidFeatures() (*series.Table, error) {
	return r.Valid.Select(r.FeatureColumns...)
}

// RunFile reads the configured source file and runs the pipeline on it.
func (p *Pipeline) RunFile() (*Result, error) {
	raw, err := series.ReadFile(p.cfg.Source.Path, series.ReadOptions{
		TimeColumn: p.cfg.Source.TimeColumn,
		TimeLayout: p.cfg.Source.TimeLayout,
		Fields:     p.cfg.Source.Fields,
	})
	if err != nil {
		return nil, err
	}
	return p.Run(raw)
}

// Run executes resample, fill, feature construction, null resolution, and
// split over an already-loaded raw table.
func (p *Pipeline) Run(raw *series.Table) (*Result, error) {
	rep := Report{RowsIn: raw.NumRows()}

	freq, err := p.cfg.Resample.ParseFrequency()
	if err != nil {
		return nil, err
	}
	tbl, err := resample.Resample(raw, freq)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	rep.RowsResampled = tbl.NumRows()
	rep.NullsResampled = tbl.NullCount()
	p.log.Infow("resampled",
		"frequency", freq,
		"rows_in", rep.RowsIn,
		"rows_out", rep.RowsResampled,
		"nulls", rep.NullsResampled)

	tbl, fillRep, err := resample.Fill(tbl, resample.Policy(p.cfg.Fill.Policy))
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	rep.CellsFilled = fillRep.Filled
	rep.RowsDropped = fillRep.Dropped
	for _, run := range fillRep.BoundaryRuns {
		p.warn(&rep, run.String())
	}
	p.log.Infow("filled gaps",
		"policy", p.cfg.Fill.Policy,
		"filled", fillRep.Filled,
		"dropped", fillRep.Dropped,
		"remaining", fillRep.Remaining)

	spec := features.RollingSpec{
		Fields:     p.cfg.Features.Fields,
		Windows:    p.cfg.Features.Windows,
		MinPeriods: p.cfg.Features.MinPeriods,
	}
	tbl, warns, err := features.Rolling(tbl, spec)
	if err != nil {
		return nil, fmt.Errorf("rolling features: %w", err)
	}
	for _, w := range warns {
		p.warn(&rep, w)
	}
	featureCols := spec.ColumnNames()

	if p.cfg.Features.Calendar {
		tbl, err = features.WithCalendar(tbl)
		if err != nil {
			return nil, fmt.Errorf("calendar features: %w", err)
		}
		featureCols = append(featureCols, features.CalendarColumns()...)
	}

	tbl, warns, err = features.ResolveNulls(tbl, features.NullPolicy(p.cfg.Features.NullPolicy))
	if err != nil {
		return nil, fmt.Errorf("resolve nulls: %w", err)
	}
	for _, w := range warns {
		p.warn(&rep, w)
	}
	rep.NullsRemaining = tbl.NullCount()

	train, valid, err := split.Chronological(tbl, p.cfg.Split.Fraction)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	rep.TrainRows = train.NumRows()
	rep.ValidRows = valid.NumRows()
	p.log.Infow("split",
		"fraction", p.cfg.Split.Fraction,
		"train_rows", rep.TrainRows,
		"valid_rows", rep.ValidRows,
		"feature_columns", len(featureCols))

	return &Result{
		Train:          train,
		Valid:          valid,
		Target:         p.cfg.Features.Target,
		FeatureColumns: featureCols,
		Report:         rep,
	}, nil
}

func (p *Pipeline) warn(rep *Report, msg string) {
	rep.Warnings = append(rep.Warnings, msg)
	p.log.Warnw("data quality", "warning", msg)
}
