// Package journal records pipeline runs and their evaluation scores, so a
// series of experiments over the same dataset stays comparable. Two backends
// are provided: flat CSV files and SQLite.
package journal

import (
	"fmt"
	"time"
)

// RunRecord captures one pipeline run: where the data came from, how each
// stage changed it, and how many warnings were raised.
type RunRecord struct {
	RunID          string
	StartedAt      time.Time
	Source         string
	Frequency      string
	RowsIn         int
	RowsResampled  int
	CellsFilled    int
	RowsDropped    int
	NullsRemaining int
	FeatureCount   int
	TrainRows      int
	ValidRows      int
	Warnings       int
}

// MetricRecord captures one model evaluation against a run's validation
// range.
type MetricRecord struct {
	RunID string
	Model string
	MAE   float64
	RMSE  float64
	MAPE  float64
}

// Journal persists run and metric records.
type Journal interface {
	RecordRun(RunRecord) error
	RecordMetrics(MetricRecord) error
	Close() error
}

// Open builds a journal from a type name, matching the pipeline's journal
// config. Type "none" (or empty) returns a journal that discards everything.
func Open(typ, runsFile, metricsFile, dbPath string) (Journal, error) {
	switch typ {
	case "", "none":
		return nopJournal{}, nil
	case "csv":
		return NewCSV(runsFile, metricsFile)
	case "sqlite":
		return NewSQLite(dbPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", typ)
	}
}

type nopJournal struct{}

func (nopJournal) RecordRun(RunRecord) error        { return nil }
func (nopJournal) RecordMetrics(MetricRecord) error { return nil }
func (nopJournal) Close() error                     { return nil }
