package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends run and metric records to two flat CSV files.
type CSVJournal struct {
	runs    *csv.Writer
	metrics *csv.Writer
	rf, mf  *os.File
}

var runsHeader = []string{
	"run_id", "started_at", "source", "frequency",
	"rows_in", "rows_resampled", "cells_filled", "rows_dropped",
	"nulls_remaining", "feature_count", "train_rows", "valid_rows", "warnings",
}

var metricsHeader = []string{"run_id", "model", "mae", "rmse", "mape"}

// NewCSV creates (truncating) the two record files and writes their headers.
func NewCSV(runsPath, metricsPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	mf, err := os.Create(metricsPath)
	if err != nil {
		rf.Close()
		return nil, err
	}

	rw := csv.NewWriter(rf)
	mw := csv.NewWriter(mf)

	if err := rw.Write(runsHeader); err != nil {
		return nil, err
	}
	if err := mw.Write(metricsHeader); err != nil {
		return nil, err
	}

	rw.Flush()
	if err := rw.Error(); err != nil {
		return nil, err
	}
	mw.Flush()
	if err := mw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{runs: rw, metrics: mw, rf: rf, mf: mf}, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.StartedAt.Format(time.RFC3339),
		r.Source,
		r.Frequency,
		d(r.RowsIn),
		d(r.RowsResampled),
		d(r.CellsFilled),
		d(r.RowsDropped),
		d(r.NullsRemaining),
		d(r.FeatureCount),
		d(r.TrainRows),
		d(r.ValidRows),
		d(r.Warnings),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordMetrics(m MetricRecord) error {
	err := j.metrics.Write([]string{
		m.RunID,
		m.Model,
		f(m.MAE),
		f(m.RMSE),
		f(m.MAPE),
	})
	if err != nil {
		return err
	}
	j.metrics.Flush()
	return j.metrics.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.metrics.Flush()
	if err := j.metrics.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	return j.mf.Close()
}

func d(x int) string { return strconv.Itoa(x) }

func f(x float64) string { return strconv.FormatFloat(x, 'f', 6, 64) }
