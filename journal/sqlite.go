package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteJournal persists records to a SQLite database, creating the schema on
// open.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, started_at, source, frequency, rows_in, rows_resampled,
		 cells_filled, rows_dropped, nulls_remaining, feature_count,
		 train_rows, valid_rows, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.StartedAt, r.Source, r.Frequency, r.RowsIn, r.RowsResampled,
		r.CellsFilled, r.RowsDropped, r.NullsRemaining, r.FeatureCount,
		r.TrainRows, r.ValidRows, r.Warnings,
	)
	return err
}

func (j *SQLiteJournal) RecordMetrics(m MetricRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO metrics (run_id, model, mae, rmse, mape)
		VALUES (?, ?, ?, ?, ?)`,
		m.RunID, m.Model, m.MAE, m.RMSE, m.MAPE,
	)
	return err
}

// GetRun loads a single run record by id.
func (j *SQLiteJournal) GetRun(runID string) (RunRecord, error) {
	var r RunRecord
	err := j.db.QueryRow(`
		SELECT run_id, started_at, source, frequency, rows_in, rows_resampled,
		       cells_filled, rows_dropped, nulls_remaining, feature_count,
		       train_rows, valid_rows, warnings
		FROM runs WHERE run_id = ?`, runID).Scan(
		&r.RunID, &r.StartedAt, &r.Source, &r.Frequency, &r.RowsIn, &r.RowsResampled,
		&r.CellsFilled, &r.RowsDropped, &r.NullsRemaining, &r.FeatureCount,
		&r.TrainRows, &r.ValidRows, &r.Warnings,
	)
	if err == sql.ErrNoRows {
		return r, fmt.Errorf("run %q not found", runID)
	}
	return r, err
}

// ListRuns returns every run record, newest first (ULIDs sort by time).
func (j *SQLiteJournal) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, started_at, source, frequency, rows_in, rows_resampled,
		       cells_filled, rows_dropped, nulls_remaining, feature_count,
		       train_rows, valid_rows, warnings
		FROM runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.RunID, &r.StartedAt, &r.Source, &r.Frequency, &r.RowsIn, &r.RowsResampled,
			&r.CellsFilled, &r.RowsDropped, &r.NullsRemaining, &r.FeatureCount,
			&r.TrainRows, &r.ValidRows, &r.Warnings,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MetricsByRun returns the metric records for one run.
func (j *SQLiteJournal) MetricsByRun(runID string) ([]MetricRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, model, mae, rmse, mape
		FROM metrics WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MetricRecord
	for rows.Next() {
		var m MetricRecord
		if err := rows.Scan(&m.RunID, &m.Model, &m.MAE, &m.RMSE, &m.MAPE); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
