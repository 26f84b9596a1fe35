package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	source TEXT NOT NULL,
	frequency TEXT NOT NULL,
	rows_in INTEGER NOT NULL,
	rows_resampled INTEGER NOT NULL,
	cells_filled INTEGER NOT NULL,
	rows_dropped INTEGER NOT NULL,
	nulls_remaining INTEGER NOT NULL,
	feature_count INTEGER NOT NULL,
	train_rows INTEGER NOT NULL,
	valid_rows INTEGER NOT NULL,
	warnings INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS metrics (
	run_id TEXT NOT NULL,
	model TEXT NOT NULL,
	mae REAL NOT NULL,
	rmse REAL NOT NULL,
	mape REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_metrics_run ON metrics(run_id);
`
