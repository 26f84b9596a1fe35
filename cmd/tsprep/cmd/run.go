package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tsprep/eval"
	"github.com/rustyeddy/tsprep/journal"
	"github.com/rustyeddy/tsprep/pipeline"
	"github.com/rustyeddy/tsprep/pkg/id"
	"github.com/rustyeddy/tsprep/series"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the preparation pipeline and write train/valid tables",
	Long: `Run loads the configured source file, resamples it, fills gaps, builds
rolling and calendar features, splits chronologically, and writes the two
resulting tables as CSV.

With --baseline a simple forecaster is fitted on the training range and scored
against the validation range, as a floor for real models to beat.

Example:
  tsprep run -c pipeline.yaml --train-out train.csv --valid-out valid.csv --baseline naive`,
	RunE: runRun,
}

var (
	runConfigPath string
	runInputPath  string
	runTrainOut   string
	runValidOut   string
	runBaseline   string
	runSeason     int
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to pipeline config (required)")
	runCmd.Flags().StringVarP(&runInputPath, "input", "i", "", "input file (overrides source.path)")
	runCmd.Flags().StringVar(&runTrainOut, "train-out", "train.csv", "output path for the training table")
	runCmd.Flags().StringVar(&runValidOut, "valid-out", "valid.csv", "output path for the validation table")
	runCmd.Flags().StringVarP(&runBaseline, "baseline", "b", "none", "baseline to score (none, naive, seasonal)")
	runCmd.Flags().IntVar(&runSeason, "season", 7, "season length in rows for the seasonal baseline")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := pipeline.LoadFromFile(runConfigPath)
	if err != nil {
		return err
	}
	if runInputPath != "" {
		cfg.Source.Path = runInputPath
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	started := time.Now().UTC()
	res, err := p.RunFile()
	if err != nil {
		return err
	}

	if err := series.WriteFile(runTrainOut, res.Train, cfg.Source.TimeLayout); err != nil {
		return err
	}
	if err := series.WriteFile(runValidOut, res.Valid, cfg.Source.TimeLayout); err != nil {
		return err
	}

	runID := id.New()
	j, err := journal.Open(cfg.Journal.Type, cfg.Journal.RunsFile, cfg.Journal.MetricsFile, cfg.Journal.DBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.RecordRun(journal.RunRecord{
		RunID:          runID,
		StartedAt:      started,
		Source:         cfg.Source.Path,
		Frequency:      cfg.Resample.Frequency,
		RowsIn:         res.Report.RowsIn,
		RowsResampled:  res.Report.RowsResampled,
		CellsFilled:    res.Report.CellsFilled,
		RowsDropped:    res.Report.RowsDropped,
		NullsRemaining: res.Report.NullsRemaining,
		FeatureCount:   len(res.FeatureColumns),
		TrainRows:      res.Report.TrainRows,
		ValidRows:      res.Report.ValidRows,
		Warnings:       len(res.Report.Warnings),
	}); err != nil {
		return fmt.Errorf("journal run: %w", err)
	}

	fmt.Printf("run %s: %d rows in, %d train / %d valid, %d feature columns\n",
		runID, res.Report.RowsIn, res.Report.TrainRows, res.Report.ValidRows,
		len(res.FeatureColumns))
	for _, w := range res.Report.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("wrote %s and %s\n", runTrainOut, runValidOut)

	if runBaseline == "none" {
		return nil
	}

	var f eval.Forecaster
	switch strings.ToLower(runBaseline) {
	case "naive":
		f = eval.NewNaive()
	case "seasonal":
		f = eval.NewSeasonalNaive(runSeason)
	default:
		return fmt.Errorf("unknown baseline %q (want naive or seasonal)", runBaseline)
	}

	target, err := res.TrainTarget()
	if err != nil {
		return err
	}
	trainFeats, err := res.TrainFeatures()
	if err != nil {
		return err
	}
	if err := f.Fit(target, trainFeats); err != nil {
		return err
	}

	validFeats, err := res.ValidFeatures()
	if err != nil {
		return err
	}
	preds, err := f.Predict(validFeats)
	if err != nil {
		return err
	}
	actual, err := res.ValidTarget()
	if err != nil {
		return err
	}
	scores, err := eval.Evaluate(actual, preds)
	if err != nil {
		return err
	}

	if err := j.RecordMetrics(journal.MetricRecord{
		RunID: runID,
		Model: f.Name(),
		MAE:   scores.MAE,
		RMSE:  scores.RMSE,
		MAPE:  scores.MAPE,
	}); err != nil {
		return fmt.Errorf("journal metrics: %w", err)
	}

	fmt.Printf("%s: %s\n", f.Name(), scores)
	return nil
}
