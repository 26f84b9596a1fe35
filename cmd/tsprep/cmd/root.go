package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "tsprep",
	Short: "Prepare tabular time-series data for forecasting models",
	Long: `tsprep turns a raw delimited time-series file into model-ready
training and validation tables.

It provides tools for:
  - Resampling irregular samples onto a fixed frequency grid
  - Filling gaps by dropping rows or interpolating over elapsed time
  - Building rolling mean/std lag features without look-ahead leakage
  - Deriving calendar features from timestamps
  - Splitting chronologically into train and validation ranges
  - Journaling runs and baseline scores to CSV or SQLite

Complete documentation is available at https://github.com/rustyeddy/tsprep`,
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the CLI logger; debug level when --verbose is set.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
