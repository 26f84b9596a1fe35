package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tsprep/resample"
	"github.com/rustyeddy/tsprep/series"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report gaps and nulls in a raw series file",
	Long: `Inspect loads a delimited time-series file, resamples it onto the given
frequency grid, and reports how dense the result is: rows per column, null
counts, and the null runs at the table boundary that interpolation could not
reach. Nothing is written.

Example:
  tsprep inspect -i sensor.csv --layout "01/02/2006 15:04" --freq 24h`,
	RunE: runInspect,
}

var (
	inspectInput  string
	inspectColumn string
	inspectLayout string
	inspectFreq   time.Duration
)

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "", "input file (required)")
	inspectCmd.Flags().StringVar(&inspectColumn, "time-column", "Date", "timestamp column name")
	inspectCmd.Flags().StringVar(&inspectLayout, "layout", "01/02/2006", "timestamp layout")
	inspectCmd.Flags().DurationVar(&inspectFreq, "freq", 24*time.Hour, "target grid frequency")
	inspectCmd.MarkFlagRequired("input")
}

func runInspect(cmd *cobra.Command, args []string) error {
	raw, err := series.ReadFile(inspectInput, series.ReadOptions{
		TimeColumn: inspectColumn,
		TimeLayout: inspectLayout,
	})
	if err != nil {
		return err
	}

	tbl, err := resample.Resample(raw, inspectFreq)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d raw rows -> %d periods at %s\n",
		inspectInput, raw.NumRows(), tbl.NumRows(), inspectFreq)
	fmt.Printf("range: %s .. %s\n",
		tbl.Times[0].Format(time.RFC3339),
		tbl.Times[tbl.NumRows()-1].Format(time.RFC3339))

	for _, c := range tbl.Columns {
		nulls := 0
		for _, v := range c.Values {
			if series.IsNull(v) {
				nulls++
			}
		}
		pct := 100 * float64(nulls) / float64(len(c.Values))
		fmt.Printf("  %-20s %6d nulls (%5.1f%%)\n", c.Name, nulls, pct)
	}

	// Dry-run interpolation to surface the runs it could not fill.
	_, rep, err := resample.Fill(tbl, resample.PolicyInterpolate)
	if err != nil {
		return err
	}
	for _, run := range rep.BoundaryRuns {
		fmt.Printf("  boundary: %s\n", run)
	}
	fmt.Printf("interpolation would fill %d cells, leaving %d nulls\n",
		rep.Filled, rep.Remaining)
	return nil
}
