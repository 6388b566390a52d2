package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/model-compare/internal/config"
	"github.com/sells-group/model-compare/internal/dataset"
	"github.com/sells-group/model-compare/internal/report"
	"github.com/sells-group/model-compare/internal/view"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Load scores, compute differences, render chart and summary",
	Long: `Load one file of paired AUROC scores and compare the two models.

Each input row holds an XGBoost AUROC and a Neural Net AUROC. The per-row
difference (Neural Net minus XGBoost) is recomputed, aggregated into an
average plus win/loss/tie counts, drawn as a line chart PNG, and summarized
in the terminal.

A missing or unreadable input file is not fatal: the chart and summary fall
through to an explicit "no data" state.

Examples:
  # Defaults: diff.csv in, auroc_diff.png out
  model-compare compare

  # Explicit paths and chart size
  model-compare compare --input runs/eval.csv --chart runs/eval.png --width 1400

  # Excel input
  model-compare compare --input scores.xlsx

  # Write the terminal summary to a file instead of stdout
  model-compare compare --output summary.txt`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.String("input", "", "score file to load (overrides config)")
	f.String("format", "", "input format: auto, csv, or xlsx (overrides config)")
	f.String("chart", "", "chart PNG output path (overrides config)")
	f.Int("width", 0, "chart width in pixels (overrides config)")
	f.Int("height", 0, "chart height in pixels (overrides config)")
	f.Bool("no-chart", false, "skip writing the chart PNG")
	f.String("output", "", "summary output path (default: stdout)")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := zap.L().With(zap.String("command", "compare"))

	c := applyCompareOverrides(cmd, *cfg)
	if err := c.Validate(); err != nil {
		return err
	}

	model := view.NewModel(dataset.NewLoader(afero.NewOsFs()), c.Input.Path, c.Input.Format)
	model.Refresh(ctx)
	model.Wait()
	defer model.Close()

	snap := model.Snapshot()
	log.Info("comparison ready",
		zap.String("input", c.Input.Path),
		zap.Int("rows", snap.Stats.Total),
	)

	if noChart, _ := cmd.Flags().GetBool("no-chart"); !noChart {
		pngBytes, err := report.Chart(snap.Dataset, snap.Stats, report.ChartOptions{
			Width:  c.Chart.Width,
			Height: c.Chart.Height,
		})
		if err != nil {
			return eris.Wrap(err, "compare: render chart")
		}
		if err := os.WriteFile(c.Chart.Output, pngBytes, 0o644); err != nil {
			return eris.Wrapf(err, "compare: write chart %s", c.Chart.Output)
		}
		log.Info("chart written", zap.String("path", c.Chart.Output))
	}

	var w io.Writer = cmd.OutOrStdout()
	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" && outputPath != "-" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "compare: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}
	report.Summary(snap.Dataset, snap.Stats, snap.Report, w)
	return nil
}

// applyCompareOverrides returns a copy of the base config with CLI flag
// overrides applied.
func applyCompareOverrides(cmd *cobra.Command, base config.Config) config.Config {
	c := base

	if v, _ := cmd.Flags().GetString("input"); v != "" {
		c.Input.Path = v
	}
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		c.Input.Format = v
	}
	if v, _ := cmd.Flags().GetString("chart"); v != "" {
		c.Chart.Output = v
	}
	if v, _ := cmd.Flags().GetInt("width"); v > 0 {
		c.Chart.Width = v
	}
	if v, _ := cmd.Flags().GetInt("height"); v > 0 {
		c.Chart.Height = v
	}

	return c
}
