package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/scantriage/internal/report"
	"github.com/lehigh-university-libraries/scantriage/internal/triage"
)

func newBatchCmd() *cobra.Command {
	var provider string
	var model string
	var timeout time.Duration
	var noReport bool

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Triage every image in a directory",
		Long: `Runs the triage workflow over every image file in a directory, one at a
time. Answer quit at any prompt to stop the run; remaining images are left
untouched.

A YAML summary of the session is written to triage_results/ afterwards.`,
		Example: `  # Triage a folder of scans
  scantriage batch ./scans

  # Skip the session report
  scantriage batch --no-report ./scans`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, config, err := newProvider(provider, model, timeout)
			if err != nil {
				return err
			}

			dir := args[0]
			paths, err := triage.ScanImages(dir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Printf("No image files found in '%s'.\n", dir)
				return nil
			}

			controller := triage.NewController(triage.NewAnalyzer(p, config))
			runner := triage.NewRunner(controller)
			results := runner.Run(cmd.Context(), paths)

			if !noReport && len(results) > 0 {
				path, err := report.Save(provider, config.Model, dir, results)
				if err != nil {
					slog.Warn("Failed to write session report", "err", err)
				} else {
					fmt.Printf("\nSession report written to %s\n", path)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "cborg", "Vision provider (cborg or gemini)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to the provider's vision model)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout for each model call (0 for the default)")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Skip writing the YAML session report")

	return cmd
}
