package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/scantriage/internal/triage"
)

func newAnalyzeCmd() *cobra.Command {
	var provider string
	var model string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze a single scanned document image",
		Long: `Analyzes one scanned document image with a vision LLM, opens the resolved
publication source in your browser, and files the image according to your
answer at the prompt.`,
		Example: `  # Analyze one scan with the default CBorg vision model
  scantriage analyze ./scans/page_017.png

  # Use Gemini instead
  scantriage analyze --provider gemini ./scans/page_017.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, config, err := newProvider(provider, model, timeout)
			if err != nil {
				return err
			}

			imagePath := args[0]
			fmt.Printf("Analyzing image: %s...\n", imagePath)

			controller := triage.NewController(triage.NewAnalyzer(p, config))
			controller.Process(cmd.Context(), imagePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "cborg", "Vision provider (cborg or gemini)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to the provider's vision model)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout for the model call (0 for the default)")

	return cmd
}
