package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scantriage",
		Short: "Triage scanned scientific documents with vision LLMs",
		Long: `Scantriage sends scanned document images to a vision-capable LLM, mines the
description for a publication title and DOI, and opens the most likely source
(a DOI resolver link or a title search) in your browser.

After you confirm whether the original PDF could be downloaded, each image is
filed into for_deletion/ or manual_inspection/.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newBatchCmd())

	return cmd
}
