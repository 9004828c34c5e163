package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/streetlens/go-activity/analysis"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <image>",
	Short: "Analyze a single image with the same detectors and scoring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, err := analysis.NewAnalyzer(Cfg.Detectors)
		if err != nil {
			return err
		}
		defer analyzer.Close()

		result, err := analyzer.AnalyzeFile(args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis.Summarize(result))
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
