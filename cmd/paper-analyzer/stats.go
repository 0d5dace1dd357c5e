// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats [files...]",
	Short: "Extract statistics and significance without a model call",
	Long: `Stats extracts p-values, sample sizes, percentages, and confidence
intervals from PDFs or plain text files and classifies the primary p-value.
No language model is called and no API key is needed.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF or text files")
	}

	results, summary, format, err := runPipeline(cmd, args, pipelineOptions{acceptText: true})
	if err != nil {
		return err
	}

	if err := report.WriteStatisticsList(cmd.OutOrStdout(), results, format); err != nil {
		return err
	}
	return batchError(summary)
}
