// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [pdfs...]",
	Short: "Summarize papers and analyze their statistics",
	Long: `Analyze extracts the text of each PDF, asks the language model for a
structured summary, extracts statistics with pattern rules, and classifies the
primary p-value. It prints the summary and statistics of every paper and, with
two or more papers, a comparison table.

A failed model call leaves that paper without a summary; its statistics and
verdict are still reported. Requires an API key for the selected provider.`,
	RunE: runAnalyze,
}

func init() {
	bindModelFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF files")
	}

	results, summary, format, err := runPipeline(cmd, args, pipelineOptions{withModel: true})
	if err != nil {
		return err
	}

	if len(results) > 0 {
		if err := report.WriteAnalysis(cmd.OutOrStdout(), report.NewAnalysis(results), format); err != nil {
			return err
		}
	}
	return batchError(summary)
}
