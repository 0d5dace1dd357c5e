// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/compare"
	"github.com/pdiddy/paper-analyzer/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare [pdfs...]",
	Short: "Compare papers side by side",
	Long: `Compare runs the full analysis on each PDF and prints only the comparison
table: primary p-value, largest sample size, verdict, and number of key
findings per paper, followed by descriptive insights across the set.`,
	RunE: runCompare,
}

func init() {
	bindModelFlags(compareCmd)
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("provide at least two PDF files to compare")
	}

	results, summary, format, err := runPipeline(cmd, args, pipelineOptions{withModel: true})
	if err != nil {
		return err
	}

	if len(results) < 2 {
		fmt.Fprintf(cmd.ErrOrStderr(), "only %d paper(s) analyzed; nothing to compare\n", len(results))
		return batchError(summary)
	}
	if err := report.WriteComparison(cmd.OutOrStdout(), compare.Compare(results), format); err != nil {
		return err
	}
	return batchError(summary)
}
