// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-analyzer/internal/compare"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// maxListed caps the per-kind statistics listed in the text view.
const maxListed = 5

// summaryView is the machine-readable form of the Summary view.
type summaryView struct {
	Document     string        `json:"document" yaml:"document"`
	Summary      types.Summary `json:"summary" yaml:"summary"`
	SummaryError string        `json:"summary_error,omitempty" yaml:"summary_error,omitempty"`
}

// statisticsView is the machine-readable form of the Statistics view.
type statisticsView struct {
	Document       string                    `json:"document" yaml:"document"`
	Statistics     []types.Statistic         `json:"statistics" yaml:"statistics"`
	Verdict        types.SignificanceVerdict `json:"verdict" yaml:"verdict"`
	Reconciliation *types.Reconciliation     `json:"reconciliation,omitempty" yaml:"reconciliation,omitempty"`
}

// WriteSummary writes the Summary view of r.
func WriteSummary(w io.Writer, r types.AnalysisResult, f Format) error {
	if ok, err := encode(w, f, summaryView{Document: r.Document.ID, Summary: r.Summary, SummaryError: r.SummaryError}); ok {
		return err
	}

	s := r.Summary
	title := s.Title
	if title == "" {
		title = "Untitled Paper"
	}
	fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len([]rune(title))))
	fmt.Fprintf(w, "Document: %s\n", r.Document.ID)
	if r.SummaryError != "" {
		fmt.Fprintf(w, "Summary unavailable: %s\n", r.SummaryError)
		return nil
	}

	authors := "Unknown"
	if len(s.Authors) > 0 {
		authors = strings.Join(s.Authors, ", ")
	}
	fmt.Fprintf(w, "Authors:  %s\n", authors)

	section(w, "Abstract", orNA(s.Abstract))
	section(w, "Methodology", orNA(s.Methodology))

	fmt.Fprintln(w, "\nKey Findings")
	if len(s.KeyFindings) == 0 {
		fmt.Fprintln(w, "  N/A")
	}
	for i, finding := range s.KeyFindings {
		fmt.Fprintf(w, "  %d. %s\n", i+1, finding)
	}

	section(w, "Conclusion", orNA(s.Conclusion))
	return nil
}

func section(w io.Writer, heading, body string) {
	fmt.Fprintf(w, "\n%s\n  %s\n", heading, body)
}

// WriteStatistics writes the Statistics and Verdict view of r.
func WriteStatistics(w io.Writer, r types.AnalysisResult, f Format) error {
	view := newStatisticsView(r)
	if ok, err := encode(w, f, view); ok {
		return err
	}

	set := r.Statistics
	fmt.Fprintf(w, "Statistics: %s\n", r.Document.ID)
	fmt.Fprintln(w, strings.Repeat("-", 60))

	sampleSize := "Not found"
	if n, ok := set.MaxSampleSize(); ok {
		sampleSize = groupThousands(n)
	}
	primary := "Not found"
	if p := r.Verdict.Primary; p != nil {
		primary = "p " + compare.FormatPValue(*p)
	}
	significant := "No"
	if r.Verdict.Level.IsSignificant() {
		significant = "Yes"
	}

	fmt.Fprintf(w, "%-14s  %s\n", "Sample size", sampleSize)
	fmt.Fprintf(w, "%-14s  %s\n", "Primary p", primary)
	fmt.Fprintf(w, "%-14s  %s (%s)\n", "Significant", significant, r.Verdict.Level)
	fmt.Fprintf(w, "%-14s  %s\n", "Interpretation", r.Verdict.Interpretation)

	listKind(w, "Sample sizes", set.ByKind(types.KindSampleSize))
	listKind(w, "P-values", set.ByKind(types.KindPValue))
	listKind(w, "Percentages", set.ByKind(types.KindPercentage))
	listKind(w, "Confidence intervals", set.ByKind(types.KindConfidenceInterval))

	if view.Reconciliation != nil {
		rec := view.Reconciliation
		fmt.Fprintf(w, "\nModel agreement: %d confirmed, %d only in text, %d only in summary\n",
			len(rec.Confirmed), len(rec.TextOnly), len(rec.ModelOnly))
		for _, st := range rec.ModelOnly {
			fmt.Fprintf(w, "  unverified: %s\n", st.RawText)
		}
	}
	return nil
}

// WriteStatisticsList writes the Statistics view of several results. JSON
// and YAML output is a single list.
func WriteStatisticsList(w io.Writer, results []types.AnalysisResult, f Format) error {
	if f != FormatText {
		views := make([]statisticsView, 0, len(results))
		for _, r := range results {
			views = append(views, newStatisticsView(r))
		}
		_, err := encode(w, f, views)
		return err
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := WriteStatistics(w, r, f); err != nil {
			return err
		}
	}
	return nil
}

func newStatisticsView(r types.AnalysisResult) statisticsView {
	view := statisticsView{Document: r.Document.ID, Statistics: r.Statistics.Statistics, Verdict: r.Verdict}
	if !r.Summary.IsEmpty() {
		rec := r.Reconciliation
		view.Reconciliation = &rec
	}
	return view
}

func listKind(w io.Writer, heading string, stats []types.Statistic) {
	fmt.Fprintf(w, "\n%s:\n", heading)
	if len(stats) == 0 {
		fmt.Fprintln(w, "  None found")
		return
	}
	for i, st := range stats {
		if i == maxListed {
			fmt.Fprintf(w, "  ... %d more\n", len(stats)-maxListed)
			break
		}
		fmt.Fprintf(w, "  • %s\n", strings.Join(strings.Fields(st.RawText), " "))
	}
}

// WriteComparison writes the comparison table.
func WriteComparison(w io.Writer, t compare.Table, f Format) error {
	if ok, err := encode(w, f, t); ok {
		return err
	}

	fmt.Fprintf(w, "%-24s  %-36s  %-12s  %-10s  %-18s  %s\n",
		"Paper", "Title", "P-Value", "Sample", "Verdict", "Findings")
	fmt.Fprintln(w, strings.Repeat("-", 118))

	for _, row := range t.Rows {
		pval := row.PValue
		if pval == "" {
			pval = "N/A"
		}
		sample := "N/A"
		if row.SampleSize != nil {
			sample = groupThousands(*row.SampleSize)
		}
		fmt.Fprintf(w, "%-24s  %-36s  %-12s  %-10s  %-18s  %d\n",
			clip(row.Document, 24), clip(orNA(row.Title), 36), pval, sample, row.Verdict, row.Findings)
	}

	ins := t.Insights
	fmt.Fprintf(w, "\n%d papers, %d significant\n", ins.Total, ins.Significant)
	if ins.MeanSampleSize != nil {
		fmt.Fprintf(w, "Sample size: mean %.0f, median %.0f\n", *ins.MeanSampleSize, *ins.MedianSampleSize)
	}
	if ins.MeanPValue != nil {
		fmt.Fprintf(w, "Mean exact primary p-value: %.4f\n", *ins.MeanPValue)
	}
	return nil
}

// Analysis is the combined output of the analyze command.
type Analysis struct {
	Results    []types.AnalysisResult `json:"results" yaml:"results"`
	Comparison *compare.Table         `json:"comparison,omitempty" yaml:"comparison,omitempty"`
}

// NewAnalysis bundles results with a comparison when there are at least
// two papers to compare.
func NewAnalysis(results []types.AnalysisResult) Analysis {
	a := Analysis{Results: results}
	if len(results) >= 2 {
		t := compare.Compare(results)
		a.Comparison = &t
	}
	return a
}

// WriteAnalysis writes every view: the summary and statistics of each
// paper, then the comparison table when present.
func WriteAnalysis(w io.Writer, a Analysis, f Format) error {
	if ok, err := encode(w, f, a); ok {
		return err
	}

	for i, r := range a.Results {
		if i > 0 {
			fmt.Fprintln(w, "\n"+strings.Repeat("#", 60)+"\n")
		}
		if err := WriteSummary(w, r, f); err != nil {
			return err
		}
		fmt.Fprintln(w)
		if err := WriteStatistics(w, r, f); err != nil {
			return err
		}
	}

	if a.Comparison != nil {
		fmt.Fprintf(w, "\nComparing %d papers\n\n", len(a.Comparison.Rows))
		return WriteComparison(w, *a.Comparison, f)
	}
	return nil
}

// groupThousands formats n with comma separators, e.g. 12,345.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
