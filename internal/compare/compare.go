// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare projects a list of analysis results into a side-by-side
// table. It never re-analyzes documents and never pools statistics across
// papers; the insights are descriptive only.
package compare

import (
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Row is one paper in the comparison table.
type Row struct {
	Document string `json:"document" yaml:"document"`
	Title    string `json:"title" yaml:"title"`

	// PValue is the primary p-value with its relation, e.g. "< 0.001".
	// Empty when the paper reports none.
	PValue string `json:"p_value" yaml:"p_value"`

	// SampleSize is the largest sample size found; nil when none.
	SampleSize *int `json:"sample_size,omitempty" yaml:"sample_size,omitempty"`

	Verdict  types.SignificanceLevel `json:"verdict" yaml:"verdict"`
	Findings int                     `json:"findings" yaml:"findings"`
}

// Insights summarizes the table as a whole.
type Insights struct {
	Total       int `json:"total" yaml:"total"`
	Significant int `json:"significant" yaml:"significant"`

	MeanSampleSize   *float64 `json:"mean_sample_size,omitempty" yaml:"mean_sample_size,omitempty"`
	MedianSampleSize *float64 `json:"median_sample_size,omitempty" yaml:"median_sample_size,omitempty"`

	// MeanPValue averages exact primary p-values only; bounds are skipped.
	MeanPValue *float64 `json:"mean_p_value,omitempty" yaml:"mean_p_value,omitempty"`
}

// Table is the comparison of several papers.
type Table struct {
	Rows     []Row    `json:"rows" yaml:"rows"`
	Insights Insights `json:"insights" yaml:"insights"`
}

// Compare builds one Row per result, in input order.
func Compare(results []types.AnalysisResult) Table {
	t := Table{Rows: make([]Row, 0, len(results))}

	var sizes, pvals stats.Float64Data
	for _, r := range results {
		row := Row{
			Document: r.Document.ID,
			Title:    r.Summary.Title,
			Verdict:  r.Verdict.Level,
			Findings: len(r.Summary.KeyFindings),
		}
		if p := r.Verdict.Primary; p != nil {
			row.PValue = FormatPValue(*p)
			if p.Value != nil {
				pvals = append(pvals, *p.Value)
			}
		}
		if n, ok := r.Statistics.MaxSampleSize(); ok {
			row.SampleSize = &n
			sizes = append(sizes, float64(n))
		}
		if row.Verdict.IsSignificant() {
			t.Insights.Significant++
		}
		t.Rows = append(t.Rows, row)
	}

	t.Insights.Total = len(t.Rows)
	t.Insights.MeanSampleSize = describe(sizes, stats.Mean)
	t.Insights.MedianSampleSize = describe(sizes, stats.Median)
	t.Insights.MeanPValue = describe(pvals, stats.Mean)
	return t
}

// describe applies fn to data, returning nil for empty input.
func describe(data stats.Float64Data, fn func(stats.Float64Data) (float64, error)) *float64 {
	if data.Len() == 0 {
		return nil
	}
	v, err := fn(data)
	if err != nil {
		return nil
	}
	return &v
}

// FormatPValue renders a p-value with its relation, e.g. "= 0.003" or
// "< 0.001".
func FormatPValue(p types.Statistic) string {
	n, ok := p.Number()
	if !ok {
		return ""
	}
	rel := p.Relation
	if rel == "" {
		rel = types.RelEqual
	}
	return string(rel) + " " + strconv.FormatFloat(n, 'g', -1, 64)
}
