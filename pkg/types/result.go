// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SignificanceLevel is the categorical strength of the primary p-value.
type SignificanceLevel string

const (
	HighlySignificant SignificanceLevel = "highly_significant"
	VerySignificant   SignificanceLevel = "very_significant"
	Significant       SignificanceLevel = "significant"
	NotSignificant    SignificanceLevel = "not_significant"
	Undetermined      SignificanceLevel = "undetermined"
)

// IsSignificant reports whether the level is below the 0.05 threshold.
func (l SignificanceLevel) IsSignificant() bool {
	return l == HighlySignificant || l == VerySignificant || l == Significant
}

// SignificanceVerdict is derived from the primary p-value of a StatisticSet.
type SignificanceVerdict struct {
	Level SignificanceLevel `json:"level" yaml:"level"`

	// Primary is the p-value that drove the verdict; nil when undetermined
	// because no p-value was extracted.
	Primary *Statistic `json:"primary,omitempty" yaml:"primary,omitempty"`

	// Interpretation is a one-line reading of the verdict for display.
	Interpretation string `json:"interpretation" yaml:"interpretation"`
}

// Reconciliation compares statistics found by pattern matching in the paper
// text with those the model reported in its summary.
type Reconciliation struct {
	// Confirmed holds text statistics the model also reported.
	Confirmed []Statistic `json:"confirmed" yaml:"confirmed"`

	// TextOnly holds text statistics the model did not report.
	TextOnly []Statistic `json:"text_only" yaml:"text_only"`

	// ModelOnly holds model-reported statistics absent from the text.
	ModelOnly []Statistic `json:"model_only" yaml:"model_only"`
}

// AnalysisResult aggregates everything produced for one Document.
type AnalysisResult struct {
	Document       Document            `json:"document" yaml:"document"`
	Summary        Summary             `json:"summary" yaml:"summary"`
	Statistics     StatisticSet        `json:"statistics" yaml:"statistics"`
	Verdict        SignificanceVerdict `json:"verdict" yaml:"verdict"`
	Reconciliation Reconciliation      `json:"reconciliation" yaml:"reconciliation"`

	// SummaryError records why the summary is missing or partial. Empty on success.
	SummaryError string `json:"summary_error,omitempty" yaml:"summary_error,omitempty"`
}
