// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-analyzer
// pipeline.
package types

import "time"

// Document is the plain text extracted from one uploaded PDF. It is
// immutable once created and owned by the analysis run that produced it.
type Document struct {
	// ID is the uploaded filename.
	ID string `json:"id" yaml:"id"`

	// Text is the raw extracted text. Omitted from rendered output.
	Text string `json:"-" yaml:"-"`

	// UploadedAt records when the bytes were received.
	UploadedAt time.Time `json:"uploaded_at" yaml:"uploaded_at"`
}

// Summary is the structured summary returned by the language model.
// Any field may be empty when the model omits its label.
type Summary struct {
	Title       string   `json:"title" yaml:"title"`
	Authors     []string `json:"authors" yaml:"authors"`
	Abstract    string   `json:"abstract" yaml:"abstract"`
	Methodology string   `json:"methodology" yaml:"methodology"`

	// KeyFindings is ordered as the model listed them (3-5 requested).
	KeyFindings []string `json:"key_findings" yaml:"key_findings"`

	Conclusion string `json:"conclusion" yaml:"conclusion"`

	// ReportedStatistics is the model's own STATISTICS section, verbatim.
	// It feeds reconciliation and is never used to classify significance.
	ReportedStatistics string `json:"reported_statistics,omitempty" yaml:"reported_statistics,omitempty"`
}

// IsEmpty reports whether no summary field was populated.
func (s Summary) IsEmpty() bool {
	return s.Title == "" && len(s.Authors) == 0 && s.Abstract == "" &&
		s.Methodology == "" && len(s.KeyFindings) == 0 && s.Conclusion == ""
}
