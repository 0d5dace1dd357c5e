// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze runs the per-document pipeline: text extraction,
// statistics, significance, summary, and reconciliation. Statistics and the
// verdict never depend on the summary, so a failed model call still yields
// a usable result.
package analyze

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pdiddy/paper-analyzer/internal/significance"
	"github.com/pdiddy/paper-analyzer/internal/statistics"
	"github.com/pdiddy/paper-analyzer/internal/textextract"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Summarizer produces a structured summary of a document.
type Summarizer interface {
	Summarize(ctx context.Context, doc types.Document) (types.Summary, error)
}

// Store records analyzed documents for the current session.
type Store interface {
	Append(r types.AnalysisResult) error
	Contains(name string) (bool, error)
}

// Upload is one document as received: a name and its raw bytes.
type Upload struct {
	Name string
	Data []byte
}

// Analyzer wires the pipeline stages together. A nil Summarizer runs the
// statistics-only pipeline; a nil Store disables session tracking.
type Analyzer struct {
	extractor     textextract.Extractor
	summarizer    Summarizer
	store         Store
	minTextLength int
	logger        *slog.Logger
	now           func() time.Time
}

// New creates an Analyzer.
func New(ex textextract.Extractor, sum Summarizer, store Store, cfg types.ExtractionConfig, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{
		extractor:     ex,
		summarizer:    sum,
		store:         store,
		minTextLength: cfg.MinTextLength,
		logger:        logger,
		now:           time.Now,
	}
}

// AnalyzeUpload extracts the text of u and analyzes it. Extraction failures
// return a *textextract.ExtractionError and no result. Summary failures are
// recorded in the result's SummaryError and do not fail the call.
func (a *Analyzer) AnalyzeUpload(ctx context.Context, u Upload) (types.AnalysisResult, error) {
	doc, err := textextract.NewDocument(ctx, a.extractor, u.Name, u.Data, a.minTextLength, a.now())
	if err != nil {
		a.logger.Warn("analyze.extract_failed", "document", u.Name, "backend", a.extractor.Name(), "error", err)
		return types.AnalysisResult{}, err
	}
	return a.AnalyzeDocument(ctx, doc), nil
}

// AnalyzeDocument runs every stage after text extraction.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc types.Document) types.AnalysisResult {
	set := statistics.Extract(doc.Text)
	result := types.AnalysisResult{
		Document:   doc,
		Statistics: set,
		Verdict:    significance.Classify(set),
	}
	a.logger.Debug("analyze.statistics",
		"document", doc.ID, "count", set.Len(), "verdict", result.Verdict.Level)

	if a.summarizer == nil {
		return result
	}

	summary, err := a.summarizer.Summarize(ctx, doc)
	if err != nil {
		result.SummaryError = err.Error()
		result.Reconciliation = statistics.Reconcile(set, types.StatisticSet{})
		return result
	}
	result.Summary = summary
	result.Reconciliation = statistics.Reconcile(set, statistics.Extract(summary.ReportedStatistics))
	return result
}

// BatchSummary holds the outcome of a batch run.
type BatchSummary struct {
	Analyzed int
	Skipped  int
	Failed   int

	// Partial counts analyzed documents whose summary failed.
	Partial int
}

// Total returns the number of uploads processed.
func (s BatchSummary) Total() int {
	return s.Analyzed + s.Skipped + s.Failed
}

// HasFailures reports whether any document failed outright.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// AnalyzeBatch analyzes uploads in order, writing one status line per
// document to w. Documents already in the session are skipped. A failing
// document is counted and the batch continues. Cancelling ctx stops the
// batch before the next document; the error is returned with the results
// gathered so far.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, uploads []Upload, w io.Writer) ([]types.AnalysisResult, BatchSummary, error) {
	var (
		summary BatchSummary
		results []types.AnalysisResult
	)

	for _, u := range uploads {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}

		if a.store != nil {
			seen, err := a.store.Contains(u.Name)
			if err != nil {
				return results, summary, fmt.Errorf("checking session for %s: %w", u.Name, err)
			}
			if seen {
				fmt.Fprintf(w, "skipped:  %s (already analyzed)\n", u.Name)
				summary.Skipped++
				continue
			}
		}

		r, err := a.AnalyzeUpload(ctx, u)
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", u.Name, err)
			summary.Failed++
			continue
		}

		if a.store != nil {
			if err := a.store.Append(r); err != nil {
				return results, summary, fmt.Errorf("recording %s: %w", u.Name, err)
			}
		}

		summary.Analyzed++
		results = append(results, r)
		if r.SummaryError != "" {
			summary.Partial++
			fmt.Fprintf(w, "partial:  %s (%d statistics, %s; summary unavailable: %s)\n",
				u.Name, r.Statistics.Len(), r.Verdict.Level, summaryFailure(r.SummaryError))
			continue
		}
		fmt.Fprintf(w, "analyzed: %s (%d statistics, %s)\n", u.Name, r.Statistics.Len(), r.Verdict.Level)
	}

	fmt.Fprintf(w, "\nBatch summary: %d analyzed, %d skipped, %d failed, %d partial (total: %d)\n",
		summary.Analyzed, summary.Skipped, summary.Failed, summary.Partial, summary.Total())
	return results, summary, nil
}

// summaryFailure shortens long model errors for the status line.
func summaryFailure(msg string) string {
	const max = 120
	r := []rune(msg)
	if len(r) <= max {
		return msg
	}
	return string(r[:max-3]) + "..."
}
