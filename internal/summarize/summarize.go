// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize asks a language model for a structured summary of a
// paper and parses the labeled response into a types.Summary.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const (
	defaultMaxInputChars = 12000
	defaultMaxTokens     = 1500
)

// ModelRequest is one prompt sent to the model service.
type ModelRequest struct {
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// ModelBackend abstracts the model API so tests can supply a fake. Each call
// is a single attempt; implementations must not retry.
type ModelBackend interface {
	Complete(ctx context.Context, req ModelRequest) (string, error)
}

// ModelCallError reports a failed model call: transport error, non-2xx
// status, empty response, or timeout.
type ModelCallError struct {
	Provider string
	Timeout  bool
	Err      error
}

func (e *ModelCallError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s model call timed out: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s model call failed: %v", e.Provider, e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }

// SummaryParseError reports a model response without any recognizable
// section label.
type SummaryParseError struct {
	Response string
}

func (e *SummaryParseError) Error() string {
	return fmt.Sprintf("model response contained no recognizable section labels (%d bytes)", len(e.Response))
}

// Summarizer renders the summary prompt, calls the model once, and parses
// the response.
type Summarizer struct {
	backend ModelBackend
	cfg     types.ModelConfig
	logger  *slog.Logger
}

// New creates a Summarizer. The configuration is read once here; nothing is
// looked up from the environment later.
func New(backend ModelBackend, cfg types.ModelConfig, logger *slog.Logger) *Summarizer {
	if cfg.MaxInputChars <= 0 {
		cfg.MaxInputChars = defaultMaxInputChars
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{backend: backend, cfg: cfg, logger: logger}
}

// Summarize produces the Summary for one document. It returns a
// *ModelCallError when the call fails and a *SummaryParseError when the
// response has no labels. A response missing some labels is not an error.
func (s *Summarizer) Summarize(ctx context.Context, doc types.Document) (types.Summary, error) {
	rid := uuid.New().String()
	start := time.Now()

	text := Truncate(doc.Text, s.cfg.MaxInputChars)
	s.logger.Info("summarize.start",
		"req_id", rid,
		"document", doc.ID,
		"provider", s.cfg.Provider,
		"model", s.cfg.Model,
		"text_len", len(doc.Text),
		"truncated", len(text) < len(doc.Text),
	)

	prompt, err := renderPrompt(text)
	if err != nil {
		return types.Summary{}, fmt.Errorf("rendering prompt: %w", err)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resp, err := s.backend.Complete(ctx, ModelRequest{
		Prompt:      prompt,
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		callErr := &ModelCallError{
			Provider: string(s.cfg.Provider),
			Timeout:  isTimeout(ctx, err),
			Err:      err,
		}
		s.logger.Error("summarize.model_error",
			"req_id", rid, "document", doc.ID, "timeout", callErr.Timeout, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return types.Summary{}, callErr
	}

	summary, err := Parse(resp)
	if err != nil {
		s.logger.Warn("summarize.parse_error",
			"req_id", rid, "document", doc.ID, "response_len", len(resp),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return types.Summary{}, err
	}

	s.logger.Info("summarize.ok",
		"req_id", rid,
		"document", doc.ID,
		"title", summary.Title,
		"findings", len(summary.KeyFindings),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}

// Truncate keeps the first max runes of text and drops the tail.
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	n := 0
	for i := range text {
		if n == max {
			return text[:i]
		}
		n++
	}
	return text
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
