// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textextract turns uploaded PDF bytes into plain text and wraps the
// result as a types.Document.
package textextract

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// DefaultMinTextLength is the shortest extracted text accepted as a paper.
// Shorter output usually means a scanned PDF without a text layer.
const DefaultMinTextLength = 100

// Extractor converts one document's bytes to plain text.
type Extractor interface {
	// Name returns the backend name used in log and status lines.
	Name() string

	// ExtractText returns the text layer of data. name is only used in
	// error messages.
	ExtractText(ctx context.Context, name string, data []byte) (string, error)
}

// ExtractionError reports a document whose text could not be obtained. The
// batch continues with the next document.
type ExtractionError struct {
	Name   string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extracting text from %s: %s: %v", e.Name, e.Reason, e.Err)
	}
	return fmt.Sprintf("extracting text from %s: %s", e.Name, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// NewExtractor returns the Extractor selected by cfg.Backend.
func NewExtractor(cfg types.ExtractionConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.TextNative, "":
		return NewNativeExtractor(), nil
	case types.TextPdftotext:
		return NewPdftotextExtractor(cfg.PdftotextPath), nil
	default:
		return nil, fmt.Errorf("unknown extraction backend %q (want %q or %q)",
			cfg.Backend, types.TextNative, types.TextPdftotext)
	}
}

// NewDocument extracts the text of data and returns it as a Document
// identified by name. Text shorter than minLen characters is rejected; a
// non-positive minLen means DefaultMinTextLength.
func NewDocument(ctx context.Context, ex Extractor, name string, data []byte, minLen int, now time.Time) (types.Document, error) {
	if minLen <= 0 {
		minLen = DefaultMinTextLength
	}
	if len(data) == 0 {
		return types.Document{}, &ExtractionError{Name: name, Reason: "empty upload"}
	}

	text, err := ex.ExtractText(ctx, name, data)
	if err != nil {
		return types.Document{}, &ExtractionError{Name: name, Reason: ex.Name() + " backend failed", Err: err}
	}

	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < minLen {
		return types.Document{}, &ExtractionError{
			Name:   name,
			Reason: fmt.Sprintf("only %d characters of text (need %d); the PDF may be scanned or empty", n, minLen),
		}
	}

	return types.Document{ID: name, Text: text, UploadedAt: now}, nil
}
