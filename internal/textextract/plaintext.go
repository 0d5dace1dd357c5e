// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"
)

var pdfMagic = []byte("%PDF-")

// PlainTextFallback sends PDFs to pdf and passes UTF-8 text through
// unchanged. Files are told apart by the PDF header, not the file name.
type PlainTextFallback struct {
	pdf Extractor
}

// WithPlainText wraps pdf so plain text files are accepted too.
func WithPlainText(pdf Extractor) *PlainTextFallback {
	return &PlainTextFallback{pdf: pdf}
}

func (p *PlainTextFallback) Name() string { return p.pdf.Name() + "+text" }

func (p *PlainTextFallback) ExtractText(ctx context.Context, name string, data []byte) (string, error) {
	if bytes.HasPrefix(data, pdfMagic) {
		return p.pdf.ExtractText(ctx, name, data)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is neither a PDF nor UTF-8 text", name)
	}
	return string(data), nil
}
