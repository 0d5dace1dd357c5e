// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor reads the PDF text layer in-process.
type NativeExtractor struct{}

// NewNativeExtractor returns the in-process extractor.
func NewNativeExtractor() *NativeExtractor { return &NativeExtractor{} }

func (n *NativeExtractor) Name() string { return "native" }

// ExtractText parses data and returns its plain text. The parser panics on
// some malformed files; those panics are returned as errors.
func (n *NativeExtractor) ExtractText(ctx context.Context, name string, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF %s: %v", name, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", name, err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading text of %s: %w", name, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("reading text of %s: %w", name, err)
	}
	return buf.String(), nil
}
