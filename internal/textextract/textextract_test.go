// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Name() string { return "fake" }

func (f *fakeExtractor) ExtractText(_ context.Context, _ string, _ []byte) (string, error) {
	return f.text, f.err
}

func TestNewDocument(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	long := strings.Repeat("word ", 30)

	tests := []struct {
		name    string
		ex      *fakeExtractor
		data    []byte
		minLen  int
		wantErr string
	}{
		{name: "accepts long text", ex: &fakeExtractor{text: "  " + long + "\n"}, data: []byte("%PDF")},
		{name: "empty upload", ex: &fakeExtractor{text: long}, data: nil, wantErr: "empty upload"},
		{name: "backend failure", ex: &fakeExtractor{err: errors.New("boom")}, data: []byte("%PDF"), wantErr: "fake backend failed"},
		{name: "too short with default minimum", ex: &fakeExtractor{text: "tiny"}, data: []byte("%PDF"), wantErr: "only 4 characters"},
		{name: "custom minimum", ex: &fakeExtractor{text: "tiny"}, data: []byte("%PDF"), minLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewDocument(context.Background(), tt.ex, "paper.pdf", tt.data, tt.minLen, now)
			if tt.wantErr != "" {
				require.Error(t, err)
				var exErr *ExtractionError
				require.True(t, errors.As(err, &exErr))
				assert.Equal(t, "paper.pdf", exErr.Name)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "paper.pdf", doc.ID)
			assert.Equal(t, strings.TrimSpace(tt.ex.text), doc.Text)
			assert.Equal(t, now, doc.UploadedAt)
		})
	}
}

func TestExtractionErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := &ExtractionError{Name: "a.pdf", Reason: "bad", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "extracting text from a.pdf: bad: cause", err.Error())
}

func TestNativeExtractorRejectsNonPDF(t *testing.T) {
	_, err := NewNativeExtractor().ExtractText(context.Background(), "notes.pdf", []byte("just some text, not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes.pdf")
}

func TestNativeExtractorCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewNativeExtractor().ExtractText(ctx, "a.pdf", []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, context.Canceled)
}

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	available bool
	gotName   string
	gotArgs   []string
	gotStdin  []byte
	output    string
	err       error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.available {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunPiped(_ context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	m.gotName = name
	m.gotArgs = args
	m.gotStdin, _ = io.ReadAll(stdin)
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(stdout, m.output)
	return err
}

func TestPdftotextExtractor(t *testing.T) {
	mock := &mockExecutor{available: true, output: "Extracted body text"}
	p := &PdftotextExtractor{bin: "pdftotext", exec: mock}

	text, err := p.ExtractText(context.Background(), "a.pdf", []byte("%PDF-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "Extracted body text", text)
	assert.Equal(t, "pdftotext", mock.gotName)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-", "-"}, mock.gotArgs)
	assert.True(t, bytes.Equal([]byte("%PDF-bytes"), mock.gotStdin))
}

func TestPdftotextExtractorErrors(t *testing.T) {
	t.Run("missing binary", func(t *testing.T) {
		p := &PdftotextExtractor{bin: "pdftotext", exec: &mockExecutor{}}
		assert.False(t, p.Available())
		_, err := p.ExtractText(context.Background(), "a.pdf", []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found on PATH")
	})

	t.Run("command fails", func(t *testing.T) {
		p := &PdftotextExtractor{bin: "pdftotext", exec: &mockExecutor{available: true, err: errors.New("exit status 1")}}
		_, err := p.ExtractText(context.Background(), "a.pdf", []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "running pdftotext on a.pdf")
	})
}

func TestNewExtractor(t *testing.T) {
	ex, err := NewExtractor(types.ExtractionConfig{})
	require.NoError(t, err)
	assert.Equal(t, "native", ex.Name())

	ex, err = NewExtractor(types.ExtractionConfig{Backend: types.TextPdftotext, PdftotextPath: "/opt/poppler/pdftotext"})
	require.NoError(t, err)
	assert.Equal(t, "pdftotext", ex.Name())
	assert.Equal(t, "/opt/poppler/pdftotext", ex.(*PdftotextExtractor).bin)

	_, err = NewExtractor(types.ExtractionConfig{Backend: "ocr"})
	assert.Error(t, err)
}

func TestNewPdftotextExtractorDefaultBinary(t *testing.T) {
	assert.Equal(t, defaultPdftotext, NewPdftotextExtractor("").bin)
}

func TestPlainTextFallback(t *testing.T) {
	pdfBackend := &fakeExtractor{text: "from the pdf backend"}
	ex := WithPlainText(pdfBackend)
	assert.Equal(t, "fake+text", ex.Name())

	got, err := ex.ExtractText(context.Background(), "a.pdf", []byte("%PDF-1.7 binary"))
	require.NoError(t, err)
	assert.Equal(t, "from the pdf backend", got)

	got, err = ex.ExtractText(context.Background(), "notes.txt", []byte("plain notes, p = 0.01"))
	require.NoError(t, err)
	assert.Equal(t, "plain notes, p = 0.01", got)

	_, err = ex.ExtractText(context.Background(), "blob.bin", []byte{0xff, 0xfe, 0x00})
	assert.Error(t, err)
}
