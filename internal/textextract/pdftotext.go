// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textextract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

const defaultPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return err
	}
	return nil
}

// PdftotextExtractor pipes the PDF through poppler's pdftotext.
type PdftotextExtractor struct {
	bin  string
	exec executor
}

// NewPdftotextExtractor returns an extractor that runs bin, or pdftotext
// from PATH when bin is empty.
func NewPdftotextExtractor(bin string) *PdftotextExtractor {
	if bin == "" {
		bin = defaultPdftotext
	}
	return &PdftotextExtractor{bin: bin, exec: &osExecutor{}}
}

func (p *PdftotextExtractor) Name() string { return "pdftotext" }

// Available reports whether the pdftotext binary can be found.
func (p *PdftotextExtractor) Available() bool {
	_, err := p.exec.LookPath(p.bin)
	return err == nil
}

// ExtractText runs "pdftotext -layout -enc UTF-8 - -" with data on stdin.
func (p *PdftotextExtractor) ExtractText(ctx context.Context, name string, data []byte) (string, error) {
	if !p.Available() {
		return "", fmt.Errorf("%s not found on PATH", p.bin)
	}

	var out bytes.Buffer
	args := []string{"-layout", "-enc", "UTF-8", "-", "-"}
	if err := p.exec.RunPiped(ctx, p.bin, args, bytes.NewReader(data), &out); err != nil {
		return "", fmt.Errorf("running %s on %s: %w", p.bin, name, err)
	}
	return out.String(), nil
}
