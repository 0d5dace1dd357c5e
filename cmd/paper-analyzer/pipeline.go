// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/internal/analyze"
	"github.com/pdiddy/paper-analyzer/internal/config"
	"github.com/pdiddy/paper-analyzer/internal/logger"
	"github.com/pdiddy/paper-analyzer/internal/report"
	"github.com/pdiddy/paper-analyzer/internal/session"
	"github.com/pdiddy/paper-analyzer/internal/summarize"
	"github.com/pdiddy/paper-analyzer/internal/textextract"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// pipelineOptions selects which stages a command runs.
type pipelineOptions struct {
	// withModel enables the summarizer and makes the API key mandatory.
	withModel bool

	// acceptText lets plain text files through alongside PDFs.
	acceptText bool
}

// bindModelFlags adds the model flags shared by analyze and compare.
func bindModelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("provider", "", "model provider: openai or anthropic")
	f.String("model", "", "model identifier (default depends on provider)")
	f.Duration("timeout", 0, "timeout for each model call (default 60s)")
	f.Float64("temperature", 0, "sampling temperature (default 0.3)")
}

// applyModelFlags copies explicitly set model flags into viper.
func applyModelFlags(cmd *cobra.Command) {
	for flag, key := range map[string]string{
		"provider":    config.KeyProvider,
		"model":       config.KeyModel,
		"timeout":     config.KeyTimeout,
		"temperature": config.KeyTemperature,
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			viper.Set(key, f.Value.String())
		}
	}
}

// runPipeline loads configuration, analyzes every file in paths into a
// fresh session, and returns the session's results in argument order. Per-document status lines go to
// stderr so stdout carries only the report.
func runPipeline(cmd *cobra.Command, paths []string, opts pipelineOptions) ([]types.AnalysisResult, analyze.BatchSummary, report.Format, error) {
	format, err := report.ParseFormat(viper.GetString(config.KeyFormat))
	if err != nil {
		return nil, analyze.BatchSummary{}, "", err
	}

	if opts.withModel {
		applyModelFlags(cmd)
	}
	cfg, err := config.Load(viper.GetViper(), loadedSecrets, opts.withModel)
	if err != nil {
		return nil, analyze.BatchSummary{}, "", err
	}
	log := logger.New(cfg.LogLevel, os.Stderr)

	uploads, err := readUploads(paths)
	if err != nil {
		return nil, analyze.BatchSummary{}, "", err
	}

	ex, err := textextract.NewExtractor(cfg.Extraction)
	if err != nil {
		return nil, analyze.BatchSummary{}, "", err
	}
	if opts.acceptText {
		ex = textextract.WithPlainText(ex)
	}

	var sum analyze.Summarizer
	if opts.withModel {
		s, err := newSummarizer(cfg.Model, log)
		if err != nil {
			return nil, analyze.BatchSummary{}, "", err
		}
		sum = s
	}

	store, err := session.New()
	if err != nil {
		return nil, analyze.BatchSummary{}, "", err
	}
	defer store.Close()

	a := analyze.New(ex, sum, store, cfg.Extraction, log)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, summary, err := a.AnalyzeBatch(ctx, uploads, cmd.ErrOrStderr())
	if err != nil {
		return nil, summary, "", err
	}
	results, err := sessionResults(store, log)
	if err != nil {
		return nil, summary, "", err
	}
	return results, summary, format, nil
}

// sessionResults reads back the accumulated session, which is what the
// report and the comparator are built from.
func sessionResults(store *session.Session, log *slog.Logger) ([]types.AnalysisResult, error) {
	n, err := store.Len()
	if err != nil {
		return nil, err
	}
	log.Debug("session results", "count", n)
	return store.List()
}

func newSummarizer(cfg types.ModelConfig, log *slog.Logger) (*summarize.Summarizer, error) {
	backend, err := summarize.NewBackend(cfg, &http.Client{})
	if err != nil {
		return nil, err
	}
	return summarize.New(backend, cfg, log), nil
}

// readUploads reads each path. A path that cannot be read stops the command
// before any model call is made.
func readUploads(paths []string) ([]analyze.Upload, error) {
	uploads := make([]analyze.Upload, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		uploads = append(uploads, analyze.Upload{Name: filepath.Base(p), Data: data})
	}
	return uploads, nil
}

// batchError turns a batch with failed documents into the command's error.
func batchError(summary analyze.BatchSummary) error {
	if summary.HasFailures() {
		return fmt.Errorf("%d of %d document(s) failed", summary.Failed, summary.Total())
	}
	return nil
}
