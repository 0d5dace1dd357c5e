// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/internal/analyze"
)

const paperText = `Abstract: This study examines the effectiveness of a new teaching method.
Method: We conducted a randomized controlled trial with n=500 students.
Results: The treatment group showed significant improvement (p=0.003).
The average test score increased by 15.5%.
Conclusion: The new method is highly effective.`

func TestReadUploads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	uploads, err := readUploads([]string{path})
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "paper.txt", uploads[0].Name)
	assert.Equal(t, []byte("hello"), uploads[0].Data)

	_, err = readUploads([]string{filepath.Join(dir, "missing.pdf")})
	assert.Error(t, err)
}

func TestBatchError(t *testing.T) {
	assert.NoError(t, batchError(analyze.BatchSummary{Analyzed: 2, Partial: 1}))

	err := batchError(analyze.BatchSummary{Analyzed: 1, Failed: 2})
	require.Error(t, err)
	assert.Equal(t, "2 of 3 document(s) failed", err.Error())
}

func TestStatsCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trial.txt")
	require.NoError(t, os.WriteFile(path, []byte(paperText), 0o600))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"stats", "--format", "json", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	var views []struct {
		Document string `json:"document"`
		Verdict  struct {
			Level string `json:"level"`
		} `json:"verdict"`
		Statistics []json.RawMessage `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "trial.txt", views[0].Document)
	assert.Equal(t, "very_significant", views[0].Verdict.Level)
	assert.Len(t, views[0].Statistics, 3)

	assert.True(t, strings.Contains(errOut.String(), "analyzed: trial.txt"), errOut.String())
}

func TestStatsCommandSkipsRepeatedName(t *testing.T) {
	first := filepath.Join(t.TempDir(), "trial.txt")
	second := filepath.Join(t.TempDir(), "trial.txt")
	require.NoError(t, os.WriteFile(first, []byte(paperText), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("Unrelated notes (p = 0.4)."), 0o600))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"stats", "--format", "json", first, second})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	var views []struct {
		Document string `json:"document"`
		Verdict  struct {
			Level string `json:"level"`
		} `json:"verdict"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "trial.txt", views[0].Document)
	assert.Equal(t, "very_significant", views[0].Verdict.Level)
	assert.Contains(t, errOut.String(), "skipped:  trial.txt (already analyzed)")
}
