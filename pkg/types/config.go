package types

import "time"

// ModelProvider identifies the language model service used for summaries.
type ModelProvider string

const (
	ProviderOpenAI    ModelProvider = "openai"
	ProviderAnthropic ModelProvider = "anthropic"
)

// ModelConfig holds settings for the summarizer's model call.
type ModelConfig struct {
	// Provider selects the backend: openai or anthropic.
	Provider ModelProvider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint. Empty uses the provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Temperature is the sampling temperature sent with each request.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Timeout bounds a single model call (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxTokens caps the response length.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// MaxInputChars is the document size limit; longer text keeps its head.
	MaxInputChars int `json:"max_input_chars" yaml:"max_input_chars"`
}

// TextBackend identifies the PDF text extraction tool.
type TextBackend string

const (
	TextNative    TextBackend = "native"
	TextPdftotext TextBackend = "pdftotext"
)

// ExtractionConfig holds settings for PDF text extraction.
type ExtractionConfig struct {
	// Backend selects the extractor: native or pdftotext.
	Backend TextBackend `json:"backend" yaml:"backend"`

	// PdftotextPath is the pdftotext binary used by the pdftotext backend.
	PdftotextPath string `json:"pdftotext_path" yaml:"pdftotext_path"`

	// MinTextLength is the shortest text accepted as usable (default 100).
	MinTextLength int `json:"min_text_length" yaml:"min_text_length"`
}

// AnalyzerConfig groups all settings for an analysis run.
type AnalyzerConfig struct {
	Model      ModelConfig      `json:"model" yaml:"model"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}
