// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the analyzer settings from viper, the secrets
// directory, and the conventional provider environment variables. It is
// read once at startup; nothing downstream consults the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Configuration keys.
const (
	KeyProvider      = "model.provider"
	KeyModel         = "model.name"
	KeyAPIKey        = "model.api_key"
	KeyBaseURL       = "model.base_url"
	KeyTemperature   = "model.temperature"
	KeyTimeout       = "model.timeout"
	KeyMaxTokens     = "model.max_tokens"
	KeyMaxInputChars = "model.max_input_chars"
	KeyTextBackend   = "extraction.backend"
	KeyPdftotextPath = "extraction.pdftotext_path"
	KeyMinTextLength = "extraction.min_text_length"
	KeyLogLevel      = "log.level"
	KeyFormat        = "output.format"

	keyOpenAIEnv    = "credentials.openai"
	keyAnthropicEnv = "credentials.anthropic"
)

// Secret file names in the secrets directory.
const (
	SecretOpenAI    = "openai-api-key"
	SecretAnthropic = "anthropic-api-key"
)

var defaultModels = map[types.ModelProvider]string{
	types.ProviderOpenAI:    "gpt-4o-mini",
	types.ProviderAnthropic: "claude-sonnet-4-5",
}

// ConfigurationError reports settings that prevent any analysis from
// running. It is fatal at startup.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Key, e.Reason)
}

// SetDefaults registers default values and the provider environment
// variables on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyProvider, string(types.ProviderOpenAI))
	v.SetDefault(KeyTemperature, 0.3)
	v.SetDefault(KeyTimeout, 60*time.Second)
	v.SetDefault(KeyMaxTokens, 1500)
	v.SetDefault(KeyMaxInputChars, 12000)
	v.SetDefault(KeyTextBackend, string(types.TextNative))
	v.SetDefault(KeyPdftotextPath, "pdftotext")
	v.SetDefault(KeyMinTextLength, 100)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyFormat, "text")

	_ = v.BindEnv(keyOpenAIEnv, "OPENAI_API_KEY")
	_ = v.BindEnv(keyAnthropicEnv, "ANTHROPIC_API_KEY")
}

// Load builds the AnalyzerConfig from v and secrets. When requireKey is
// set, a missing API key for the selected provider is a
// *ConfigurationError.
func Load(v *viper.Viper, secrets map[string]string, requireKey bool) (types.AnalyzerConfig, error) {
	provider := types.ModelProvider(strings.ToLower(strings.TrimSpace(v.GetString(KeyProvider))))
	if _, ok := defaultModels[provider]; !ok {
		return types.AnalyzerConfig{}, &ConfigurationError{
			Key:    KeyProvider,
			Reason: fmt.Sprintf("unknown provider %q (want %q or %q)", provider, types.ProviderOpenAI, types.ProviderAnthropic),
		}
	}

	model := v.GetString(KeyModel)
	if model == "" {
		model = defaultModels[provider]
	}

	cfg := types.AnalyzerConfig{
		Model: types.ModelConfig{
			Provider:      provider,
			Model:         model,
			APIKey:        apiKey(v, secrets, provider),
			BaseURL:       v.GetString(KeyBaseURL),
			Temperature:   v.GetFloat64(KeyTemperature),
			Timeout:       v.GetDuration(KeyTimeout),
			MaxTokens:     v.GetInt(KeyMaxTokens),
			MaxInputChars: v.GetInt(KeyMaxInputChars),
		},
		Extraction: types.ExtractionConfig{
			Backend:       types.TextBackend(strings.ToLower(v.GetString(KeyTextBackend))),
			PdftotextPath: v.GetString(KeyPdftotextPath),
			MinTextLength: v.GetInt(KeyMinTextLength),
		},
		LogLevel: strings.ToLower(v.GetString(KeyLogLevel)),
	}

	if err := validate(cfg, requireKey); err != nil {
		return types.AnalyzerConfig{}, err
	}
	return cfg, nil
}

// apiKey resolves the credential: explicit setting first, then the secrets
// directory, then the provider's conventional environment variable.
func apiKey(v *viper.Viper, secrets map[string]string, provider types.ModelProvider) string {
	if k := strings.TrimSpace(v.GetString(KeyAPIKey)); k != "" {
		return k
	}
	secretName, envKey := SecretOpenAI, keyOpenAIEnv
	if provider == types.ProviderAnthropic {
		secretName, envKey = SecretAnthropic, keyAnthropicEnv
	}
	if k := secrets[secretName]; k != "" {
		return k
	}
	return strings.TrimSpace(v.GetString(envKey))
}

func validate(cfg types.AnalyzerConfig, requireKey bool) error {
	m := cfg.Model
	switch {
	case requireKey && m.APIKey == "":
		env := "OPENAI_API_KEY"
		secret := SecretOpenAI
		if m.Provider == types.ProviderAnthropic {
			env, secret = "ANTHROPIC_API_KEY", SecretAnthropic
		}
		return &ConfigurationError{
			Key:    KeyAPIKey,
			Reason: fmt.Sprintf("no API key for %s; set %s, add .secrets/%s, or set %s in the config file", m.Provider, env, secret, KeyAPIKey),
		}
	case m.Temperature < 0 || m.Temperature > 2:
		return &ConfigurationError{Key: KeyTemperature, Reason: fmt.Sprintf("%g is outside [0, 2]", m.Temperature)}
	case m.Timeout <= 0:
		return &ConfigurationError{Key: KeyTimeout, Reason: "must be positive"}
	case m.MaxInputChars <= 0:
		return &ConfigurationError{Key: KeyMaxInputChars, Reason: "must be positive"}
	case m.MaxTokens <= 0:
		return &ConfigurationError{Key: KeyMaxTokens, Reason: "must be positive"}
	}

	switch cfg.Extraction.Backend {
	case types.TextNative, types.TextPdftotext:
	default:
		return &ConfigurationError{
			Key:    KeyTextBackend,
			Reason: fmt.Sprintf("unknown backend %q (want %q or %q)", cfg.Extraction.Backend, types.TextNative, types.TextPdftotext),
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigurationError{Key: KeyLogLevel, Reason: fmt.Sprintf("unknown level %q", cfg.LogLevel)}
	}
	return nil
}
