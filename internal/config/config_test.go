// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	v := newViper(t)

	cfg, err := Load(v, nil, false)
	require.NoError(t, err)

	assert.Equal(t, types.ProviderOpenAI, cfg.Model.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Model)
	assert.Equal(t, 0.3, cfg.Model.Temperature)
	assert.Equal(t, 60*time.Second, cfg.Model.Timeout)
	assert.Equal(t, 1500, cfg.Model.MaxTokens)
	assert.Equal(t, 12000, cfg.Model.MaxInputChars)
	assert.Equal(t, types.TextNative, cfg.Extraction.Backend)
	assert.Equal(t, 100, cfg.Extraction.MinTextLength)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Model.APIKey)
}

func TestLoadMissingKeyIsConfigurationError(t *testing.T) {
	v := newViper(t)

	_, err := Load(v, map[string]string{}, true)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, KeyAPIKey, cfgErr.Key)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadAPIKeyPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		setting  string
		secrets  map[string]string
		env      map[string]string
		want     string
	}{
		{
			name: "conventional env var",
			env:  map[string]string{"OPENAI_API_KEY": "sk-env"},
			want: "sk-env",
		},
		{
			name:    "secrets file beats env var",
			secrets: map[string]string{SecretOpenAI: "sk-file"},
			env:     map[string]string{"OPENAI_API_KEY": "sk-env"},
			want:    "sk-file",
		},
		{
			name:    "explicit setting beats everything",
			setting: "sk-explicit",
			secrets: map[string]string{SecretOpenAI: "sk-file"},
			env:     map[string]string{"OPENAI_API_KEY": "sk-env"},
			want:    "sk-explicit",
		},
		{
			name:     "anthropic reads its own secret",
			provider: "anthropic",
			secrets:  map[string]string{SecretOpenAI: "sk-openai", SecretAnthropic: "sk-ant"},
			want:     "sk-ant",
		},
		{
			name:     "anthropic env var",
			provider: "Anthropic",
			env:      map[string]string{"ANTHROPIC_API_KEY": "sk-ant-env", "OPENAI_API_KEY": "sk-openai"},
			want:     "sk-ant-env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			for k, val := range tt.env {
				t.Setenv(k, val)
			}
			if tt.provider != "" {
				v.Set(KeyProvider, tt.provider)
			}
			if tt.setting != "" {
				v.Set(KeyAPIKey, tt.setting)
			}

			cfg, err := Load(v, tt.secrets, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Model.APIKey)
		})
	}
}

func TestLoadAnthropicDefaultModel(t *testing.T) {
	v := newViper(t)
	v.Set(KeyProvider, "anthropic")

	cfg, err := Load(v, nil, false)
	require.NoError(t, err)
	assert.Equal(t, types.ProviderAnthropic, cfg.Model.Provider)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Model.Model)
}

func TestLoadOverrides(t *testing.T) {
	v := newViper(t)
	v.Set(KeyModel, "gpt-4.1")
	v.Set(KeyTimeout, "15s")
	v.Set(KeyTemperature, 0)
	v.Set(KeyTextBackend, "PDFTOTEXT")
	v.Set(KeyLogLevel, "DEBUG")

	cfg, err := Load(v, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4.1", cfg.Model.Model)
	assert.Equal(t, 15*time.Second, cfg.Model.Timeout)
	assert.Zero(t, cfg.Model.Temperature)
	assert.Equal(t, types.TextPdftotext, cfg.Extraction.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{KeyProvider, "mistral"},
		{KeyTemperature, 3.5},
		{KeyTimeout, "0s"},
		{KeyMaxInputChars, 0},
		{KeyMaxTokens, -1},
		{KeyTextBackend, "ocr"},
		{KeyLogLevel, "verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.value)

			_, err := Load(v, nil, false)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}
}
