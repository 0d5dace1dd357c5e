// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"fmt"
	"net/http"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// NewBackend returns the ModelBackend for cfg.Provider.
func NewBackend(cfg types.ModelConfig, httpClient *http.Client) (ModelBackend, error) {
	switch cfg.Provider {
	case types.ProviderOpenAI, "":
		return NewOpenAIBackend(cfg, httpClient), nil
	case types.ProviderAnthropic:
		return NewClaudeBackend(cfg, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q (want %q or %q)",
			cfg.Provider, types.ProviderOpenAI, types.ProviderAnthropic)
	}
}
