package analysis

import (
	"log/slog"

	"estatedocs/internal/config"
	"estatedocs/internal/service/analysis/providers/anthropic"
	"estatedocs/internal/service/analysis/providers/mock"
)

// SetupProviders builds the provider registry from configuration. The mock
// provider is always registered so analysis works without any API keys; the
// Anthropic provider is added when a key is configured.
func SetupProviders(cfg *config.Config, logger *slog.Logger) (*Registry, string) {
	registry := NewProviderRegistry()
	registry.Register(mock.NewProvider())

	defaultProvider := "mock"

	if cfg.AnthropicAPIKey != "" {
		provider, err := anthropic.NewProvider(cfg.AnthropicAPIKey)
		if err != nil {
			logger.Warn("failed to create anthropic provider, using mock", "error", err)
		} else {
			registry.Register(provider)
			if cfg.DefaultProvider == "anthropic" {
				defaultProvider = "anthropic"
			}
			logger.Info("anthropic analysis provider registered")
		}
	} else {
		logger.Info("no anthropic API key configured, analysis uses mock provider")
	}

	return registry, defaultProvider
}
