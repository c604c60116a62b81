package llm

import "errors"

const openRouterURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible
// endpoint. Model IDs such as "google/gemini-2.0-flash-exp" are sent
// unchanged, and strict schema mode is off because not every routed
// model supports it.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider for cfg.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	url := cfg.BaseURL
	if url == "" {
		url = openRouterURL
	}
	return &OpenRouterProvider{
		OpenAIProvider: newCompatibleProvider("openrouter", cfg.APIKey, url, cfg.Model, false),
	}, nil
}
