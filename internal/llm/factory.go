package llm

import (
	"context"
	"fmt"

	"github.com/lisquiz/lisquiz/internal/store"
)

// NewProvider builds the provider named by cfg.Provider. Real providers
// are wrapped so each attempt is logged to eventRepo and transient
// failures are retried: retry(logging(base)). eventRepo may be nil. The
// mock provider is returned bare with an empty script.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}
	base, err := newBaseProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return WithRetry(WithLogging(base, eventRepo), cfg.Retry), nil
}

func newBaseProvider(ctx context.Context, cfg Config) (p Provider, err error) {
	switch cfg.Provider {
	case "anthropic":
		p, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		p, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		p, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg.Gemini)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return p, nil
}
