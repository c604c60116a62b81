package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter"
	// or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries. Drafting a whole
	// bank is slow, so the default is generous.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// envPrefix prefixes every variable read by ConfigFromEnv.
const envPrefix = "LISQUIZ_"

// DefaultConfig returns the configuration used when nothing is set: the
// anthropic provider with small, cheap models, which are plenty for
// drafting children's questions.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 2 * time.Minute,
	}
}

// providerFields points at the per-provider settings of c. Providers are
// listed in discovery order.
type providerFields struct {
	name    string
	key     *string
	model   *string
	baseURL *string // nil when the provider has no base URL setting
}

func (c *Config) providers() []providerFields {
	return []providerFields{
		{"gemini", &c.Gemini.APIKey, &c.Gemini.Model, nil},
		{"openai", &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL},
		{"anthropic", &c.Anthropic.APIKey, &c.Anthropic.Model, nil},
		{"openrouter", &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL},
	}
}

// keyVar is the LISQUIZ_ variable holding the API key of provider.
func keyVar(provider string) string {
	return envPrefix + strings.ToUpper(provider) + "_API_KEY"
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" && dst != nil {
		*dst = v
	}
}

// ConfigFromEnv reads LISQUIZ_LLM_PROVIDER, LISQUIZ_LLM_TIMEOUT and, for
// each provider P, LISQUIZ_P_API_KEY, LISQUIZ_P_MODEL and
// LISQUIZ_P_BASE_URL. Unset or invalid values keep their defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, envPrefix+"LLM_PROVIDER")
	for _, p := range cfg.providers() {
		upper := envPrefix + strings.ToUpper(p.name)
		setFromEnv(p.key, upper+"_API_KEY")
		setFromEnv(p.model, upper+"_MODEL")
		setFromEnv(p.baseURL, upper+"_BASE_URL")
	}
	if d, err := time.ParseDuration(os.Getenv(envPrefix + "LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// DiscoverConfig looks for the vendors' own API key variables, such as
// GEMINI_API_KEY, and selects the first provider found in the order
// Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, p := range cfg.providers() {
		if k := os.Getenv(strings.ToUpper(p.name) + "_API_KEY"); k != "" {
			cfg.Provider = p.name
			*p.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider exists and has an API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	for _, p := range c.providers() {
		if p.name != c.Provider {
			continue
		}
		if *p.key == "" {
			return fmt.Errorf("%s is required for the %s provider", keyVar(p.name), p.name)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider %q", c.Provider)
}

// Resolve returns the LISQUIZ_ configuration when it is usable. When no
// provider was chosen explicitly it falls back to DiscoverConfig.
func Resolve() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if os.Getenv(envPrefix+"LLM_PROVIDER") == "" {
		if found, ok := DiscoverConfig(); ok {
			return found, nil
		}
	}
	return Config{}, err
}
