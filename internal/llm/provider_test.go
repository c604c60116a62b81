package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lisquiz/lisquiz/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: UserMessage("first")})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(resp1.Content))
	assert.Equal(t, 10, resp1.Usage.InputTokens)
	assert.Equal(t, "end", resp1.StopReason)

	resp2, err := mock.Generate(context.Background(), Request{Messages: UserMessage("second")})
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(resp2.Content))
	assert.Equal(t, "second", mock.LastRequest().Messages[0].Content)
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "got %T", err)
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl), "got %T", err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, PurposeBankDraft, PurposeFrom(WithPurpose(ctx, PurposeBankDraft)))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LISQUIZ_LLM_PROVIDER", "LISQUIZ_ANTHROPIC_API_KEY", "LISQUIZ_OPENAI_API_KEY",
		"LISQUIZ_GEMINI_API_KEY", "LISQUIZ_OPENROUTER_API_KEY", "LISQUIZ_LLM_TIMEOUT",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestResolve(t *testing.T) {
	t.Run("explicit configuration wins", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("LISQUIZ_ANTHROPIC_API_KEY", "sk-ant")
		t.Setenv("OPENAI_API_KEY", "sk-oai")
		t.Setenv("LISQUIZ_LLM_TIMEOUT", "45s")

		cfg, err := Resolve()
		require.NoError(t, err)
		assert.Equal(t, "anthropic", cfg.Provider)
		assert.Equal(t, 45*time.Second, cfg.Timeout)
	})

	t.Run("falls back to discovery", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-oai")

		cfg, err := Resolve()
		require.NoError(t, err)
		assert.Equal(t, "openai", cfg.Provider)
		assert.Equal(t, "sk-oai", cfg.OpenAI.APIKey)
	})

	t.Run("explicit provider without key fails", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("LISQUIZ_LLM_PROVIDER", "gemini")
		t.Setenv("OPENAI_API_KEY", "sk-oai")

		_, err := Resolve()
		assert.ErrorContains(t, err, "LISQUIZ_GEMINI_API_KEY")
	})

	t.Run("nothing configured", func(t *testing.T) {
		clearLLMEnv(t)
		_, err := Resolve()
		assert.Error(t, err)
	})
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.Name())

	_, err = NewProvider(context.Background(), Config{Provider: "nope"}, nil)
	assert.Error(t, err)

	_, err = NewProvider(context.Background(), Config{Provider: "anthropic"}, nil)
	assert.ErrorContains(t, err, "initializing anthropic provider")
}

// recordingRepo captures LLM events and ignores everything else.
type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, repo)
	ctx := WithPurpose(context.Background(), PurposeBankDraft)

	req := Request{
		System:   "Write quiz questions.",
		Messages: UserMessage("Topic: colors"),
		Schema:   draftQuestionSchema,
	}
	_, err := p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(ctx, req)
	require.Error(t, err)

	require.Len(t, repo.events, 2)
	ok := repo.events[0]
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, PurposeBankDraft, ok.Purpose)
	assert.True(t, ok.Success)
	assert.Equal(t, 7, ok.InputTokens)
	assert.Equal(t, `{"ok":true}`, ok.ResponseBody)
	assert.True(t, strings.Contains(ok.RequestBody, "[system]\nWrite quiz questions."))
	assert.True(t, strings.Contains(ok.RequestBody, "[user]\nTopic: colors"))
	assert.True(t, strings.Contains(ok.RequestBody, "[schema: test-object]"))

	failed := repo.events[1]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "down")
}

func TestLoggingProvider_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: fmt.Errorf("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), repo)

	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
	assert.Len(t, repo.events, 1)
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), nil)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}
