package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{
		client: &client,
		model:  "claude-haiku-4-5-20251001",
	}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":   "msg_test",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage": map[string]any{
			"input_tokens":  50,
			"output_tokens": 30,
		},
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"name":"Red","hex":"#f00"}`, "end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:   "You write quiz questions for children.",
		Messages: UserMessage("Write one question about colors."),
	})
	require.NoError(t, err)

	assert.Equal(t, 50, resp.Usage.InputTokens)
	assert.Equal(t, 30, resp.Usage.OutputTokens)
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)
	assert.JSONEq(t, `{"name":"Red","hex":"#f00"}`, string(resp.Content))
	assert.EqualValues(t, DefaultMaxTokens, body["max_tokens"])
}

func TestAnthropicProvider_SchemaStripsFenceAndValidates(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage("```json\n{\"prompt\":\"Sky?\",\"options\":[\"blue\",\"red\"],\"answer\":\"blue\"}\n```", "end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages: UserMessage("Write one question about the sky."),
		Schema:   draftQuestionSchema,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"prompt":"Sky?","options":["blue","red"],"answer":"blue"}`, string(resp.Content))
}

func TestAnthropicProvider_SchemaViolation(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"prompt":"Sky?"}`, "end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: UserMessage("Write one question about the sky."),
		Schema:   draftQuestionSchema,
	})
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv), "got %T (%v)", err, err)
}

func TestAnthropicProvider_TruncatedStructuredOutput(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"prompt":"Sk`, "max_tokens"))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  UserMessage("Write one question about the sky."),
		Schema:    draftQuestionSchema,
		MaxTokens: 5,
	})
	var maxTok *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &maxTok), "got %T (%v)", err, err)
}

func anthropicErrorHandler(status int, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type": "error",
			"error": map[string]any{
				"type":    kind,
				"message": kind,
			},
		})
	}
}

func TestAnthropicProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   string
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, "rate_limit_error", func(err error) bool {
			var target *ErrRateLimit
			return errors.As(err, &target)
		}},
		{"server error", http.StatusInternalServerError, "api_error", func(err error) bool {
			var target *ErrProviderUnavailable
			return errors.As(err, &target)
		}},
		{"bad key", http.StatusUnauthorized, "authentication_error", func(err error) bool {
			var target *ErrAuth
			return errors.As(err, &target)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, anthropicErrorHandler(tt.status, tt.kind))
			_, err := p.Generate(context.Background(), Request{Messages: UserMessage("test")})
			require.Error(t, err)
			assert.True(t, tt.check(err), "got %T (%v)", err, err)
		})
	}
}

func TestAnthropicProvider_Identity(t *testing.T) {
	p := &AnthropicProvider{model: "claude-haiku-4-5-20251001"}
	assert.Equal(t, "anthropic", p.Name())
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-sonnet-4-5-20250929"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-opus-4-1", "claude-opus-4-1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveModel(tt.input, anthropicModels), tt.input)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}```", `{"a":1}`},
		{"  ```json\n[1,2]\n```  ", `[1,2]`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in))
	}
}
