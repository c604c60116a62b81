package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

var (
	okReply   = MockResponse{Content: json.RawMessage(`{"title":"ok"}`)}
	downReply = MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}}
	badReply  = MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`nope`), Err: errors.New("not json")}}
)

func TestRetry_Attempts(t *testing.T) {
	tests := []struct {
		name      string
		script    []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first try", []MockResponse{okReply}, 1, false},
		{"outage then success", []MockResponse{downReply, okReply}, 2, false},
		{"outage every time", []MockResponse{downReply, downReply, downReply, okReply}, 3, true},
		{"malformed asked again once", []MockResponse{badReply, badReply, okReply}, 2, true},
		{"malformed then success", []MockResponse{badReply, okReply}, 2, false},
		{"truncated", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okReply}, 1, true},
		{"bad key", []MockResponse{{Err: &ErrAuth{Err: errors.New("401")}}, okReply}, 1, true},
		{"rate limit hint", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, okReply}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			resp, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			assert.Equal(t, tt.wantCalls, mock.CallCount())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, `{"title":"ok"}`, string(resp.Content))
		})
	}
}

func TestRetry_KeepsErrorType(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrAuth{Err: errors.New("401")}})
	_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
	var auth *ErrAuth
	assert.ErrorAs(t, err, &auth)
}

func TestRetry_StopsWhenCancelled(t *testing.T) {
	mock := NewMockProvider(downReply, downReply, okReply)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry()).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_Identity(t *testing.T) {
	p := WithRetry(NewMockProvider(), fastRetry())
	assert.Equal(t, "mock", p.Name())
	assert.Equal(t, "mock", p.ModelID())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want retryKind
	}{
		{context.Canceled, retryNever},
		{fmt.Errorf("call: %w", context.DeadlineExceeded), retryNever},
		{&ErrMaxTokensExceeded{}, retryNever},
		{&ErrAuth{}, retryNever},
		{&ErrInvalidResponse{Err: errors.New("x")}, retryOnce},
		{&ErrRateLimit{}, retryBackoff},
		{&ErrProviderUnavailable{}, retryBackoff},
		{errors.New("connection reset"), retryBackoff},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.err), "%v", tt.err)
	}
}

func TestRetryWait(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}

	assert.Equal(t, 3*time.Second, r.wait(0, &ErrRateLimit{RetryAfter: 3 * time.Second}))
	for attempt, base := range []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, time.Second} {
		if attempt == 2 {
			attempt = 10 // capped
		}
		got := r.wait(attempt, errors.New("x"))
		assert.InDelta(t, float64(base), float64(got), float64(base)*0.2+1, "attempt %d", attempt)
	}
}
