package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is returned when the provider throttles us (HTTP 429).
// RetryAfter is zero when the provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm: rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm: rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse carries model output that could not be used as a
// question bank draft: not JSON, or not matching the request schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return "llm: unusable response: " + e.Err.Error()
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable wraps network failures and 5xx answers.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm: provider unavailable"
	}
	return "llm: provider unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the model stopped at Request.MaxTokens and
// Content is a truncated document.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "llm: response cut off at the token limit"
}

// ErrAuth means the API key was rejected.
type ErrAuth struct {
	Err error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("llm: credentials rejected: %v", e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// retryKind says how the retry decorator treats an error.
type retryKind int

const (
	retryNever retryKind = iota
	retryOnce            // asking again may give a well-formed answer
	retryBackoff
)

func classify(err error) retryKind {
	var (
		maxTok  *ErrMaxTokensExceeded
		auth    *ErrAuth
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &maxTok), errors.As(err, &auth):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	default:
		// Rate limits, outages and unknown transport errors.
		return retryBackoff
	}
}
