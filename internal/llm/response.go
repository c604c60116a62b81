package llm

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Response.StopReason values.
const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// checkStructured rejects structured output that was cut off or does not
// match the request schema. Plain text responses pass unchecked.
func checkStructured(req Request, content json.RawMessage, stop string) error {
	if req.Schema == nil {
		return nil
	}
	if stop == stopMaxTokens {
		return &ErrMaxTokensExceeded{Content: content}
	}
	return validateResponse(req.Schema, content)
}

// resolveModel maps a friendly name such as "claude-haiku" to a model ID.
// Anything else is taken to be an ID already.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

// mapStatus turns an HTTP status from a provider SDK into one of the
// package errors.
func mapStatus(status int, err error) error {
	switch status {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrAuth{Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// stripCodeFence unwraps a ```json fence that some models add even when
// asked for bare JSON.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	body, ok := strings.CutPrefix(t, "```")
	if !ok {
		return s
	}
	if _, rest, found := strings.Cut(body, "\n"); found {
		body = rest
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(body), "```"))
}
