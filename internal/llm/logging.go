package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lisquiz/lisquiz/internal/logger"
	"github.com/lisquiz/lisquiz/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an
// event and a log line.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	now       func() time.Time
}

// WithLogging wraps a Provider with event logging. A nil repo only logs.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo, now: time.Now}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.inner.Name(),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   l.now().Sub(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	fields := logrus.Fields{
		"provider":      data.Provider,
		"model":         data.Model,
		"purpose":       purpose,
		"latency_ms":    data.LatencyMs,
		"input_tokens":  data.InputTokens,
		"output_tokens": data.OutputTokens,
	}
	if err != nil {
		logger.Error("llm: request failed", err, fields)
	} else {
		logger.Info("llm: request completed", fields)
	}

	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			logger.Warn("llm: failed to record request event", logrus.Fields{"error": logErr.Error()})
		}
	}

	return resp, err
}

func (l *LoggingProvider) Name() string { return l.inner.Name() }

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
