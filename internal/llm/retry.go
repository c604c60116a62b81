package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lisquiz/lisquiz/internal/logger"
)

// RetryProvider retries transient failures of the wrapped Provider with
// capped exponential backoff. A malformed response is asked for again
// once; truncation, bad credentials and cancellation fail immediately.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	reasked := false

	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if reasked {
				return nil, err
			}
			reasked = true
		}
		if attempt+1 == r.config.MaxAttempts {
			break
		}

		wait := r.wait(attempt, err)
		logger.Warn("llm: retrying request", logrus.Fields{
			"provider": r.inner.Name(),
			"attempt":  attempt + 1,
			"wait":     wait.String(),
			"error":    err.Error(),
		})
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) Name() string { return r.inner.Name() }

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// wait returns the pause before the next attempt: the provider's
// Retry-After when given, else InitialWait*Multiplier^attempt capped at
// MaxWait, jittered by up to 20% either way.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := math.Min(
		float64(r.config.InitialWait)*math.Pow(r.config.Multiplier, float64(attempt)),
		float64(r.config.MaxWait),
	)
	d *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(d, 0))
}
