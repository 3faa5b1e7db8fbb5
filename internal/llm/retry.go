package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider re-issues failed calls with jittered exponential backoff.
//
// Truncation and context errors end the loop at once. A schema violation
// is retried a single time, since a model that answers badly twice in a
// row tends to keep doing so. Everything else is treated as transient.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err         error
		sawInvalid  bool
		lastAttempt = r.config.MaxAttempts - 1
	)
	for attempt := 0; ; attempt++ {
		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}

		var inv *ErrInvalidResponse
		switch {
		case isFinal(err), attempt == lastAttempt:
			return nil, err
		case errors.As(err, &inv):
			if sawInvalid {
				return nil, err
			}
			sawInvalid = true
		}

		wait := r.backoff(attempt, err)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt+1, err, wait)
		}
		if werr := sleep(ctx, wait); werr != nil {
			return nil, werr
		}
	}
}

func isFinal(err error) bool {
	var trunc *ErrMaxTokensExceeded
	return errors.As(err, &trunc) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// backoff is InitialWait * Multiplier^attempt capped at MaxWait, with 20%
// jitter either way. A rate limit that names its own delay overrides it.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := math.Min(
		float64(r.config.InitialWait)*math.Pow(r.config.Multiplier, float64(attempt)),
		float64(r.config.MaxWait),
	)
	jitter := 0.8 + 0.4*rand.Float64()
	return time.Duration(base * jitter)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
