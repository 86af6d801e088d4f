// Package resilience retries calls to the upstream services this app
// depends on: the cloudparse parsing API and the Anthropic API.
package resilience

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Policy controls retry pacing for one kind of upstream call.
type Policy struct {
	// Service and Op label retry log lines.
	Service string
	Op      string

	// Attempts is the total number of tries, the first included.
	Attempts int

	// BaseDelay is the wait before the first retry; each further retry
	// doubles it, up to MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// Jitter randomizes each delay by this fraction in both directions.
	Jitter float64

	// Retryable overrides the default error classification when set.
	Retryable func(error) bool
}

// ParsePolicy is the pacing for cloudparse calls. Uploads carry whole
// documents, so retries back off into whole seconds quickly.
func ParsePolicy(op string) Policy {
	return Policy{
		Service:   "cloudparse",
		Op:        op,
		Attempts:  3,
		BaseDelay: time.Second,
		MaxDelay:  15 * time.Second,
		Jitter:    0.25,
	}
}

// LLMPolicy is the pacing for Anthropic calls. Rate limiting and overload
// responses dominate failures there, so the first retry already waits a
// couple of seconds.
func LLMPolicy(op string) Policy {
	return Policy{
		Service:   "anthropic",
		Op:        op,
		Attempts:  3,
		BaseDelay: 2 * time.Second,
		MaxDelay:  30 * time.Second,
		Jitter:    0.25,
	}
}

// Call invokes fn under p, retrying failures the classifier deems worth
// retrying. The value of the first successful attempt is returned; once
// attempts are exhausted, the last error is. Context cancellation stops
// retrying immediately.
func Call[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = Retryable
	}

	var zero T
	var lastErr error
	for attempt := 0; ; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) || attempt == p.Attempts-1 {
			return zero, lastErr
		}

		delay := p.backoff(attempt)
		zap.L().Warn("retrying upstream call",
			zap.String("service", p.Service),
			zap.String("op", p.Op),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}
}

// backoff is the delay after a failed attempt (0-based): BaseDelay doubled
// per attempt, capped at MaxDelay, then jittered.
func (p Policy) backoff(attempt int) time.Duration {
	delay := float64(p.BaseDelay)
	for i := 0; i < attempt && delay < float64(p.MaxDelay); i++ {
		delay *= 2
	}
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	if p.Jitter > 0 {
		delay += delay * p.Jitter * (rand.Float64()*2 - 1)
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}
