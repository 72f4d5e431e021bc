package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// throttledProvider wraps a Provider with a process-wide rate limit on
// completion calls. Retry and backoff stay with the underlying service
// client; this only spaces out requests.
type throttledProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// Throttled decorates a provider with a requests-per-second limit
func Throttled(inner Provider, requestsPerSecond float64, burst int) Provider {
	if burst <= 0 {
		burst = 1
	}

	return &throttledProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the underlying provider name
func (t *throttledProvider) Name() string {
	return t.inner.Name()
}

// Complete waits for rate limit clearance, then delegates
func (t *throttledProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return t.inner.Complete(ctx, req)
}

// IsAvailable delegates without consuming rate budget
func (t *throttledProvider) IsAvailable(ctx context.Context) bool {
	return t.inner.IsAvailable(ctx)
}
