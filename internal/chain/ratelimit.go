package chain

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle bounds the request rate against a single indexer endpoint
// using a token bucket.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle allowing perSecond sustained requests
// with the given burst.
func NewThrottle(perSecond float64, burst int) *Throttle {
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// DefaultThrottle returns a throttle with default settings:
// 10 requests/second, burst of 20. Address discovery probes dozens of
// addresses per run, so the default leans on burst headroom.
func DefaultThrottle() *Throttle {
	return NewThrottle(10, 20)
}

// Wait blocks until a request is allowed or the context is canceled.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Allow reports whether a request may proceed immediately.
func (t *Throttle) Allow() bool {
	return t.limiter.Allow()
}
