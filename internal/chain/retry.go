// Package chain provides capability decorators for the chain-history
// provider: retry with exponential backoff and request throttling. The
// discovery engine itself never retries; wrapping the provider here is
// how callers opt in.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/nocturnelabs/adascout/internal/discovery"
	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

// Sentinel errors for retry classification.
var (
	ErrRetryable = &scouterr.ScoutError{
		Code:     "RETRYABLE_ERROR",
		Message:  "retryable error",
		ExitCode: scouterr.ExitProvider,
	}

	ErrRateLimited = &scouterr.ScoutError{
		Code:     "RATE_LIMITED",
		Message:  "rate limited by provider",
		ExitCode: scouterr.ExitProvider,
	}
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	MaxAttempts int           // Maximum number of attempts (including initial)
	BaseDelay   time.Duration // Initial delay between retries
	MaxDelay    time.Duration // Maximum delay between retries
}

// DefaultRetryConfig returns the default retry configuration:
// 4 attempts total with delays of roughly 1s, 2s, 4s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   time.Second,
		MaxDelay:    4 * time.Second,
	}
}

// RetryWithConfig executes the operation with exponential backoff.
// Non-retryable errors return immediately; the context cancels waits.
func RetryWithConfig[T any](ctx context.Context, cfg RetryConfig, operation func() (T, error)) (T, error) {
	var result T
	var err error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err = operation()
		if err == nil {
			return result, nil
		}

		if !IsRetryable(err) {
			return result, err
		}

		// Don't delay after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			timer := time.NewTimer(backoffDelay(attempt, cfg.BaseDelay, cfg.MaxDelay))
			select {
			case <-ctx.Done():
				timer.Stop()
				return result, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return result, fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxAttempts, err)
}

// backoffDelay computes the delay for an attempt with jitter in
// [delay/2, delay) to avoid synchronized retries.
func backoffDelay(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	delay := baseDelay * (1 << attempt)
	if delay > maxDelay {
		delay = maxDelay
	}
	half := delay / 2
	return half + time.Duration(rand.Int63n(int64(half))) //nolint:gosec // G404: jitter does not require cryptographic randomness
}

// IsRetryable returns true if the error should trigger a retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrRetryable) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, context.DeadlineExceeded)
}

// WrapRetryable marks an error as retryable.
func WrapRetryable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrRetryable, err)
}

// retryingProvider decorates a ChainHistoryProvider with retries.
type retryingProvider struct {
	inner discovery.ChainHistoryProvider
	cfg   RetryConfig
}

// WithRetry wraps a chain-history provider so transient failures are
// retried with exponential backoff before surfacing to discovery.
func WithRetry(provider discovery.ChainHistoryProvider, cfg RetryConfig) discovery.ChainHistoryProvider {
	return &retryingProvider{inner: provider, cfg: cfg}
}

func (r *retryingProvider) TransactionsByAddresses(ctx context.Context, args discovery.TxsByAddressesArgs) (discovery.TxHistoryPage, error) {
	return RetryWithConfig(ctx, r.cfg, func() (discovery.TxHistoryPage, error) {
		return r.inner.TransactionsByAddresses(ctx, args)
	})
}
