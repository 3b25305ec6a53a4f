package indexer

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const defaultRetryBackoff = 100 * time.Millisecond

// withRetry runs op until it succeeds or maxRetries retries have failed, backing
// off exponentially from baseDelay.
func withRetry[T any](ctx context.Context, maxRetries int, baseDelay time.Duration, logger *zap.Logger, op func() (T, error)) (T, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = defaultRetryBackoff
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = baseDelay
	policy.MaxInterval = baseDelay * 32

	notify := func(err error, delay time.Duration) {
		logger.Warn("retrying", zap.Error(err), zap.Duration("backoff", delay))
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(maxRetries)+1),
		backoff.WithNotify(notify),
	)
}
