// Bounded fixed-delay retry for external service calls. One policy object
// is shared by the feed fetch, sheet update and mail send paths, each with
// its own retryable-error classifier.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ErrorClassifier reports whether an error is worth another attempt.
type ErrorClassifier func(error) bool

// Policy retries an operation up to MaxAttempts times with a fixed Delay
// between attempts. No jitter, no backoff growth.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration

	isRetryable ErrorClassifier
	logger      *slog.Logger
}

// NewPolicy creates a retry policy. A nil classifier retries nothing.
func NewPolicy(maxAttempts int, delay time.Duration, classifier ErrorClassifier, logger *slog.Logger) *Policy {
	return &Policy{
		MaxAttempts: maxAttempts,
		Delay:       delay,
		isRetryable: classifier,
		logger:      logger,
	}
}

// Do runs operation until it succeeds, returns a non-retryable error, or
// exhausts MaxAttempts. The wait between attempts is cancellable via
// ctx. After exhaustion the last error is returned wrapped with the attempt
// count.
func (p *Policy) Do(ctx context.Context, name string, operation func() error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				p.logger.Info("operation succeeded after retry",
					"operation", name,
					"attempt", attempt)
			}
			return nil
		}

		retryable := p.isRetryable != nil && p.isRetryable(lastErr)
		p.logger.Warn("operation attempt failed",
			"operation", name,
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"retryable", retryable,
			"error", lastErr)

		if !retryable {
			return lastErr
		}

		if attempt == p.MaxAttempts {
			break
		}

		p.logger.Info("waiting before retry",
			"operation", name,
			"attempt", attempt,
			"delay", p.Delay)

		select {
		case <-ctx.Done():
			p.logger.Error("retry cancelled by context",
				"operation", name,
				"attempt", attempt,
				"context_error", ctx.Err())
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(p.Delay):
		}
	}

	p.logger.Error("operation failed permanently",
		"operation", name,
		"attempts", p.MaxAttempts,
		"error", lastErr)

	return fmt.Errorf("%s failed after %d attempts: %w", name, p.MaxAttempts, lastErr)
}
