package database

import (
	"fmt"
	"time"
)

// RetryWithBackoff executes a function with exponential backoff retry
// logic. It is only safe for idempotent operations; multi-step mutations
// (association replace, reindex) must not be wrapped in it, since a
// retry of partially-applied work can duplicate or skip steps.
func RetryWithBackoff(fn func() error, maxRetries int) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < maxRetries-1 && i < len(backoffs) {
			time.Sleep(backoffs[i])
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
