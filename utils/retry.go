package utils

import (
	"fmt"
	"time"
)

// Retry runs fn up to attempts times with exponentially growing delays,
// logging each failed attempt. Used for database connections, where the
// server may still be starting when the pipeline launches.
func Retry(logger *Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := baseDelay

	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < attempts {
			logger.Warn("[retry] %s failed (attempt %d/%d): %v, retrying in %v",
				name, attempt, attempts, lastErr, delay)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
