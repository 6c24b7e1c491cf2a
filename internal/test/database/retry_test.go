package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"portfolio-backend/internal/database"
)

func TestRetryWithBackoff_SucceedsImmediately(t *testing.T) {
	calls := 0

	err := database.RetryWithBackoff(func() error {
		calls++
		return nil
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_ReturnsWithoutSleepingAfterFinalAttempt(t *testing.T) {
	calls := 0
	start := time.Now()

	err := database.RetryWithBackoff(func() error {
		calls++
		return errors.New("transient")
	}, 1)

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRetryWithBackoff_SucceedsAfterFailure(t *testing.T) {
	calls := 0

	err := database.RetryWithBackoff(func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
