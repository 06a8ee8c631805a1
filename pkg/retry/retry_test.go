package retry

import (
	"fmt"
	"testing"
	"time"
)

func TestRetryerSuccess(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 3
	retryer := New(config)

	attempts := 0
	err := retryer.Do(func() error {
		attempts++
		return nil
	})

	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetryerRetryableError(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 3
	config.InitialDelay = time.Millisecond
	retryer := New(config)

	attempts := 0
	err := retryer.Do(func() error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("transient")
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryerNonRetryablePredicate(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 5
	config.InitialDelay = time.Millisecond
	config.ShouldRetry = func(err error) bool { return false }
	retryer := New(config)

	attempts := 0
	err := retryer.Do(func() error {
		attempts++
		return fmt.Errorf("permanent")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt (no retry on non-retryable error), got %d", attempts)
	}
}

func TestRetryerExhaustsAttempts(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 3
	config.InitialDelay = time.Millisecond
	retryer := New(config)

	attempts := 0
	err := retryer.Do(func() error {
		attempts++
		return fmt.Errorf("always fails")
	})

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryerOnRetryCallback(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 3
	config.InitialDelay = time.Millisecond

	var calls int
	config.OnRetry = func(attempt int, err error, delay time.Duration) {
		calls++
	}
	retryer := New(config)

	attempts := 0
	_ = retryer.Do(func() error {
		attempts++
		if attempts < 2 {
			return fmt.Errorf("transient")
		}
		return nil
	})

	if calls != 1 {
		t.Errorf("expected OnRetry called once, got %d", calls)
	}
}
