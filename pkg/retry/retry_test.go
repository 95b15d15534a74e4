package retry

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/objectfs/ocifs/pkg/errors"
)

func TestRetryer_Success(t *testing.T) {
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

func TestRetryer_RetryableError(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 3
	config.InitialDelay = 10 * time.Millisecond
	config.Jitter = false
	retryer := New(config)

	attempts := 0
	err := retryer.Do(func() error {
		attempts++
		if attempts < 3 {
			return errors.New(errors.ErrCodeOperationTimeout, "request deadline exceeded")
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

func TestRetryer_NonRetryableError(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 3
	retryer := New(config)

	attempts := 0
	err := retryer.Do(func() error {
		attempts++
		return errors.New(errors.ErrCodeObjectNotFound, "object missing")
	})

	if err == nil {
		t.Error("expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt (no retry), got %d", attempts)
	}
}

func TestRetryer_MaxAttemptsExceeded(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 3
	config.InitialDelay = 10 * time.Millisecond
	config.Jitter = false
	retryer := New(config)

	attempts := 0
	err := retryer.Do(func() error {
		attempts++
		return errors.New(errors.ErrCodeNetworkError, "connection refused")
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if !strings.Contains(err.Error(), "max retry attempts (3) exceeded") {
		t.Errorf("error should report exhaustion: %v", err)
	}
}

func TestRetryer_ExtraRetryableCodes(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 3
	config.InitialDelay = 5 * time.Millisecond
	config.Jitter = false
	config.ExtraRetryableCodes = []errors.ErrorCode{errors.ErrCodeUnexpectedStatus}
	retryer := New(config)

	attempts := 0
	err := retryer.Do(func() error {
		attempts++
		if attempts < 2 {
			return errors.New(errors.ErrCodeUnexpectedStatus, "throttled").WithStatus(429)
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetryer_ContextCancellation(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 10
	config.InitialDelay = 50 * time.Millisecond
	config.Jitter = false
	retryer := New(config)

	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := retryer.DoWithContext(ctx, func(context.Context) error {
		attempts++
		cancel() // cancel while the retryer waits out the backoff
		return errors.New(errors.ErrCodeNetworkError, "connection reset")
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "canceled") {
		t.Errorf("error should report cancellation: %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt before cancellation, got %d", attempts)
	}
}

func TestRetryer_OnRetryCallback(t *testing.T) {
	var retries []int

	config := DefaultConfig()
	config.MaxAttempts = 3
	config.InitialDelay = 5 * time.Millisecond
	config.Jitter = false
	config.OnRetry = func(attempt int, err error, delay time.Duration) {
		retries = append(retries, attempt)
		if err == nil {
			t.Error("callback should carry the failing error")
		}
		if delay <= 0 {
			t.Errorf("callback should carry a positive delay, got %v", delay)
		}
	}
	retryer := New(config)

	_ = retryer.Do(func() error {
		return errors.New(errors.ErrCodeNetworkError, "connection refused")
	})

	if len(retries) != 2 {
		t.Fatalf("expected 2 retry callbacks, got %d", len(retries))
	}
	if retries[0] != 1 || retries[1] != 2 {
		t.Errorf("callbacks out of order: %v", retries)
	}
}

func TestRetryer_PlainErrorsAreNotRetried(t *testing.T) {
	config := DefaultConfig()
	config.MaxAttempts = 5
	retryer := New(config)

	attempts := 0
	err := retryer.Do(func() error {
		attempts++
		return fmt.Errorf("some untyped failure")
	})

	if err == nil {
		t.Error("expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("untyped errors must not be retried, got %d attempts", attempts)
	}
}

func TestCalculateDelay_Backoff(t *testing.T) {
	config := DefaultConfig()
	config.InitialDelay = 100 * time.Millisecond
	config.MaxDelay = 500 * time.Millisecond
	config.Multiplier = 2.0
	config.Jitter = false
	retryer := New(config)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: 100 * time.Millisecond},
		{attempt: 2, want: 200 * time.Millisecond},
		{attempt: 3, want: 400 * time.Millisecond},
		{attempt: 4, want: 500 * time.Millisecond}, // capped
		{attempt: 10, want: 500 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := retryer.calculateDelay(tt.attempt); got != tt.want {
			t.Errorf("attempt %d: delay = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestCalculateDelay_JitterStaysNearBase(t *testing.T) {
	config := DefaultConfig()
	config.InitialDelay = 100 * time.Millisecond
	config.Jitter = true
	retryer := New(config)

	for i := 0; i < 50; i++ {
		delay := retryer.calculateDelay(1)
		if delay < 80*time.Millisecond || delay > 120*time.Millisecond {
			t.Fatalf("jittered delay %v outside the 20%% band", delay)
		}
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	retryer := New(Config{})

	if retryer.config.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", retryer.config.MaxAttempts)
	}
	if retryer.config.InitialDelay != 100*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 100ms", retryer.config.InitialDelay)
	}
	if retryer.config.MaxDelay != 30*time.Second {
		t.Errorf("MaxDelay = %v, want 30s", retryer.config.MaxDelay)
	}
	if retryer.config.Multiplier != 2.0 {
		t.Errorf("Multiplier = %v, want 2.0", retryer.config.Multiplier)
	}
}

func TestWithBackoff(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), 2, func() error {
		attempts++
		return errors.New(errors.ErrCodeObjectNotFound, "gone")
	})

	if err == nil {
		t.Error("expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("not-found must not retry, got %d attempts", attempts)
	}
}

func TestRetryerBuilders(t *testing.T) {
	base := New(DefaultConfig())

	modified := base.WithMaxAttempts(7).WithInitialDelay(time.Second)

	if modified.config.MaxAttempts != 7 {
		t.Errorf("MaxAttempts = %d, want 7", modified.config.MaxAttempts)
	}
	if modified.config.InitialDelay != time.Second {
		t.Errorf("InitialDelay = %v, want 1s", modified.config.InitialDelay)
	}
	if base.config.MaxAttempts != 5 {
		t.Error("builders must not mutate the receiver")
	}
}
