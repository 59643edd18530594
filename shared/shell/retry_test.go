package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/spies"
)

func Test_RetryWithExponentialBackoff_Success_NoRetries(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return nil
	}

	meta, err := RetryWithExponentialBackoff(ctx, fn)

	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, time.Duration(0), meta.TotalDelay)
	assert.Equal(t, "none", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_RetryOnConcurrencyConflict(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return errors.Join(ledger.ErrConcurrencyConflict, errors.New("could not serialize access"))
		}
		return nil
	}

	meta, err := RetryWithExponentialBackoff(ctx, fn, WithBaseDelay(time.Millisecond))

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Greater(t, meta.TotalDelay, time.Duration(0))
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_FailsFast_OnDomainError(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return core.Failure(core.ErrNoCopiesAvailable, "all copies are lent out")
	}

	meta, err := RetryWithExponentialBackoff(ctx, fn)

	assert.ErrorIs(t, err, core.ErrNoCopiesAvailable)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "domain", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_FailsFast_OnStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return errors.Join(ledger.ErrStoreUnavailable, errors.New("connection refused"))
	}

	meta, err := RetryWithExponentialBackoff(ctx, fn)

	assert.ErrorIs(t, err, ledger.ErrStoreUnavailable)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "store_unavailable", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_ExhaustsRetries(t *testing.T) {
	// arrange
	ctx := context.Background()
	metrics := spies.NewMetricsCollectorSpy()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return ledger.ErrConcurrencyConflict
	}

	// act
	meta, err := RetryWithExponentialBackoff(ctx, fn,
		WithMaxAttempts(3),
		WithBaseDelay(time.Millisecond),
		WithJitterFactor(0),
		WithMetrics(metrics, "BorrowTitle"),
	)

	// assert
	assert.ErrorIs(t, err, ledger.ErrConcurrencyConflict)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.True(t, meta.RetriesExhausted)
	assert.Equal(t, "concurrency_conflict", meta.LastErrorType)
	assert.Equal(t, 3*time.Millisecond, meta.TotalDelay, "1ms + 2ms without jitter")

	assert.Equal(t, 2, metrics.CountCounterRecords(CommandHandlerRetriesMetric, map[string]string{LogAttrCommandType: "BorrowTitle"}))
	assert.Equal(t, 1, metrics.CountCounterRecords(CommandHandlerMaxRetriesReachedMetric, map[string]string{
		LogAttrCommandType:        "BorrowTitle",
		metricLabelFinalErrorType: "concurrency_conflict",
	}))
	assert.Len(t, metrics.GetDurationRecords(), 2)
}

func Test_RetryWithExponentialBackoff_StopsWhenContextIsCanceled(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		cancel()
		return ledger.ErrConcurrencyConflict
	}

	// act
	meta, err := RetryWithExponentialBackoff(ctx, fn, WithBaseDelay(time.Second))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "context_canceled", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	ctx := context.Background()
	fn := func(_ context.Context) error { return nil }

	testCases := []struct {
		name    string
		option  RetryOption
		wantErr error
	}{
		{"zero attempts", WithMaxAttempts(0), ErrInvalidMaxAttempts},
		{"negative delay", WithBaseDelay(-time.Millisecond), ErrNegativeBaseDelay},
		{"jitter above one", WithJitterFactor(1.5), ErrInvalidJitterFactor},
		{"jitter below zero", WithJitterFactor(-0.1), ErrInvalidJitterFactor},
		{"nil collector", WithMetrics(nil, "BorrowTitle"), ErrNilMetricsCollector},
		{"empty command type", WithMetrics(spies.NewMetricsCollectorSpy(), ""), ErrEmptyCommandType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RetryWithExponentialBackoff(ctx, fn, tc.option)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func Test_ErrorTypeOf(t *testing.T) {
	assert.Equal(t, "none", errorTypeOf(nil))
	assert.Equal(t, "concurrency_conflict", errorTypeOf(ledger.ErrConcurrencyConflict))
	assert.Equal(t, "context_canceled", errorTypeOf(context.Canceled))
	assert.Equal(t, "context_deadline_exceeded", errorTypeOf(context.DeadlineExceeded))
	assert.Equal(t, "domain", errorTypeOf(core.ErrLoanLimitExceeded))
	assert.Equal(t, "other", errorTypeOf(errors.New("boom")))
}
