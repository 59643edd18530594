package shell

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

// Values of RetryMetrics.LastErrorType and of the error_type metric labels.
const (
	errorTypeNone                = "none"
	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeStoreUnavailable    = "store_unavailable"
	errorTypeContextCanceled     = "context_canceled"
	errorTypeDeadlineExceeded    = "context_deadline_exceeded"
	errorTypeDomain              = "domain"
	errorTypeOther               = "other"
)

var (
	ErrNilMetricsCollector = errors.New("metrics collector must not be nil")
	ErrEmptyCommandType    = errors.New("command type must not be empty")
	ErrInvalidMaxAttempts  = errors.New("max attempts must be positive")
	ErrNegativeBaseDelay   = errors.New("base delay must not be negative")
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// RetryableFunc is one attempt of a unit of work.
type RetryableFunc func(ctx context.Context) error

// RetryOption configures RetryWithExponentialBackoff.
type RetryOption func(*retryConfig) error

type retryConfig struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
	metrics      MetricsCollector
	commandType  string
}

// RetryWithExponentialBackoff runs fn until it succeeds, fails with a non-retryable error,
// or runs out of attempts. With the defaults the attempts start after
// 0, 10, 20, 40, 80 and 160 ms, each delay stretched by up to 30% jitter.
//
// Only ledger.ErrConcurrencyConflict is retried: two writers raced for the same title or patron
// and the loser gets a fresh transaction. Timeouts are not retried since that only adds load.
func RetryWithExponentialBackoff(ctx context.Context, fn RetryableFunc, options ...RetryOption) (RetryMetrics, error) {
	config := retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	for _, option := range options {
		if err := option(&config); err != nil {
			return RetryMetrics{LastErrorType: errorTypeOther}, err
		}
	}

	var (
		result RetryMetrics
		err    error
	)

	for attempt := 1; attempt <= config.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := config.backoff(attempt)
			config.observeDelay(ctx, attempt, delay)

			if waitErr := sleep(ctx, delay); waitErr != nil {
				result.LastErrorType = errorTypeOf(waitErr)
				return result, waitErr
			}

			result.TotalDelay += delay
		}

		result.Attempts++
		err = fn(ctx)
		result.LastErrorType = errorTypeOf(err)

		if err == nil || !errors.Is(err, ledger.ErrConcurrencyConflict) {
			return result, err
		}

		if attempt < config.maxAttempts {
			config.count(ctx, CommandHandlerRetriesMetric, BuildRetryLabels(config.commandType, attempt, result.LastErrorType))
		}
	}

	result.RetriesExhausted = true
	config.count(ctx, CommandHandlerMaxRetriesReachedMetric, map[string]string{
		LogAttrCommandType:        config.commandType,
		metricLabelFinalErrorType: result.LastErrorType,
	})

	return result, err
}

// ValidateRetryOptions reports the first invalid option, so that misconfiguration surfaces at
// startup instead of on the first command.
func ValidateRetryOptions(options ...RetryOption) error {
	var config retryConfig

	for _, option := range options {
		if err := option(&config); err != nil {
			return err
		}
	}

	return nil
}

// backoff is the delay before the given attempt (2 or later): baseDelay doubled per earlier retry, plus jitter.
func (c retryConfig) backoff(attempt int) time.Duration {
	delay := c.baseDelay << (attempt - 2)
	jitter := time.Duration(rand.Float64() * c.jitterFactor * float64(delay)) //nolint:gosec // jitter needs no crypto randomness

	return delay + jitter
}

func (c retryConfig) observeDelay(ctx context.Context, attempt int, delay time.Duration) {
	if c.metrics == nil {
		return
	}

	recordDuration(ctx, c.metrics, CommandHandlerRetryDelayMetric, delay, map[string]string{
		LogAttrCommandType:   c.commandType,
		metricLabelAttemptNo: strconv.Itoa(attempt - 1),
	})
}

func (c retryConfig) count(ctx context.Context, metric string, labels map[string]string) {
	if c.metrics == nil {
		return
	}

	incrementCounter(ctx, c.metrics, metric, labels)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func errorTypeOf(err error) string {
	switch {
	case err == nil:
		return errorTypeNone
	case errors.Is(err, ledger.ErrConcurrencyConflict):
		return errorTypeConcurrencyConflict
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return errorTypeStoreUnavailable
	case errors.Is(err, context.Canceled):
		return errorTypeContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeDeadlineExceeded
	case core.IsDomainError(err):
		return errorTypeDomain
	default:
		return errorTypeOther
	}
}

// WithMaxAttempts sets how often fn runs at most, the first run included.
func WithMaxAttempts(attempts int) RetryOption {
	return func(c *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		c.maxAttempts = attempts
		return nil
	}
}

// WithBaseDelay sets the delay before the first retry.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(c *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}
		c.baseDelay = delay
		return nil
	}
}

// WithJitterFactor sets the random stretch of each delay, between 0 (none) and 1 (up to double).
func WithJitterFactor(factor float64) RetryOption {
	return func(c *retryConfig) error {
		if factor < 0 || factor > 1 {
			return ErrInvalidJitterFactor
		}
		c.jitterFactor = factor
		return nil
	}
}

// WithMetrics reports retries, backoff delays and exhausted commands, labeled with commandType.
func WithMetrics(collector MetricsCollector, commandType string) RetryOption {
	return func(c *retryConfig) error {
		switch {
		case collector == nil:
			return ErrNilMetricsCollector
		case commandType == "":
			return ErrEmptyCommandType
		}
		c.metrics = collector
		c.commandType = commandType
		return nil
	}
}
