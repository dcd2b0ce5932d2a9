// Package concurrent retries operations that may fail transiently
package concurrent

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// ErrCannotRecover can be returned by an Action to stop the retry
// and fail with Cause straight away
type ErrCannotRecover struct {
	Cause error
}

func (e ErrCannotRecover) Error() string {
	return e.Cause.Error()
}

// ErrMaxAttemptsReached is returned after every attempt failed. It
// holds the error of each one of the attempts
type ErrMaxAttemptsReached struct {
	Causes []error
}

func (e ErrMaxAttemptsReached) Error() string {
	return fmt.Sprintf("maximum number of attempts %d reached, last error %s",
		len(e.Causes), e.Causes[len(e.Causes)-1])
}

// Action is an operation that can be retried
type Action func(ctx context.Context) error

// RetryConfig sets how many times and how often an action is
// attempted
type RetryConfig struct {
	// Attempts is the maximum number of attempts. Zero is the
	// same as one attempt
	Attempts uint8

	// BaseTimeout is the wait after the first failed attempt. Each
	// following wait is BaseExp times the previous one
	BaseTimeout time.Duration
	BaseExp     uint8

	// MaxRetryTimeout caps the wait between attempts
	MaxRetryTimeout time.Duration

	// Random adds jitter to the wait between attempts
	Random bool
}

// DefaultRetryConfig is the configuration used by Retry
var DefaultRetryConfig = RetryConfig{
	Attempts:        10,
	BaseTimeout:     100 * time.Millisecond,
	BaseExp:         2,
	MaxRetryTimeout: 10 * time.Second,
}

// RetryWithConfig runs action until it succeeds, it returns
// ErrCannotRecover, the attempts run out or ctx is done. Waits between
// attempts grow exponentially
func RetryWithConfig(ctx context.Context, action Action, config RetryConfig) error {
	var errs []error
	timeout := config.BaseTimeout
	maxAttempts := int(config.Attempts)
	if maxAttempts == 0 {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		err := action(ctx)
		if err == nil {
			return nil
		}

		if err, ok := err.(ErrCannotRecover); ok {
			return errors.WithStack(err.Cause)
		}

		errs = append(errs, err)
		if attempt >= maxAttempts {
			return ErrMaxAttemptsReached{Causes: errs}
		}

		wait := timeout
		if config.Random {
			wait = time.Duration((rand.Float64() + 0.5) * float64(wait))
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.WithStack(ctx.Err())
		case <-timer.C:
		}

		timeout *= time.Duration(config.BaseExp)
		if timeout > config.MaxRetryTimeout {
			timeout = config.MaxRetryTimeout
		}
	}
}

// Retry runs RetryWithConfig with DefaultRetryConfig
func Retry(ctx context.Context, action Action) error {
	return RetryWithConfig(ctx, action, DefaultRetryConfig)
}
