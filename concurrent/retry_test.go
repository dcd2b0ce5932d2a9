package concurrent

import (
	"context"
	stderr "errors"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var testConfig = RetryConfig{
	Attempts:        3,
	BaseTimeout:     time.Millisecond,
	BaseExp:         2,
	MaxRetryTimeout: 2 * time.Millisecond,
}

func TestRetrySucceeds(t *testing.T) {
	calls := 0
	err := RetryWithConfig(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	}, testConfig)

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithSomeErrors(t *testing.T) {
	calls := 0
	err := RetryWithConfig(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return stderr.New("connection refused")
		}
		return nil
	}, testConfig)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryMaxAttempts(t *testing.T) {
	calls := 0
	err := RetryWithConfig(context.Background(), func(ctx context.Context) error {
		calls++
		return stderr.New("connection refused")
	}, testConfig)

	assert.Equal(t, 3, calls)
	assert.IsType(t, ErrMaxAttemptsReached{}, err)
	assert.Len(t, err.(ErrMaxAttemptsReached).Causes, 3)
}

func TestRetryZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := RetryWithConfig(context.Background(), func(ctx context.Context) error {
		calls++
		return stderr.New("connection refused")
	}, RetryConfig{})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryCannotRecover(t *testing.T) {
	cause := stderr.New("bad configuration")
	calls := 0
	err := RetryWithConfig(context.Background(), func(ctx context.Context) error {
		calls++
		return ErrCannotRecover{Cause: cause}
	}, testConfig)

	assert.Equal(t, 1, calls)
	assert.Equal(t, cause, errors.Cause(err))
}

func TestRetryContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	err := RetryWithConfig(ctx, func(ctx context.Context) error {
		cancel()
		return stderr.New("connection refused")
	}, RetryConfig{Attempts: 5, BaseTimeout: time.Hour, MaxRetryTimeout: time.Hour})

	assert.Equal(t, context.Canceled, errors.Cause(err))
}
