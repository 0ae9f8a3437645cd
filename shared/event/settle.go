package event

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryWindow bounds how long a driver keeps handling one message before giving up on it.
const RetryWindow = 5 * time.Minute

// DefaultRetry is the exponential schedule drivers use outside tests.
func DefaultRetry() []backoff.RetryOption {
	return []backoff.RetryOption{
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(RetryWindow),
	}
}

// Settle runs handler until it succeeds or fails with an error that is not Retryable.
// It also stops when the retry options give up or ctx ends. A nil or final error lets
// the driver acknowledge the message. A Retryable error means it must be redelivered.
func Settle(ctx context.Context, handler Handler, message Message, retry ...backoff.RetryOption) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := handler(ctx, message)
		if err != nil && !Retryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}

		return struct{}{}, err
	}, retry...)

	return err //nolint:wrapcheck
}
