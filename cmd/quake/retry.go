package main

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/sirupsen/logrus"

	quakeclient "github.com/robert-malhotra/go-quake-client/pkg/client"
	"github.com/robert-malhotra/go-quake-client/pkg/quake"
)

// newRetryBackOff allows retries additional attempts after the first.
// WithMaxRetries treats zero as unlimited, so zero stops outright.
func newRetryBackOff(retries int) backoff.BackOff {
	if retries <= 0 {
		return &backoff.StopBackOff{}
	}
	return backoff.WithMaxRetries(&backoff.ExponentialBackOff{
		InitialInterval:     500 * time.Millisecond,
		RandomizationFactor: 0.5,
		Multiplier:          1.5,
		MaxInterval:         10 * time.Second,
		MaxElapsedTime:      2 * time.Minute,
		Clock:               backoff.SystemClock,
	}, uint64(retries))
}

// withRetries runs fn until it succeeds, fails permanently or b stops.
func withRetries(ctx context.Context, b backoff.BackOff, logger logrus.FieldLogger, fn func() (*quake.QueryResult, error)) (*quake.QueryResult, error) {
	b.Reset()

	var res *quake.QueryResult
	op := func() error {
		var err error
		res, err = fn()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		logger.WithError(err).Warnf("query failed, retrying in %s", next)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, err
	}
	return res, nil
}

// retryable reports whether err may clear up on a later attempt: transport
// failures, 429 and 5xx statuses.
func retryable(err error) bool {
	var (
		rangeErr  *quakeclient.InvalidRangeError
		boundsErr *quakeclient.InvalidBoundsError
		decodeErr *quakeclient.DeserializationError
		reqErr    *quakeclient.RequestError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return false
	case errors.As(err, &rangeErr), errors.As(err, &boundsErr), errors.As(err, &decodeErr):
		return false
	case errors.As(err, &reqErr):
		return reqErr.Temporary()
	default:
		return true
	}
}
