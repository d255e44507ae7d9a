// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for talking to remote APIs.
package httputil

import (
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// maxRetryAfter caps a server-supplied Retry-After delay.
const maxRetryAfter = time.Minute

const defaultMaxRetries = 3

// RetryTransport is an http.RoundTripper that retries requests answered
// with HTTP 429 (Too Many Requests). The delay starts at RetryBaseDelay and
// doubles each attempt unless the server sends a Retry-After header in
// seconds.
//
// Requests with a body are retried only when req.GetBody is set. After
// exhausting retries the last 429 response is returned so the caller can
// inspect it. A cancelled request context aborts the wait with ctx.Err().
type RetryTransport struct {
	// Base performs the requests. nil means http.DefaultTransport.
	Base http.RoundTripper

	// MaxRetries is the number of retries after the first attempt.
	// Zero selects the default (3).
	MaxRetries int

	// Logger receives one line per backoff. nil disables logging.
	Logger logrus.FieldLogger
}

// NewClient returns an http.Client whose transport retries on HTTP 429.
func NewClient(timeout time.Duration, logger logrus.FieldLogger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &RetryTransport{Logger: logger},
	}
}

func (t *RetryTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	maxRetries := t.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		attemptReq := req
		if attempt > 0 {
			attemptReq = req.Clone(ctx)
			if req.Body != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, err
				}
				attemptReq.Body = body
			}
		}

		resp, err := t.base().RoundTrip(attemptReq)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		if attempt >= maxRetries || (req.Body != nil && req.GetBody == nil) {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := retryAfter(resp)
		if backoff == 0 {
			backoff = time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		}
		if t.Logger != nil {
			t.Logger.WithFields(logrus.Fields{
				"url":     req.URL.Redacted(),
				"attempt": attempt + 1,
				"backoff": backoff,
			}).Warn("rate limited, retrying")
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// retryAfter parses a Retry-After header given in seconds. It returns 0 when
// the header is missing or not a number.
func retryAfter(resp *http.Response) time.Duration {
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	return d
}
