// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"math"
	"math/rand/v2"
	"net/http"
	"time"
)

// RetryConfig tunes the retry interceptor.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, the first try
	// included.
	MaxAttempts int

	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration

	// MaxBackoff caps the exponential backoff.
	MaxBackoff time.Duration

	// Multiplier grows the backoff between attempts.
	Multiplier float64

	// Jitter randomizes each delay by up to the given fraction.
	Jitter float64
}

// DefaultRetryConfig returns the retry policy used when a zero config
// is given: three attempts with exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
		Jitter:         0.2,
	}
}

// RetryInterceptor retries failed requests per cfg. Sessions never
// retry on their own; install this interceptor to opt in.
//
// A request is retried on transport errors and on 502/503/504
// responses, and only when its body can be rebuilt via GetBody.
func RetryInterceptor(cfg RetryConfig) Interceptor {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig()
	}

	return func(next Invoker) Invoker {
		return func(req *http.Request) (*http.Response, error) {
			var resp *http.Response
			var err error

			for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
				if attempt > 0 {
					if req.GetBody != nil {
						body, bodyErr := req.GetBody()
						if bodyErr != nil {
							return resp, err
						}
						req.Body = body
					} else if req.Body != nil {
						return resp, err
					}

					select {
					case <-req.Context().Done():
						return nil, req.Context().Err()
					case <-time.After(cfg.backoff(attempt)):
					}
				}

				resp, err = next(req)
				if err == nil && !retryableStatus(resp.StatusCode) {
					return resp, nil
				}
				if attempt == cfg.MaxAttempts-1 {
					break
				}
				if resp != nil {
					resp.Body.Close()
				}
			}

			return resp, err
		}
	}
}

func (cfg RetryConfig) backoff(attempt int) time.Duration {
	backoff := float64(cfg.InitialBackoff) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if max := float64(cfg.MaxBackoff); backoff > max {
		backoff = max
	}
	if cfg.Jitter > 0 {
		backoff += backoff * cfg.Jitter * (rand.Float64()*2 - 1)
	}

	return time.Duration(backoff)
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
