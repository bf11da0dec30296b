// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alDuncanson/handler/auth"
)

// Invoker performs a single HTTP round trip.
type Invoker func(req *http.Request) (*http.Response, error)

// Interceptor wraps an Invoker with cross-cutting behavior such as
// header injection, logging or retries.
type Interceptor func(next Invoker) Invoker

// chainInterceptors composes interceptors around final. The first
// interceptor becomes the outermost wrapper, so it sees the request
// first and the response last.
func chainInterceptors(final Invoker, interceptors ...Interceptor) Invoker {
	invoke := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		invoke = interceptors[i](invoke)
	}

	return invoke
}

// HeaderInterceptor sets a fixed header on every request.
func HeaderInterceptor(key, value string) Interceptor {
	return func(next Invoker) Invoker {
		return func(req *http.Request) (*http.Response, error) {
			req.Header.Set(key, value)
			return next(req)
		}
	}
}

// UserAgentInterceptor sets the User-Agent header on every request.
func UserAgentInterceptor(userAgent string) Interceptor {
	return HeaderInterceptor("User-Agent", userAgent)
}

// CredentialsInterceptor attaches creds to every request.
func CredentialsInterceptor(creds auth.Credentials) Interceptor {
	return func(next Invoker) Invoker {
		return func(req *http.Request) (*http.Response, error) {
			if err := creds.Apply(req.Header); err != nil {
				return nil, err
			}
			return next(req)
		}
	}
}

// LoggingInterceptor logs every request and its outcome at debug level.
func LoggingInterceptor(logger *slog.Logger) Interceptor {
	return func(next Invoker) Invoker {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)

			attrs := []any{
				slog.String("method", req.Method),
				slog.String("url", req.URL.String()),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.DebugContext(req.Context(), "request failed", append(attrs, slog.Any("error", err))...)
				return nil, err
			}
			logger.DebugContext(req.Context(), "request done", append(attrs, slog.Int("status", resp.StatusCode))...)

			return resp, nil
		}
	}
}
