// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alDuncanson/handler/a2a"
	"github.com/alDuncanson/handler/auth"
)

const defaultUserAgent = "handler-go/" + a2a.ProtocolVersion

// options holds the configuration of a Session.
type options struct {
	httpClient   *http.Client
	timeout      time.Duration
	cardPath     string
	userAgent    string
	streaming    bool
	creds        auth.Credentials
	interceptors []Interceptor
	logger       *slog.Logger
}

func defaultOptions() *options {
	return &options{
		httpClient: http.DefaultClient,
		timeout:    5 * time.Minute,
		cardPath:   a2a.AgentCardPath,
		userAgent:  defaultUserAgent,
		streaming:  true,
		logger:     slog.Default(),
	}
}

// Option configures a Session.
type Option func(*options) error

// WithHTTPClient sets the HTTP client used for all requests. The
// session borrows the client and never closes it; the caller owns its
// lifecycle and may share it across sessions.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return &ValidationError{Field: "http client", Reason: "must not be nil"}
		}
		o.httpClient = hc
		return nil
	}
}

// WithTimeout bounds each non-streaming RPC. It applies only when the
// caller's context carries no deadline of its own. Zero disables the
// bound.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout < 0 {
			return &ValidationError{Field: "timeout", Reason: "must not be negative"}
		}
		o.timeout = timeout
		return nil
	}
}

// WithCardPath overrides the well-known agent card path.
func WithCardPath(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &ValidationError{Field: "card path", Reason: "must not be empty"}
		}
		o.cardPath = path
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(o *options) error {
		o.userAgent = userAgent
		return nil
	}
}

// WithStreaming controls whether Send uses message/stream when the
// agent card declares streaming support. Enabled by default.
func WithStreaming(enabled bool) Option {
	return func(o *options) error {
		o.streaming = enabled
		return nil
	}
}

// WithCredentials attaches credentials to every request.
func WithCredentials(creds auth.Credentials) Option {
	return func(o *options) error {
		if creds == nil {
			return &ValidationError{Field: "credentials", Reason: "must not be nil"}
		}
		o.creds = creds
		return nil
	}
}

// WithInterceptors appends interceptors to the request chain. They run
// in the given order, outermost first.
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(o *options) error {
		o.interceptors = append(o.interceptors, interceptors...)
		return nil
	}
}

// WithLogger sets the logger used for debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &ValidationError{Field: "logger", Reason: "must not be nil"}
		}
		o.logger = logger
		return nil
	}
}

// callOptions holds per-operation settings for Send and Stream.
type callOptions struct {
	contextID  string
	taskID     string
	pushConfig *a2a.PushNotificationConfig
	blocking   bool
}

// CallOption configures a single Send or Stream call.
type CallOption func(*callOptions)

// WithContextID continues an existing conversation.
func WithContextID(contextID string) CallOption {
	return func(o *callOptions) { o.contextID = contextID }
}

// WithTaskID continues an existing task, typically after an
// input-required state.
func WithTaskID(taskID string) CallOption {
	return func(o *callOptions) { o.taskID = taskID }
}

// WithPushConfig asks the agent to deliver task updates to a webhook
// in addition to the normal response.
func WithPushConfig(cfg *a2a.PushNotificationConfig) CallOption {
	return func(o *callOptions) { o.pushConfig = cfg }
}

// WithBlocking asks the agent to hold the response until the task
// reaches a terminal state. Only meaningful for non-streaming sends.
func WithBlocking(blocking bool) CallOption {
	return func(o *callOptions) { o.blocking = blocking }
}
