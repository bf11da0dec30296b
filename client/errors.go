// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/alDuncanson/handler/a2a"
)

// RPCError is an error object returned by the agent inside a JSON-RPC
// response. The A2A codes (-32001 through -32006) live in package a2a.
type RPCError = a2a.Error

// ErrClosed is returned from operations on a session after Close.
var ErrClosed = errors.New("session is closed")

// ConnectionError reports a failure to reach the agent at all: DNS,
// refused connections, broken transport.
type ConnectionError struct {
	// Op is the operation that failed, typically the RPC method name.
	Op string

	// URL is the endpoint that could not be reached.
	URL string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: connection to %s failed (is the agent running?): %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError reports that an operation exceeded its deadline.
type TimeoutError struct {
	Op      string
	URL     string
	Timeout time.Duration
	Err     error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("%s: request to %s timed out after %s", e.Op, e.URL, e.Timeout)
	}
	return fmt.Sprintf("%s: request to %s timed out", e.Op, e.URL)
}

// Unwrap returns the underlying cause.
func (e *TimeoutError) Unwrap() error { return e.Err }

// HTTPError reports a non-success HTTP status from the agent endpoint.
type HTTPError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// URL is the request URL.
	URL string

	// Body holds the response body, truncated for large responses.
	Body string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("unexpected HTTP status %d from %s", e.StatusCode, e.URL)
	switch e.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		msg += " (is the agent running?)"
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}

	return msg
}

// ProtocolError reports a response that reached us over HTTP but does
// not conform to the protocol: undecodable envelopes, unclassifiable
// events, cards offering no usable transport.
type ProtocolError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error: %s: %v", e.Reason, e.Err)
	}
	return "protocol error: " + e.Reason
}

// Unwrap returns the underlying cause.
func (e *ProtocolError) Unwrap() error { return e.Err }

// ValidationError reports invalid input to a session operation or
// option.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsTaskNotFound reports whether err is the agent's task-not-found RPC
// error.
func IsTaskNotFound(err error) bool {
	var rpcErr *RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == a2a.CodeTaskNotFound
}

// IsTaskNotCancelable reports whether err is the agent's
// task-not-cancelable RPC error.
func IsTaskNotCancelable(err error) bool {
	var rpcErr *RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == a2a.CodeTaskNotCancelable
}

// wrapTransportErr classifies a failed HTTP round trip into the error
// taxonomy. Context cancellation passes through untouched.
func wrapTransportErr(op, url string, timeout time.Duration, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{Op: op, URL: url, Timeout: timeout, Err: err}
	}

	return &ConnectionError{Op: op, URL: url, Err: err}
}
