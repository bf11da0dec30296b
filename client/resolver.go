// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/alDuncanson/handler/a2a"
)

// CardResolver fetches agent cards from their well-known URL.
type CardResolver struct {
	baseURL string
	invoke  Invoker
}

// NewCardResolver returns a resolver for the agent at baseURL.
func NewCardResolver(baseURL string, opts ...Option) (*CardResolver, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return &CardResolver{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		invoke:  buildInvoker(o),
	}, nil
}

// newCardResolver shares a session's invoker chain.
func newCardResolver(baseURL string, invoke Invoker) *CardResolver {
	return &CardResolver{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		invoke:  invoke,
	}
}

// GetAgentCard fetches and decodes the card at the given path relative
// to the resolver's base URL. An empty path means the well-known
// default.
func (r *CardResolver) GetAgentCard(ctx context.Context, path string) (*a2a.AgentCard, error) {
	if path == "" {
		path = a2a.AgentCardPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := r.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ValidationError{Field: "agent url", Reason: err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.invoke(req)
	if err != nil {
		return nil, wrapTransportErr("get agent card", url, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, wrapTransportErr("get agent card", url, 0, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url, Body: truncateBody(body)}
	}

	var card a2a.AgentCard
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, &ProtocolError{Reason: "malformed agent card", Err: err}
	}

	return &card, nil
}

// buildInvoker assembles the interceptor chain around the HTTP client.
func buildInvoker(o *options) Invoker {
	interceptors := []Interceptor{UserAgentInterceptor(o.userAgent)}
	if o.creds != nil {
		interceptors = append(interceptors, CredentialsInterceptor(o.creds))
	}
	interceptors = append(interceptors, o.interceptors...)
	interceptors = append(interceptors, LoggingInterceptor(o.logger))

	return chainInterceptors(o.httpClient.Do, interceptors...)
}
