// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth provides client credentials for calling agents and
// verification of the notifications agents push back.
package auth

import (
	"fmt"
	"net/http"
)

// DefaultAPIKeyHeader is the header API key credentials attach to when
// no header name is given.
const DefaultAPIKeyHeader = "X-API-Key"

// Credentials attach authentication material to outgoing requests.
type Credentials interface {
	// Apply sets the credential headers on h.
	Apply(h http.Header) error
}

var (
	_ Credentials = (*bearerCredentials)(nil)
	_ Credentials = (*apiKeyCredentials)(nil)
)

type bearerCredentials struct {
	token string
}

// Bearer returns credentials that send token as an Authorization
// bearer header.
func Bearer(token string) Credentials {
	return &bearerCredentials{token: token}
}

// Apply implements Credentials.
func (c *bearerCredentials) Apply(h http.Header) error {
	if c.token == "" {
		return fmt.Errorf("bearer token is empty")
	}
	h.Set("Authorization", "Bearer "+c.token)

	return nil
}

type apiKeyCredentials struct {
	key    string
	header string
}

// APIKey returns credentials that send key in the named header.
// An empty header name falls back to DefaultAPIKeyHeader.
func APIKey(key, header string) Credentials {
	if header == "" {
		header = DefaultAPIKeyHeader
	}
	return &apiKeyCredentials{key: key, header: header}
}

// Apply implements Credentials.
func (c *apiKeyCredentials) Apply(h http.Header) error {
	if c.key == "" {
		return fmt.Errorf("api key is empty")
	}
	h.Set(c.header, c.key)

	return nil
}
