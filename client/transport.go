// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/alDuncanson/handler/a2a"
)

// maxBodySize bounds how much of a response body is read into memory.
const maxBodySize = 10 << 20

// maxErrorBody bounds how much of an error response body is kept in an
// HTTPError.
const maxErrorBody = 4 << 10

// rpcClient speaks JSON-RPC 2.0 over HTTP to one agent endpoint.
type rpcClient struct {
	endpoint string
	invoke   Invoker
	timeout  time.Duration
}

// call performs a unary RPC. When result is non-nil the response result
// is unmarshaled into it; the raw result JSON is returned either way.
func (c *rpcClient) call(ctx context.Context, method string, params, result any) (jsontext.Value, error) {
	if c.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
	}

	resp, err := c.do(ctx, method, params, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, wrapTransportErr(method, c.endpoint, c.timeout, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: c.endpoint, Body: truncateBody(body)}
	}

	var rpcResp a2a.Response
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, &ProtocolError{Reason: "malformed jsonrpc response", Err: err}
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	if result != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return nil, &ProtocolError{Reason: "malformed " + method + " result", Err: err}
		}
	}

	return rpcResp.Result, nil
}

// stream performs a streaming RPC and returns a reader over the SSE
// event sequence. The caller owns the reader and must close it.
func (c *rpcClient) stream(ctx context.Context, method string, params any) (*eventReader, error) {
	resp, err := c.do(ctx, method, params, "text/event-stream")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: c.endpoint, Body: truncateBody(body)}
	}

	return newEventReader(resp.Body), nil
}

func (c *rpcClient) do(ctx context.Context, method string, params any, accept string) (*http.Response, error) {
	rpcReq, err := a2a.NewRequest(method, params)
	if err != nil {
		return nil, &ProtocolError{Reason: "encode " + method + " request", Err: err}
	}
	payload, err := json.Marshal(rpcReq)
	if err != nil {
		return nil, &ProtocolError{Reason: "encode " + method + " request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &ValidationError{Field: "endpoint", Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)

	resp, err := c.invoke(req)
	if err != nil {
		return nil, wrapTransportErr(method, c.endpoint, c.timeout, err)
	}

	return resp, nil
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	return string(bytes.TrimSpace(body))
}
