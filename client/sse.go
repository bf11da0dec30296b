// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bufio"
	"io"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/alDuncanson/handler/a2a"
)

// eventReader decodes an SSE byte stream into protocol events. Each
// SSE data payload is a JSON-RPC response envelope wrapping one event.
type eventReader struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

func newEventReader(body io.ReadCloser) *eventReader {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64<<10), maxBodySize)

	return &eventReader{
		body:    body,
		scanner: scanner,
	}
}

// Next returns the next event and its raw JSON. It returns io.EOF when
// the server ends the stream.
func (r *eventReader) Next() (a2a.Event, jsontext.Value, error) {
	var data strings.Builder

	for r.scanner.Scan() {
		line := r.scanner.Text()

		switch {
		case line == "":
			// Blank line dispatches the accumulated event.
			if data.Len() == 0 {
				continue
			}
			ev, raw, err := decodeSSEData(data.String())
			if err != nil {
				return nil, nil, err
			}
			return ev, raw, nil

		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))

		default:
			// event:, id:, retry: and comment lines are ignored.
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, nil, wrapTransportErr("stream read", "", 0, err)
	}
	if data.Len() > 0 {
		// Stream ended without the trailing blank line.
		return decodeSSEData(data.String())
	}

	return nil, nil, io.EOF
}

// Close releases the underlying response body. Safe to call more than
// once.
func (r *eventReader) Close() error {
	return r.body.Close()
}

// decodeSSEData unwraps one SSE data payload. Envelope-wrapped events
// are the norm; bare events are accepted for servers that skip the
// envelope.
func decodeSSEData(data string) (a2a.Event, jsontext.Value, error) {
	raw := []byte(data)

	var rpcResp a2a.Response
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return nil, nil, &ProtocolError{Reason: "malformed stream payload", Err: err}
	}
	if rpcResp.Error != nil {
		return nil, nil, rpcResp.Error
	}
	if len(rpcResp.Result) > 0 {
		raw = rpcResp.Result
	}

	ev, err := a2a.DecodeEvent(raw)
	if err != nil {
		return nil, nil, &ProtocolError{Reason: "unclassifiable stream event", Err: err}
	}

	return ev, jsontext.Value(raw), nil
}
