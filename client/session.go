// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

// Package client implements the calling side of the A2A protocol: card
// resolution, message send and stream, task queries and push
// notification configuration, all over JSON-RPC 2.0.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/alDuncanson/handler/a2a"
)

// ConnectionState is the lifecycle state of a Session. Transitions are
// forward-only: Unconnected to Connected to Closed.
type ConnectionState int

const (
	// Unconnected means no request has been made yet.
	Unconnected ConnectionState = iota

	// Connected means the agent card was fetched and a transport
	// negotiated.
	Connected

	// Closed means the session was closed and rejects further use.
	Closed
)

// String implements fmt.Stringer.
func (s ConnectionState) String() string {
	switch s {
	case Unconnected:
		return "unconnected"
	case Connected:
		return "connected"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("ConnectionState(%d)", int(s))
	}
}

// Session is one logical connection to one agent. It resolves the
// agent card once, negotiates a transport from it and then serves
// message, task and push-config operations.
//
// A Session is safe for concurrent use. It borrows its HTTP client
// from the caller and never closes it.
type Session struct {
	agentURL string
	opts     *options
	invoke   Invoker

	mu    sync.Mutex
	state ConnectionState
	card  *a2a.AgentCard
	rpc   *rpcClient
}

// NewSession returns a session for the agent at agentURL. No network
// traffic happens until the first operation.
func NewSession(agentURL string, opts ...Option) (*Session, error) {
	if agentURL == "" {
		return nil, &ValidationError{Field: "agent url", Reason: "must not be empty"}
	}

	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return &Session{
		agentURL: agentURL,
		opts:     o,
		invoke:   buildInvoker(o),
	}, nil
}

// State returns the session's connection state.
func (s *Session) State() ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close marks the session closed. Subsequent operations fail with
// ErrClosed. The borrowed HTTP client is left untouched.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Closed

	return nil
}

// GetCard returns the agent's card, fetching it on first use. The card
// is memoized for the session lifetime; every later call returns the
// same card without network traffic.
func (s *Session) GetCard(ctx context.Context) (*a2a.AgentCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cardLocked(ctx)
}

func (s *Session) cardLocked(ctx context.Context) (*a2a.AgentCard, error) {
	if s.state == Closed {
		return nil, ErrClosed
	}
	if s.card != nil {
		return s.card, nil
	}

	resolver := newCardResolver(s.agentURL, s.invoke)
	card, err := resolver.GetAgentCard(ctx, s.opts.cardPath)
	if err != nil {
		return nil, err
	}
	s.card = card

	return card, nil
}

// connect fetches the card if needed and negotiates the transport.
func (s *Session) connect(ctx context.Context) (*rpcClient, *a2a.AgentCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.cardLocked(ctx)
	if err != nil {
		return nil, nil, err
	}
	if s.rpc != nil {
		return s.rpc, card, nil
	}

	endpoint, err := negotiateEndpoint(card, s.agentURL)
	if err != nil {
		return nil, nil, err
	}
	s.rpc = &rpcClient{
		endpoint: endpoint,
		invoke:   s.invoke,
		timeout:  s.opts.timeout,
	}
	s.state = Connected

	return s.rpc, card, nil
}

// negotiateEndpoint picks the JSON-RPC endpoint from the card's
// declared interfaces. JSONRPC is the only transport this module
// speaks; a card offering nothing else fails.
func negotiateEndpoint(card *a2a.AgentCard, fallback string) (string, error) {
	if card.PreferredTransport == "" || card.PreferredTransport == a2a.TransportJSONRPC {
		if card.URL != "" {
			return card.URL, nil
		}
		return fallback, nil
	}

	for _, iface := range card.AdditionalInterfaces {
		if iface.Transport == a2a.TransportJSONRPC && iface.URL != "" {
			return iface.URL, nil
		}
	}

	return "", &ProtocolError{
		Reason: fmt.Sprintf("agent offers no JSONRPC interface (preferred transport %q)", card.PreferredTransport),
	}
}

// Send delivers text to the agent and folds the response into a
// SendResult. When the agent card declares streaming support the
// message goes over message/stream and the whole event sequence is
// folded; otherwise a single message/send round trip is made.
//
// An agent that answers with no events at all yields the zero
// SendResult, not an error.
func (s *Session) Send(ctx context.Context, text string, opts ...CallOption) (*SendResult, error) {
	rpc, card, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}
	params := buildSendParams(text, &co)

	if s.opts.streaming && card.Capabilities.Streaming {
		return s.sendStreaming(ctx, rpc, params)
	}

	return s.sendUnary(ctx, rpc, params)
}

func (s *Session) sendUnary(ctx context.Context, rpc *rpcClient, params *a2a.MessageSendParams) (*SendResult, error) {
	raw, err := rpc.call(ctx, a2a.MethodMessageSend, params, nil)
	if err != nil {
		return nil, err
	}

	var folder resultFolder
	if len(raw) > 0 {
		ev, err := a2a.DecodeEvent(raw)
		if err != nil {
			return nil, &ProtocolError{Reason: "unclassifiable send result", Err: err}
		}
		folder.add(ev, raw)
	}

	return folder.result(), nil
}

func (s *Session) sendStreaming(ctx context.Context, rpc *rpcClient, params *a2a.MessageSendParams) (*SendResult, error) {
	rd, err := rpc.stream(ctx, a2a.MethodMessageStream, params)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	var folder resultFolder
	for {
		ev, raw, err := rd.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		folder.add(ev, raw)
		if se := newStreamEvent(ev, raw); se.Terminal() {
			break
		}
	}

	return folder.result(), nil
}

// Stream delivers text to the agent and returns the classified event
// sequence on an unbuffered channel. Events arrive in transport order;
// the consumer's pace is the stream's pace. The channel closes after a
// terminal event: a final or terminal status, a bare message reply, or
// an error event carrying the failure.
func (s *Session) Stream(ctx context.Context, text string, opts ...CallOption) (<-chan StreamEvent, error) {
	rpc, _, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}
	params := buildSendParams(text, &co)

	rd, err := rpc.stream(ctx, a2a.MethodMessageStream, params)
	if err != nil {
		return nil, err
	}

	return s.consume(ctx, rd), nil
}

// Resubscribe reattaches to a running task's event stream. No message
// is sent; the channel semantics match Stream.
func (s *Session) Resubscribe(ctx context.Context, taskID string) (<-chan StreamEvent, error) {
	if taskID == "" {
		return nil, &ValidationError{Field: "task id", Reason: "must not be empty"}
	}

	rpc, _, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	rd, err := rpc.stream(ctx, a2a.MethodTasksResubscribe, &a2a.TaskIDParams{ID: taskID})
	if err != nil {
		return nil, err
	}

	return s.consume(ctx, rd), nil
}

// consume pumps the reader into an unbuffered channel until a terminal
// event, an error or context cancellation.
func (s *Session) consume(ctx context.Context, rd *eventReader) <-chan StreamEvent {
	ch := make(chan StreamEvent)

	go func() {
		defer close(ch)
		defer rd.Close()

		for {
			ev, raw, err := rd.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				select {
				case ch <- StreamEvent{Kind: StreamEventError, Err: err}:
				case <-ctx.Done():
				}
				return
			}

			se := newStreamEvent(ev, raw)
			select {
			case ch <- se:
			case <-ctx.Done():
				return
			}
			if se.Terminal() {
				return
			}
		}
	}()

	return ch
}

// GetTask fetches the current snapshot of a task. historyLength bounds
// how many history messages the agent returns; negative means the
// agent's default.
func (s *Session) GetTask(ctx context.Context, taskID string, historyLength int) (*TaskResult, error) {
	if taskID == "" {
		return nil, &ValidationError{Field: "task id", Reason: "must not be empty"}
	}

	rpc, _, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	params := &a2a.TaskQueryParams{ID: taskID}
	if historyLength >= 0 {
		params.HistoryLength = &historyLength
	}

	var task a2a.Task
	raw, err := rpc.call(ctx, a2a.MethodTasksGet, params, &task)
	if err != nil {
		return nil, err
	}

	return newTaskResult(&task, raw), nil
}

// CancelTask asks the agent to cancel a task and returns the resulting
// snapshot. Agents refuse with an RPC error when the task is already
// terminal; see IsTaskNotCancelable.
func (s *Session) CancelTask(ctx context.Context, taskID string) (*TaskResult, error) {
	if taskID == "" {
		return nil, &ValidationError{Field: "task id", Reason: "must not be empty"}
	}

	rpc, _, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	var task a2a.Task
	raw, err := rpc.call(ctx, a2a.MethodTasksCancel, &a2a.TaskIDParams{ID: taskID}, &task)
	if err != nil {
		return nil, err
	}

	return newTaskResult(&task, raw), nil
}

func buildSendParams(text string, co *callOptions) *a2a.MessageSendParams {
	params := &a2a.MessageSendParams{
		Message: a2a.NewUserTextMessage(text, co.contextID, co.taskID),
	}
	if co.pushConfig != nil || co.blocking {
		params.Configuration = &a2a.MessageSendConfig{
			PushNotificationConfig: co.pushConfig,
			Blocking:               co.blocking,
		}
	}

	return params
}
