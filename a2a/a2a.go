// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

// Package a2a holds the data model of the Agent-to-Agent (A2A) protocol:
// agent cards, messages, tasks, streaming events and the JSON-RPC 2.0
// envelope they travel in.
package a2a

// ProtocolVersion is the A2A protocol version this module speaks.
const ProtocolVersion = "0.2.0"

// AgentCardPath is the well-known path an agent publishes its card under,
// relative to the agent's base URL.
const AgentCardPath = "/.well-known/agent-card.json"

// TaskState represents the lifecycle state of a Task.
type TaskState string

const (
	// TaskStateSubmitted indicates the task has been received but not started.
	TaskStateSubmitted TaskState = "submitted"

	// TaskStateWorking indicates the agent is actively working on the task.
	TaskStateWorking TaskState = "working"

	// TaskStateInputRequired indicates the agent is waiting for more input
	// from the caller before it can continue.
	TaskStateInputRequired TaskState = "input-required"

	// TaskStateAuthRequired indicates the agent is waiting for the caller
	// to complete an authentication step.
	TaskStateAuthRequired TaskState = "auth-required"

	// TaskStateCompleted indicates the task finished successfully.
	TaskStateCompleted TaskState = "completed"

	// TaskStateCanceled indicates the task was canceled.
	TaskStateCanceled TaskState = "canceled"

	// TaskStateFailed indicates the task failed.
	TaskStateFailed TaskState = "failed"

	// TaskStateRejected indicates the agent refused the task.
	TaskStateRejected TaskState = "rejected"

	// TaskStateUnknown indicates the state could not be determined.
	TaskStateUnknown TaskState = "unknown"
)

// IsTerminal reports whether the state is final. A task in a terminal
// state never transitions again; callers must not wait on it.
func (s TaskState) IsTerminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed, TaskStateRejected:
		return true
	default:
		return false
	}
}

// Role identifies the author of a Message.
type Role string

const (
	// RoleUser marks messages authored by the calling side.
	RoleUser Role = "user"

	// RoleAgent marks messages authored by the remote agent.
	RoleAgent Role = "agent"
)

// Wire discriminator values carried in the "kind" field of parts,
// messages, tasks and streaming events.
const (
	KindText           = "text"
	KindFile           = "file"
	KindData           = "data"
	KindMessage        = "message"
	KindTask           = "task"
	KindStatusUpdate   = "status-update"
	KindArtifactUpdate = "artifact-update"
)

// TransportProtocol names a transport an agent card can advertise.
type TransportProtocol string

const (
	// TransportJSONRPC is JSON-RPC 2.0 over HTTP, the default transport.
	TransportJSONRPC TransportProtocol = "JSONRPC"

	// TransportGRPC is the gRPC binding.
	TransportGRPC TransportProtocol = "GRPC"

	// TransportHTTPJSON is the REST-style HTTP+JSON binding.
	TransportHTTPJSON TransportProtocol = "HTTP+JSON"
)
