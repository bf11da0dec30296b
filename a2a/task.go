// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"github.com/go-json-experiment/json"
)

// TaskStatus is the current state of a task plus the optional message
// the agent attached to the transition.
type TaskStatus struct {
	State TaskState `json:"state"`

	// Message carries agent commentary for the transition, typically the
	// prompt behind an input-required state.
	Message *Message `json:"message,omitzero"`

	// Timestamp is when the status was recorded, RFC 3339.
	Timestamp string `json:"timestamp,omitzero"`
}

// Artifact is an output a task produced.
type Artifact struct {
	// ArtifactID uniquely identifies the artifact within its task.
	ArtifactID string `json:"artifactId"`

	Name        string         `json:"name,omitzero"`
	Description string         `json:"description,omitzero"`
	Parts       Parts          `json:"parts"`
	Metadata    map[string]any `json:"metadata,omitzero"`
}

// Task is the unit of work an agent runs on behalf of a caller.
type Task struct {
	Kind string `json:"kind"`

	// ID uniquely identifies the task.
	ID string `json:"id"`

	// ContextID groups the task into a conversation.
	ContextID string `json:"contextId"`

	// Status is the task's current lifecycle state. Once Status.State is
	// terminal the task never changes again.
	Status TaskStatus `json:"status"`

	// Artifacts are the outputs produced so far.
	Artifacts []*Artifact `json:"artifacts,omitzero"`

	// History holds the message exchange behind the task.
	History []*Message `json:"history,omitzero"`

	Metadata map[string]any `json:"metadata,omitzero"`
}

// EventKind implements Event.
func (t *Task) EventKind() string { return KindTask }

// MarshalJSON implements json.Marshaler.
func (t *Task) MarshalJSON() ([]byte, error) {
	type plain Task
	out := plain(*t)
	out.Kind = KindTask
	return json.Marshal(&out)
}

// TaskStatusUpdateEvent announces a task state transition on a stream.
type TaskStatusUpdateEvent struct {
	Kind string `json:"kind"`

	TaskID    string     `json:"taskId"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`

	// Final marks the last event of the stream.
	Final bool `json:"final,omitzero"`

	Metadata map[string]any `json:"metadata,omitzero"`
}

// EventKind implements Event.
func (e *TaskStatusUpdateEvent) EventKind() string { return KindStatusUpdate }

// MarshalJSON implements json.Marshaler.
func (e *TaskStatusUpdateEvent) MarshalJSON() ([]byte, error) {
	type plain TaskStatusUpdateEvent
	out := plain(*e)
	out.Kind = KindStatusUpdate
	return json.Marshal(&out)
}

// TaskArtifactUpdateEvent delivers an artifact, or a chunk of one, on a
// stream.
type TaskArtifactUpdateEvent struct {
	Kind string `json:"kind"`

	TaskID    string    `json:"taskId"`
	ContextID string    `json:"contextId"`
	Artifact  *Artifact `json:"artifact"`

	// Append means the parts extend the artifact already delivered under
	// the same artifact ID rather than replacing it.
	Append bool `json:"append,omitzero"`

	// LastChunk marks the final chunk of the artifact.
	LastChunk bool `json:"lastChunk,omitzero"`

	Metadata map[string]any `json:"metadata,omitzero"`
}

// EventKind implements Event.
func (e *TaskArtifactUpdateEvent) EventKind() string { return KindArtifactUpdate }

// MarshalJSON implements json.Marshaler.
func (e *TaskArtifactUpdateEvent) MarshalJSON() ([]byte, error) {
	type plain TaskArtifactUpdateEvent
	out := plain(*e)
	out.Kind = KindArtifactUpdate
	return json.Marshal(&out)
}
