// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
)

// Message is one turn of a conversation between a user and an agent.
type Message struct {
	Kind string `json:"kind"`

	// MessageID uniquely identifies the message.
	MessageID string `json:"messageId"`

	// Role is the author of the message.
	Role Role `json:"role"`

	// Parts holds the message content.
	Parts Parts `json:"parts"`

	// ContextID groups the message into a conversation.
	ContextID string `json:"contextId,omitzero"`

	// TaskID ties the message to an existing task.
	TaskID string `json:"taskId,omitzero"`

	// ReferenceTaskIDs lists related tasks.
	ReferenceTaskIDs []string `json:"referenceTaskIds,omitzero"`

	Metadata map[string]any `json:"metadata,omitzero"`
}

// NewUserTextMessage builds a user-role message holding a single text
// part. contextID and taskID are attached when non-empty so the agent
// can continue an existing conversation or task.
func NewUserTextMessage(text, contextID, taskID string) *Message {
	return &Message{
		Kind:      KindMessage,
		MessageID: uuid.NewString(),
		Role:      RoleUser,
		Parts:     Parts{NewTextPart(text)},
		ContextID: contextID,
		TaskID:    taskID,
	}
}

// EventKind implements Event.
func (m *Message) EventKind() string { return KindMessage }

// MarshalJSON implements json.Marshaler.
func (m *Message) MarshalJSON() ([]byte, error) {
	type plain Message
	out := plain(*m)
	out.Kind = KindMessage
	return json.Marshal(&out)
}
