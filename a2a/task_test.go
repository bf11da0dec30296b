// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"
)

func TestTaskStateIsTerminal(t *testing.T) {
	tests := []struct {
		state TaskState
		want  bool
	}{
		{TaskStateSubmitted, false},
		{TaskStateWorking, false},
		{TaskStateInputRequired, false},
		{TaskStateAuthRequired, false},
		{TaskStateCompleted, true},
		{TaskStateCanceled, true},
		{TaskStateFailed, true},
		{TaskStateRejected, true},
		{TaskStateUnknown, false},
		{TaskState(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal(%q) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestNewUserTextMessage(t *testing.T) {
	msg := NewUserTextMessage("hello", "ctx-1", "task-1")

	if msg.MessageID == "" {
		t.Error("MessageID is empty")
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.ContextID != "ctx-1" || msg.TaskID != "task-1" {
		t.Errorf("ids = (%q, %q), want (ctx-1, task-1)", msg.ContextID, msg.TaskID)
	}
	if got := TextFromMessage(msg); got != "hello" {
		t.Errorf("text = %q, want %q", got, "hello")
	}

	other := NewUserTextMessage("hello", "", "")
	if other.MessageID == msg.MessageID {
		t.Error("message ids are not unique")
	}
}
