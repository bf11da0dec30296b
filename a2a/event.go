// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// Event is the closed union of results an agent returns from
// message/send, message/stream and tasks/resubscribe: a Message, a
// Task, a TaskStatusUpdateEvent or a TaskArtifactUpdateEvent.
type Event interface {
	// EventKind returns the wire discriminator of the event.
	EventKind() string
}

var (
	_ Event = (*Message)(nil)
	_ Event = (*Task)(nil)
	_ Event = (*TaskStatusUpdateEvent)(nil)
	_ Event = (*TaskArtifactUpdateEvent)(nil)
)

// DecodeEvent classifies raw JSON into the Event union by its "kind"
// field. Payloads without a recognized discriminator are rejected; a
// result is never guessed from its attribute shape.
func DecodeEvent(raw []byte) (Event, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	switch probe.Kind {
	case KindMessage:
		ev := new(Message)
		if err := json.Unmarshal(raw, ev); err != nil {
			return nil, fmt.Errorf("decode message event: %w", err)
		}
		return ev, nil

	case KindTask:
		ev := new(Task)
		if err := json.Unmarshal(raw, ev); err != nil {
			return nil, fmt.Errorf("decode task event: %w", err)
		}
		return ev, nil

	case KindStatusUpdate:
		ev := new(TaskStatusUpdateEvent)
		if err := json.Unmarshal(raw, ev); err != nil {
			return nil, fmt.Errorf("decode status-update event: %w", err)
		}
		return ev, nil

	case KindArtifactUpdate:
		ev := new(TaskArtifactUpdateEvent)
		if err := json.Unmarshal(raw, ev); err != nil {
			return nil, fmt.Errorf("decode artifact-update event: %w", err)
		}
		return ev, nil

	case "":
		return nil, fmt.Errorf("decode event: missing %q discriminator", "kind")

	default:
		return nil, fmt.Errorf("decode event: unrecognized kind %q", probe.Kind)
	}
}
