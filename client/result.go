// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"github.com/go-json-experiment/json/jsontext"

	"github.com/alDuncanson/handler/a2a"
)

// SendResult is the folded outcome of a Send call. At most one of Task
// and Message is set: the last task-bearing event wins, otherwise the
// last message reply.
type SendResult struct {
	// Task is the task the agent ran, when it created one.
	Task *a2a.Task

	// Message is the agent's direct reply, when no task was involved.
	Message *a2a.Message

	// ContextID and TaskID identify the conversation and task; reuse
	// them on the next Send to continue.
	ContextID string
	TaskID    string

	// State is the task's final observed lifecycle state. Empty for
	// bare message replies.
	State a2a.TaskState

	// Text is the extracted text of the winning event.
	Text string

	// Raw holds the winning event's JSON as received.
	Raw jsontext.Value
}

// IsComplete reports whether the task reached a terminal state.
func (r *SendResult) IsComplete() bool { return r.State.IsTerminal() }

// NeedsInput reports whether the agent is waiting for more input. Reply
// with Send using the same task ID.
func (r *SendResult) NeedsInput() bool { return r.State == a2a.TaskStateInputRequired }

// NeedsAuth reports whether the agent is waiting for an authentication
// step.
func (r *SendResult) NeedsAuth() bool { return r.State == a2a.TaskStateAuthRequired }

// TaskResult is the outcome of GetTask and CancelTask.
type TaskResult struct {
	Task      *a2a.Task
	ID        string
	ContextID string

	// State is the task state at query time. Terminal states never
	// change afterwards.
	State a2a.TaskState

	// Text is the task's extracted output text.
	Text string

	Raw jsontext.Value
}

func newTaskResult(task *a2a.Task, raw jsontext.Value) *TaskResult {
	return &TaskResult{
		Task:      task,
		ID:        task.ID,
		ContextID: task.ContextID,
		State:     task.Status.State,
		Text:      a2a.TextFromTask(task),
		Raw:       raw,
	}
}

// StreamEventKind classifies a StreamEvent.
type StreamEventKind string

const (
	// StreamEventMessage is a direct message reply. It ends the stream.
	StreamEventMessage StreamEventKind = "message"

	// StreamEventTask is a task snapshot.
	StreamEventTask StreamEventKind = "task"

	// StreamEventStatus is a task state transition.
	StreamEventStatus StreamEventKind = "status"

	// StreamEventArtifact is an artifact delivery.
	StreamEventArtifact StreamEventKind = "artifact"

	// StreamEventError reports a failure. It ends the stream; a stream
	// never ends silently on error.
	StreamEventError StreamEventKind = "error"
)

// StreamEvent is one classified event from Stream or Resubscribe.
type StreamEvent struct {
	Kind StreamEventKind

	// Exactly one of the following is set, matching Kind. For
	// StreamEventError only Err is set.
	Message  *a2a.Message
	Task     *a2a.Task
	Status   *a2a.TaskStatusUpdateEvent
	Artifact *a2a.TaskArtifactUpdateEvent

	// ContextID and TaskID identify the conversation and task the event
	// belongs to.
	ContextID string
	TaskID    string

	// State carries the task state for task and status events.
	State a2a.TaskState

	// Final is set on a status event the agent marked as the last one.
	Final bool

	// Text is the event's extracted text content.
	Text string

	// Raw holds the event JSON as received.
	Raw jsontext.Value

	// Err is the failure that ended the stream.
	Err error
}

// Terminal reports whether the event ends the stream: an error, a bare
// message reply, a final status or a terminal task state.
func (e *StreamEvent) Terminal() bool {
	switch e.Kind {
	case StreamEventError, StreamEventMessage:
		return true
	case StreamEventStatus:
		return e.Final || e.State.IsTerminal()
	case StreamEventTask:
		return e.State.IsTerminal()
	default:
		return false
	}
}

// newStreamEvent classifies a protocol event.
func newStreamEvent(ev a2a.Event, raw jsontext.Value) StreamEvent {
	switch ev := ev.(type) {
	case *a2a.Message:
		return StreamEvent{
			Kind:      StreamEventMessage,
			Message:   ev,
			ContextID: ev.ContextID,
			TaskID:    ev.TaskID,
			Text:      a2a.TextFromMessage(ev),
			Raw:       raw,
		}

	case *a2a.Task:
		return StreamEvent{
			Kind:      StreamEventTask,
			Task:      ev,
			ContextID: ev.ContextID,
			TaskID:    ev.ID,
			State:     ev.Status.State,
			Text:      a2a.TextFromTask(ev),
			Raw:       raw,
		}

	case *a2a.TaskStatusUpdateEvent:
		return StreamEvent{
			Kind:      StreamEventStatus,
			Status:    ev,
			ContextID: ev.ContextID,
			TaskID:    ev.TaskID,
			State:     ev.Status.State,
			Final:     ev.Final,
			Text:      a2a.TextFromMessage(ev.Status.Message),
			Raw:       raw,
		}

	case *a2a.TaskArtifactUpdateEvent:
		se := StreamEvent{
			Kind:      StreamEventArtifact,
			Artifact:  ev,
			ContextID: ev.ContextID,
			TaskID:    ev.TaskID,
			Raw:       raw,
		}
		if ev.Artifact != nil {
			se.Text = a2a.TextFromParts(ev.Artifact.Parts)
		}
		return se

	default:
		return StreamEvent{
			Kind: StreamEventError,
			Err:  &ProtocolError{Reason: "unclassifiable stream event"},
			Raw:  raw,
		}
	}
}

// resultFolder folds an event sequence into a SendResult. The last
// task wins over earlier tasks; a message wins only when no task was
// seen. Status and artifact updates are applied onto the folded task so
// the result reflects the stream's end state.
type resultFolder struct {
	task    *a2a.Task
	taskRaw jsontext.Value
	msg     *a2a.Message
	msgRaw  jsontext.Value
}

func (f *resultFolder) add(ev a2a.Event, raw jsontext.Value) {
	switch ev := ev.(type) {
	case *a2a.Task:
		f.task = ev
		f.taskRaw = raw

	case *a2a.Message:
		f.msg = ev
		f.msgRaw = raw

	case *a2a.TaskStatusUpdateEvent:
		if f.task != nil && f.task.ID == ev.TaskID {
			f.task.Status = ev.Status
		}

	case *a2a.TaskArtifactUpdateEvent:
		if f.task == nil || f.task.ID != ev.TaskID || ev.Artifact == nil {
			return
		}
		for _, existing := range f.task.Artifacts {
			if existing.ArtifactID == ev.Artifact.ArtifactID {
				if ev.Append {
					existing.Parts = append(existing.Parts, ev.Artifact.Parts...)
				} else {
					*existing = *ev.Artifact
				}
				return
			}
		}
		f.task.Artifacts = append(f.task.Artifacts, ev.Artifact)
	}
}

// result builds the folded SendResult. An empty sequence folds to the
// zero result, not an error.
func (f *resultFolder) result() *SendResult {
	switch {
	case f.task != nil:
		return &SendResult{
			Task:      f.task,
			ContextID: f.task.ContextID,
			TaskID:    f.task.ID,
			State:     f.task.Status.State,
			Text:      a2a.TextFromTask(f.task),
			Raw:       f.taskRaw,
		}

	case f.msg != nil:
		return &SendResult{
			Message:   f.msg,
			ContextID: f.msg.ContextID,
			TaskID:    f.msg.TaskID,
			Text:      a2a.TextFromMessage(f.msg),
			Raw:       f.msgRaw,
		}

	default:
		return &SendResult{}
	}
}
