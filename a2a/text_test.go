// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"
)

func TestTextFromParts(t *testing.T) {
	tests := map[string]struct {
		parts Parts
		want  string
	}{
		"empty": {
			parts: nil,
			want:  "",
		},
		"single": {
			parts: Parts{NewTextPart("hello")},
			want:  "hello",
		},
		"multiple joined with newline": {
			parts: Parts{NewTextPart("First line"), NewTextPart("Second line")},
			want:  "First line\nSecond line",
		},
		"empty text parts skipped": {
			parts: Parts{NewTextPart(""), NewTextPart("kept"), NewTextPart("")},
			want:  "kept",
		},
		"non-text parts skipped": {
			parts: Parts{
				&DataPart{Data: map[string]any{"k": "v"}},
				NewTextPart("text"),
				&FilePart{File: FileContent{URI: "https://example.com/f"}},
			},
			want: "text",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := TextFromParts(tt.parts); got != tt.want {
				t.Errorf("TextFromParts() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextFromMessage(t *testing.T) {
	msg := &Message{
		Role:  RoleAgent,
		Parts: Parts{NewTextPart("First line"), NewTextPart("Second line")},
	}
	if got, want := TextFromMessage(msg), "First line\nSecond line"; got != want {
		t.Errorf("TextFromMessage() = %q, want %q", got, want)
	}

	if got := TextFromMessage(nil); got != "" {
		t.Errorf("TextFromMessage(nil) = %q, want empty", got)
	}
}

func TestTextFromTask(t *testing.T) {
	tests := map[string]struct {
		task *Task
		want string
	}{
		"nil task": {
			task: nil,
			want: "",
		},
		"artifact text wins over history": {
			task: &Task{
				Artifacts: []*Artifact{
					{ArtifactID: "a1", Parts: Parts{NewTextPart("A")}},
				},
				History: []*Message{
					{Role: RoleAgent, Parts: Parts{NewTextPart("B")}},
				},
			},
			want: "A",
		},
		"history fallback keeps only agent messages": {
			task: &Task{
				History: []*Message{
					{Role: RoleUser, Parts: Parts{NewTextPart("question")}},
					{Role: RoleAgent, Parts: Parts{NewTextPart("answer")}},
					{Role: RoleUser, Parts: Parts{NewTextPart("followup")}},
					{Role: RoleAgent, Parts: Parts{NewTextPart("more")}},
				},
			},
			want: "answer\nmore",
		},
		"artifacts without text fall through to history": {
			task: &Task{
				Artifacts: []*Artifact{
					{ArtifactID: "a1", Parts: Parts{&DataPart{Data: map[string]any{"k": 1}}}},
				},
				History: []*Message{
					{Role: RoleAgent, Parts: Parts{NewTextPart("from history")}},
				},
			},
			want: "from history",
		},
		"multiple artifacts joined": {
			task: &Task{
				Artifacts: []*Artifact{
					{ArtifactID: "a1", Parts: Parts{NewTextPart("one")}},
					{ArtifactID: "a2", Parts: Parts{NewTextPart("two")}},
				},
			},
			want: "one\ntwo",
		},
		"no artifacts no history": {
			task: &Task{ID: "t1"},
			want: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := TextFromTask(tt.task); got != tt.want {
				t.Errorf("TextFromTask() = %q, want %q", got, tt.want)
			}
		})
	}
}
