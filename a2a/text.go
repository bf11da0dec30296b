// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import "strings"

// TextFromParts joins the text of every non-empty TextPart in parts
// with newlines. Other part kinds are skipped.
func TextFromParts(parts Parts) string {
	var texts []string
	for _, part := range parts {
		tp, ok := part.(*TextPart)
		if !ok || tp.Text == "" {
			continue
		}
		texts = append(texts, tp.Text)
	}

	return strings.Join(texts, "\n")
}

// TextFromMessage extracts the text content of a message.
func TextFromMessage(m *Message) string {
	if m == nil {
		return ""
	}
	return TextFromParts(m.Parts)
}

// TextFromTask extracts the human readable output of a task. Artifact
// text wins: when any artifact carries text, history is ignored.
// Otherwise the text of the agent-role history messages is used. A task
// with neither yields the empty string.
func TextFromTask(t *Task) string {
	if t == nil {
		return ""
	}

	var texts []string
	for _, artifact := range t.Artifacts {
		if artifact == nil {
			continue
		}
		if text := TextFromParts(artifact.Parts); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) > 0 {
		return strings.Join(texts, "\n")
	}

	for _, msg := range t.History {
		if msg == nil || msg.Role != RoleAgent {
			continue
		}
		if text := TextFromParts(msg.Parts); text != "" {
			texts = append(texts, text)
		}
	}

	return strings.Join(texts, "\n")
}
