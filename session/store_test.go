// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "sessions.json"))
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.Update("http://agent-a", "ctx-1", "task-1"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	state, ok, err := store.Get("http://agent-a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false")
	}
	want := State{ContextID: "ctx-1", TaskID: "task-1"}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreMissingFile(t *testing.T) {
	store := newTestStore(t)

	if _, ok, err := store.Get("http://agent"); err != nil || ok {
		t.Errorf("Get() = (ok=%v, err=%v), want (false, nil)", ok, err)
	}

	sessions, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("List() = %v, want empty", sessions)
	}
}

func TestStoreUpdateMergesNonEmpty(t *testing.T) {
	store := newTestStore(t)

	if err := store.Update("http://agent", "ctx-1", "task-1"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	// New task, same conversation.
	if err := store.Update("http://agent", "", "task-2"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	state, _, err := store.Get("http://agent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if state.ContextID != "ctx-1" || state.TaskID != "task-2" {
		t.Errorf("state = %+v, want {ctx-1 task-2}", state)
	}
}

func TestStoreClear(t *testing.T) {
	store := newTestStore(t)

	if err := store.Update("http://agent-a", "ctx-a", ""); err != nil {
		t.Fatal(err)
	}
	if err := store.Update("http://agent-b", "ctx-b", ""); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear("http://agent-a"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := store.Get("http://agent-a"); ok {
		t.Error("agent-a still present after Clear")
	}
	if _, ok, _ := store.Get("http://agent-b"); !ok {
		t.Error("agent-b lost by Clear of agent-a")
	}

	if err := store.Clear("http://never-seen"); err != nil {
		t.Errorf("Clear() of unknown url error = %v", err)
	}

	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	sessions, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Errorf("List() = %v after ClearAll, want empty", sessions)
	}
}

func TestStoreFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	store := NewStore(path)

	if err := store.Update("http://agent", "ctx-1", "task-1"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	for _, want := range []string{`"http://agent"`, `"context_id"`, `"task_id"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("store file missing %s:\n%s", want, data)
		}
	}
}
