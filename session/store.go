// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists per-agent conversation state between CLI
// invocations: the context and task identifiers needed to continue
// where the last exchange left off.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// State is what is remembered per agent URL.
type State struct {
	ContextID string `json:"context_id,omitzero"`
	TaskID    string `json:"task_id,omitzero"`
}

// Store is a file-backed session map keyed by agent URL. The whole
// file is read and rewritten on each operation; it is small by nature.
//
// Construct one and pass it where needed; there is no package-level
// instance.
type Store struct {
	path string
	mu   sync.Mutex
}

// DefaultPath returns the conventional store location,
// ~/.handler/sessions.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve session store path: %w", err)
	}

	return filepath.Join(home, ".handler", "sessions.json"), nil
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the remembered state for agentURL and whether any was
// found.
func (s *Store) Get(agentURL string) (State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return State{}, false, err
	}
	state, ok := sessions[agentURL]

	return state, ok, nil
}

// Update merges the non-empty fields of contextID and taskID into the
// state remembered for agentURL. Empty arguments leave the stored
// value untouched.
func (s *Store) Update(agentURL, contextID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return err
	}

	state := sessions[agentURL]
	if contextID != "" {
		state.ContextID = contextID
	}
	if taskID != "" {
		state.TaskID = taskID
	}
	sessions[agentURL] = state

	return s.save(sessions)
}

// Clear forgets the state for agentURL. Clearing an unknown URL is a
// no-op.
func (s *Store) Clear(agentURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := sessions[agentURL]; !ok {
		return nil
	}
	delete(sessions, agentURL)

	return s.save(sessions)
}

// ClearAll forgets every stored session.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(map[string]State{})
}

// List returns every stored session keyed by agent URL.
func (s *Store) List() (map[string]State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *Store) load() (map[string]State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]State{}, nil
		}
		return nil, fmt.Errorf("read session store: %w", err)
	}

	sessions := map[string]State{}
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode session store %s: %w", s.path, err)
	}

	return sessions, nil
}

func (s *Store) save(sessions map[string]State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session store directory: %w", err)
	}

	data, err := json.Marshal(sessions, jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("encode session store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session store: %w", err)
	}

	return nil
}
