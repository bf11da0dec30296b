// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

// Package webhook runs a local receiver for A2A push notifications,
// mainly as a development and test collaborator: point an agent's push
// config at it and inspect what arrives.
package webhook

import (
	"sync"
	"time"

	"github.com/go-json-experiment/json/jsontext"
)

// DefaultCapacity is the number of notifications kept when no capacity
// is given.
const DefaultCapacity = 100

// Notification is one push delivery as received.
type Notification struct {
	// ReceivedAt is when the delivery arrived.
	ReceivedAt time.Time `json:"receivedAt"`

	// TaskID is the task the notification refers to, when the payload
	// carries one.
	TaskID string `json:"taskId,omitzero"`

	// Payload is the delivery body verbatim.
	Payload jsontext.Value `json:"payload"`

	// Headers holds selected request headers of the delivery.
	Headers map[string]string `json:"headers,omitzero"`
}

// Store keeps the most recent notifications in a bounded ring. When
// full, the oldest entry is evicted.
type Store struct {
	mu       sync.Mutex
	capacity int
	items    []Notification
}

// NewStore returns a store holding up to capacity notifications.
// Non-positive capacity means DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Store{capacity: capacity}
}

// Add records a notification, evicting the oldest when the ring is
// full.
func (s *Store) Add(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == s.capacity {
		s.items = s.items[1:]
	}
	s.items = append(s.items, n)
}

// List returns the stored notifications, oldest first.
func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Notification, len(s.items))
	copy(out, s.items)

	return out
}

// Len returns the number of stored notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
}
