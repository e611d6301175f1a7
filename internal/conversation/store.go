// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"sync"

	"github.com/jeranaias/jedai-tui/internal/model"
)

// Store is the ordered, append-only transcript plus the loading flag.
// Only a Flow mutates it; readers get copies.
type Store struct {
	mu       sync.RWMutex
	messages []model.Message
	loading  bool
	version  uint64
}

// NewStore returns an empty store with loading off.
func NewStore() *Store {
	return &Store{}
}

// Messages returns a snapshot of the transcript in insertion order.
func (s *Store) Messages() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Last returns the most recent message.
func (s *Store) Last() (model.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return model.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// Loading reports whether a request is awaiting resolution.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Version increases on every change. Views compare it to skip re-rendering.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) append(msg model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	s.version++
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading != loading {
		s.loading = loading
		s.version++
	}
}
