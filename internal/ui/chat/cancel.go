// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
)

// =============================================================================
// REQUEST CANCELLATION
// =============================================================================

// cancelManager owns the context that in-flight requests derive from.
// It must be shared by pointer: Bubble Tea copies the Model on every Update.
type cancelManager struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func newCancelManager(parent context.Context) *cancelManager {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &cancelManager{ctx: ctx, cancel: cancel}
}

// context returns the context for a new request.
func (cm *cancelManager) context() context.Context {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.ctx
}

// cancelAll aborts every in-flight request. Safe to call more than once.
func (cm *cancelManager) cancelAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.cancel()
}
