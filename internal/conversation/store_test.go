// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/jedai-tui/internal/model"
)

func TestNewStore_Empty(t *testing.T) {
	store := NewStore()
	assert.Zero(t, store.Len())
	assert.Empty(t, store.Messages())
	assert.False(t, store.Loading())

	_, ok := store.Last()
	assert.False(t, ok)
}

func TestStore_MessagesIsSnapshot(t *testing.T) {
	store := NewStore()
	store.append(model.NewUserMessage("a"))

	snap := store.Messages()
	snap[0].Text = "mutated"
	store.append(model.NewUserMessage("b"))

	assert.Len(t, snap, 1)
	assert.Equal(t, "a", store.Messages()[0].Text)
}

func TestStore_Version(t *testing.T) {
	store := NewStore()
	v0 := store.Version()

	store.append(model.NewUserMessage("a"))
	v1 := store.Version()
	assert.Greater(t, v1, v0)

	store.setLoading(true)
	v2 := store.Version()
	assert.Greater(t, v2, v1)

	// No change, no bump.
	store.setLoading(true)
	assert.Equal(t, v2, store.Version())
}
