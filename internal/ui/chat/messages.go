// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/jedai-tui/internal/config"
	"github.com/jeranaias/jedai-tui/internal/conversation"
)

// =============================================================================
// REQUEST MESSAGES
// =============================================================================

// OutcomeMsg carries a finished remote call back to the UI loop.
type OutcomeMsg struct {
	Outcome conversation.Outcome
}

// explainCmd performs req off the UI loop.
func explainCmd(ctx context.Context, flow *conversation.Flow, req *conversation.Request) tea.Cmd {
	return func() tea.Msg {
		return OutcomeMsg{Outcome: flow.Do(ctx, req)}
	}
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// StatusMsg shows a transient line in the status bar.
type StatusMsg struct {
	Text    string
	IsError bool
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// ConfigReloadedMsg carries a re-read config file.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// waitForReload blocks for the next config change. It yields no message
// once ch is closed.
func waitForReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: r.Config, Err: r.Err}
	}
}
