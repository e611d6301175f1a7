// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jedai-tui/internal/clipboard"
	"github.com/jeranaias/jedai-tui/internal/conversation"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update dispatches Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.viewport, _ = m.viewport.Update(msg)
		return m, nil

	case OutcomeMsg:
		return m.handleOutcome(msg)

	case clipboard.ExpiredMsg:
		if m.notifier.Expire(msg.Ticket) {
			m.viewport.Refresh()
		}
		return m, nil

	case ConfigReloadedMsg:
		return m.handleReload(msg)

	case StatusMsg:
		m.status = msg.Text
		m.statusIsError = msg.IsError
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize lays out the screen: banner, transcript, spinner line,
// input and help.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.theme.SetSize(m.width, m.height)
	m.banner.SetWidth(m.width)
	m.help.Width = m.width
	m.input.SetWidth(maxInt(10, m.width-4))

	m.viewport.SetSize(m.width, m.transcriptHeight())
	m.syncTranscript()
	return m, nil
}

// transcriptHeight is what remains after the fixed rows.
func (m Model) transcriptHeight() int {
	// Status line (1), input border (1) and help (1).
	reserved := 1 + inputHeight + 1 + 1
	if m.showBanner {
		reserved += lipgloss.Height(m.banner.View())
	}
	if m.showHelp {
		reserved += lipgloss.Height(m.help.FullHelpView(m.keys.FullHelp())) - 1
	}
	return maxInt(1, m.height-reserved)
}

// handleKey routes keys to the app, the transcript or the input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancelMgr.cancelAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.NextBlock):
		m.viewport.List().FocusNext()
		m.viewport.Refresh()
		return m, nil

	case key.Matches(msg, m.keys.PrevBlock):
		m.viewport.List().FocusPrev()
		m.viewport.Refresh()
		return m, nil

	case key.Matches(msg, m.keys.Unfocus):
		m.viewport.List().ClearFocus()
		m.viewport.Refresh()
		return m, nil

	case key.Matches(msg, m.keys.CopyBlock):
		return m.copyBlock()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		if m.ready {
			m.viewport.SetSize(m.width, m.transcriptHeight())
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown, m.keys.Top, m.keys.Bottom):
		m.viewport, _ = m.viewport.Update(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input. Blank input is ignored and left in place.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.flow.Submit(m.input.Value())
	if errors.Is(err, conversation.ErrEmptyQuery) {
		return m, nil
	}
	if err != nil {
		m.status = err.Error()
		m.statusIsError = true
		return m, nil
	}

	m.input.Reset()
	m.status = ""
	m.statusIsError = false
	m.viewport.ScrollToBottom()
	m.syncTranscript()

	cmds := []tea.Cmd{explainCmd(m.cancelMgr.context(), m.flow, req)}
	if tick := m.spinner.Start(); tick != nil {
		cmds = append(cmds, tick)
	}
	return m, tea.Batch(cmds...)
}

// handleOutcome records a finished call and brings the new message into
// view, even when the transcript was scrolled up.
func (m Model) handleOutcome(msg OutcomeMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.flow.Resolve(msg.Outcome)
	if !m.flow.Store().Loading() {
		m.spinner.Stop()
	}
	m.viewport.ScrollToBottom()
	m.syncTranscript()
	return m, nil
}

// handleReload applies the settings that can change while running: copy
// feedback duration and banner visibility. Endpoint and theme changes take
// effect on the next start.
func (m Model) handleReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	next := waitForReload(m.reloads)
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Msg("config reload failed")
		m.status = "Config reload failed: " + msg.Err.Error()
		m.statusIsError = true
		return m, next
	}

	cfg := msg.Config
	m.notifier.SetDuration(cfg.UI.CopyFeedback())
	m.showBanner = cfg.UI.ShowBanner && !m.noBanner
	if m.ready {
		m.viewport.SetSize(m.width, m.transcriptHeight())
	}
	m.logger.Info().
		Int("copy_feedback_ms", cfg.UI.CopyFeedbackMS).
		Bool("show_banner", m.showBanner).
		Msg("config reloaded")
	m.status = "Config reloaded"
	m.statusIsError = false
	return m, next
}

// copyBlock copies the selected code block, or the newest one when none is
// selected.
func (m Model) copyBlock() (tea.Model, tea.Cmd) {
	list := m.viewport.List()
	ref, ok := list.FocusedRef()
	if !ok {
		refs := list.CodeRefs()
		if len(refs) == 0 {
			m.status = "No code block to copy"
			m.statusIsError = false
			return m, nil
		}
		ref = refs[len(refs)-1]
	}

	ticket, err := m.notifier.MarkCopied(clipboard.Key{MessageID: ref.MessageID, Index: ref.Index}, ref.Content)
	if err != nil {
		m.logger.Warn().Err(err).Int("block", ref.Number).Msg("copy failed")
		m.status = "Clipboard unavailable"
		m.statusIsError = true
		return m, nil
	}

	m.status = ""
	m.statusIsError = false
	m.viewport.Refresh()
	return m, m.notifier.ExpireCmd(ticket)
}

// syncTranscript rebuilds the transcript when the store changed.
func (m *Model) syncTranscript() {
	store := m.flow.Store()
	if v := store.Version(); v != m.lastVersion {
		m.lastVersion = v
		m.viewport.SetMessages(store.Messages())
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
