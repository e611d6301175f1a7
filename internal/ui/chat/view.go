// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/jeranaias/jedai-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	if m.showBanner {
		b.WriteString(m.banner.View())
		b.WriteString("\n")
	}
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.theme.InputContainer.Width(m.width).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

// renderStatusLine shows the spinner while loading, otherwise the last
// status message.
func (m Model) renderStatusLine() string {
	if m.Loading() && m.spinner.IsActive() {
		return m.spinner.View()
	}
	if m.status == "" {
		return m.theme.StatusBar.Render("")
	}
	text := util.FirstLine(m.status)
	if m.statusIsError {
		return m.theme.ErrorStyle.Render(text)
	}
	return m.theme.StatusBar.Render(text)
}

func (m Model) renderHelp() string {
	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}
