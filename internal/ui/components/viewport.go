// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jedai-tui/internal/model"
	"github.com/jeranaias/jedai-tui/internal/ui/styles"
)

// =============================================================================
// TRANSCRIPT VIEWPORT
// =============================================================================

// ChatViewport is the scrollable transcript. It follows new messages until
// the user scrolls up, and resumes following once scrolled back to the end.
type ChatViewport struct {
	viewport    viewport.Model
	width       int
	height      int
	ready       bool
	autoScroll  bool
	theme       *styles.Theme
	messageList *MessageList
}

// NewChatViewport creates an empty transcript viewport.
func NewChatViewport(theme *styles.Theme) *ChatViewport {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	return &ChatViewport{
		viewport:    vp,
		width:       80,
		height:      20,
		autoScroll:  true,
		theme:       theme,
		messageList: NewMessageList(theme),
	}
}

// List exposes the message list for code block selection.
func (cv *ChatViewport) List() *MessageList {
	return cv.messageList
}

// SetSize updates the viewport dimensions.
func (cv *ChatViewport) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	cv.width = width
	cv.height = height
	cv.viewport.Width = width
	// Reserve a line for the scroll indicator.
	cv.viewport.Height = maxInt(1, height-1)
	cv.messageList.SetWidth(width - 2)
	cv.ready = true
	cv.Refresh()
}

// SetMessages replaces the transcript.
func (cv *ChatViewport) SetMessages(messages []model.Message) {
	cv.messageList.SetMessages(messages)
	cv.Refresh()
}

// Refresh re-renders the transcript, following the end when auto-scroll is on.
func (cv *ChatViewport) Refresh() {
	cv.viewport.SetContent(cv.messageList.View())
	if cv.autoScroll {
		cv.viewport.GotoBottom()
	}
}

// ScrollToBottom scrolls to the end and resumes following.
func (cv *ChatViewport) ScrollToBottom() {
	cv.viewport.GotoBottom()
	cv.autoScroll = true
}

// ScrollToTop scrolls to the start.
func (cv *ChatViewport) ScrollToTop() {
	cv.viewport.GotoTop()
	cv.autoScroll = false
}

// ScrollUp scrolls up by lines.
func (cv *ChatViewport) ScrollUp(lines int) {
	cv.viewport.LineUp(lines)
	cv.syncAutoScroll()
}

// ScrollDown scrolls down by lines.
func (cv *ChatViewport) ScrollDown(lines int) {
	cv.viewport.LineDown(lines)
	cv.syncAutoScroll()
}

func (cv *ChatViewport) syncAutoScroll() {
	cv.autoScroll = cv.viewport.AtBottom()
}

// AutoScroll reports whether the viewport follows new content.
func (cv *ChatViewport) AutoScroll() bool {
	return cv.autoScroll
}

// AtBottom returns true if the end of the transcript is visible.
func (cv *ChatViewport) AtBottom() bool {
	return cv.viewport.AtBottom()
}

// Update handles scroll keys and the mouse wheel.
func (cv *ChatViewport) Update(msg tea.Msg) (*ChatViewport, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup":
			cv.ScrollUp(cv.viewport.Height)
			return cv, nil
		case "pgdown":
			cv.ScrollDown(cv.viewport.Height)
			return cv, nil
		case "ctrl+home":
			cv.ScrollToTop()
			return cv, nil
		case "ctrl+end":
			cv.ScrollToBottom()
			return cv, nil
		}
		return cv, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			cv.ScrollUp(3)
		case tea.MouseButtonWheelDown:
			cv.ScrollDown(3)
		}
		return cv, nil
	}
	return cv, nil
}

// View renders the transcript with a scroll position line.
func (cv *ChatViewport) View() string {
	if !cv.ready {
		return ""
	}
	return cv.viewport.View() + "\n" + cv.renderIndicator()
}

func (cv *ChatViewport) renderIndicator() string {
	style := cv.theme.Muted.Width(cv.width).Align(lipgloss.Center)
	if cv.viewport.AtBottom() {
		return style.Render("")
	}
	pct := int(cv.viewport.ScrollPercent() * 100)
	return style.Render(fmt.Sprintf("v more below (%d%%) v", pct))
}

// LineCount returns the number of rendered transcript lines.
func (cv *ChatViewport) LineCount() int {
	content := cv.messageList.View()
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
