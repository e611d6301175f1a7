// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/jedai-tui/internal/clipboard"
	"github.com/jeranaias/jedai-tui/internal/config"
	"github.com/jeranaias/jedai-tui/internal/conversation"
	"github.com/jeranaias/jedai-tui/internal/ui/components"
	"github.com/jeranaias/jedai-tui/internal/ui/styles"
)

// Placeholder is the input hint.
const Placeholder = "Ask Obi-Wan"

// inputHeight is the number of visible input lines.
const inputHeight = 3

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures the chat screen.
type Options struct {
	Version    string
	Endpoint   string
	ShowBanner bool
	// NoBanner hides the banner regardless of ShowBanner and config reloads.
	NoBanner bool
	Logger   zerolog.Logger
	// Reloads delivers config file changes. Nil disables live reload.
	Reloads <-chan config.Reload
	// Context is the parent of every request context. Defaults to
	// context.Background.
	Context context.Context
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	theme    *styles.Theme
	keys     KeyMap
	help     help.Model
	flow     *conversation.Flow
	notifier *clipboard.Notifier
	logger   zerolog.Logger

	input    textarea.Model
	viewport *components.ChatViewport
	spinner  components.Spinner
	banner   components.Banner

	cancelMgr *cancelManager
	reloads   <-chan config.Reload
	noBanner  bool

	// lastVersion is the store version the transcript was last built from.
	lastVersion uint64

	width      int
	height     int
	ready      bool
	showBanner bool
	showHelp   bool
	quitting   bool

	status        string
	statusIsError bool
}

// New creates the chat screen for flow. Copy feedback uses notifier.
func New(flow *conversation.Flow, notifier *clipboard.Notifier, theme *styles.Theme, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ta.Focus()

	vp := components.NewChatViewport(theme)

	banner := components.NewBanner(theme)
	banner.SetEndpoint(opts.Endpoint)
	if opts.Version != "" {
		banner.SetVersion(opts.Version)
	}

	m := Model{
		theme:      theme,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		flow:       flow,
		notifier:   notifier,
		logger:     opts.Logger,
		input:      ta,
		viewport:   vp,
		spinner:    components.NewSpinner(theme),
		banner:     banner,
		cancelMgr:  newCancelManager(opts.Context),
		reloads:    opts.Reloads,
		noBanner:   opts.NoBanner,
		showBanner: opts.ShowBanner && !opts.NoBanner,
	}
	vp.List().SetCopied(m.isCopied)
	return m
}

// Init starts the cursor blink and the config reload listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForReload(m.reloads))
}

// isCopied adapts the notifier to the message list's copied lookup.
func (m Model) isCopied(messageID string, index int) bool {
	return m.notifier.IsActive(clipboard.Key{MessageID: messageID, Index: index})
}

// Loading reports whether any request is in flight.
func (m Model) Loading() bool {
	return m.flow.Store().Loading()
}

// Input returns the current input text.
func (m Model) Input() string {
	return m.input.Value()
}

// Status returns the status bar text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusIsError
}
