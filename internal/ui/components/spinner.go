// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/jedai-tui/internal/ui/styles"
)

// =============================================================================
// THINKING SPINNER
// =============================================================================

// DefaultThinkingMessage is shown while a request is in flight.
const DefaultThinkingMessage = "Obi-Wan is thinking"

// Spinner is the loading indicator shown while a request is in flight.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	isActive  bool
	theme     *styles.Theme
	now       func() time.Time
}

// NewSpinner creates an ASCII spinner with the thinking message.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner

	return Spinner{
		spinner: s,
		message: DefaultThinkingMessage,
		theme:   theme,
		now:     time.Now,
	}
}

// Start activates the spinner. Starting an active spinner keeps its start
// time and returns no tick, so only one tick loop runs.
func (s *Spinner) Start() tea.Cmd {
	if s.isActive {
		return nil
	}
	s.isActive = true
	s.startTime = s.now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Elapsed returns the time since the spinner started.
func (s *Spinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return s.now().Sub(s.startTime)
}

// Update advances the animation. Ticks arriving after Stop are dropped,
// which ends the tick loop.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner, or nothing when stopped.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}

	result := s.spinner.View() + " " + s.theme.ThinkingText.Render(s.message+"...")
	if !s.startTime.IsZero() {
		result += s.theme.Muted.Render(" (" + formatElapsed(s.Elapsed()) + ")")
	}
	return result
}
