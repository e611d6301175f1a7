// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Banner      lipgloss.Style
	BannerTitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble     lipgloss.Style
	BotBubble      lipgloss.Style
	FallbackBubble lipgloss.Style
	UserLabel      lipgloss.Style
	BotLabel       lipgloss.Style
	Timestamp      lipgloss.Style
	Reference      lipgloss.Style

	// ==========================================================================
	// CODE BLOCK STYLES
	// ==========================================================================

	CodeBlock        lipgloss.Style
	CodeBlockFocused lipgloss.Style
	CodeLangBadge    lipgloss.Style
	CodeCopyBtn      lipgloss.Style
	CodeCopied       lipgloss.Style

	// ==========================================================================
	// INPUT / STATUS STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	Spinner        lipgloss.Style
	ThinkingText   lipgloss.Style
	StatusBar      lipgloss.Style
	ErrorStyle     lipgloss.Style
	Muted          lipgloss.Style
}

// NewTheme creates a theme for mode: "dark", "light", or "auto" (anything
// else) to ask the terminal.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	// Adaptive colors resolve against this.
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// GlamourStyle names the glamour standard style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// ChromaStyle names the chroma style used for code blocks.
func (t *Theme) ChromaStyle() string {
	if t.IsDark {
		return "monokai"
	}
	return "github"
}

func (t *Theme) initStyles() {
	// Header
	t.Banner = lipgloss.NewStyle().
		Foreground(Saber).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(SaberDeep).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.BannerTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saber)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.FallbackBubble = t.BotBubble.
		Foreground(FallbackBubbleFg).
		BorderForeground(FallbackBubbleBorder)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(UserBubbleBorder)

	t.BotLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saber)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Reference = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Overlay).
		PaddingLeft(1)

	// Code blocks
	t.CodeBlock = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(CodeBorder).
		Padding(0, 1)

	t.CodeBlockFocused = t.CodeBlock.
		BorderForeground(CodeBorderFocused)

	t.CodeLangBadge = lipgloss.NewStyle().
		Foreground(CodeBadgeFg).
		Background(CodeBadgeBg).
		Padding(0, 1)

	t.CodeCopyBtn = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.CodeCopied = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true).
		Padding(0, 1)

	// Input and status
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Saber)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// BubbleWidth returns the width available to a message bubble's content.
func (t *Theme) BubbleWidth() int {
	// Margin (4), border (2) and padding (2).
	w := t.Width - 8
	if w < 20 {
		w = 20
	}
	return w
}
