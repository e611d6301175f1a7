// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the jedai TUI.

All colors use Lip Gloss AdaptiveColor; NewTheme decides whether the dark or
light variant applies, either from configuration or by asking the terminal
through termenv.

# Color System (colors.go)

  - Saber - Brand accent for the banner and the bot label
  - Purple - Focused code block
  - Emerald - Copied badge
  - Rose - Fallback messages and errors

# Theme (theme.go)

Theme bundles the lipgloss styles for the banner, message bubbles, code
blocks, the input area and the spinner, and names the glamour and chroma
styles that match the background.

	theme := styles.NewTheme(cfg.UI.Theme)
	theme.SetSize(width, height)
	out := theme.BotBubble.Width(theme.BubbleWidth()).Render(body)
*/
package styles
