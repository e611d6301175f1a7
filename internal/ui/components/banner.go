// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jedai-tui/internal/ui/styles"
	"github.com/jeranaias/jedai-tui/internal/util"
)

// =============================================================================
// BANNER
// =============================================================================

// Greeting is the banner's welcome line.
const Greeting = "Padwan, ready to explore the repository far, far away?"

// Banner is the header shown above the transcript.
type Banner struct {
	version  string
	endpoint string
	width    int
	theme    *styles.Theme
}

// NewBanner creates a banner.
func NewBanner(theme *styles.Theme) Banner {
	return Banner{
		version: "dev",
		width:   80,
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (b *Banner) SetVersion(version string) {
	b.version = version
}

// SetEndpoint sets the service URL shown under the greeting.
func (b *Banner) SetEndpoint(endpoint string) {
	b.endpoint = endpoint
}

// SetWidth sets the banner width.
func (b *Banner) SetWidth(width int) {
	b.width = width
}

// Height returns the number of lines View occupies.
func (b Banner) Height() int {
	return lipgloss.Height(b.View())
}

// View renders the banner. Narrow terminals get the title line only.
func (b Banner) View() string {
	title := b.theme.BannerTitle.Render("JedAI") + " " + b.theme.Muted.Render("v"+strings.TrimPrefix(b.version, "v"))

	if b.width < 40 {
		return title
	}

	inner := b.width - 6
	lines := []string{title, Greeting}
	if b.endpoint != "" {
		lines = append(lines, b.theme.Muted.Render(util.TruncateWidth(b.endpoint, inner-4)))
	}

	return b.theme.Banner.Width(inner).Render(strings.Join(lines, "\n"))
}
