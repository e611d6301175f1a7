// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// Markdown renders prose segments through glamour. A renderer is built per
// wrap width and reused until the width changes.
type Markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a renderer for a glamour standard style ("dark",
// "light", "notty"), or the terminal's auto style when style is "auto" or
// empty.
func NewMarkdown(style string, width int) *Markdown {
	m := &Markdown{style: style}
	m.SetWidth(width)
	return m
}

// SetWidth changes the wrap width.
func (m *Markdown) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width == m.width && m.renderer != nil {
		return
	}
	m.width = width

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if m.style == "" || m.style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(m.style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Width returns the wrap width.
func (m *Markdown) Width() int {
	return m.width
}

// Render renders text, falling back to the raw text when rendering fails.
// Surrounding blank lines that glamour adds are removed.
func (m *Markdown) Render(text string) string {
	if m == nil || m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
