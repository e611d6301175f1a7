// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jedai-tui/internal/config"
	"github.com/jeranaias/jedai-tui/internal/model"
	"github.com/jeranaias/jedai-tui/internal/ui/components"
	"github.com/jeranaias/jedai-tui/internal/ui/styles"
	"github.com/jeranaias/jedai-tui/internal/util"
)

// =============================================================================
// ANSWER OUTPUT
// =============================================================================

// answerPrinter writes bot messages for the line-mode commands. Markdown is
// rendered only for terminals so piped output stays raw.
type answerPrinter struct {
	out      io.Writer
	styled   bool
	markdown *components.Markdown
}

func newAnswerPrinter(out io.Writer, cfg *config.Config) *answerPrinter {
	p := &answerPrinter{out: out, styled: isTerminalWriter(out) && ColorsEnabled()}
	if p.styled {
		width := cfg.UI.WordWrap
		if width == 0 {
			width = GetTerminalWidth() - 4
		}
		p.markdown = components.NewMarkdown(cfg.UI.Theme, width)
	}
	return p
}

var (
	referenceLabel = lipgloss.NewStyle().Foreground(styles.TextMuted).Bold(true)
	fallbackStyle  = lipgloss.NewStyle().Foreground(styles.Rose)
)

// Print writes msg: the explanation, then the reference if there is one.
func (p *answerPrinter) Print(msg model.Message) {
	if msg.Fallback {
		if p.styled {
			fmt.Fprintln(p.out, fallbackStyle.Render(msg.Text))
		} else {
			fmt.Fprintln(p.out, msg.Text)
		}
		return
	}

	if p.styled {
		fmt.Fprintln(p.out, p.markdown.Render(msg.Text))
	} else {
		fmt.Fprintln(p.out, strings.TrimRight(msg.Text, "\n"))
	}

	if msg.Reference == "" {
		return
	}
	fmt.Fprintln(p.out)
	if p.styled {
		fmt.Fprintln(p.out, referenceLabel.Render("Reference"))
		fmt.Fprintln(p.out, util.Indent(WrapText(msg.Reference, GetTerminalWidth()-2), "  "))
	} else {
		fmt.Fprintln(p.out, "Reference:")
		fmt.Fprintln(p.out, strings.TrimRight(msg.Reference, "\n"))
	}
}
