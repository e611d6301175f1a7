// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jedai-tui/internal/ui/styles"
	"github.com/jeranaias/jedai-tui/internal/util"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock is one fenced code run of a bot message.
type CodeBlock struct {
	Language string
	Code     string
	// Number is the block's 1-based position in the transcript, shown on
	// the copy badge.
	Number   int
	MaxWidth int
	Copied   bool
	Focused  bool
}

// NewCodeBlock creates a new code block.
func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{
		Language: language,
		Code:     code,
		MaxWidth: 80,
	}
}

// CopyLabel returns the copy badge text.
func (c CodeBlock) CopyLabel() string {
	state := styles.StatusIndicators.Copy
	if c.Copied {
		state = styles.StatusIndicators.Copied
	}
	if c.Number > 0 {
		return "[#" + strconv.Itoa(c.Number) + " " + state + "]"
	}
	return "[" + state + "]"
}

// Render renders the code block: a header with the language and copy
// badges, then the highlighted code with line numbers.
func (c CodeBlock) Render(theme *styles.Theme) string {
	code := strings.TrimRight(c.Code, "\n")

	chromaStyle := "monokai"
	if theme != nil {
		chromaStyle = theme.ChromaStyle()
	}
	highlighted := highlightCode(code, c.Language, chromaStyle)
	lines := strings.Split(highlighted, "\n")

	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = lineNumStyle.Render(strconv.Itoa(i+1)) + line
	}

	inner := c.MaxWidth - 4
	if inner < 20 {
		inner = 20
	}

	header := c.renderHeader(theme, inner)
	body := header + "\n" + strings.Join(rendered, "\n")

	block := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CodeBorder).
		Padding(0, 1)
	if theme != nil {
		block = theme.CodeBlock
		if c.Focused {
			block = theme.CodeBlockFocused
		}
	}
	return block.MaxWidth(c.MaxWidth).Render(body)
}

// renderHeader lays the language badge left and the copy badge right.
func (c CodeBlock) renderHeader(theme *styles.Theme, width int) string {
	lang := c.Language
	if lang == "" {
		lang = "text"
	}

	langStyle := lipgloss.NewStyle().Foreground(styles.CodeBadgeFg)
	copyStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	if theme != nil {
		langStyle = theme.CodeLangBadge
		copyStyle = theme.CodeCopyBtn
		if c.Copied {
			copyStyle = theme.CodeCopied
		}
	}

	left := langStyle.Render(lang)
	right := copyStyle.Render(c.CopyLabel())

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + util.PadRight("", gap) + right
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightCode applies terminal syntax highlighting. The language tag picks
// the lexer; without one chroma guesses from the content.
func highlightCode(code, language, styleName string) string {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
