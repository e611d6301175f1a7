// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jedai-tui/internal/model"
	"github.com/jeranaias/jedai-tui/internal/segment"
	"github.com/jeranaias/jedai-tui/internal/ui/styles"
	"github.com/jeranaias/jedai-tui/internal/util"
)

// =============================================================================
// CODE REFERENCES
// =============================================================================

// CodeRef locates one code block in the transcript.
type CodeRef struct {
	MessageID string
	// Index is the block's position among the code segments of its message.
	Index int
	// Number is the block's 1-based position across the whole transcript.
	Number  int
	Lang    string
	Content string
}

// CopiedFunc reports whether a block is showing its copied indicator.
type CopiedFunc func(messageID string, index int) bool

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript message.
type MessageBubble struct {
	Message model.Message
	Width   int

	// FirstCode is the transcript number of the message's first code block.
	FirstCode int
	// Focused is the transcript number of the selected code block, or 0.
	Focused int

	ShowTimestamp bool
	Copied        CopiedFunc

	theme    *styles.Theme
	markdown *Markdown
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg model.Message, theme *styles.Theme, md *Markdown) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		FirstCode:     1,
		ShowTimestamp: true,
		theme:         theme,
		markdown:      md,
	}
}

// View renders the bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsUser() {
		return b.renderUserBubble()
	}
	return b.renderBotBubble()
}

func (b *MessageBubble) contentWidth() int {
	// Margin (4), border (2) and padding (2).
	w := b.Width - 8
	if w < 20 {
		w = 20
	}
	return w
}

// ==========================================================================
// USER BUBBLE
// ==========================================================================

// renderUserBubble shows the query verbatim, right-aligned.
func (b *MessageBubble) renderUserBubble() string {
	text := b.Message.Text
	if text == "" {
		text = "..."
	}

	wrapped := wordWrap(text, b.contentWidth())
	width := minInt(maxLineWidth(wrapped)+2, b.contentWidth()+2)

	bubbleStyle := b.theme.UserBubble.Width(width)
	bubble := bubbleStyle.Render(wrapped)
	header := b.renderHeader(b.theme.UserLabel)

	leftMargin := b.Width - lipgloss.Width(bubble)
	if leftMargin < 0 {
		leftMargin = 0
	}
	margin := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		margin.Render(header),
		margin.Render(bubble),
	)
}

// ==========================================================================
// BOT BUBBLE
// ==========================================================================

// renderBotBubble renders prose through markdown and code runs as code
// blocks, with the reference below.
func (b *MessageBubble) renderBotBubble() string {
	header := b.renderHeader(b.theme.BotLabel)

	if b.Message.Fallback {
		body := wordWrap(b.Message.Text, b.contentWidth())
		bubble := b.theme.FallbackBubble.Render(styles.StatusIndicators.Error + " " + body)
		return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
	}

	parts := make([]string, 0, 4)
	codeIndex := 0
	for _, seg := range b.Message.Segments() {
		if seg.IsCode() {
			parts = append(parts, b.renderCode(seg, codeIndex))
			codeIndex++
			continue
		}
		if strings.TrimSpace(seg.Content) == "" {
			continue
		}
		parts = append(parts, b.renderProse(seg.Content))
	}
	if len(parts) == 0 {
		parts = append(parts, b.theme.Muted.Render("..."))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if b.Message.Reference != "" {
		ref := b.theme.Reference.Width(b.contentWidth() - 2).
			Render(wordWrap(b.Message.Reference, b.contentWidth()-4))
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", ref)
	}

	bubble := b.theme.BotBubble.Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
}

func (b *MessageBubble) renderProse(text string) string {
	if b.markdown == nil {
		return wordWrap(text, b.contentWidth())
	}
	return b.markdown.Render(text)
}

func (b *MessageBubble) renderCode(seg segment.Segment, index int) string {
	block := NewCodeBlock(seg.Lang, seg.Content)
	block.Number = b.FirstCode + index
	block.MaxWidth = b.contentWidth()
	block.Focused = b.Focused == block.Number
	if b.Copied != nil {
		block.Copied = b.Copied(b.Message.ID, index)
	}
	return block.Render(b.theme)
}

func (b *MessageBubble) renderHeader(label lipgloss.Style) string {
	header := label.Render(b.Message.Sender.DisplayName())
	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		header += " " + b.theme.Timestamp.Render(formatTime(b.Message.Timestamp))
	}
	return header
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders the whole transcript and numbers its code blocks.
type MessageList struct {
	messages []model.Message
	refs     []CodeRef
	width    int
	focused  int
	copied   CopiedFunc
	theme    *styles.Theme
	markdown *Markdown
}

// NewMessageList creates an empty list.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		width:    80,
		theme:    theme,
		markdown: NewMarkdown(theme.GlamourStyle(), 72),
	}
}

// SetMessages replaces the rendered messages.
func (ml *MessageList) SetMessages(messages []model.Message) {
	ml.messages = messages
	ml.refs = nil
	n := 1
	for _, msg := range messages {
		if !msg.IsBot() || msg.Fallback {
			continue
		}
		for i, seg := range segment.Codes(msg.Segments()) {
			ml.refs = append(ml.refs, CodeRef{
				MessageID: msg.ID,
				Index:     i,
				Number:    n,
				Lang:      seg.Lang,
				Content:   seg.Content,
			})
			n++
		}
	}
	if ml.focused > len(ml.refs) {
		ml.focused = 0
	}
}

// SetWidth sets the render width.
func (ml *MessageList) SetWidth(width int) {
	ml.width = width
	ml.markdown.SetWidth(width - 10)
}

// SetCopied installs the copied-state lookup.
func (ml *MessageList) SetCopied(fn CopiedFunc) {
	ml.copied = fn
}

// CodeRefs returns every code block in transcript order.
func (ml *MessageList) CodeRefs() []CodeRef {
	return ml.refs
}

// Focused returns the selected code block number, or 0.
func (ml *MessageList) Focused() int {
	return ml.focused
}

// FocusedRef returns the selected code block.
func (ml *MessageList) FocusedRef() (CodeRef, bool) {
	if ml.focused < 1 || ml.focused > len(ml.refs) {
		return CodeRef{}, false
	}
	return ml.refs[ml.focused-1], true
}

// FocusNext moves the selection forward, wrapping to the first block.
// With no selection the last block is selected.
func (ml *MessageList) FocusNext() {
	n := len(ml.refs)
	if n == 0 {
		ml.focused = 0
		return
	}
	if ml.focused == 0 {
		ml.focused = n
		return
	}
	ml.focused = ml.focused%n + 1
}

// FocusPrev moves the selection backward, wrapping to the last block.
func (ml *MessageList) FocusPrev() {
	n := len(ml.refs)
	if n == 0 {
		ml.focused = 0
		return
	}
	if ml.focused <= 1 {
		ml.focused = n
		return
	}
	ml.focused--
}

// ClearFocus drops the selection.
func (ml *MessageList) ClearFocus() {
	ml.focused = 0
}

// View renders all messages separated by blank lines.
func (ml *MessageList) View() string {
	if len(ml.messages) == 0 {
		return ""
	}

	parts := make([]string, 0, len(ml.messages))
	next := 1
	for _, msg := range ml.messages {
		bubble := NewMessageBubble(msg, ml.theme, ml.markdown)
		bubble.Width = ml.width
		bubble.FirstCode = next
		bubble.Focused = ml.focused
		bubble.Copied = ml.copied
		parts = append(parts, bubble.View())

		if msg.IsBot() && !msg.Fallback {
			next += len(segment.Codes(msg.Segments()))
		}
	}
	return strings.Join(parts, "\n\n")
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// wordWrap wraps text at word boundaries to width display cells.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if util.StringWidth(current)+1+util.StringWidth(word) <= width {
				current += " " + word
			} else {
				result.WriteString(current)
				result.WriteString("\n")
				current = word
			}
		}
		result.WriteString(current)
	}
	return result.String()
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(text string) int {
	widest := 0
	for _, line := range strings.Split(text, "\n") {
		if w := util.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// formatTime renders a timestamp as a clock time, with the date for
// messages from another day.
func formatTime(t time.Time) string {
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}

// formatElapsed formats a duration for display.
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return strconv.Itoa(seconds) + "s"
	}
	return strconv.Itoa(seconds/60) + "m " + strconv.Itoa(seconds%60) + "s"
}
