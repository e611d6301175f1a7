// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/jedai-tui/internal/model"
	"github.com/jeranaias/jedai-tui/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testTheme() *styles.Theme {
	theme := styles.NewTheme("dark")
	theme.SetSize(100, 40)
	return theme
}

// =============================================================================
// CODE BLOCK TESTS
// =============================================================================

func TestCodeBlock_CopyLabel(t *testing.T) {
	block := NewCodeBlock("go", "x := 1")
	assert.Equal(t, "[copy]", block.CopyLabel())

	block.Number = 3
	assert.Equal(t, "[#3 copy]", block.CopyLabel())

	block.Copied = true
	assert.Equal(t, "[#3 copied ✓]", block.CopyLabel())
}

func TestCodeBlock_Render(t *testing.T) {
	block := NewCodeBlock("go", "package main\n\nfunc main() {}\n")
	block.Number = 1
	out := block.Render(testTheme())

	assert.Contains(t, out, "go")
	assert.Contains(t, out, "[#1 copy]")
	assert.Contains(t, out, "func")
	assert.Contains(t, out, "main")
	// Three lines of code, the trailing newline trimmed.
	assert.Contains(t, out, "3")
	assert.NotContains(t, out, " 4 ")
}

func TestCodeBlock_RenderUnknownLanguage(t *testing.T) {
	block := NewCodeBlock("", "just some text")
	out := block.Render(testTheme())

	assert.Contains(t, out, "text")
	assert.Contains(t, out, "just")
}

func TestHighlightCode_FallsBack(t *testing.T) {
	out := highlightCode("hello", "no-such-language", "no-such-style")
	assert.Contains(t, out, "hello")
}

// =============================================================================
// MESSAGE LIST TESTS
// =============================================================================

func TestMessageList_CodeRefsNumberAcrossMessages(t *testing.T) {
	list := NewMessageList(testTheme())
	first := model.NewBotMessage("a ```go\n1``` b ```py\n2```", "")
	second := model.NewBotMessage("```\n3```", "")
	list.SetMessages([]model.Message{
		model.NewUserMessage("q ```not code```"),
		first,
		model.NewFallbackMessage("Something went wrong. Try again!"),
		second,
	})

	refs := list.CodeRefs()
	require.Len(t, refs, 3)
	assert.Equal(t, CodeRef{MessageID: first.ID, Index: 0, Number: 1, Lang: "go", Content: "1"}, refs[0])
	assert.Equal(t, CodeRef{MessageID: first.ID, Index: 1, Number: 2, Lang: "py", Content: "2"}, refs[1])
	assert.Equal(t, CodeRef{MessageID: second.ID, Index: 0, Number: 3, Content: "3"}, refs[2])
}

func TestMessageList_Focus(t *testing.T) {
	list := NewMessageList(testTheme())

	list.FocusNext()
	assert.Equal(t, 0, list.Focused())
	_, ok := list.FocusedRef()
	assert.False(t, ok)

	list.SetMessages([]model.Message{model.NewBotMessage("```\na``` ```\nb``` ```\nc```", "")})

	// The first press selects the newest block.
	list.FocusNext()
	assert.Equal(t, 3, list.Focused())
	list.FocusNext()
	assert.Equal(t, 1, list.Focused())
	list.FocusPrev()
	assert.Equal(t, 3, list.Focused())
	list.FocusPrev()
	assert.Equal(t, 2, list.Focused())

	ref, ok := list.FocusedRef()
	require.True(t, ok)
	assert.Equal(t, "b", ref.Content)

	list.ClearFocus()
	assert.Equal(t, 0, list.Focused())
}

func TestMessageList_FocusClearedWhenBlocksShrink(t *testing.T) {
	list := NewMessageList(testTheme())
	list.SetMessages([]model.Message{model.NewBotMessage("```\na``` ```\nb```", "")})
	list.FocusNext()
	require.Equal(t, 2, list.Focused())

	list.SetMessages(nil)
	assert.Equal(t, 0, list.Focused())
}

func TestMessageList_ViewShowsCopiedState(t *testing.T) {
	list := NewMessageList(testTheme())
	list.SetWidth(100)
	msg := model.NewBotMessage("```go\na()``` ```go\nb()```", "")
	list.SetMessages([]model.Message{msg})

	list.SetCopied(func(id string, index int) bool {
		return id == msg.ID && index == 1
	})
	out := list.View()
	assert.Contains(t, out, "[#1 copy]")
	assert.Contains(t, out, "[#2 copied ✓]")
}

func TestMessageList_EmptyView(t *testing.T) {
	assert.Empty(t, NewMessageList(testTheme()).View())
}

// =============================================================================
// MESSAGE BUBBLE TESTS
// =============================================================================

func TestMessageBubble_User(t *testing.T) {
	b := NewMessageBubble(model.NewUserMessage("what does ```x``` do?"), testTheme(), nil)
	b.Width = 80
	out := b.View()

	assert.Contains(t, out, "Padawan")
	assert.Contains(t, out, "what does ```x``` do?")
	assert.NotContains(t, out, "[copy]")
}

func TestMessageBubble_BotWithReference(t *testing.T) {
	b := NewMessageBubble(model.NewBotMessage("It prints hello.", "main.go line 3"), testTheme(), nil)
	b.Width = 80
	out := b.View()

	assert.Contains(t, out, "Obi-Wan")
	assert.Contains(t, out, "It prints hello.")
	assert.Contains(t, out, "main.go line 3")
	assert.Less(t, strings.Index(out, "It prints"), strings.Index(out, "main.go"))
}

func TestMessageBubble_Fallback(t *testing.T) {
	b := NewMessageBubble(model.NewFallbackMessage("Something went wrong. Try again!"), testTheme(), nil)
	b.Width = 80
	out := b.View()

	assert.Contains(t, out, "Something went wrong. Try again!")
	assert.Contains(t, out, styles.StatusIndicators.Error)
}

func TestMessageBubble_Timestamp(t *testing.T) {
	msg := model.NewBotMessage("x", "")
	msg.Timestamp = time.Now()

	b := NewMessageBubble(msg, testTheme(), nil)
	assert.Contains(t, b.View(), msg.Timestamp.Format("15:04"))

	b.ShowTimestamp = false
	assert.NotContains(t, b.View(), msg.Timestamp.Format("15:04"))
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdown_Render(t *testing.T) {
	md := NewMarkdown("notty", 60)
	out := md.Render("Use **bold** words.")

	assert.Contains(t, out, "bold")
	assert.False(t, strings.HasPrefix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestMarkdown_NilRendersRaw(t *testing.T) {
	var md *Markdown
	assert.Equal(t, "raw", md.Render("raw"))
}

func TestMarkdown_MinimumWidth(t *testing.T) {
	md := NewMarkdown("notty", 5)
	assert.Equal(t, 20, md.Width())
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinner_Lifecycle(t *testing.T) {
	now := time.Unix(1000, 0)
	s := NewSpinner(testTheme())
	s.now = func() time.Time { return now }

	assert.Empty(t, s.View())
	assert.Equal(t, time.Duration(0), s.Elapsed())

	require.NotNil(t, s.Start())
	assert.Nil(t, s.Start(), "second start must not spawn another tick loop")
	assert.True(t, s.IsActive())

	now = now.Add(75 * time.Second)
	assert.Equal(t, 75*time.Second, s.Elapsed())
	view := s.View()
	assert.Contains(t, view, DefaultThinkingMessage)
	assert.Contains(t, view, "1m 15s")

	s.Stop()
	assert.Empty(t, s.View())
	_, cmd := s.Update(nil)
	assert.Nil(t, cmd)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0s", formatElapsed(0))
	assert.Equal(t, "59s", formatElapsed(59*time.Second))
	assert.Equal(t, "2m 5s", formatElapsed(125*time.Second))
}

// =============================================================================
// BANNER AND VIEWPORT TESTS
// =============================================================================

func TestBanner_View(t *testing.T) {
	b := NewBanner(testTheme())
	b.SetVersion("v1.2.0")
	b.SetEndpoint("http://localhost:8000")
	b.SetWidth(100)

	out := b.View()
	assert.Contains(t, out, "JedAI")
	assert.Contains(t, out, "v1.2.0")
	assert.NotContains(t, out, "vv1.2.0")
	assert.Contains(t, out, Greeting)
	assert.Contains(t, out, "http://localhost:8000")

	b.SetWidth(30)
	assert.NotContains(t, b.View(), Greeting)
	assert.Equal(t, 1, b.Height())
}

func TestBanner_TruncatesLongEndpoint(t *testing.T) {
	long := "http://explainer.internal.example.com:8000/" + strings.Repeat("x", 40)
	b := NewBanner(testTheme())
	b.SetEndpoint(long)
	b.SetWidth(50)

	out := b.View()
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "http://explainer")
	assert.Contains(t, out, "...")
}

func TestChatViewport_AutoScroll(t *testing.T) {
	cv := NewChatViewport(testTheme())
	cv.SetSize(80, 6)

	var msgs []model.Message
	for i := 0; i < 20; i++ {
		msgs = append(msgs, model.NewUserMessage("question"))
	}
	cv.SetMessages(msgs)
	assert.True(t, cv.AtBottom())
	assert.Greater(t, cv.LineCount(), 6)

	cv.ScrollUp(5)
	assert.False(t, cv.AutoScroll())

	cv.SetMessages(append(msgs, model.NewUserMessage("more")))
	assert.False(t, cv.AtBottom(), "scrolled-up view must not jump")

	cv.ScrollToBottom()
	assert.True(t, cv.AutoScroll())
	assert.True(t, cv.AtBottom())
}

func TestChatViewport_NotReady(t *testing.T) {
	assert.Empty(t, NewChatViewport(testTheme()).View())
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wordWrap("one two three", 8))
	assert.Equal(t, "a\n\nb", wordWrap("a\n\nb", 10))
	assert.Equal(t, "keep", wordWrap("keep", 0))
}
