// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package clipboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDuration is how long a copied badge stays visible.
const DefaultDuration = time.Second

// =============================================================================
// WRITER
// =============================================================================

// Writer is the clipboard primitive.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the OS clipboard.
type System struct{}

// WriteAll copies text to the system clipboard.
func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a system clipboard utility was found.
func Available() bool {
	return !clipboard.Unsupported
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(text string) error

// WriteAll calls f(text).
func (f WriterFunc) WriteAll(text string) error { return f(text) }

// =============================================================================
// KEY / TICKET
// =============================================================================

// Key identifies a code block: the message it belongs to and its position
// among that message's code blocks.
type Key struct {
	MessageID string
	Index     int
}

// Ticket identifies one MarkCopied call.
type Ticket struct {
	Key Key
	seq uint64
}

// ExpiredMsg is delivered when a mark's feedback duration has elapsed.
type ExpiredMsg struct {
	Ticket Ticket
}

// =============================================================================
// NOTIFIER
// =============================================================================

// Notifier holds the copied-badge state.
type Notifier struct {
	mu       sync.Mutex
	writer   Writer
	duration time.Duration
	now      func() time.Time

	active bool
	key    Key
	expiry time.Time
	seq    uint64
}

// NewNotifier creates a notifier that writes through w. A nil w uses the
// system clipboard; a non-positive duration uses DefaultDuration.
func NewNotifier(w Writer, duration time.Duration) *Notifier {
	if w == nil {
		w = System{}
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Notifier{
		writer:   w,
		duration: duration,
		now:      time.Now,
	}
}

// WithClock replaces the time source.
func (n *Notifier) WithClock(now func() time.Time) *Notifier {
	n.now = now
	return n
}

// Duration returns the feedback duration.
func (n *Notifier) Duration() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.duration
}

// SetDuration changes the feedback duration for later marks. Non-positive
// values are ignored.
func (n *Notifier) SetDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	n.mu.Lock()
	n.duration = d
	n.mu.Unlock()
}

// MarkCopied writes content to the clipboard and marks key as the copied
// block, replacing any earlier mark. On a write error the state is left
// unchanged.
func (n *Notifier) MarkCopied(key Key, content string) (Ticket, error) {
	if err := n.writer.WriteAll(content); err != nil {
		return Ticket{}, fmt.Errorf("copy to clipboard: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	n.active = true
	n.key = key
	n.expiry = n.now().Add(n.duration)
	return Ticket{Key: key, seq: n.seq}, nil
}

// Expire clears the mark made with ticket. It reports false, doing nothing,
// when a newer mark has replaced it or the mark is already cleared.
func (n *Notifier) Expire(ticket Ticket) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.active || ticket.seq != n.seq {
		return false
	}
	n.active = false
	n.key = Key{}
	n.expiry = time.Time{}
	return true
}

// Active returns the marked key, if its feedback duration has not elapsed.
func (n *Notifier) Active() (Key, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.active || !n.now().Before(n.expiry) {
		return Key{}, false
	}
	return n.key, true
}

// IsActive reports whether key is the marked block.
func (n *Notifier) IsActive(key Key) bool {
	active, ok := n.Active()
	return ok && active == key
}

// ExpireCmd returns a command that delivers ExpiredMsg for ticket once the
// feedback duration has elapsed.
func (n *Notifier) ExpireCmd(ticket Ticket) tea.Cmd {
	return tea.Tick(n.Duration(), func(time.Time) tea.Msg {
		return ExpiredMsg{Ticket: ticket}
	})
}
