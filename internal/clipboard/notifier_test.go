// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package clipboard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recorder is a Writer that keeps every write.
type recorder struct {
	writes []string
	err    error
}

func (r *recorder) WriteAll(text string) error {
	if r.err != nil {
		return r.err
	}
	r.writes = append(r.writes, text)
	return nil
}

func newTestNotifier() (*Notifier, *recorder, *fakeClock) {
	rec := &recorder{}
	clock := newFakeClock()
	return NewNotifier(rec, DefaultDuration).WithClock(clock.Now), rec, clock
}

// =============================================================================
// MARK / EXPIRE TESTS
// =============================================================================

func TestMarkCopied_SetsActiveImmediately(t *testing.T) {
	n, rec, _ := newTestNotifier()
	key := Key{MessageID: "m1", Index: 0}

	_, ok := n.Active()
	require.False(t, ok)

	_, err := n.MarkCopied(key, "fmt.Println()")
	require.NoError(t, err)

	active, ok := n.Active()
	assert.True(t, ok)
	assert.Equal(t, key, active)
	assert.True(t, n.IsActive(key))
	assert.Equal(t, []string{"fmt.Println()"}, rec.writes)
}

func TestMarkCopied_RevertsAfterDuration(t *testing.T) {
	n, _, clock := newTestNotifier()
	key := Key{MessageID: "m1", Index: 2}

	ticket, err := n.MarkCopied(key, "x")
	require.NoError(t, err)

	clock.Advance(999 * time.Millisecond)
	assert.True(t, n.IsActive(key))

	clock.Advance(time.Millisecond)
	assert.False(t, n.IsActive(key))

	assert.True(t, n.Expire(ticket))
	_, ok := n.Active()
	assert.False(t, ok)
}

func TestMarkCopied_SecondMarkReplacesFirst(t *testing.T) {
	n, _, clock := newTestNotifier()
	first := Key{MessageID: "m1", Index: 0}
	second := Key{MessageID: "m1", Index: 1}

	t1, err := n.MarkCopied(first, "a")
	require.NoError(t, err)

	clock.Advance(600 * time.Millisecond)
	t2, err := n.MarkCopied(second, "b")
	require.NoError(t, err)

	assert.False(t, n.IsActive(first))
	assert.True(t, n.IsActive(second))

	// The first timer fires at 1000ms; it must not clear the second mark.
	clock.Advance(400 * time.Millisecond)
	assert.False(t, n.Expire(t1))
	assert.True(t, n.IsActive(second))

	// The expiry window restarted at the second mark.
	clock.Advance(599 * time.Millisecond)
	assert.True(t, n.IsActive(second))
	clock.Advance(time.Millisecond)
	assert.False(t, n.IsActive(second))
	assert.True(t, n.Expire(t2))
}

func TestMarkCopied_SameKeyTwice(t *testing.T) {
	n, _, _ := newTestNotifier()
	key := Key{MessageID: "m", Index: 0}

	t1, _ := n.MarkCopied(key, "a")
	t2, _ := n.MarkCopied(key, "a")

	assert.NotEqual(t, t1, t2)
	assert.False(t, n.Expire(t1))
	assert.True(t, n.IsActive(key))
	assert.True(t, n.Expire(t2))
	assert.False(t, n.Expire(t2), "second expire is a no-op")
}

func TestMarkCopied_WriteErrorLeavesStateUnchanged(t *testing.T) {
	n, rec, _ := newTestNotifier()
	key := Key{MessageID: "m", Index: 0}

	_, err := n.MarkCopied(key, "a")
	require.NoError(t, err)

	rec.err = errors.New("no clipboard utility")
	_, err = n.MarkCopied(Key{MessageID: "m", Index: 1}, "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, rec.err)

	assert.True(t, n.IsActive(key))
}

// =============================================================================
// CONSTRUCTION TESTS
// =============================================================================

func TestNewNotifier_Defaults(t *testing.T) {
	n := NewNotifier(nil, 0)
	assert.Equal(t, DefaultDuration, n.Duration())
	assert.IsType(t, System{}, n.writer)

	n = NewNotifier(WriterFunc(func(string) error { return nil }), 250*time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, n.Duration())
}

func TestExpireCmd_DeliversTicket(t *testing.T) {
	n := NewNotifier(WriterFunc(func(string) error { return nil }), 10*time.Millisecond)
	ticket, err := n.MarkCopied(Key{MessageID: "m"}, "x")
	require.NoError(t, err)

	cmd := n.ExpireCmd(ticket)
	require.NotNil(t, cmd)

	msg := cmd()
	expired, ok := msg.(ExpiredMsg)
	require.True(t, ok)
	assert.Equal(t, ticket, expired.Ticket)
	assert.True(t, n.Expire(expired.Ticket))
}

func TestSetDuration(t *testing.T) {
	n := NewNotifier(WriterFunc(func(string) error { return nil }), time.Second)

	n.SetDuration(3 * time.Second)
	assert.Equal(t, 3*time.Second, n.Duration())

	n.SetDuration(0)
	assert.Equal(t, 3*time.Second, n.Duration())
}
