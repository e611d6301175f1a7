// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/jedai-tui/internal/segment"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "Padawan"
	case SenderBot:
		return "Obi-Wan"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single transcript entry. Messages are values and are never
// modified after creation.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	// Text is the query for user messages and the explanation for bot
	// messages.
	Text string `json:"text"`

	// Reference is the supporting text returned alongside an explanation.
	// Empty for user messages and fallback messages.
	Reference string `json:"reference,omitempty"`

	// Fallback marks a bot message that stands in for a failed request.
	Fallback bool `json:"fallback,omitempty"`
}

// NewMessage creates a message with a generated ID.
func NewMessage(sender Sender, text, reference string) Message {
	return Message{
		ID:        uuid.New().String(),
		Sender:    sender,
		Timestamp: time.Now(),
		Text:      text,
		Reference: reference,
	}
}

// NewUserMessage creates a user message. User messages carry no reference.
func NewUserMessage(text string) Message {
	return NewMessage(SenderUser, text, "")
}

// NewBotMessage creates a bot message from a service answer.
func NewBotMessage(text, reference string) Message {
	return NewMessage(SenderBot, text, reference)
}

// NewFallbackMessage creates the bot message shown in place of a failed
// answer.
func NewFallbackMessage(text string) Message {
	msg := NewMessage(SenderBot, text, "")
	msg.Fallback = true
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsUser reports whether the user sent the message.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsBot reports whether the message came from the service.
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}

// Segments splits the message text into prose and code runs.
// User messages are never split.
func (m Message) Segments() []segment.Segment {
	if m.IsUser() {
		if m.Text == "" {
			return nil
		}
		return []segment.Segment{segment.Text(m.Text)}
	}
	return segment.Split(m.Text)
}
