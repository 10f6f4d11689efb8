// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ThinkingPlaceholder is the interim text shown while an assistant
// reply is in flight.
const ThinkingPlaceholder = "Thinking…"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// STATUS TYPE
// =============================================================================

// Status tracks the lifecycle of a message on the client.
//
// Transitions are one-way: pending -> resolved or pending -> errored.
// A message never returns to pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
	StatusErrored  Status = "errored"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// The ID is client-generated and used only as a stable render/patch key;
// it is never sent to the backend.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage creates a resolved user message.
// User messages resolve immediately: they were genuinely submitted
// regardless of what the backend does with them.
func NewUserMessage(text string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleUser,
		Text:      text,
		Status:    StatusResolved,
		Timestamp: time.Now(),
	}
}

// NewPendingAssistant creates an assistant placeholder awaiting a reply.
func NewPendingAssistant() *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		Text:      ThinkingPlaceholder,
		Status:    StatusPending,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates a resolved assistant message, used when
// loading history the backend already settled.
func NewAssistantMessage(text string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		Text:      text,
		Status:    StatusResolved,
		Timestamp: time.Now(),
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Resolve transitions a pending message to resolved with the final text.
// Resolving a message that already settled is a no-op.
func (m *Message) Resolve(text string) {
	if m.Status != StatusPending {
		return
	}
	m.Text = text
	m.Status = StatusResolved
	m.Timestamp = time.Now()
}

// Fail transitions a pending message to errored with a user-visible reason.
func (m *Message) Fail(reason string) {
	if m.Status != StatusPending {
		return
	}
	m.Text = reason
	m.Status = StatusErrored
	m.Timestamp = time.Now()
}

// IsPending reports whether the message is still awaiting its reply.
func (m *Message) IsPending() bool {
	return m.Status == StatusPending
}

// Preview returns a truncated single-line preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	text := strings.ReplaceAll(m.Text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique client-side message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
