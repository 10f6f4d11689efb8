// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TitleMaxRunes is the maximum derived-title length before truncation.
const TitleMaxRunes = 25

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the client-side summary of a chat thread.
//
// A conversation starts life as an optimistic placeholder with a temp id;
// once the backend confirms, the id is replaced and never changes again.
type Conversation struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewConversation creates an optimistic placeholder conversation for a
// just-initiated chat. The temp id is replaced on backend reconciliation.
func NewConversation(title string) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        generateTempID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPlaceholder reports whether the conversation still carries a temp id.
func (c *Conversation) IsPlaceholder() bool {
	return strings.HasPrefix(c.ID, "tmp_")
}

// Touch bumps the updated timestamp.
func (c *Conversation) Touch() {
	c.UpdatedAt = time.Now()
}

// DisplayTitle returns the title or a default for untitled threads.
func (c *Conversation) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Chat"
}

// =============================================================================
// TITLE DERIVATION
// =============================================================================

// DeriveTitle builds a display title from the first prompt of a new
// conversation. Prompts at or under TitleMaxRunes are used verbatim;
// longer ones are truncated with an ellipsis. Rune-based to handle
// Unicode correctly.
func DeriveTitle(prompt string) string {
	title := strings.TrimSpace(strings.ReplaceAll(prompt, "\n", " "))
	if title == "" {
		return "New Chat"
	}
	runes := []rune(title)
	if len(runes) <= TitleMaxRunes {
		return title
	}
	return string(runes[:TitleMaxRunes]) + "..."
}

// DeriveTitleFromFile builds a display title from an uploaded file name.
func DeriveTitleFromFile(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "New Chat"
	}
	return DeriveTitle(base)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateTempID creates a temp conversation id for optimistic creation.
// The tmp_ prefix keeps it distinguishable from backend-issued ids.
func generateTempID() string {
	return "tmp_" + uuid.NewString()
}
