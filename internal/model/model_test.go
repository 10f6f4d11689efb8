// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("Hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want 'user'", msg.Role)
	}
	if msg.Text != "Hello" {
		t.Errorf("Text = %q, want 'Hello'", msg.Text)
	}
	if msg.Status != StatusResolved {
		t.Errorf("Status = %q, want resolved", msg.Status)
	}
	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID should start with 'msg_', got %q", msg.ID)
	}
}

func TestNewPendingAssistant(t *testing.T) {
	msg := NewPendingAssistant()

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want 'assistant'", msg.Role)
	}
	if msg.Status != StatusPending {
		t.Errorf("Status = %q, want pending", msg.Status)
	}
	if msg.Text != ThinkingPlaceholder {
		t.Errorf("Text = %q, want placeholder", msg.Text)
	}
}

func TestMessage_Resolve(t *testing.T) {
	msg := NewPendingAssistant()
	msg.Resolve("The answer")

	if msg.Status != StatusResolved {
		t.Errorf("Status = %q, want resolved", msg.Status)
	}
	if msg.Text != "The answer" {
		t.Errorf("Text = %q, want 'The answer'", msg.Text)
	}
}

func TestMessage_Fail(t *testing.T) {
	msg := NewPendingAssistant()
	msg.Fail("network error")

	if msg.Status != StatusErrored {
		t.Errorf("Status = %q, want errored", msg.Status)
	}
	if msg.Text != "network error" {
		t.Errorf("Text = %q, want 'network error'", msg.Text)
	}
}

// Resolved messages never return to pending, and a settled message
// ignores further transitions.
func TestMessage_StatusTransitionsAreOneWay(t *testing.T) {
	msg := NewPendingAssistant()
	msg.Resolve("final")
	msg.Fail("too late")

	if msg.Status != StatusResolved {
		t.Errorf("Status = %q, want resolved after late Fail", msg.Status)
	}
	if msg.Text != "final" {
		t.Errorf("Text = %q, want 'final'", msg.Text)
	}

	user := NewUserMessage("hi")
	user.Resolve("overwrite")
	if user.Text != "hi" {
		t.Errorf("user Text = %q, resolved messages must not repatch", user.Text)
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("line one\nline two")
	got := msg.Preview(50)
	if strings.Contains(got, "\n") {
		t.Errorf("Preview should be single line, got %q", got)
	}

	long := NewUserMessage(strings.Repeat("x", 100))
	got = long.Preview(10)
	if got != strings.Repeat("x", 10)+"..." {
		t.Errorf("Preview = %q", got)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	conv := NewConversation("My chat")

	if !conv.IsPlaceholder() {
		t.Error("new conversation should carry a temp id")
	}
	if conv.Title != "My chat" {
		t.Errorf("Title = %q", conv.Title)
	}
	if conv.CreatedAt.IsZero() || conv.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"short prompt verbatim", "Explain diffusion models", "Explain diffusion models"},
		{"long prompt truncated", strings.Repeat("a", 40), strings.Repeat("a", 25) + "..."},
		{"exactly at limit", strings.Repeat("b", 25), strings.Repeat("b", 25)},
		{"newlines flattened", "first\nsecond", "first second"},
		{"empty prompt", "   ", "New Chat"},
		{"unicode safe", strings.Repeat("ü", 30), strings.Repeat("ü", 25) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(tt.prompt); got != tt.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestDeriveTitleFromFile(t *testing.T) {
	if got := DeriveTitleFromFile("/tmp/uploads/notes.pdf"); got != "notes.pdf" {
		t.Errorf("DeriveTitleFromFile = %q, want 'notes.pdf'", got)
	}
	long := strings.Repeat("d", 30) + ".pdf"
	if got := DeriveTitleFromFile(long); got != strings.Repeat("d", 25)+"..." {
		t.Errorf("DeriveTitleFromFile long = %q", got)
	}
}
