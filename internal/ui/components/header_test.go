// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the studia TUI.
package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/studia-tui/internal/ui/styles"
)

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestNewHeader(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	if h == nil {
		t.Fatal("NewHeader() returned nil")
	}

	if h.Title != "studia" {
		t.Errorf("NewHeader() Title = %q, want %q", h.Title, "studia")
	}

	if h.ConversationTitle != "" {
		t.Errorf("NewHeader() ConversationTitle = %q, want empty string", h.ConversationTitle)
	}

	if h.Conn != ConnUnknown {
		t.Errorf("NewHeader() Conn = %v, want %v", h.Conn, ConnUnknown)
	}

	if h.Width != 80 {
		t.Errorf("NewHeader() Width = %d, want 80", h.Width)
	}

	if h.theme != theme {
		t.Error("NewHeader() did not set theme")
	}
}

func TestHeaderSetWidth(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	widths := []int{40, 80, 120, 200}
	for _, width := range widths {
		h.SetWidth(width)
		if h.Width != width {
			t.Errorf("SetWidth(%d) Width = %d, want %d", width, h.Width, width)
		}
	}
}

func TestHeaderSetConversation(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	title := "Photosynthesis basics"
	h.SetConversation(title)

	if h.ConversationTitle != title {
		t.Errorf("SetConversation(%q) ConversationTitle = %q, want %q", title, h.ConversationTitle, title)
	}
}

func TestHeaderSetConn(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	states := []ConnState{ConnOnline, ConnOffline, ConnUnknown}
	for _, conn := range states {
		h.SetConn(conn)
		if h.Conn != conn {
			t.Errorf("SetConn(%v) Conn = %v, want %v", conn, h.Conn, conn)
		}
	}
}

func TestHeaderView(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	view := h.View()
	if view == "" {
		t.Error("View() should return non-empty string")
	}

	// Should contain the title
	if !strings.Contains(view, "studia") {
		t.Error("View() should contain title 'studia'")
	}
}

func TestHeaderViewWithConversation(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetConversation("Cell biology")

	view := h.View()
	if !strings.Contains(view, "Cell biology") {
		t.Error("View() should contain conversation title")
	}
}

func TestHeaderViewWithConn(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)

	tests := []struct {
		conn ConnState
		want string
	}{
		{ConnOnline, "ONLINE"},
		{ConnOffline, "OFFLINE"},
		{ConnUnknown, "..."},
	}

	for _, tc := range tests {
		h.SetConn(tc.conn)
		view := h.View()
		if !strings.Contains(view, tc.want) {
			t.Errorf("View() with conn %v should contain %q", tc.conn, tc.want)
		}
	}
}

func TestHeaderViewMinimumWidth(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetWidth(10) // Very narrow

	view := h.View()
	if view == "" {
		t.Error("View() should handle minimum width gracefully")
	}

	// Should still contain title even at minimum width
	if !strings.Contains(view, "studia") {
		t.Error("View() should contain title even at minimum width")
	}
}

func TestHeaderViewCompact(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetConversation("Quantum tunnelling")
	h.SetConn(ConnOnline)

	view := h.ViewCompact()
	if view == "" {
		t.Error("ViewCompact() should return non-empty string")
	}

	// Should contain key elements
	if !strings.Contains(view, "studia") {
		t.Error("ViewCompact() should contain title")
	}
	if !strings.Contains(view, "Quantum tunnelling") {
		t.Error("ViewCompact() should contain conversation title")
	}
	if !strings.Contains(view, "ONLINE") {
		t.Error("ViewCompact() should contain connection state")
	}
}

func TestHeaderViewCompactOffline(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetConn(ConnOffline)

	view := h.ViewCompact()
	if !strings.Contains(view, "OFFLINE") {
		t.Error("ViewCompact() when offline should contain 'OFFLINE'")
	}
}

// =============================================================================
// EDGE CASE TESTS
// =============================================================================

func TestHeaderEmptyTitle(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.Title = ""

	view := h.View()
	if view == "" {
		t.Error("View() should handle empty title gracefully")
	}
}

func TestHeaderVeryWideWidth(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetWidth(10000)

	view := h.View()
	if view == "" {
		t.Error("View() should handle very wide width")
	}
}

func TestHeaderLongConversationTitleTruncated(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetConversation(strings.Repeat("long title ", 20))

	view := h.View()
	if view == "" {
		t.Error("View() should handle long conversation titles")
	}
	if !strings.Contains(view, "...") {
		t.Error("View() should truncate long conversation titles with ellipsis")
	}
}

func TestHeaderAllFieldsSet(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.Title = "Custom Title"
	h.SetConversation("Thermodynamics")
	h.SetConn(ConnOnline)
	h.SetWidth(100)

	view := h.View()
	if !strings.Contains(view, "Custom Title") {
		t.Error("View() should contain custom title")
	}
	if !strings.Contains(view, "Thermodynamics") {
		t.Error("View() should contain conversation title")
	}
	if !strings.Contains(view, "ONLINE") {
		t.Error("View() should contain connection state")
	}
}
