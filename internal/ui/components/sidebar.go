// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the studia TUI.
package components

import (
	"strings"

	"github.com/jeranaias/studia-tui/internal/model"
	"github.com/jeranaias/studia-tui/internal/ui/styles"
	"github.com/jeranaias/studia-tui/internal/util"
)

// =============================================================================
// CONVERSATION SIDEBAR - Left panel listing conversations
// =============================================================================

// Sidebar renders the conversation list panel.
// Staged conversations are shown struck-through until their deletion commits
// or the user undoes it.
type Sidebar struct {
	Width    int
	Height   int
	Selected int // Index into the visible list
	offset   int // Scroll offset
	theme    *styles.Theme
}

// NewSidebar creates a new conversation sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{
		Width:  30,
		Height: 20,
		theme:  theme,
	}
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// MoveUp moves the selection up one entry.
func (s *Sidebar) MoveUp() {
	if s.Selected > 0 {
		s.Selected--
	}
	s.clampOffset()
}

// MoveDown moves the selection down one entry, bounded by count.
func (s *Sidebar) MoveDown(count int) {
	if s.Selected < count-1 {
		s.Selected++
	}
	s.clampOffset()
}

// Select sets the selection to the given index.
func (s *Sidebar) Select(index int) {
	if index < 0 {
		index = 0
	}
	s.Selected = index
	s.clampOffset()
}

// ClampTo bounds the selection to the given list length.
// Used after deletions so the selection never points past the end.
func (s *Sidebar) ClampTo(count int) {
	if count == 0 {
		s.Selected = 0
		s.offset = 0
		return
	}
	if s.Selected >= count {
		s.Selected = count - 1
	}
	s.clampOffset()
}

func (s *Sidebar) clampOffset() {
	visible := s.visibleRows()
	if visible <= 0 {
		return
	}
	if s.Selected < s.offset {
		s.offset = s.Selected
	}
	if s.Selected >= s.offset+visible {
		s.offset = s.Selected - visible + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// visibleRows returns how many entries fit inside the panel chrome.
func (s *Sidebar) visibleRows() int {
	rows := s.Height - 4 // border, padding, header
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders the sidebar for the given conversations.
func (s *Sidebar) View(conversations []model.Conversation) string {
	header := s.theme.SidebarTitle.Render("Conversations")

	if len(conversations) == 0 {
		empty := s.theme.SidebarMeta.Render("No conversations yet")
		body := header + "\n\n" + empty
		return s.theme.Sidebar.Width(s.Width - 2).Height(s.Height - 2).Render(body)
	}

	innerWidth := s.Width - 6 // border and padding
	if innerWidth < 10 {
		innerWidth = 10
	}

	visible := s.visibleRows()
	end := s.offset + visible
	if end > len(conversations) {
		end = len(conversations)
	}

	lines := make([]string, 0, end-s.offset)
	for i := s.offset; i < end; i++ {
		conv := conversations[i]
		lines = append(lines, s.renderEntry(conv, i == s.Selected, innerWidth))
	}

	body := header + "\n" + strings.Join(lines, "\n")
	return s.theme.Sidebar.Width(s.Width - 2).Height(s.Height - 2).Render(body)
}

// renderEntry renders a single conversation row.
func (s *Sidebar) renderEntry(conv model.Conversation, selected bool, width int) string {
	title := conv.Title
	if title == "" {
		title = "Untitled"
	}

	meta := util.FormatRelativeTime(conv.UpdatedAt)
	metaWidth := util.StringWidth(meta)

	titleWidth := width - metaWidth - 1
	if titleWidth < 4 {
		titleWidth = 4
	}
	title = util.PadWidth(util.TruncateWidth(title, titleWidth), titleWidth)

	line := title + " " + meta

	switch {
	case selected:
		return s.theme.SidebarItemSelected.Render(line)
	case conv.IsPlaceholder():
		return s.theme.SidebarItemTemporary.Render(line)
	default:
		return s.theme.SidebarItem.Render(line)
	}
}

// EntryAt returns the conversation at the given visible index, if valid.
func EntryAt(conversations []model.Conversation, index int) (model.Conversation, bool) {
	if index < 0 || index >= len(conversations) {
		return model.Conversation{}, false
	}
	return conversations[index], true
}
