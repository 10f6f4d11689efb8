// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the studia TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studia-tui/internal/ui/styles"
	"github.com/jeranaias/studia-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Title bar with studia branding
// =============================================================================

// Header represents the title bar component
type Header struct {
	Title             string // Brand title (default: "studia")
	ConversationTitle string // Active conversation title
	Conn              ConnState
	Width             int // Available width
	theme             *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "studia",
		Conn:  ConnUnknown,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetConversation updates the active conversation title
func (h *Header) SetConversation(title string) {
	h.ConversationTitle = title
}

// SetConn updates the connection state badge
func (h *Header) SetConn(conn ConnState) {
	h.Conn = conn
}

// View renders the header component
func (h *Header) View() string {
	// Ensure minimum width
	width := h.Width
	if width < 40 {
		width = 40
	}

	// Calculate inner width (accounting for borders and padding)
	innerWidth := width - 6

	// Brand title
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	// Subtitle line with conversation and connection
	subtitleParts := []string{}

	if h.ConversationTitle != "" {
		titleStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
		subtitleParts = append(subtitleParts, titleStyle.Render(util.TruncateRunes(h.ConversationTitle, 40)))
	}

	connStyle := h.getConnStyle()
	subtitleParts = append(subtitleParts, connStyle.Render("["+strings.ToUpper(h.Conn.String())+"]"))

	subtitle := strings.Join(subtitleParts, " ")

	// Center the content
	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)

	subtitleLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Foreground(styles.TextMuted).
		Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	headerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return headerBox.Render(content)
}

// ViewCompact renders a compact single-line header for narrow terminals
func (h *Header) ViewCompact() string {
	// Compact format: <studia> | conversation | [ONLINE]
	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Cyan)

	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	brand := accentStyle.Render("<") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(">")

	parts := []string{brand}

	if h.ConversationTitle != "" {
		titleStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		parts = append(parts, titleStyle.Render(util.TruncateRunes(h.ConversationTitle, 25)))
	}

	connStyle := h.getConnStyle()
	parts = append(parts, connStyle.Render("["+strings.ToUpper(h.Conn.String())+"]"))

	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	return strings.Join(parts, separator)
}

// getConnStyle returns the style for the connection badge
func (h *Header) getConnStyle() lipgloss.Style {
	switch h.Conn {
	case ConnOnline:
		return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	case ConnOffline:
		return lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
