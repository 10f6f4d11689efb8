// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the studia TUI.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studia-tui/internal/ui/styles"
	"github.com/jeranaias/studia-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status
type Status int

const (
	StatusReady Status = iota
	StatusSending
	StatusUploading
	StatusIngesting
	StatusLoading
	StatusError
	StatusIdle
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusSending:
		return "Thinking..."
	case StatusUploading:
		return "Uploading..."
	case StatusIngesting:
		return "Ingesting..."
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusSending, StatusUploading, StatusIngesting, StatusLoading:
		return styles.StatusIndicators.Loading
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// ConnState represents the backend connection state.
type ConnState int

const (
	ConnOnline ConnState = iota
	ConnOffline
	ConnUnknown
)

// String returns the display string for the connection state
func (c ConnState) String() string {
	switch c {
	case ConnOnline:
		return "online"
	case ConnOffline:
		return "offline"
	default:
		return "..."
	}
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	Conn              ConnState // Backend reachability
	ConversationTitle string    // Current conversation title
	SessionTime       string    // Formatted session duration
	PendingDeletes    int       // Staged deletions awaiting commit
	SignedIn          bool      // Whether an auth token is configured
	Status            Status    // Current status
	Width             int       // Available width
	ShowShortcuts     bool      // Show keyboard shortcuts
	theme             *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Conn:          ConnUnknown,
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetConn updates the backend connection state
func (s *StatusBar) SetConn(conn ConnState) {
	s.Conn = conn
}

// SetConversation updates the current conversation title
func (s *StatusBar) SetConversation(title string) {
	s.ConversationTitle = title
}

// SetSessionTime updates the formatted session duration
func (s *StatusBar) SetSessionTime(formatted string) {
	s.SessionTime = formatted
}

// SetPendingDeletes updates the count of staged deletions
func (s *StatusBar) SetPendingDeletes(n int) {
	s.PendingDeletes = n
}

// SetSignedIn updates the auth indicator
func (s *StatusBar) SetSignedIn(signedIn bool) {
	s.SignedIn = signedIn
}

// View renders the status bar
func (s *StatusBar) View() string {
	// Choose layout based on width
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: [conn] Status
func (s *StatusBar) viewNarrow() string {
	connStyle := s.getConnStyle()
	connSection := "[" + connStyle.Render(s.connIcon()) + "]"

	statusStyle := s.getStatusStyle()
	statusText := statusStyle.Render(s.Status.Icon())

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")

	result := connSection + separator + statusText
	if s.PendingDeletes > 0 {
		delStyle := lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
		result += separator + delStyle.Render("D:"+strconv.Itoa(s.PendingDeletes))
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar
// Format: conn | conversation | pending deletes | Status
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	connStyle := s.getConnStyle()
	parts = append(parts, connStyle.Render(s.Conn.String()))

	if s.ConversationTitle != "" {
		title := util.TruncateRunes(s.ConversationTitle, 20)
		titleStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		parts = append(parts, titleStyle.Render(title))
	}

	if s.PendingDeletes > 0 {
		delStyle := lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
		parts = append(parts, delStyle.Render(strconv.Itoa(s.PendingDeletes)+" pending delete"))
	}

	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.String()))

	result := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full-featured status bar for wide terminals
// Format: conn | conversation | session | pending deletes ... Status shortcuts
func (s *StatusBar) viewWide() string {
	// Left section: connection, conversation, session
	leftParts := []string{}

	connStyle := s.getConnStyle()
	leftParts = append(leftParts, connStyle.Render(s.connIcon()+" "+strings.ToUpper(s.Conn.String())))

	if !s.SignedIn {
		anonStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)
		leftParts = append(leftParts, anonStyle.Render("anonymous"))
	}

	if s.ConversationTitle != "" {
		titleStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		leftParts = append(leftParts, titleStyle.Render(util.TruncateRunes(s.ConversationTitle, 30)))
	}

	if s.SessionTime != "" {
		timeStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, timeStyle.Render(s.SessionTime))
	}

	if s.PendingDeletes > 0 {
		delStyle := lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
		label := " pending delete"
		if s.PendingDeletes > 1 {
			label = " pending deletes"
		}
		leftParts = append(leftParts, delStyle.Render(strconv.Itoa(s.PendingDeletes)+label))
	}

	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	leftSection := strings.Join(leftParts, leftSep)

	// Right section: Status and shortcuts
	rightParts := []string{}

	statusStyle := s.getStatusStyle()
	rightParts = append(rightParts, statusStyle.Render(s.Status.String()))

	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}

	rightSection := strings.Join(rightParts, " ")

	// Calculate spacing
	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)

	spacing := s.Width - leftWidth - rightWidth - 4 // Account for padding
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderShortcuts renders keyboard shortcut hints
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("^N") + descStyle.Render("new"),
		keyStyle.Render("^D") + descStyle.Render("del"),
		keyStyle.Render("^U") + descStyle.Render("undo"),
		keyStyle.Render("^C") + descStyle.Render("quit"),
	}

	return strings.Join(shortcuts, " ")
}

// connIcon returns an icon for the connection state
func (s *StatusBar) connIcon() string {
	switch s.Conn {
	case ConnOnline:
		return styles.StatusIndicators.Connected
	case ConnOffline:
		return styles.StatusIndicators.Offline
	default:
		return "?"
	}
}

// getConnStyle returns the style for the connection state
func (s *StatusBar) getConnStyle() lipgloss.Style {
	switch s.Conn {
	case ConnOnline:
		return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	case ConnOffline:
		return lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}

// getStatusStyle returns the style for the current status
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	case StatusSending, StatusUploading, StatusIngesting:
		return lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	case StatusLoading:
		return lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
	case StatusIdle:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
