// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the studia TUI.
package components

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studia-tui/internal/ui/styles"
)

// =============================================================================
// SESSION TIMEOUT OVERLAY - Idle lock warning
// =============================================================================

// SessionTimeoutOverlay displays a warning when the session is about to idle
// out. Any key press while the warning is visible extends the session.
type SessionTimeoutOverlay struct {
	// State
	visible       bool
	timeRemaining time.Duration
	expired       bool

	// Dimensions
	width  int
	height int
}

// NewSessionTimeoutOverlay creates a new session timeout overlay.
func NewSessionTimeoutOverlay() SessionTimeoutOverlay {
	return SessionTimeoutOverlay{
		visible: false,
	}
}

// =============================================================================
// STATE MANAGEMENT
// =============================================================================

// SetSize sets the overlay dimensions.
func (o *SessionTimeoutOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// Show displays the overlay with the given time remaining.
func (o *SessionTimeoutOverlay) Show(remaining time.Duration) {
	o.visible = true
	o.timeRemaining = remaining
	o.expired = remaining <= 0
}

// Hide hides the overlay.
func (o *SessionTimeoutOverlay) Hide() {
	o.visible = false
	o.expired = false
}

// UpdateTime updates the countdown timer.
func (o *SessionTimeoutOverlay) UpdateTime(remaining time.Duration) {
	o.timeRemaining = remaining
	if remaining <= 0 {
		o.expired = true
	}
}

// IsVisible returns whether the overlay is currently visible.
func (o *SessionTimeoutOverlay) IsVisible() bool {
	return o.visible
}

// IsExpired returns whether the session has idled out.
func (o *SessionTimeoutOverlay) IsExpired() bool {
	return o.expired
}

// TimeRemaining returns the current time remaining.
func (o *SessionTimeoutOverlay) TimeRemaining() time.Duration {
	return o.timeRemaining
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// SessionExtendedMsg signals the user extended their session by pressing a key.
type SessionExtendedMsg struct{}

// Init initializes the overlay (no-op for overlays).
func (o SessionTimeoutOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages for the overlay.
func (o SessionTimeoutOverlay) Update(msg tea.Msg) (SessionTimeoutOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.height = msg.Height

	case tea.KeyMsg:
		// Any key press while warning is visible extends the session
		if o.visible && !o.expired {
			o.Hide()
			return o, func() tea.Msg {
				return SessionExtendedMsg{}
			}
		}
	}

	return o, nil
}

// View renders the session timeout overlay.
func (o SessionTimeoutOverlay) View() string {
	if !o.visible {
		return ""
	}

	if o.expired {
		return o.viewExpired()
	}
	return o.viewWarning()
}

// =============================================================================
// RENDER METHODS
// =============================================================================

// viewWarning renders the warning overlay before the session idles out.
func (o SessionTimeoutOverlay) viewWarning() string {
	width, height, maxWidth := o.boxDimensions()

	// Format remaining time as M:SS
	timeStr := formatTimeRemaining(o.timeRemaining)

	var parts []string

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)
	parts = append(parts, titleStyle.Render(styles.StatusIndicators.Warning+" Session Timeout Warning"))

	parts = append(parts, "")

	timeStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)

	msgStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 4).
		Align(lipgloss.Center)

	parts = append(parts, msgStyle.Render(
		"Session will expire in "+timeStyle.Render(timeStr)))

	parts = append(parts, "")

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true).
		Align(lipgloss.Center)
	parts = append(parts, hintStyle.Render("Press any key to continue studying"))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 3).
		Width(maxWidth).
		Align(lipgloss.Center)

	box := boxStyle.Render(content)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		box,
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim),
	)
}

// viewExpired renders the expired session message.
func (o SessionTimeoutOverlay) viewExpired() string {
	width, height, maxWidth := o.boxDimensions()

	var parts []string

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Rose).
		Bold(true)
	parts = append(parts, titleStyle.Render(styles.StatusIndicators.Error+" Session Expired"))

	parts = append(parts, "")

	msgStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(maxWidth - 4).
		Align(lipgloss.Center)
	parts = append(parts, msgStyle.Render(
		"Your session has timed out due to inactivity."))

	parts = append(parts, "")

	exitStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Align(lipgloss.Center)
	parts = append(parts, exitStyle.Render("Conversations are kept until you quit."))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Rose).
		Padding(1, 3).
		Width(maxWidth).
		Align(lipgloss.Center)

	box := boxStyle.Render(content)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		box,
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim),
	)
}

// boxDimensions resolves the terminal size and the overlay box width.
func (o SessionTimeoutOverlay) boxDimensions() (width, height, maxWidth int) {
	width = o.width
	if width == 0 {
		width = 60
	}
	height = o.height
	if height == 0 {
		height = 24
	}

	maxWidth = width - 8
	if maxWidth < 40 {
		maxWidth = 40
	}
	if maxWidth > 60 {
		maxWidth = 60
	}
	return width, height, maxWidth
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// formatTimeRemaining formats a duration as M:SS for display.
func formatTimeRemaining(d time.Duration) string {
	if d < 0 {
		return "0:00"
	}

	totalSecs := int(d.Seconds())
	mins := totalSecs / 60
	secs := totalSecs % 60

	return fmt.Sprintf("%d:%02d", mins, secs)
}
