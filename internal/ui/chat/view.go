// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive chat view for the TUI.
//
// This file contains the rendering logic for the chat interface:
// the sidebar/transcript split, the welcome and timeout overlays,
// and the toast stack composited over everything else.
package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studia-tui/internal/ui/components"
	"github.com/jeranaias/studia-tui/internal/ui/styles"
)

// =============================================================================
// LAYOUT CONSTANTS
// =============================================================================

const (
	// narrowBreakpoint is the width below which the sidebar is hidden.
	narrowBreakpoint = 80

	sidebarMinWidth = 24
	sidebarMaxWidth = 36

	// chromeHeight is the rows consumed by header, input, and status bar.
	chromeHeight = 10
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full chat interface.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	if m.timeoutOverlay.IsVisible() {
		return m.timeoutOverlay.View()
	}
	if m.showWelcome {
		return m.welcome.View()
	}
	if m.showHelp {
		return m.viewHelp()
	}

	var view string
	if m.width < narrowBreakpoint {
		view = m.viewNarrow()
	} else {
		view = m.viewSplit()
	}

	if m.toasts.HasToasts() {
		view = overlayToasts(view, m.toasts.GetToasts(), m.width, m.height)
	}
	return view
}

// viewSplit renders the sidebar next to the transcript column.
func (m Model) viewSplit() string {
	sidebarWidth := m.sidebarWidth()
	contentWidth := m.width - sidebarWidth

	sidebar := lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(m.height - 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(m.sidebarBorderColor()).
		Render(m.sidebar.View(m.visibleConversations()))

	content := lipgloss.NewStyle().
		Width(contentWidth).
		Render(m.viewContent())

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar.View())
}

// viewNarrow drops the sidebar and stacks the chat column alone.
func (m Model) viewNarrow() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.ViewCompact(),
		m.viewport.View(),
		m.viewInputRegion(),
		m.statusBar.View(),
	)
}

// viewContent renders the transcript column: header, messages, input.
func (m Model) viewContent() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		m.viewInputRegion(),
	)
}

// viewInputRegion renders the input line plus the transient rows above
// it: the thinking spinner and a staged-attachment note.
func (m Model) viewInputRegion() string {
	rows := make([]string, 0, 3)

	if m.spinner.IsActive() {
		rows = append(rows, m.spinner.View())
	}
	if m.attachName != "" {
		note := lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Italic(true).
			Render("Attached: " + m.attachName)
		rows = append(rows, note)
	}
	rows = append(rows, m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// viewHelp centers the shortcut reference; any key returns to the chat.
func (m Model) viewHelp() string {
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 3).
		Render(components.KeyboardShortcuts())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// sidebarBorderColor highlights the sidebar border while it has focus.
func (m Model) sidebarBorderColor() lipgloss.AdaptiveColor {
	if m.focus == FocusSidebar {
		return styles.Purple
	}
	return styles.Overlay
}

// overlayToasts composites the toast stack into the top-right corner.
func overlayToasts(view string, toasts []components.Toast, width, height int) string {
	stack := components.RenderToastStack(toasts, width, height)
	if stack == "" {
		return view
	}
	return lipgloss.JoinVertical(lipgloss.Left, stack, view)
}
