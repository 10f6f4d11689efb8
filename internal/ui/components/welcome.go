// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the studia TUI.
package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studia-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the welcome screen component.
type Welcome struct {
	// Display info
	version   string
	serverURL string
	signedIn  bool

	// Dimensions
	width  int
	height int

	// Theme
	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetServerURL sets the backend URL shown on the welcome screen.
func (w *Welcome) SetServerURL(url string) {
	w.serverURL = url
}

// SetSignedIn sets whether an auth token is configured.
func (w *Welcome) SetSignedIn(signedIn bool) {
	w.signedIn = signedIn
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen.
// Responsive: adapts to terminal size, minimum 80x24 supported.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	// Calculate box width - responsive to terminal width
	boxWidth := 62
	if width < 70 {
		boxWidth = width - 8
	}
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	horizontalPadding := 4
	verticalPadding := 1
	if width < 70 {
		horizontalPadding = 2
	}

	boxOverhead := 2 + 2*verticalPadding
	availableContentLines := height - boxOverhead

	var content string
	if availableContentLines >= 16 {
		content = w.renderLogo()
		content += "\n\n" + w.renderVersion()
		content += "\n\n" + w.renderSystemInfo()
		content += "\n\n" + w.renderQuickStart()
		content += "\n\n" + w.renderPressKey()
	} else if availableContentLines >= 12 {
		content = w.renderLogo()
		content += "\n" + w.renderVersion()
		content += "\n" + w.renderSystemInfo()
		content += "\n" + w.renderPressKey()
	} else {
		content = w.renderLogoCompact()
		content += "\n" + w.renderVersion()
		content += "\n" + w.renderPressKey()
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Purple).
		Padding(verticalPadding, horizontalPadding).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(content)

	boxHeight := lipgloss.Height(box)

	// Align to top rather than cutting off the logo when space is tight
	if boxHeight >= height {
		return lipgloss.Place(
			width, height,
			lipgloss.Center, lipgloss.Top,
			box,
		)
	}
	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// renderLogo renders the ASCII art logo (6 lines).
// Responsive: uses compact logo for narrow terminals.
func (w Welcome) renderLogo() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	if w.width >= 60 {
		logo := `  ____  _____  _   _  ____  ___    _
 / ___||_   _|| | | ||  _ \|_ _|  / \
 \___ \  | |  | | | || | | || |  / _ \
  ___) | | |  | |_| || |_| || | / ___ \
 |____/  |_|   \___/ |____/|___/_/   \_\
                                        `
		return logoStyle.Render(logo)
	}

	return w.renderLogoCompact()
}

// renderLogoCompact renders a compact text-based logo (3 lines).
func (w Welcome) renderLogoCompact() string {
	logoStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	if w.width >= 40 {
		return logoStyle.Render(`+--------------------+
|      studia        |
+--------------------+`)
	}

	return logoStyle.Render("studia - Study Assistant")
}

// renderVersion renders the version subtitle.
func (w Welcome) renderVersion() string {
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("Study Assistant v" + w.version)
}

// renderSystemInfo renders server and auth info.
func (w Welcome) renderSystemInfo() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(9)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	auth := "anonymous"
	authStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
	if w.signedIn {
		auth = "signed in"
		authStyle = lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
	}

	lines := []string{
		labelStyle.Render("Server: ") + valueStyle.Render(w.serverURL),
		labelStyle.Render("Account:") + authStyle.Render(" "+auth),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderQuickStart renders the quick start tips.
func (w Welcome) renderQuickStart() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Bold(true)

	bulletStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	tipStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	tips := []string{
		bulletStyle.Render("-") + tipStyle.Render(" Type a question and press Enter"),
		bulletStyle.Render("-") + tipStyle.Render(" Paste a YouTube link to study a video"),
		bulletStyle.Render("-") + tipStyle.Render(" Ctrl+O attaches a document"),
		bulletStyle.Render("-") + tipStyle.Render(" Ctrl+U undoes a deletion"),
	}

	title := titleStyle.Render("Quick Start:")

	return title + "\n" + lipgloss.JoinVertical(lipgloss.Left, tips...)
}

// renderPressKey renders the "press any key" prompt.
func (w Welcome) renderPressKey() string {
	return lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("Press any key to continue...")
}

// =============================================================================
// KEYBOARD SHORTCUT HELP
// =============================================================================

// KeyboardShortcuts returns a formatted list of keyboard shortcuts.
func KeyboardShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send message"},
		{"Ctrl+N", "New conversation"},
		{"Ctrl+D", "Delete conversation"},
		{"Ctrl+U", "Undo deletion"},
		{"Shift+D", "Delete all (sidebar)"},
		{"Ctrl+R", "Rename conversation"},
		{"Ctrl+L", "Clear messages"},
		{"Ctrl+O", "Attach document"},
		{"Ctrl+T", "Toggle theme"},
		{"Tab", "Switch panel"},
		{"Up/Down", "Navigate"},
		{"Ctrl+H", "Toggle this help"},
		{"Ctrl+C", "Quit"},
	}

	lines := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		lines[i] = keyStyle.Render(s.key) + descStyle.Render(s.desc)
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Bold(true)

	return titleStyle.Render("Keyboard Shortcuts") + "\n" +
		lipgloss.JoinVertical(lipgloss.Left, lines...)
}
