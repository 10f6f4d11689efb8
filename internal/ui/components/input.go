// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the studia TUI.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studia-tui/internal/ui/styles"
)

// =============================================================================
// INPUT AREA COMPONENT - Prompt input with character counter
// =============================================================================

// DefaultInputPlaceholder is the prompt hint shown when nothing else
// has claimed the input line.
const DefaultInputPlaceholder = "Ask anything... (paste a YouTube link to study a video)"

// InputArea represents the styled text input component
type InputArea struct {
	input       textinput.Model
	placeholder string
	maxChars    int
	width       int
	focused     bool
	theme       *styles.Theme
}

// NewInputArea creates a new InputArea component
func NewInputArea(theme *styles.Theme) *InputArea {
	ti := textinput.New()
	ti.Placeholder = DefaultInputPlaceholder
	ti.CharLimit = 4096
	ti.Width = 70
	ti.Prompt = "> "

	ti.PromptStyle = lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	ti.TextStyle = lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	ti.Cursor.Style = lipgloss.NewStyle().
		Foreground(styles.Cyan)

	return &InputArea{
		input:       ti,
		placeholder: ti.Placeholder,
		maxChars:    4096,
		width:       80,
		focused:     false,
		theme:       theme,
	}
}

// Focus focuses the input
func (i *InputArea) Focus() tea.Cmd {
	i.focused = true
	return i.input.Focus()
}

// Blur removes focus from the input
func (i *InputArea) Blur() {
	i.focused = false
	i.input.Blur()
}

// Focused returns whether the input is focused
func (i *InputArea) Focused() bool {
	return i.focused
}

// SetWidth sets the input area width
func (i *InputArea) SetWidth(width int) {
	i.width = width
	// Account for prompt and padding
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	i.input.Width = inputWidth
}

// SetPlaceholder sets the placeholder text
func (i *InputArea) SetPlaceholder(placeholder string) {
	i.placeholder = placeholder
	i.input.Placeholder = placeholder
}

// SetMaxChars sets the maximum character limit
func (i *InputArea) SetMaxChars(max int) {
	i.maxChars = max
	i.input.CharLimit = max
}

// Value returns the current input value
func (i *InputArea) Value() string {
	return i.input.Value()
}

// SetValue sets the input value
func (i *InputArea) SetValue(value string) {
	i.input.SetValue(value)
}

// Reset clears the input
func (i *InputArea) Reset() {
	i.input.Reset()
}

// Update handles input updates
func (i *InputArea) Update(msg tea.Msg) (*InputArea, tea.Cmd) {
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return i, cmd
}

// View renders the input area
func (i *InputArea) View() string {
	charCount := len([]rune(i.input.Value()))
	charCountDisplay := i.renderCharCounter(charCount)

	inputView := i.input.View()

	// Brighter border while focused
	borderColor := styles.Overlay
	if i.focused {
		borderColor = styles.Cyan
	}

	containerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(i.width - 2)

	topLine := i.renderTopDecoration()

	inputSection := containerStyle.Render(inputView)

	// Character counter aligned to the right
	counterWidth := i.width - 4
	counterStyle := lipgloss.NewStyle().
		Width(counterWidth).
		Align(lipgloss.Right)

	charCountLine := counterStyle.Render(charCountDisplay)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		topLine,
		inputSection,
		charCountLine,
	)
}

// ViewCompact renders a compact single-line input
func (i *InputArea) ViewCompact() string {
	inputView := i.input.View()
	charCount := len([]rune(i.input.Value()))

	counterStyle := i.getCharCountStyle(charCount)
	counter := counterStyle.Render("(" + strconv.Itoa(charCount) + ")")

	return inputView + " " + counter
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderTopDecoration renders a decorative line above the input
func (i *InputArea) renderTopDecoration() string {
	lineStyle := lipgloss.NewStyle().Foreground(styles.Overlay)

	lineLen := i.width - 4
	if lineLen < 10 {
		lineLen = 10
	}

	return lineStyle.Render(strings.Repeat("-", lineLen))
}

// renderCharCounter renders the character counter with color coding
func (i *InputArea) renderCharCounter(count int) string {
	percent := 0.0
	if i.maxChars > 0 {
		percent = float64(count) / float64(i.maxChars) * 100
	}

	counterText := strconv.Itoa(count) + " / " + strconv.Itoa(i.maxChars) + " chars"

	style := i.getCharCountStyle(count)

	// Visual indicator for high usage
	indicator := ""
	if percent >= 90 {
		indicator = " [!]"
	} else if percent >= 75 {
		indicator = " [~]"
	}

	return style.Render(counterText + indicator)
}

// getCharCountStyle returns the appropriate style for the character count
func (i *InputArea) getCharCountStyle(count int) lipgloss.Style {
	percent := 0.0
	if i.maxChars > 0 {
		percent = float64(count) / float64(i.maxChars) * 100
	}

	if percent >= 90 {
		return lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)
	}
	if percent >= 75 {
		return lipgloss.NewStyle().
			Foreground(styles.Amber)
	}
	if percent >= 50 {
		return lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
	}
	return lipgloss.NewStyle().
		Foreground(styles.TextMuted)
}
