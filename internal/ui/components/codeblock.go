// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the studia TUI.
package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studia-tui/internal/ui/styles"
)

// =============================================================================
// FENCED CODE RENDERING
// =============================================================================

// ParseCodeBlocks renders the fenced code blocks in markdown text with
// chroma highlighting, leaving surrounding prose untouched. This is
// the fallback path when glamour is disabled or fails.
func ParseCodeBlocks(text string, maxWidth int) string {
	var (
		out      []string
		fenced   bool
		language string
		code     []string
	)

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "```"):
			if fenced {
				out = append(out, renderFenced(language, strings.Join(code, "\n"), maxWidth))
				code, language, fenced = nil, "", false
			} else {
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				fenced = true
			}
		case fenced:
			code = append(code, line)
		default:
			out = append(out, line)
		}
	}

	// An unterminated fence still renders as code.
	if fenced && len(code) > 0 {
		out = append(out, renderFenced(language, strings.Join(code, "\n"), maxWidth))
	}

	return strings.Join(out, "\n")
}

// renderFenced draws one highlighted block: numbered lines inside a
// rounded border, with a language badge when the fence named one.
func renderFenced(language, code string, maxWidth int) string {
	code = strings.TrimSpace(code)

	numStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	rows := make([]string, 0, 8)
	for i, line := range strings.Split(highlight(code, language), "\n") {
		rows = append(rows, numStyle.Render(strconv.Itoa(i+1))+line)
	}
	body := strings.Join(rows, "\n")

	if language != "" {
		badge := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.OverlayDim).
			Padding(0, 1).
			Bold(true).
			Render(language)
		body = badge + "\n" + body
	}

	width := maxWidth - 4
	if width < 20 {
		width = 20
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(1, 2).
		MaxWidth(width).
		Render(body)
}

// highlight runs code through chroma, guessing the lexer when the
// fence gave no language. Any failure returns the code unhighlighted.
func highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, it); err != nil {
		return code
	}
	return buf.String()
}
