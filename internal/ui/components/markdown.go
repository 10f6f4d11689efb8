// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable TUI components.
//
// This file wraps the glamour markdown renderer for assistant message
// bodies. Renderers are cached per wrap width; a render failure falls
// back to the plain chroma code-block pass so the transcript always
// shows something.
package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdMu        sync.Mutex
	mdRenderers = make(map[int]*glamour.TermRenderer)
)

// RenderMarkdown renders markdown text wrapped to the given width.
func RenderMarkdown(text string, width int) string {
	if width < 20 {
		width = 20
	}

	r, err := markdownRenderer(width)
	if err != nil {
		return ParseCodeBlocks(text, width)
	}
	out, err := r.Render(text)
	if err != nil {
		return ParseCodeBlocks(text, width)
	}
	return strings.Trim(out, "\n")
}

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	mdMu.Lock()
	defer mdMu.Unlock()

	if r, ok := mdRenderers[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	mdRenderers[width] = r
	return r, nil
}
