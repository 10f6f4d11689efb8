// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the studia TUI
application.

This package contains a collection of styled, interactive components built on
top of the Bubble Tea and Lip Gloss libraries. Each component is designed to
be visually consistent with the studia design language.

# Core Components

## Input Components

InputArea (input.go) - Styled text input with character counter.

## Display Components

Header (header.go) - Application header with conversation title and connection badge.
StatusBar (statusbar.go) - Bottom status bar with connection state, pending deletions, and shortcuts.
Sidebar (sidebar.go) - Conversation list with staged-deletion strikethrough.
MessageBubble (message.go) - Styled message bubbles for user, pending, errored, and resolved turns.
ParseCodeBlocks (codeblock.go) - Chroma-highlighted fenced code blocks for the markdown fallback.
Markdown (markdown.go) - Glamour-rendered assistant replies with cached renderers.
ChatViewport (viewport.go) - Scrollable chat area with scroll indicators.

## Progress and Feedback

Spinner (spinner.go) - Animated spinner for pending turns, uploads, and transcript fetches.
Toast (toast.go) - Notification toasts, including the undo countdown toast.
SessionTimeoutOverlay (session_timeout_overlay.go) - Idle timeout warning.

## Specialized Views

Welcome (welcome.go) - First-run welcome screen.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetConversation("Photosynthesis basics")
	view := header.View()

# Bubble Tea Integration

Most components implement the Bubble Tea Model interface:

	type Component interface {
		Init() tea.Cmd
		Update(tea.Msg) (Component, tea.Cmd)
		View() string
	}

# Undo Toasts

Deleting a conversation stages it and raises an undo toast that counts down
the undo window:

	tm := components.NewToastManager()
	tm.AddUndo("conv-1", "Photosynthesis basics", 5*time.Second)
	view := components.RenderToastStack(tm.GetToasts(), width, height)

Pressing undo (or the deletion committing) clears the toast via
RemoveUndoToast.
*/
package components
