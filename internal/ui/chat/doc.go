// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the interactive chat view for the studia TUI.

The chat package implements the full-screen study session using the
Bubble Tea framework: a conversation sidebar, a scrolling transcript of
message bubbles, an input line, and a status bar, with toasts layered
on top for transient feedback.

# Architecture

The package follows the Elm architecture. Model holds all view state,
Update is the single mutation point, and View is a pure render. Every
backend round-trip runs inside a tea.Cmd goroutine (commands.go) and
reports back through a typed message (messages.go); the update loop
never blocks on the network.

Submission is optimistic. A turn appends the user message and a
pending "Thinking…" placeholder synchronously before any network work,
so the transcript reacts instantly regardless of latency. The
settlement message later resolves or fails the placeholder in place.

Deletion is soft. A deleted conversation is staged behind an undo
window and struck through in the sidebar; an undo toast counts the
window down. Commit outcomes arrive over the queue's event channel,
re-armed after every delivery by WaitForDeleteEventCmd.

# Usage

	m := chat.New(chat.Deps{
		Config:     cfg,
		Client:     client,
		Store:      st,
		Controller: ctrl,
		Queue:      queue,
		Session:    sess,
		Prefs:      prefs,
		Theme:      theme,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
*/
package chat
