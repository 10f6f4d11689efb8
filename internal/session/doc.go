// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides sign-in session state and one-time guards.
//
// A session spans one sign-in: it carries the session ID that scopes
// one-time actions (bulk loads, auto-sent first prompts), the auth
// token source, and optional idle-timeout enforcement.
//
// # Key Types
//
//   - Manager: Session manager with activity and one-time tracking
//   - TimeoutMsg: Bubble Tea message for the idle lock
//   - TimeoutWarningMsg: Bubble Tea message for the pre-lock warning
//
// # Usage
//
// Create a session manager:
//
//	mgr := session.NewManager(session.Config{
//	    Token:   func() string { return cfg.API.AuthToken },
//	    Timeout: 15 * time.Minute,
//	})
//
// Guard a one-time action:
//
//	if mgr.Once("load-conversations") {
//	    // runs once per sign-in, however often the view remounts
//	}
//
// Reset activity on user input:
//
//	mgr.RecordActivity()
package session
