// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive chat view for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Turns: turn settlement after backend round-trips
//   - Conversations: listing, opening, renaming, clearing
//   - Deletion: soft-delete commit and rollback events
//   - Backend: health polling and profile sync
//   - UI State: ticks and animation frames
package chat

import (
	"github.com/jeranaias/studia-tui/internal/api"
	"github.com/jeranaias/studia-tui/internal/model"
	"github.com/jeranaias/studia-tui/internal/softdel"
	"github.com/jeranaias/studia-tui/internal/turn"
)

// =============================================================================
// TURN MESSAGES
// =============================================================================

// TurnSettledMsg is sent when a turn's network work finishes, success
// or failure. The embedded turn identifies which pending placeholder
// to settle.
type TurnSettledMsg struct {
	Turn    turn.Turn
	Outcome turn.Outcome
}

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// ConversationsLoadedMsg is sent when the initial conversation listing
// arrives from the backend.
type ConversationsLoadedMsg struct {
	Conversations []model.Conversation
	Err           error
}

// ConversationOpenedMsg is sent when a conversation's transcript has
// been fetched for display.
type ConversationOpenedMsg struct {
	ConversationID string
	Messages       []model.Message
	Err            error
}

// ConversationRenamedMsg is sent when a rename round-trip settles.
type ConversationRenamedMsg struct {
	ConversationID string
	Title          string
	Err            error
}

// MessagesClearedMsg is sent when a clear-history round-trip settles.
type MessagesClearedMsg struct {
	ConversationID string
	Err            error
}

// =============================================================================
// DELETION MESSAGES
// =============================================================================

// DeleteEventMsg wraps a soft-delete commit outcome. Committed events
// are final; CommitFailed events carry the entry for rollback.
type DeleteEventMsg struct {
	Event softdel.Event
}

// AllDeletedMsg reports a delete-everything sweep. Deleted lists the
// ids the backend accepted before the sweep stopped; Err is the
// failure that stopped it, nil when it ran to completion.
type AllDeletedMsg struct {
	Deleted []string
	Err     error
}

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// HealthMsg is sent by the periodic backend liveness probe.
type HealthMsg struct {
	Status *api.HealthStatus
	Err    error
}

// ProfileMsg is sent when the signed-in user's profile arrives.
type ProfileMsg struct {
	User *api.User
	Err  error
}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// HealthTickMsg schedules the next liveness probe. Spinner and toast
// animation frames use the component packages' own tick messages.
type HealthTickMsg struct{}
