// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive chat view for the TUI.
//
// This file implements the async command factories. Every backend
// round-trip runs inside a tea.Cmd goroutine and reports back through
// one of the message types in messages.go; the update loop itself
// never blocks on the network.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studia-tui/internal/api"
	"github.com/jeranaias/studia-tui/internal/model"
	"github.com/jeranaias/studia-tui/internal/softdel"
	"github.com/jeranaias/studia-tui/internal/turn"
)

// healthInterval is how often the backend liveness probe runs.
const healthInterval = 15 * time.Second

// =============================================================================
// TURN COMMANDS
// =============================================================================

// ExecuteTurnCmd runs a begun turn's network work off the update loop.
// Begin has already appended the optimistic messages; this command
// only settles them.
func ExecuteTurnCmd(ctrl *turn.Controller, t turn.Turn, in turn.Input) tea.Cmd {
	return func() tea.Msg {
		out := ctrl.Execute(context.Background(), t, in)
		return TurnSettledMsg{Turn: t, Outcome: out}
	}
}

// =============================================================================
// CONVERSATION COMMANDS
// =============================================================================

// LoadConversationsCmd fetches the first page of the conversation
// listing. Listing errors degrade to an empty sidebar rather than
// blocking the chat.
func LoadConversationsCmd(client *api.Client, pageSize int) tea.Cmd {
	return func() tea.Msg {
		page := client.Conversations(context.Background(), 1, pageSize)
		convs := make([]model.Conversation, 0, len(page.Conversations))
		for _, c := range page.Conversations {
			convs = append(convs, conversationFromSummary(c))
		}
		return ConversationsLoadedMsg{Conversations: convs}
	}
}

// OpenConversationCmd fetches a conversation's transcript.
func OpenConversationCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := client.Conversation(context.Background(), id)
		if err != nil {
			return ConversationOpenedMsg{ConversationID: id, Err: err}
		}
		msgs := make([]model.Message, 0, len(detail.Messages))
		for _, wm := range detail.Messages {
			msgs = append(msgs, messageFromWire(wm))
		}
		return ConversationOpenedMsg{ConversationID: id, Messages: msgs}
	}
}

// RenameConversationCmd persists a new title on the backend.
func RenameConversationCmd(client *api.Client, id, title string) tea.Cmd {
	return func() tea.Msg {
		err := client.RenameConversation(context.Background(), id, title)
		return ConversationRenamedMsg{ConversationID: id, Title: title, Err: err}
	}
}

// ClearMessagesCmd wipes a conversation's transcript on the backend.
func ClearMessagesCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.ClearMessages(context.Background(), id)
		return MessagesClearedMsg{ConversationID: id, Err: err}
	}
}

// =============================================================================
// DELETION COMMANDS
// =============================================================================

// WaitForDeleteEventCmd blocks on the soft-delete queue's event
// channel. The update loop re-issues it after every delivery so there
// is always exactly one listener.
func WaitForDeleteEventCmd(q *softdel.Queue) tea.Cmd {
	return func() tea.Msg {
		return DeleteEventMsg{Event: <-q.Events()}
	}
}

// DeleteAllCmd sweeps every known conversation off the backend,
// sequentially, halting at the first failure.
func DeleteAllCmd(q *softdel.Queue, ids []string) tea.Cmd {
	return func() tea.Msg {
		deleted, err := q.DeleteAll(ids)
		return AllDeletedMsg{Deleted: deleted, Err: err}
	}
}

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

// HealthCheckCmd probes backend liveness once.
func HealthCheckCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		status, err := client.Health(context.Background())
		return HealthMsg{Status: status, Err: err}
	}
}

// HealthTickCmd schedules the next liveness probe.
func HealthTickCmd() tea.Cmd {
	return tea.Tick(healthInterval, func(time.Time) tea.Msg {
		return HealthTickMsg{}
	})
}

// SyncProfileCmd upserts the signed-in user's profile and fetches it
// back, preferences included.
func SyncProfileCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		if err := client.SyncProfile(context.Background()); err != nil {
			return ProfileMsg{Err: err}
		}
		user, err := client.Me(context.Background())
		return ProfileMsg{User: user, Err: err}
	}
}

// =============================================================================
// WIRE MAPPING
// =============================================================================

func conversationFromSummary(c api.ConversationSummary) model.Conversation {
	return model.Conversation{
		ID:           c.ConversationID,
		Title:        c.Title,
		MessageCount: c.MessageCount,
		CreatedAt:    api.EpochTime(c.CreatedAt),
		UpdatedAt:    api.EpochTime(c.UpdatedAt),
	}
}

func messageFromWire(wm api.WireMessage) model.Message {
	var msg *model.Message
	if wm.Role == string(model.RoleUser) {
		msg = model.NewUserMessage(wm.Content)
	} else {
		msg = model.NewAssistantMessage(wm.Content)
	}
	if ts := api.EpochTime(wm.Timestamp); !ts.IsZero() {
		msg.Timestamp = ts
	}
	return *msg
}
