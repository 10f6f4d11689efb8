// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types shared by the store, the
// soft-delete queue, the turn controller, and the UI.
//
// # Key Types
//
//   - Conversation: summary of a chat thread as the backend reports it,
//     plus optimistic placeholders created before the backend confirms an id
//   - Message: single chat message with role, text, status, and timestamp
//   - Status: message lifecycle (pending -> resolved | errored)
//
// # Usage
//
// Start a turn by appending a resolved user message and a pending
// assistant placeholder:
//
//	user := model.NewUserMessage("Explain diffusion models")
//	pending := model.NewPendingAssistant()
package model
