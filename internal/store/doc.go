// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the in-memory conversation state for the session.
//
// The store is the single source of truth the UI renders from. It keeps
// an ordered conversation list (most recent first, matching backend
// order) and a lazily populated per-conversation message map. Message
// bodies are only fetched when a conversation is opened; summaries
// carry enough to render the sidebar.
//
// # Key Types
//
//   - Store: Ordered conversation list plus message map
//
// # Usage
//
// Create a store and load summaries once per sign-in:
//
//	st := store.New()
//	if st.ClaimBulkLoad(sessionID) {
//	    st.ReplaceAll(page.Conversations)
//	}
//
// Mutations are position-preserving: UpdateMessage patches a message
// in place so a late response never reorders the transcript.
package store
