// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package softdel implements delayed deletion with an undo window.
//
// Deleting a conversation hides it immediately but defers the backend
// call for a grace period (5 seconds by default). During the window
// the deletion can be undone; once the window closes the delete is
// committed and becomes final. Multiple staged deletions form a stack:
// undo always restores the most recently deleted conversation first.
//
// # Key Types
//
//   - Queue: Staged deletions with per-entry commit timers
//   - Entry: A hidden conversation and its cached transcript
//   - Event: Commit outcome delivered on the queue's event channel
//
// # Usage
//
//	q := softdel.New(client.DeleteConversation)
//	q.Stage(conv, msgs)     // hide now, commit in 5s
//	entry, ok := q.Undo()   // restore the latest, if still staged
//
// Commit outcomes arrive on q.Events(); a failed commit carries the
// entry so the caller can roll the conversation back into view.
package softdel
