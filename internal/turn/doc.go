// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package turn drives a single chat turn from submission to settlement.
//
// A turn begins when the user submits text or a file. The controller
// synchronously appends the user message and a pending assistant
// placeholder to the store, then dispatches the right backend flow:
// an attached file goes through document upload, a YouTube link
// through video ingest, everything else through plain chat. When the
// network call settles the placeholder is patched in place to resolved
// or errored; the user message is never rolled back.
//
// # Key Types
//
//   - Controller: Turn orchestration over the store and API client
//   - Turn: One in-flight submission and its placeholder IDs
//   - Outcome: The settled result Finish applies to the store
//
// # Usage
//
//	t, err := ctrl.Begin(activeID, turn.Input{Text: prompt})
//	// in a background command:
//	out := ctrl.Execute(ctx, t, turn.Input{Text: prompt})
//	// back on the update loop:
//	activeID = ctrl.Finish(t, out)
//
// Begin and Finish mutate the store and must run on the update loop;
// Execute only talks to the network and is safe in a goroutine.
package turn
