// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the studia
// backend API.
//
// This package normalizes every backend capability behind one function each:
// auth sync, chat, conversation listing and mutation, document and video
// upload, history, and service health. Callers receive plain Go values;
// envelope unwrapping and response-shape reconciliation happen here, never
// at call sites.
//
// # Key Types
//
//   - Client: HTTP client carrying base URL, token source, and rate limiter
//   - Error: typed failure outcome with a Kind taxonomy
//   - ChatResult: canonical send-message result after reply reconciliation
//
// # Error policy
//
// Read-only listing calls (Conversations, Activities, SearchDocuments,
// HistoryStats) degrade to empty-but-well-formed results on failure; they
// are non-critical for rendering. Mutating calls propagate a typed *Error.
//
// # Usage
//
//	client := api.NewClient(&api.Config{
//	    BaseURL: "https://api.example.com",
//	    Token:   session.Token,
//	})
//	res, err := client.SendMessage(ctx, "Hello", nil)
package api
