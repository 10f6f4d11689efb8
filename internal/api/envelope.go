// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the studia backend API.
package api

import (
	"encoding/json"
	"strings"
)

// NoResponseSentinel is the canonical fallback when the backend reply
// exposes none of the recognized fields. Blank assistant output is never
// an acceptable terminal state.
const NoResponseSentinel = "No response received"

// replyFields is the ordered candidate list for the assistant reply.
// Backend versions have named the field differently across endpoints;
// first non-empty match wins.
var replyFields = []string{"response", "ai", "answer", "message", "content"}

// =============================================================================
// ENVELOPE UNWRAP
// =============================================================================

// Unwrap strips the {success, message, data} envelope some backend
// versions wrap around payloads. Raw bytes come back unchanged when no
// envelope is present, so callers decode one shape regardless of which
// backend they talk to.
func Unwrap(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}
	// Only treat it as an envelope when the success marker is present
	// and data actually holds a value; {data: null} payloads keep their
	// sibling fields.
	if envelope.Success != nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		return envelope.Data
	}
	return raw
}

// =============================================================================
// REPLY RECONCILIATION
// =============================================================================

// ReplyText reconciles a chat payload into the canonical assistant reply.
// It probes the fixed candidate field list on the unwrapped payload first,
// then on the top level, and falls back to NoResponseSentinel. The probe
// is idempotent: the same payload always yields the same text.
func ReplyText(raw json.RawMessage) string {
	if text, ok := probeReply(Unwrap(raw)); ok {
		return text
	}
	if text, ok := probeReply(raw); ok {
		return text
	}
	return NoResponseSentinel
}

// probeReply tries the ordered candidate fields on one payload level.
func probeReply(raw json.RawMessage) (string, bool) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", false
	}
	for _, field := range replyFields {
		value, ok := payload[field]
		if !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, true
		}
	}
	return "", false
}

// stringField extracts one string field from a payload level, unwrapping
// any envelope first. Used for ids that also move between shapes.
func stringField(raw json.RawMessage, fields ...string) string {
	for _, level := range []json.RawMessage{Unwrap(raw), raw} {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal(level, &payload); err != nil {
			continue
		}
		for _, field := range fields {
			value, ok := payload[field]
			if !ok {
				continue
			}
			var text string
			if err := json.Unmarshal(value, &text); err == nil && text != "" {
				return text
			}
		}
	}
	return ""
}
