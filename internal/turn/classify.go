// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package turn drives a single chat turn from submission to settlement.
package turn

import (
	"net/url"
	"strings"
)

// TranscriptCap bounds how much transcript text gets embedded in the
// summarization prompt. Backends cap their own context far higher;
// this keeps the chat payload reasonable.
const TranscriptCap = 4000

// TranscriptMarker is appended when a transcript was truncated.
const TranscriptMarker = "\n[transcript truncated]"

// Classify picks the flow for a submission. First match wins: an
// attached file always means document, a lone video link means video,
// anything else is plain chat.
func Classify(in Input) Kind {
	if in.FileName != "" {
		return KindDocument
	}
	if IsVideoLink(in.Text) {
		return KindVideo
	}
	return KindChat
}

// IsVideoLink reports whether the text is a single YouTube URL.
// A link buried in a sentence is treated as chat, not ingest.
func IsVideoLink(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \t\n") {
		return false
	}
	raw := text
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	switch host {
	case "youtu.be":
		return strings.TrimPrefix(u.Path, "/") != ""
	case "youtube.com", "m.youtube.com":
		if strings.HasPrefix(u.Path, "/watch") {
			return u.Query().Get("v") != ""
		}
		return strings.HasPrefix(u.Path, "/shorts/") || strings.HasPrefix(u.Path, "/live/")
	}
	return false
}

// BoundTranscript caps transcript text for prompt embedding, marking
// the cut when it truncates. Rune-based so the cut never splits a
// character.
func BoundTranscript(transcript string) string {
	runes := []rune(transcript)
	if len(runes) <= TranscriptCap {
		return transcript
	}
	return string(runes[:TranscriptCap]) + TranscriptMarker
}
