// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the studia backend API.
package api

import (
	"math"
	"time"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// ConversationSummary is one entry of the paginated conversation listing.
type ConversationSummary struct {
	ConversationID string  `json:"conversation_id"`
	Title          string  `json:"title"`
	CreatedAt      float64 `json:"created_at"`
	UpdatedAt      float64 `json:"updated_at"`
	MessageCount   int     `json:"message_count"`
}

// ConversationPage is the normalized conversation listing result.
type ConversationPage struct {
	Conversations []ConversationSummary `json:"conversations"`
	Total         int                   `json:"total"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"page_size"`
}

// ConversationDetail is one conversation with its messages.
type ConversationDetail struct {
	Conversation ConversationSummary `json:"conversation"`
	Messages     []WireMessage       `json:"messages"`
}

// WireMessage is a backend-persisted chat message.
type WireMessage struct {
	MessageID string  `json:"message_id"`
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	Timestamp float64 `json:"timestamp"`
}

// ChatResult is the canonical send-message outcome after reconciliation.
// Reply is never empty; the sentinel substitutes for a missing field.
type ChatResult struct {
	Reply          string
	ConversationID string
	MessageID      string
}

// VideoResult is the outcome of video ingest or upload.
type VideoResult struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Transcript string `json:"transcript"`
	Status     string `json:"status"`
}

// DocumentResult is the outcome of a document upload.
type DocumentResult struct {
	DocumentID    string `json:"document_id"`
	FileName      string `json:"file_name"`
	ContentLength int    `json:"content_length"`
}

// DocumentSummary is one entry of the document listing/search.
type DocumentSummary struct {
	DocumentID string  `json:"document_id"`
	FileName   string  `json:"file_name"`
	FileSize   int64   `json:"file_size"`
	CreatedAt  float64 `json:"created_at"`
}

// DocumentPage is the normalized document search result.
type DocumentPage struct {
	Documents []DocumentSummary `json:"documents"`
	Total     int               `json:"total"`
}

// Activity is one entry of the user activity log.
type Activity struct {
	ActivityType string  `json:"activity_type"`
	Action       string  `json:"action"`
	ResourceType string  `json:"resource_type"`
	ResourceID   string  `json:"resource_id"`
	Message      string  `json:"message"`
	Timestamp    float64 `json:"timestamp"`
}

// HistoryPage is the normalized activity listing result.
type HistoryPage struct {
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
}

// HistoryStats aggregates activity counts by type.
type HistoryStats struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

// Preferences holds user preferences the backend persists.
type Preferences struct {
	Theme string `json:"theme"`
}

// User is the current authenticated user plus preferences.
type User struct {
	UserID      string      `json:"user_id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Preferences Preferences `json:"preferences"`
}

// HealthStatus is the backend liveness report.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ServiceInfo is the backend metadata report.
type ServiceInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// UsageStats is the authenticated usage report.
type UsageStats struct {
	Conversations int `json:"conversations"`
	Messages      int `json:"messages"`
	Documents     int `json:"documents"`
	Videos        int `json:"videos"`
}

// =============================================================================
// TIMESTAMP HELPERS
// =============================================================================

// EpochTime converts backend epoch-seconds (float) to time.Time.
func EpochTime(seconds float64) time.Time {
	if seconds == 0 {
		return time.Time{}
	}
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
