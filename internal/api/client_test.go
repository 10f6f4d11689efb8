// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the studia backend API.
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a test server with a fixed token.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&Config{
		BaseURL:           server.URL,
		Token:             func() string { return "test-token" },
		RequestsPerSecond: 1000,
	})
}

// =============================================================================
// ERROR CLASSIFICATION TESTS
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   Kind
		msg    string
	}{
		{"unauthorized", 401, `{"detail": "invalid token"}`, KindUnauthorized, "invalid token"},
		{"not found", 404, `{"detail": "Conversation not found"}`, KindNotFound, "Conversation not found"},
		{"validation", 422, `{"detail": "message required"}`, KindValidation, "message required"},
		{"server", 500, `{"detail": "boom"}`, KindServer, "boom"},
		{"flask envelope", 400, `{"success": false, "message": "bad input", "errors": {}}`, KindValidation, "bad input"},
		{"garbage body", 503, `<html>`, KindServer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.status, []byte(tt.body))
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.msg, err.Message)
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	var err error = &Error{Kind: KindUnauthorized, Status: 401}
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))

	err = &Error{Kind: KindNetwork}
	assert.True(t, IsNetwork(err))
	assert.False(t, IsServer(err))
}

// =============================================================================
// REQUEST PLUMBING TESTS
// =============================================================================

func TestClient_TokenInjection(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status": "healthy"}`))
	}))

	_, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

// A missing token is not an error; the request goes out unauthenticated.
func TestClient_NoTokenProceeds(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status": "healthy"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(&Config{BaseURL: server.URL, RequestsPerSecond: 1000})
	_, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_NetworkErrorKind(t *testing.T) {
	// Closed port: transport failure, never a response.
	client := NewClient(&Config{BaseURL: "http://127.0.0.1:1", RequestsPerSecond: 1000})

	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err), "expected network kind, got %v", err)
}

// =============================================================================
// CHAT OPERATION TESTS
// =============================================================================

func TestClient_SendMessage_NewConversation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat/", r.URL.Path)
		w.Write([]byte(`{"response": "Diffusion models are...", "conversation_id": "conv-1", "message_id": "m-2"}`))
	}))

	res, err := client.SendMessage(context.Background(), "Explain diffusion models", nil)
	require.NoError(t, err)
	assert.Equal(t, "Diffusion models are...", res.Reply)
	assert.Equal(t, "conv-1", res.ConversationID)
	assert.Equal(t, "m-2", res.MessageID)
}

func TestClient_SendMessage_EnvelopedReply(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "message": "Success", "data": {"user": "hi", "ai": "hello there"}}`))
	}))

	id := "conv-9"
	res, err := client.SendMessage(context.Background(), "hi", &id)
	require.NoError(t, err)
	assert.Equal(t, "hello there", res.Reply)
	// Backend omitted the id; the one the turn started on carries over.
	assert.Equal(t, "conv-9", res.ConversationID)
}

func TestClient_SendMessage_SentinelFallback(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"conversation_id": "conv-1"}`))
	}))

	res, err := client.SendMessage(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, NoResponseSentinel, res.Reply)
}

func TestClient_SendMessage_PropagatesFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte(`{"detail": "Failed to generate response"}`))
	}))

	_, err := client.SendMessage(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.True(t, IsServer(err))
	assert.Equal(t, "Failed to generate response", err.Error())
}

// =============================================================================
// DEGRADATION TESTS
// =============================================================================

// Listing reads degrade to empty-but-well-formed results instead of
// propagating errors; they are non-critical for rendering.
func TestClient_Conversations_DegradesOnFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))

	page := client.Conversations(context.Background(), 1, 50)
	assert.NotNil(t, page.Conversations)
	assert.Len(t, page.Conversations, 0)
	assert.Equal(t, 0, page.Total)
}

func TestClient_Activities_DegradesOnFailure(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://127.0.0.1:1", RequestsPerSecond: 1000})

	page := client.Activities(context.Background(), 1, 20)
	assert.NotNil(t, page.Activities)
	assert.Len(t, page.Activities, 0)
	assert.Equal(t, 0, page.Total)
}

func TestClient_Conversations_ParsesListing(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("page"))
		require.Equal(t, "50", r.URL.Query().Get("page_size"))
		w.Write([]byte(`{
			"success": true,
			"conversations": [
				{"conversation_id": "c1", "title": "First", "created_at": 1700000000.5, "updated_at": 1700000100.0, "message_count": 4}
			],
			"total": 1, "page": 1, "page_size": 50
		}`))
	}))

	page := client.Conversations(context.Background(), 1, 50)
	require.Len(t, page.Conversations, 1)
	assert.Equal(t, "c1", page.Conversations[0].ConversationID)
	assert.Equal(t, 4, page.Conversations[0].MessageCount)
	assert.Equal(t, 1, page.Total)
}

// =============================================================================
// MUTATION TESTS
// =============================================================================

func TestClient_DeleteConversation(t *testing.T) {
	var gotPath, gotMethod string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"success": true, "message": "Conversation deleted successfully"}`))
	}))

	err := client.DeleteConversation(context.Background(), "conv-7")
	require.NoError(t, err)
	assert.Equal(t, "/api/chat/conversations/conv-7", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestClient_DeleteConversation_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"detail": "Conversation not found"}`))
	}))

	err := client.DeleteConversation(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_IngestYouTube(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/videos/youtube", r.URL.Path)
		w.Write([]byte(`{"video_id": "v1", "title": "Talk", "transcript": "hello world"}`))
	}))

	res, err := client.IngestYouTube(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	require.NoError(t, err)
	assert.Equal(t, "v1", res.VideoID)
	assert.Equal(t, "hello world", res.Transcript)
}
