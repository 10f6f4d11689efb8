// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the studia backend API.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// chatRequest is the send-message body. A nil conversation id asks the
// backend to create a new conversation.
type chatRequest struct {
	Message        string  `json:"message"`
	ConversationID *string `json:"conversation_id"`
}

// SendMessage sends one chat message and returns the reconciled result.
// conversationID nil creates a new conversation; the returned id is the
// backend-issued one either way.
func (c *Client) SendMessage(ctx context.Context, message string, conversationID *string) (*ChatResult, error) {
	raw, err := c.doRaw(ctx, http.MethodPost, "/api/chat/", nil, chatRequest{
		Message:        message,
		ConversationID: conversationID,
	})
	if err != nil {
		return nil, err
	}

	result := &ChatResult{
		Reply:          ReplyText(raw),
		ConversationID: stringField(raw, "conversation_id", "chat_id"),
		MessageID:      stringField(raw, "message_id"),
	}
	if result.ConversationID == "" && conversationID != nil {
		result.ConversationID = *conversationID
	}
	return result, nil
}

// Conversations lists conversations one page at a time. Non-critical
// read: failures degrade to an empty page so the sidebar can render.
func (c *Client) Conversations(ctx context.Context, page, pageSize int) ConversationPage {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var result ConversationPage
	if err := c.do(ctx, http.MethodGet, "/api/chat/conversations", query, nil, &result); err != nil {
		c.logf("conversations listing degraded: %v", err)
		return ConversationPage{Conversations: []ConversationSummary{}, Page: page, PageSize: pageSize}
	}
	if result.Conversations == nil {
		result.Conversations = []ConversationSummary{}
	}
	return result
}

// Conversation fetches one conversation with its messages. A notFound
// error means the thread is gone; callers treat that as "start fresh".
func (c *Client) Conversation(ctx context.Context, id string) (*ConversationDetail, error) {
	var result ConversationDetail
	if err := c.do(ctx, http.MethodGet, "/api/chat/conversations/"+url.PathEscape(id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteConversation removes a conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/chat/conversations/"+url.PathEscape(id), nil, nil, nil)
}

// ClearMessages deletes a conversation's messages, keeping the shell.
func (c *Client) ClearMessages(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/chat/conversations/"+url.PathEscape(id)+"/messages", nil, nil, nil)
}

// RenameConversation updates a conversation title.
func (c *Client) RenameConversation(ctx context.Context, id, title string) error {
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	return c.do(ctx, http.MethodPatch, "/api/chat/conversations/"+url.PathEscape(id), nil, body, nil)
}
