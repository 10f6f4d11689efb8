// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the studia backend API.
package api

import (
	"context"
	"net/http"
)

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// SyncProfile registers or refreshes the user profile after sign-in.
// An unauthorized error here means the token is stale and the caller
// should prompt for re-authentication.
func (c *Client) SyncProfile(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/sync", nil, struct{}{}, nil)
}

// Me fetches the current user and their stored preferences.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var result User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePreferences writes preferences through to the backend.
// Callers treat failures as non-fatal; local state stays authoritative
// for rendering.
func (c *Client) UpdatePreferences(ctx context.Context, prefs Preferences) error {
	return c.do(ctx, http.MethodPatch, "/api/auth/preferences", nil, prefs, nil)
}
