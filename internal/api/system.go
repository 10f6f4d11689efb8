// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the studia backend API.
package api

import (
	"context"
	"net/http"
)

// =============================================================================
// SERVICE STATUS
// =============================================================================

// Health probes backend liveness. Unauthenticated.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var result HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Info fetches service metadata.
func (c *Client) Info(ctx context.Context) (*ServiceInfo, error) {
	var result ServiceInfo
	if err := c.do(ctx, http.MethodGet, "/info", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats fetches authenticated usage stats. Non-critical read: failures
// degrade to zeroes for the status bar.
func (c *Client) Stats(ctx context.Context) UsageStats {
	var result UsageStats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, nil, &result); err != nil {
		c.logf("usage stats degraded: %v", err)
		return UsageStats{}
	}
	return result
}
