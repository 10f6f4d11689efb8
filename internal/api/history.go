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
// HISTORY OPERATIONS
// =============================================================================

// Activities lists the user activity log one page at a time.
// Non-critical read: failures degrade to {activities: [], total: 0}.
func (c *Client) Activities(ctx context.Context, page, pageSize int) HistoryPage {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var result HistoryPage
	if err := c.do(ctx, http.MethodGet, "/api/history/", query, nil, &result); err != nil {
		c.logf("history listing degraded: %v", err)
		return HistoryPage{Activities: []Activity{}}
	}
	if result.Activities == nil {
		result.Activities = []Activity{}
	}
	return result
}

// ActivitiesRange lists activities between two dates (YYYY-MM-DD).
// Non-critical read: failures degrade to an empty page.
func (c *Client) ActivitiesRange(ctx context.Context, startDate, endDate string) HistoryPage {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var result HistoryPage
	if err := c.do(ctx, http.MethodGet, "/api/history/range", query, nil, &result); err != nil {
		c.logf("history range degraded: %v", err)
		return HistoryPage{Activities: []Activity{}}
	}
	if result.Activities == nil {
		result.Activities = []Activity{}
	}
	return result
}

// HistoryStats fetches aggregate activity counts. Non-critical read:
// failures degrade to zeroes.
func (c *Client) HistoryStats(ctx context.Context) HistoryStats {
	var result HistoryStats
	if err := c.do(ctx, http.MethodGet, "/api/history/stats", nil, nil, &result); err != nil {
		c.logf("history stats degraded: %v", err)
		return HistoryStats{ByType: map[string]int{}}
	}
	if result.ByType == nil {
		result.ByType = map[string]int{}
	}
	return result
}

// ClearHistory deletes the entire activity log. Mutating call: errors
// propagate so the user learns the log was not cleared.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/history/", nil, nil, nil)
}
