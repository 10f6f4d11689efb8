// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the studia backend API.
package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// =============================================================================
// DOCUMENT OPERATIONS
// =============================================================================

// UploadDocument uploads one document (PDF or plain text) via multipart.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (*DocumentResult, error) {
	var result DocumentResult
	if err := c.upload(ctx, "/api/documents/upload", "file", filename, content, nil, &result); err != nil {
		return nil, err
	}
	if result.FileName == "" {
		result.FileName = filename
	}
	return &result, nil
}

// Document fetches one document's metadata.
func (c *Client) Document(ctx context.Context, id string) (*DocumentSummary, error) {
	var result DocumentSummary
	if err := c.do(ctx, http.MethodGet, "/api/documents/"+url.PathEscape(id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RenameDocument updates a document's display name.
func (c *Client) RenameDocument(ctx context.Context, id, name string) error {
	body := struct {
		FileName string `json:"file_name"`
	}{FileName: name}
	return c.do(ctx, http.MethodPatch, "/api/documents/"+url.PathEscape(id), nil, body, nil)
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/documents/"+url.PathEscape(id), nil, nil, nil)
}

// SearchDocuments queries the document index. Non-critical read:
// failures degrade to an empty page.
func (c *Client) SearchDocuments(ctx context.Context, queryText string, page, pageSize int) DocumentPage {
	query := url.Values{}
	query.Set("query", queryText)
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var result DocumentPage
	if err := c.do(ctx, http.MethodGet, "/api/documents/search", query, nil, &result); err != nil {
		c.logf("document search degraded: %v", err)
		return DocumentPage{Documents: []DocumentSummary{}}
	}
	if result.Documents == nil {
		result.Documents = []DocumentSummary{}
	}
	return result
}
