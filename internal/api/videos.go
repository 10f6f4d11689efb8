// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the studia backend API.
package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// =============================================================================
// VIDEO OPERATIONS
// =============================================================================

// youtubeRequest is the video-ingest body.
type youtubeRequest struct {
	YouTubeURL string `json:"youtube_url"`
	Title      string `json:"title,omitempty"`
}

// IngestYouTube submits a video link for transcript extraction.
func (c *Client) IngestYouTube(ctx context.Context, videoURL, title string) (*VideoResult, error) {
	var result VideoResult
	err := c.do(ctx, http.MethodPost, "/api/videos/youtube", nil, youtubeRequest{
		YouTubeURL: videoURL,
		Title:      title,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadVideo uploads a video file via multipart for transcription.
func (c *Client) UploadVideo(ctx context.Context, filename, title string, content io.Reader) (*VideoResult, error) {
	var result VideoResult
	extra := map[string]string{"title": title}
	if err := c.upload(ctx, "/api/videos/upload", "file", filename, content, extra, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Video fetches one video's metadata and transcript.
func (c *Client) Video(ctx context.Context, id string) (*VideoResult, error) {
	var result VideoResult
	if err := c.do(ctx, http.MethodGet, "/api/videos/"+url.PathEscape(id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RenameVideo updates a video title.
func (c *Client) RenameVideo(ctx context.Context, id, title string) error {
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	return c.do(ctx, http.MethodPatch, "/api/videos/"+url.PathEscape(id), nil, body, nil)
}

// DeleteVideo removes a video.
func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/videos/"+url.PathEscape(id), nil, nil, nil)
}
