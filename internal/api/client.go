// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the studia backend API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// Kind categorizes adapter errors for handling.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork              // no response reached the server
	KindUnauthorized         // 401
	KindNotFound             // 404
	KindValidation           // other 4xx, server message shown verbatim
	KindServer               // 5xx
)

// String returns the taxonomy name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "notFound"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the typed failure outcome for adapter calls.
type Error struct {
	Kind    Kind
	Message string
	Status  int // raw HTTP status, 0 when no response arrived
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsUnauthorized reports whether err is a 401 adapter error.
func IsUnauthorized(err error) bool { return errKind(err) == KindUnauthorized }

// IsNotFound reports whether err is a 404 adapter error.
func IsNotFound(err error) bool { return errKind(err) == KindNotFound }

// IsNetwork reports whether err is a transport-level adapter error.
func IsNetwork(err error) bool { return errKind(err) == KindNetwork }

// IsValidation reports whether err is a non-401/404 client error.
func IsValidation(err error) bool { return errKind(err) == KindValidation }

// IsServer reports whether err is a 5xx adapter error.
func IsServer(err error) bool { return errKind(err) == KindServer }

func errKind(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// TokenFunc returns the current bearer token, or "" when signed out.
// It is consulted once per request; tokens may rotate between calls.
type TokenFunc func() string

// Config holds configuration options for the API client.
type Config struct {
	// BaseURL is the backend base URL, without trailing slash.
	BaseURL string

	// Timeout for regular requests (default: 30s).
	Timeout time.Duration

	// UploadTimeout for multipart uploads (default: 2m).
	UploadTimeout time.Duration

	// Token supplies the bearer token per request. Nil means
	// unauthenticated; the backend rejects what it must.
	Token TokenFunc

	// RequestsPerSecond caps outgoing request rate (default: 10).
	RequestsPerSecond float64

	// Logf receives diagnostics for degraded non-critical reads.
	// Nil discards them.
	Logf func(format string, args ...any)
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "http://127.0.0.1:8000",
		Timeout:           30 * time.Second,
		UploadTimeout:     2 * time.Minute,
		RequestsPerSecond: 10,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the studia backend.
// It is safe for concurrent use.
type Client struct {
	config       *Config
	httpClient   *http.Client
	uploadClient *http.Client
	limiter      *rate.Limiter
}

// NewClient creates a new API client, filling defaults for zero values.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = 2 * time.Minute
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 10
	}

	return &Client{
		config:       config,
		httpClient:   &http.Client{Timeout: config.Timeout},
		uploadClient: &http.Client{Timeout: config.UploadTimeout},
		limiter:      rate.NewLimiter(rate.Limit(config.RequestsPerSecond), int(config.RequestsPerSecond)),
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

func (c *Client) logf(format string, args ...any) {
	if c.config.Logf != nil {
		c.config.Logf(format, args...)
	}
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do performs one JSON round trip. body is marshalled when non-nil; the
// response body is decoded into out when non-nil, after envelope unwrap.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(Unwrap(raw), out); err != nil {
		return &Error{Kind: KindUnknown, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// doRaw performs one JSON round trip and returns the raw response body.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "request cancelled", Cause: err}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(path, query), reader)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	return c.roundTrip(c.httpClient, req)
}

// upload performs one multipart round trip with the file under field and
// any extra form values.
func (c *Client) upload(ctx context.Context, path, field, filename string, content io.Reader, extra map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Kind: KindNetwork, Message: "request cancelled", Cause: err}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: "failed to build upload", Cause: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return &Error{Kind: KindUnknown, Message: "failed to read upload content", Cause: err}
	}
	for k, v := range extra {
		if err := w.WriteField(k, v); err != nil {
			return &Error{Kind: KindUnknown, Message: "failed to build upload", Cause: err}
		}
	}
	if err := w.Close(); err != nil {
		return &Error{Kind: KindUnknown, Message: "failed to build upload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(path, nil), &buf)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(req)

	raw, err := c.roundTrip(c.uploadClient, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(Unwrap(raw), out); err != nil {
		return &Error{Kind: KindUnknown, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// roundTrip executes the request and classifies the outcome.
func (c *Client) roundTrip(httpClient *http.Client, req *http.Request) (json.RawMessage, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: KindNetwork, Message: "request timed out", Cause: err}
		}
		return nil, &Error{Kind: KindNetwork, Message: "cannot reach server", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode >= 400 {
		return nil, classify(resp.StatusCode, data)
	}
	return data, nil
}

// requestURL joins base URL, path, and query. Paths keep their exact
// shape (trailing slashes included) because they are a backend contract.
func (c *Client) requestURL(path string, query url.Values) string {
	u := c.config.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// authorize attaches the bearer token when one is available. A missing
// token is not an error; the request proceeds unauthenticated.
func (c *Client) authorize(req *http.Request) {
	if c.config.Token == nil {
		return
	}
	if token := c.config.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// classify maps an HTTP failure to the adapter taxonomy, probing both
// backend error envelopes ({detail} and {success,message}) for the most
// specific human-readable message.
func classify(status int, body []byte) *Error {
	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 400 && status < 500:
		kind = KindValidation
	case status >= 500:
		kind = KindServer
	}

	return &Error{
		Kind:    kind,
		Message: serverMessage(body),
		Status:  status,
	}
}

// serverMessage extracts the server-supplied error text, if any.
func serverMessage(body []byte) string {
	var envelope struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Detail != "" {
		return envelope.Detail
	}
	return envelope.Message
}
