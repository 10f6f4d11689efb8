// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package turn drives a single chat turn from submission to settlement.
package turn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jeranaias/studia-tui/internal/api"
	"github.com/jeranaias/studia-tui/internal/model"
	"github.com/jeranaias/studia-tui/internal/store"
)

// ErrTurnInFlight is returned by Begin while a turn is already
// awaiting its reply on the same conversation.
var ErrTurnInFlight = errors.New("a reply is already pending for this conversation")

// ErrEmptyInput is returned by Begin for blank submissions.
var ErrEmptyInput = errors.New("nothing to send")

// =============================================================================
// TYPES
// =============================================================================

// Backend is the slice of the API client a turn needs. Narrow so tests
// can settle turns without a server.
type Backend interface {
	SendMessage(ctx context.Context, message string, conversationID *string) (*api.ChatResult, error)
	UploadDocument(ctx context.Context, filename string, content io.Reader) (*api.DocumentResult, error)
	IngestYouTube(ctx context.Context, videoURL, title string) (*api.VideoResult, error)
}

// Kind is the flow a submission dispatches to. First match wins:
// attached file, then video link, then plain chat.
type Kind int

const (
	KindChat Kind = iota
	KindDocument
	KindVideo
)

// String returns the flow name for logging.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindVideo:
		return "video"
	default:
		return "chat"
	}
}

// Input is one user submission. A non-empty FileName marks a document
// turn; Content must then hold the file body.
type Input struct {
	Text     string
	FileName string
	Content  io.Reader
}

// Turn identifies one in-flight submission: the conversation it
// started on and the two messages Begin appended. The pending ID is
// the only patch target; late or unrelated responses cannot touch
// anything else.
type Turn struct {
	ConversationID string
	Kind           Kind
	UserMessageID  string
	PendingID      string
}

// Outcome is the settled result of a turn's network work.
type Outcome struct {
	Reply          string
	ConversationID string // backend-assigned, may differ from the turn's
	Err            error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller orchestrates turns over the store and backend. One turn
// may await its reply per conversation; further submissions are
// refused until it settles.
type Controller struct {
	backend Backend
	store   *store.Store

	mu       sync.Mutex
	awaiting map[string]bool
	autoSent map[string]bool
}

// New creates a controller.
func New(backend Backend, st *store.Store) *Controller {
	return &Controller{
		backend:  backend,
		store:    st,
		awaiting: make(map[string]bool),
		autoSent: make(map[string]bool),
	}
}

// Awaiting reports whether a turn is pending on the conversation.
// The UI disables submission while true.
func (c *Controller) Awaiting(convID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting[convID]
}

// ClaimAutoSend reports whether the seeded first prompt for a fresh
// conversation should be sent. The first call per conversation ID
// wins; duplicate view initializations find the claim taken.
func (c *Controller) ClaimAutoSend(convID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.autoSent[convID] {
		return false
	}
	c.autoSent[convID] = true
	return true
}

// Begin starts a turn. It appends the user message and the pending
// assistant placeholder synchronously, before any network work, so
// the user sees feedback regardless of latency. An empty convID
// creates an optimistic placeholder conversation.
func (c *Controller) Begin(convID string, in Input) (Turn, error) {
	kind := Classify(in)
	text := strings.TrimSpace(in.Text)
	if text == "" && kind != KindDocument {
		return Turn{}, ErrEmptyInput
	}

	c.mu.Lock()
	if convID != "" && c.awaiting[convID] {
		c.mu.Unlock()
		return Turn{}, ErrTurnInFlight
	}
	c.mu.Unlock()

	if convID == "" {
		conv := model.NewConversation(deriveTitle(in))
		c.store.Upsert(*conv)
		convID = conv.ID
	}

	user := model.NewUserMessage(displayText(in))
	pending := model.NewPendingAssistant()
	c.store.AppendMessage(convID, *user)
	c.store.AppendMessage(convID, *pending)

	c.mu.Lock()
	c.awaiting[convID] = true
	c.mu.Unlock()

	return Turn{
		ConversationID: convID,
		Kind:           kind,
		UserMessageID:  user.ID,
		PendingID:      pending.ID,
	}, nil
}

// Execute performs the turn's network work and returns the settled
// outcome. It never touches the store; run it off the update loop.
func (c *Controller) Execute(ctx context.Context, t Turn, in Input) Outcome {
	switch t.Kind {
	case KindDocument:
		return c.executeDocument(ctx, t, in)
	case KindVideo:
		return c.executeVideo(ctx, t, in)
	default:
		return c.executeChat(ctx, t, strings.TrimSpace(in.Text))
	}
}

// Finish applies an outcome: the placeholder resolves or errors in
// place, and a backend-assigned conversation ID replaces a placeholder
// ID without losing the just-rendered messages. Returns the active
// conversation ID the view should show. A missing patch target (the
// conversation was deleted mid-flight) is a silent no-op.
func (c *Controller) Finish(t Turn, out Outcome) string {
	c.mu.Lock()
	delete(c.awaiting, t.ConversationID)
	c.mu.Unlock()

	activeID := t.ConversationID
	if out.Err == nil && out.ConversationID != "" && out.ConversationID != t.ConversationID {
		c.store.ReplaceID(t.ConversationID, out.ConversationID)
		activeID = out.ConversationID
	}

	if out.Err != nil {
		c.store.UpdateMessage(activeID, t.PendingID, func(m *model.Message) {
			m.Fail(errorText(out.Err))
		})
		// Only completed turns count; take back the optimistic bump
		// for the user/placeholder pair.
		c.store.AdjustMessageCount(activeID, -2)
		return activeID
	}
	c.store.UpdateMessage(activeID, t.PendingID, func(m *model.Message) {
		m.Resolve(out.Reply)
	})
	if conv, ok := c.store.Get(activeID); ok {
		conv.Touch()
		c.store.Upsert(conv)
	}
	return activeID
}

// =============================================================================
// FLOWS
// =============================================================================

func (c *Controller) executeChat(ctx context.Context, t Turn, text string) Outcome {
	var convID *string
	if !strings.HasPrefix(t.ConversationID, "tmp_") {
		id := t.ConversationID
		convID = &id
	}
	res, err := c.backend.SendMessage(ctx, text, convID)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Reply: res.Reply, ConversationID: res.ConversationID}
}

// executeDocument uploads the file, then asks about it in a follow-up
// chat call. Both must succeed for the turn to resolve.
func (c *Controller) executeDocument(ctx context.Context, t Turn, in Input) Outcome {
	doc, err := c.backend.UploadDocument(ctx, in.FileName, in.Content)
	if err != nil {
		return Outcome{Err: err}
	}
	prompt := strings.TrimSpace(in.Text)
	if prompt == "" {
		prompt = "Summarize the key points of this document."
	}
	return c.executeChat(ctx, t, fmt.Sprintf("I uploaded a document called %q. %s", doc.FileName, prompt))
}

// executeVideo ingests the link for its transcript, then sends a chat
// message embedding a bounded prefix of it.
func (c *Controller) executeVideo(ctx context.Context, t Turn, in Input) Outcome {
	link := strings.TrimSpace(in.Text)
	video, err := c.backend.IngestYouTube(ctx, link, "")
	if err != nil {
		return Outcome{Err: err}
	}
	title := video.Title
	if title == "" {
		title = link
	}
	prompt := fmt.Sprintf("Summarize this video (%s) from its transcript:\n\n%s",
		title, BoundTranscript(video.Transcript))
	return c.executeChat(ctx, t, prompt)
}

// =============================================================================
// HELPERS
// =============================================================================

func deriveTitle(in Input) string {
	if in.FileName != "" {
		return model.DeriveTitleFromFile(in.FileName)
	}
	return model.DeriveTitle(in.Text)
}

// displayText is what renders as the user's message: the prompt, or a
// note about the attachment when no text accompanied it.
func displayText(in Input) string {
	text := strings.TrimSpace(in.Text)
	if in.FileName == "" || text != "" {
		if in.FileName != "" {
			return fmt.Sprintf("%s (attached: %s)", text, in.FileName)
		}
		return text
	}
	return fmt.Sprintf("Uploaded %s", in.FileName)
}

// errorText turns an adapter failure into a user-visible description.
func errorText(err error) string {
	switch {
	case api.IsUnauthorized(err):
		return "Session expired. Sign in again to continue."
	case api.IsNetwork(err):
		return "Could not reach the server. Check your connection and retry."
	case api.IsValidation(err):
		return "The server rejected the request: " + err.Error()
	case api.IsServer(err):
		return "The server hit an error. Try again in a moment."
	default:
		return "Something went wrong: " + err.Error()
	}
}
