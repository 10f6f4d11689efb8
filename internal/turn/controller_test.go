// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package turn

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jeranaias/studia-tui/internal/api"
	"github.com/jeranaias/studia-tui/internal/model"
	"github.com/jeranaias/studia-tui/internal/store"
)

// fakeBackend records calls and returns scripted results.
type fakeBackend struct {
	chatCalls  []string
	chatConvID *string
	chatResult *api.ChatResult
	chatErr    error

	uploadNames []string
	uploadErr   error

	ingestURLs []string
	transcript string
	ingestErr  error
}

func (f *fakeBackend) SendMessage(_ context.Context, message string, convID *string) (*api.ChatResult, error) {
	f.chatCalls = append(f.chatCalls, message)
	f.chatConvID = convID
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	if f.chatResult != nil {
		return f.chatResult, nil
	}
	return &api.ChatResult{Reply: "ok", ConversationID: "conv-1"}, nil
}

func (f *fakeBackend) UploadDocument(_ context.Context, filename string, _ io.Reader) (*api.DocumentResult, error) {
	f.uploadNames = append(f.uploadNames, filename)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &api.DocumentResult{DocumentID: "doc-1", FileName: filename}, nil
}

func (f *fakeBackend) IngestYouTube(_ context.Context, videoURL, _ string) (*api.VideoResult, error) {
	f.ingestURLs = append(f.ingestURLs, videoURL)
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	return &api.VideoResult{VideoID: "vid-1", Title: "Lecture", Transcript: f.transcript}, nil
}

func newController() (*Controller, *fakeBackend, *store.Store) {
	fb := &fakeBackend{}
	st := store.New()
	return New(fb, st), fb, st
}

// =============================================================================
// BEGIN
// =============================================================================

func TestBegin_AppendsUserThenPlaceholder(t *testing.T) {
	ctrl, _, st := newController()
	st.Upsert(model.Conversation{ID: "conv-1", Title: "math"})

	tn, err := ctrl.Begin("conv-1", Input{Text: "what is calculus?"})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	msgs := st.Messages("conv-1")
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	// User renders first, already settled; the placeholder follows,
	// pending with the interim text.
	if msgs[0].ID != tn.UserMessageID || msgs[0].Role != model.RoleUser || msgs[0].Status != model.StatusResolved {
		t.Errorf("user message = %+v", msgs[0])
	}
	if msgs[1].ID != tn.PendingID || msgs[1].Status != model.StatusPending || msgs[1].Text != model.ThinkingPlaceholder {
		t.Errorf("placeholder = %+v", msgs[1])
	}
	if !ctrl.Awaiting("conv-1") {
		t.Error("conversation not marked awaiting")
	}
}

func TestBegin_RefusesBlankAndConcurrent(t *testing.T) {
	ctrl, _, st := newController()
	st.Upsert(model.Conversation{ID: "conv-1"})

	if _, err := ctrl.Begin("conv-1", Input{Text: "   \n"}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("blank input: err = %v, want ErrEmptyInput", err)
	}

	tn, err := ctrl.Begin("conv-1", Input{Text: "first"})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := ctrl.Begin("conv-1", Input{Text: "second"}); !errors.Is(err, ErrTurnInFlight) {
		t.Errorf("concurrent submit: err = %v, want ErrTurnInFlight", err)
	}

	ctrl.Finish(tn, Outcome{Reply: "done", ConversationID: "conv-1"})
	if _, err := ctrl.Begin("conv-1", Input{Text: "third"}); err != nil {
		t.Errorf("submit after settle: %v", err)
	}
}

func TestBegin_CreatesPlaceholderConversation(t *testing.T) {
	ctrl, _, st := newController()

	tn, err := ctrl.Begin("", Input{Text: "explain entropy to me please, at length"})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	conv, ok := st.Get(tn.ConversationID)
	if !ok {
		t.Fatal("placeholder conversation not in store")
	}
	if !conv.IsPlaceholder() {
		t.Errorf("ID %q is not a temp id", conv.ID)
	}
	if conv.Title != "explain entropy to me ple..." {
		t.Errorf("derived title = %q", conv.Title)
	}
}

// =============================================================================
// FINISH
// =============================================================================

func TestFinish_PatchesOnlyItsPlaceholder(t *testing.T) {
	ctrl, _, st := newController()
	st.Upsert(model.Conversation{ID: "a"})
	st.Upsert(model.Conversation{ID: "b"})

	ta, _ := ctrl.Begin("a", Input{Text: "one"})
	if _, err := ctrl.Begin("b", Input{Text: "two"}); err != nil {
		t.Fatalf("Begin b: %v", err)
	}

	ctrl.Finish(ta, Outcome{Reply: "answer for a", ConversationID: "a"})

	if got := st.Messages("a")[1]; got.Status != model.StatusResolved || got.Text != "answer for a" {
		t.Errorf("a's placeholder = %+v", got)
	}
	// b's turn is untouched.
	if got := st.Messages("b")[1]; got.Status != model.StatusPending {
		t.Errorf("b's placeholder was cross-patched: %+v", got)
	}
	if !ctrl.Awaiting("b") || ctrl.Awaiting("a") {
		t.Error("awaiting flags wrong after settling a")
	}
}

func TestFinish_RedirectsToBackendID(t *testing.T) {
	ctrl, _, st := newController()

	tn, _ := ctrl.Begin("", Input{Text: "hello"})
	active := ctrl.Finish(tn, Outcome{Reply: "hi there", ConversationID: "real-9"})

	if active != "real-9" {
		t.Fatalf("active = %q, want real-9", active)
	}
	// The rendered messages moved with the ID.
	msgs := st.Messages("real-9")
	if len(msgs) != 2 || msgs[1].Text != "hi there" {
		t.Errorf("messages after redirect = %+v", msgs)
	}
	if _, ok := st.Get(tn.ConversationID); ok {
		t.Error("temp conversation still present")
	}
}

func TestFinish_ErrorKeepsUserMessage(t *testing.T) {
	ctrl, _, st := newController()
	st.Upsert(model.Conversation{ID: "a"})

	tn, _ := ctrl.Begin("a", Input{Text: "hello"})
	ctrl.Finish(tn, Outcome{Err: &api.Error{Kind: api.KindNetwork, Message: "dial refused"}})

	msgs := st.Messages("a")
	if msgs[0].Status != model.StatusResolved {
		t.Errorf("user message rolled back: %+v", msgs[0])
	}
	if msgs[1].Status != model.StatusErrored {
		t.Fatalf("placeholder = %+v, want errored", msgs[1])
	}
	if !strings.Contains(msgs[1].Text, "Could not reach the server") {
		t.Errorf("error text = %q", msgs[1].Text)
	}
}

func TestFinish_ErrorTakesBackMessageCount(t *testing.T) {
	ctrl, _, st := newController()
	st.Upsert(model.Conversation{ID: "a"})

	tn, _ := ctrl.Begin("a", Input{Text: "hello"})
	if c, _ := st.Get("a"); c.MessageCount != 2 {
		t.Fatalf("MessageCount = %d after Begin, want 2", c.MessageCount)
	}

	ctrl.Finish(tn, Outcome{Err: &api.Error{Kind: api.KindNetwork, Message: "dial refused"}})

	// Only completed turns count toward the listing.
	if c, _ := st.Get("a"); c.MessageCount != 0 {
		t.Errorf("MessageCount = %d after errored turn, want 0", c.MessageCount)
	}
}

func TestFinish_SuccessKeepsMessageCount(t *testing.T) {
	ctrl, _, st := newController()
	st.Upsert(model.Conversation{ID: "a"})

	tn, _ := ctrl.Begin("a", Input{Text: "hello"})
	ctrl.Finish(tn, Outcome{Reply: "hi there", ConversationID: "a"})

	if c, _ := st.Get("a"); c.MessageCount != 2 {
		t.Errorf("MessageCount = %d after completed turn, want 2", c.MessageCount)
	}
}

func TestFinish_LateResponseForDeletedConversation(t *testing.T) {
	ctrl, _, st := newController()
	st.Upsert(model.Conversation{ID: "a"})

	tn, _ := ctrl.Begin("a", Input{Text: "hello"})
	st.Forget("a")

	// Must not panic or resurrect anything.
	ctrl.Finish(tn, Outcome{Reply: "late", ConversationID: "a"})
	if st.HasMessages("a") {
		t.Error("late finish resurrected messages")
	}
}

// =============================================================================
// AUTO-SEND GUARD
// =============================================================================

func TestClaimAutoSend_ExactlyOnce(t *testing.T) {
	ctrl, _, _ := newController()

	if !ctrl.ClaimAutoSend("conv-1") {
		t.Fatal("first claim refused")
	}
	// Duplicate initialization events find the claim taken.
	for i := 0; i < 3; i++ {
		if ctrl.ClaimAutoSend("conv-1") {
			t.Fatal("duplicate claim allowed")
		}
	}
	if !ctrl.ClaimAutoSend("conv-2") {
		t.Error("claim for different conversation refused")
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Kind
	}{
		{"plain text", Input{Text: "hello there"}, KindChat},
		{"youtu.be link", Input{Text: "https://youtu.be/dQw4w9WgXcQ"}, KindVideo},
		{"watch link", Input{Text: "https://www.youtube.com/watch?v=abc123"}, KindVideo},
		{"shorts link", Input{Text: "youtube.com/shorts/abc123"}, KindVideo},
		{"link in a sentence", Input{Text: "check https://youtu.be/x out"}, KindChat},
		{"other site", Input{Text: "https://vimeo.com/12345"}, KindChat},
		{"watch without id", Input{Text: "https://youtube.com/watch"}, KindChat},
		{"file wins over link", Input{Text: "https://youtu.be/x", FileName: "notes.pdf"}, KindDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExecute_VideoFlowPassesExactURL(t *testing.T) {
	ctrl, fb, st := newController()
	fb.transcript = strings.Repeat("a", TranscriptCap+500)
	st.Upsert(model.Conversation{ID: "conv-1"})

	const link = "https://youtu.be/dQw4w9WgXcQ"
	tn, err := ctrl.Begin("conv-1", Input{Text: link})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if tn.Kind != KindVideo {
		t.Fatalf("kind = %v, want video", tn.Kind)
	}

	out := ctrl.Execute(context.Background(), tn, Input{Text: link})
	if out.Err != nil {
		t.Fatalf("Execute: %v", out.Err)
	}
	if len(fb.ingestURLs) != 1 || fb.ingestURLs[0] != link {
		t.Errorf("ingest called with %v, want exactly %q", fb.ingestURLs, link)
	}
	// The follow-up chat embeds a bounded transcript prefix.
	if len(fb.chatCalls) != 1 {
		t.Fatalf("chat calls = %d, want 1", len(fb.chatCalls))
	}
	if !strings.Contains(fb.chatCalls[0], TranscriptMarker) {
		t.Error("oversized transcript not truncated in prompt")
	}
}

func TestExecute_DocumentFlowBothCallsMustSucceed(t *testing.T) {
	ctrl, fb, st := newController()
	st.Upsert(model.Conversation{ID: "conv-1"})

	tn, err := ctrl.Begin("conv-1", Input{FileName: "notes.pdf", Content: strings.NewReader("body")})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	out := ctrl.Execute(context.Background(), tn, Input{FileName: "notes.pdf", Content: strings.NewReader("body")})
	if out.Err != nil {
		t.Fatalf("Execute: %v", out.Err)
	}
	if len(fb.uploadNames) != 1 || len(fb.chatCalls) != 1 {
		t.Errorf("calls = upload %d, chat %d; want 1 and 1", len(fb.uploadNames), len(fb.chatCalls))
	}
	if !strings.Contains(fb.chatCalls[0], `"notes.pdf"`) {
		t.Errorf("follow-up prompt = %q", fb.chatCalls[0])
	}

	// Upload failure settles the turn errored without a chat call.
	fb2 := &fakeBackend{uploadErr: errors.New("too large")}
	ctrl2 := New(fb2, store.New())
	tn2, _ := ctrl2.Begin("", Input{FileName: "big.pdf", Content: strings.NewReader("x")})
	out2 := ctrl2.Execute(context.Background(), tn2, Input{FileName: "big.pdf", Content: strings.NewReader("x")})
	if out2.Err == nil {
		t.Fatal("upload failure did not error the turn")
	}
	if len(fb2.chatCalls) != 0 {
		t.Error("chat call made after failed upload")
	}
}

func TestExecute_NewConversationOmitsID(t *testing.T) {
	ctrl, fb, _ := newController()

	tn, _ := ctrl.Begin("", Input{Text: "hello"})
	ctrl.Execute(context.Background(), tn, Input{Text: "hello"})

	// A temp id never goes over the wire; the backend creates the
	// conversation.
	if fb.chatConvID != nil {
		t.Errorf("conversation_id sent = %q, want omitted", *fb.chatConvID)
	}
}

func TestBoundTranscript(t *testing.T) {
	short := "brief transcript"
	if got := BoundTranscript(short); got != short {
		t.Errorf("short transcript altered: %q", got)
	}
	long := strings.Repeat("x", TranscriptCap+1)
	got := BoundTranscript(long)
	if !strings.HasSuffix(got, TranscriptMarker) {
		t.Error("truncated transcript missing marker")
	}
	if len([]rune(got)) != TranscriptCap+len([]rune(TranscriptMarker)) {
		t.Errorf("bounded length = %d", len([]rune(got)))
	}
}
