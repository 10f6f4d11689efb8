// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the in-memory conversation state for the session.
package store

import (
	"sync"

	"github.com/jeranaias/studia-tui/internal/model"
)

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// Store keeps the session's conversations and their messages in memory.
// The conversation slice is ordered most recent first; the backend's
// listing order is authoritative after a bulk load, and local mutations
// (new conversation, undo of a delete) prepend.
//
// All methods are safe for concurrent use. Bubble Tea delivers messages
// on a single goroutine, but command goroutines may read while the
// update loop writes.
type Store struct {
	mu sync.Mutex

	conversations []model.Conversation
	messages      map[string][]model.Message

	// Bulk load guard, keyed by sign-in session. A second sign-in
	// (new session ID) reloads; re-renders within a session do not.
	loadedSessions map[string]bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		messages:       make(map[string][]model.Message),
		loadedSessions: make(map[string]bool),
	}
}

// =============================================================================
// CONVERSATION LIST
// =============================================================================

// List returns a copy of the conversation list in display order.
func (s *Store) List() []model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// Len returns the number of conversations currently visible.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

// Get returns the conversation with the given ID, if present.
func (s *Store) Get(id string) (model.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.conversations {
		if c.ID == id {
			return c, true
		}
	}
	return model.Conversation{}, false
}

// Upsert replaces the conversation with a matching ID in place, or
// prepends it when absent. Replacing preserves list position so a
// title or count refresh never reorders the sidebar.
func (s *Store) Upsert(conv model.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.conversations {
		if c.ID == conv.ID {
			s.conversations[i] = conv
			return
		}
	}
	s.conversations = append([]model.Conversation{conv}, s.conversations...)
}

// InsertFront prepends a conversation regardless of prior position.
// Used when an undo restores a deleted conversation.
func (s *Store) InsertFront(conv model.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = append([]model.Conversation{conv}, s.removeLocked(conv.ID)...)
}

// Remove drops the conversation from the visible list and returns it.
// Its messages stay cached so an undo restores the transcript without
// a refetch.
func (s *Store) Remove(id string) (model.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.conversations {
		if c.ID == id {
			s.conversations = s.removeLocked(id)
			return c, true
		}
	}
	return model.Conversation{}, false
}

// Forget removes a conversation and drops its cached messages. Called
// once a deletion is final.
func (s *Store) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = s.removeLocked(id)
	delete(s.messages, id)
}

// Rename updates a conversation's title in place.
func (s *Store) Rename(id, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.conversations {
		if s.conversations[i].ID == id {
			s.conversations[i].Title = title
			return true
		}
	}
	return false
}

// ReplaceID rewrites a conversation's ID, carrying its messages over.
// Used when the backend assigns a real ID to a placeholder.
func (s *Store) ReplaceID(oldID, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.conversations {
		if s.conversations[i].ID == oldID {
			s.conversations[i].ID = newID
			break
		}
	}
	if msgs, ok := s.messages[oldID]; ok {
		s.messages[newID] = msgs
		delete(s.messages, oldID)
	}
}

func (s *Store) removeLocked(id string) []model.Conversation {
	out := s.conversations[:0]
	for _, c := range s.conversations {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// BULK LOAD
// =============================================================================

// ClaimBulkLoad reports whether the caller should perform the initial
// summary fetch for this session. The first call per session ID wins;
// later calls (re-renders, view switches) return false.
func (s *Store) ClaimBulkLoad(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadedSessions[sessionID] {
		return false
	}
	s.loadedSessions[sessionID] = true
	return true
}

// ReplaceAll swaps in a freshly fetched conversation list. Cached
// messages are kept; summaries do not carry bodies.
func (s *Store) ReplaceAll(convs []model.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = make([]model.Conversation, len(convs))
	copy(s.conversations, convs)
}

// =============================================================================
// MESSAGES
// =============================================================================

// Messages returns a copy of the conversation's cached transcript.
// A nil return means the transcript has not been fetched yet.
func (s *Store) Messages(convID string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, ok := s.messages[convID]
	if !ok {
		return nil
	}
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out
}

// HasMessages reports whether a transcript has been loaded, even an
// empty one. Distinguishes "not fetched" from "no messages".
func (s *Store) HasMessages(convID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.messages[convID]
	return ok
}

// SetMessages installs a fetched transcript, replacing any cache.
func (s *Store) SetMessages(convID string, msgs []model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]model.Message, len(msgs))
	copy(cp, msgs)
	s.messages[convID] = cp
}

// AppendMessage adds a message to the end of a transcript, creating
// the transcript if needed, and bumps the conversation's count.
func (s *Store) AppendMessage(convID string, msg model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[convID] = append(s.messages[convID], msg)
	for i := range s.conversations {
		if s.conversations[i].ID == convID {
			s.conversations[i].MessageCount++
			break
		}
	}
}

// AdjustMessageCount shifts a conversation's count by delta, clamping
// at zero. Lets an errored turn take back the optimistic bump.
func (s *Store) AdjustMessageCount(convID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.conversations {
		if s.conversations[i].ID == convID {
			s.conversations[i].MessageCount += delta
			if s.conversations[i].MessageCount < 0 {
				s.conversations[i].MessageCount = 0
			}
			break
		}
	}
}

// UpdateMessage patches a message in place, preserving its position.
// Returns false when the conversation or message is gone, which a
// late-arriving response treats as a silent no-op.
func (s *Store) UpdateMessage(convID, msgID string, patch func(*model.Message)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, ok := s.messages[convID]
	if !ok {
		return false
	}
	for i := range msgs {
		if msgs[i].ID == msgID {
			patch(&msgs[i])
			return true
		}
	}
	return false
}

// ClearMessages empties a transcript and zeroes the count. The
// conversation stays in the list.
func (s *Store) ClearMessages(convID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[convID] = []model.Message{}
	for i := range s.conversations {
		if s.conversations[i].ID == convID {
			s.conversations[i].MessageCount = 0
			break
		}
	}
}
