// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package softdel implements delayed deletion with an undo window.
package softdel

import (
	"sync"
	"time"

	"github.com/jeranaias/studia-tui/internal/model"
)

// DefaultDelay is the undo window before a staged deletion commits.
const DefaultDelay = 5 * time.Second

// =============================================================================
// TYPES
// =============================================================================

// CommitFunc performs the backend deletion once the undo window closes.
type CommitFunc func(conversationID string) error

// Entry is a staged deletion: the hidden conversation plus its cached
// transcript, kept so an undo restores both without a refetch.
type Entry struct {
	Conversation model.Conversation
	Messages     []model.Message
	StagedAt     time.Time

	timer *time.Timer
}

// Deadline returns when the entry's undo window closes.
func (e Entry) Deadline(delay time.Duration) time.Time {
	return e.StagedAt.Add(delay)
}

// EventKind classifies commit outcomes.
type EventKind int

const (
	// Committed means the backend delete succeeded; the deletion is final.
	Committed EventKind = iota
	// CommitFailed means the backend delete failed; the entry should be
	// rolled back into view.
	CommitFailed
)

// Event reports the outcome of a commit attempt.
type Event struct {
	Kind  EventKind
	Entry Entry
	Err   error
}

// =============================================================================
// QUEUE
// =============================================================================

// Queue holds staged deletions. Each entry carries its own timer, so
// windows close independently: deleting A then B two seconds later
// commits A two seconds before B.
type Queue struct {
	mu      sync.Mutex
	entries map[string]*Entry
	stack   []string // staging order, most recent last
	delay   time.Duration
	commit  CommitFunc
	events  chan Event
}

// New creates a queue with the default undo window.
func New(commit CommitFunc) *Queue {
	return NewWithDelay(commit, DefaultDelay)
}

// NewWithDelay creates a queue with a custom undo window.
func NewWithDelay(commit CommitFunc, delay time.Duration) *Queue {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Queue{
		entries: make(map[string]*Entry),
		delay:   delay,
		commit:  commit,
		events:  make(chan Event, 16),
	}
}

// Delay returns the configured undo window.
func (q *Queue) Delay() time.Duration {
	return q.delay
}

// Events returns the channel commit outcomes are delivered on.
func (q *Queue) Events() <-chan Event {
	return q.events
}

// Stage hides a conversation and schedules its commit. Staging an
// already-staged ID restarts that entry's window.
func (q *Queue) Stage(conv model.Conversation, msgs []model.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if prev, ok := q.entries[conv.ID]; ok {
		prev.timer.Stop()
		q.removeFromStackLocked(conv.ID)
	}

	e := &Entry{
		Conversation: conv,
		Messages:     msgs,
		StagedAt:     time.Now(),
	}
	id := conv.ID
	e.timer = time.AfterFunc(q.delay, func() { q.fire(id) })
	q.entries[id] = e
	q.stack = append(q.stack, id)
}

// Undo cancels the most recently staged deletion and returns its entry
// for reinsertion. Returns false when nothing is staged or the latest
// entry already committed.
func (q *Queue) Undo() (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.stack) > 0 {
		id := q.stack[len(q.stack)-1]
		q.stack = q.stack[:len(q.stack)-1]
		e, ok := q.entries[id]
		if !ok {
			continue
		}
		// Stop returns false if the timer already fired; fire holds
		// the lock to remove the entry, so reaching here with the
		// entry still present means the commit has not started.
		e.timer.Stop()
		delete(q.entries, id)
		return *e, true
	}
	return Entry{}, false
}

// Pending returns the staged entries in staging order.
func (q *Queue) Pending() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Entry, 0, len(q.stack))
	for _, id := range q.stack {
		if e, ok := q.entries[id]; ok {
			out = append(out, *e)
		}
	}
	return out
}

// Len returns the number of staged deletions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// IsStaged reports whether a conversation is hidden awaiting commit.
func (q *Queue) IsStaged(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.entries[id]
	return ok
}

// FlushAll commits every staged entry immediately, bypassing the
// remaining windows, and stops at the first backend failure so a dead
// server does not burn one timeout per entry. Used on shutdown so
// hidden conversations are not silently resurrected next session.
func (q *Queue) FlushAll() {
	q.mu.Lock()
	ids := make([]string, len(q.stack))
	copy(ids, q.stack)
	q.mu.Unlock()

	for _, id := range ids {
		if !q.fire(id) {
			return
		}
	}
}

// DeleteAll commits the given conversation ids immediately, one at a
// time, stopping at the first backend failure so partial progress is
// known exactly. Staged entries among the ids lose their timers first;
// nothing commits twice. Returns the ids that were deleted.
func (q *Queue) DeleteAll(ids []string) ([]string, error) {
	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		q.mu.Lock()
		if e, ok := q.entries[id]; ok {
			e.timer.Stop()
			delete(q.entries, id)
			q.removeFromStackLocked(id)
		}
		q.mu.Unlock()

		if err := q.commit(id); err != nil {
			return deleted, err
		}
		deleted = append(deleted, id)
	}
	return deleted, nil
}

// =============================================================================
// COMMIT
// =============================================================================

// fire commits one entry, reporting whether the backend accepted it.
// The entry is removed from the queue first: once commit begins the
// deletion is no longer undoable, even if the backend call fails and
// the caller rolls it back.
func (q *Queue) fire(id string) bool {
	q.mu.Lock()
	e, ok := q.entries[id]
	if !ok {
		q.mu.Unlock()
		return true
	}
	e.timer.Stop()
	delete(q.entries, id)
	q.removeFromStackLocked(id)
	q.mu.Unlock()

	if err := q.commit(id); err != nil {
		q.deliver(Event{Kind: CommitFailed, Entry: *e, Err: err})
		return false
	}
	q.deliver(Event{Kind: Committed, Entry: *e})
	return true
}

func (q *Queue) deliver(ev Event) {
	select {
	case q.events <- ev:
	default:
		// Drop rather than block a timer goroutine. The buffer is
		// larger than any realistic number of in-flight commits.
	}
}

func (q *Queue) removeFromStackLocked(id string) {
	out := q.stack[:0]
	for _, s := range q.stack {
		if s != id {
			out = append(out, s)
		}
	}
	q.stack = out
}
