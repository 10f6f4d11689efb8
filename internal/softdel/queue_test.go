// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package softdel

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jeranaias/studia-tui/internal/model"
)

const testDelay = 50 * time.Millisecond

type commitRecorder struct {
	mu    sync.Mutex
	calls []string
	err   error

	// failOn limits err to one id; empty means every call fails.
	failOn string
}

func (r *commitRecorder) commit(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, id)
	if r.err != nil && (r.failOn == "" || r.failOn == id) {
		return r.err
	}
	return nil
}

func (r *commitRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func conv(id string) model.Conversation {
	return model.Conversation{ID: id, Title: id}
}

func waitEvent(t *testing.T, q *Queue) Event {
	t.Helper()
	select {
	case ev := <-q.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event within 2s")
		return Event{}
	}
}

func TestUndo_RestoresMostRecentFirst(t *testing.T) {
	rec := &commitRecorder{}
	q := NewWithDelay(rec.commit, time.Hour) // windows never close here

	q.Stage(conv("a"), nil)
	q.Stage(conv("b"), nil)
	q.Stage(conv("c"), nil)

	for _, want := range []string{"c", "b", "a"} {
		e, ok := q.Undo()
		if !ok {
			t.Fatalf("Undo refused, want %s", want)
		}
		if e.Conversation.ID != want {
			t.Errorf("Undo = %s, want %s", e.Conversation.ID, want)
		}
	}
	if _, ok := q.Undo(); ok {
		t.Error("Undo succeeded on empty queue")
	}
	if rec.count() != 0 {
		t.Errorf("backend called %d times, want 0", rec.count())
	}
}

func TestUndo_PreventsCommit(t *testing.T) {
	rec := &commitRecorder{}
	q := NewWithDelay(rec.commit, testDelay)

	q.Stage(conv("a"), nil)
	if _, ok := q.Undo(); !ok {
		t.Fatal("Undo refused inside window")
	}

	time.Sleep(4 * testDelay)
	if rec.count() != 0 {
		t.Errorf("undone deletion still committed: %d calls", rec.count())
	}
}

func TestCommit_IsFinal(t *testing.T) {
	rec := &commitRecorder{}
	q := NewWithDelay(rec.commit, testDelay)

	q.Stage(conv("a"), nil)
	ev := waitEvent(t, q)
	if ev.Kind != Committed || ev.Entry.Conversation.ID != "a" {
		t.Fatalf("event = %+v, want Committed a", ev)
	}
	if rec.count() != 1 {
		t.Errorf("backend called %d times, want 1", rec.count())
	}
	// Once committed there is nothing to undo.
	if _, ok := q.Undo(); ok {
		t.Error("Undo succeeded after commit")
	}
	if q.IsStaged("a") {
		t.Error("committed entry still staged")
	}
}

func TestCommit_FailureEmitsRollbackEntry(t *testing.T) {
	rec := &commitRecorder{err: errors.New("backend down")}
	q := NewWithDelay(rec.commit, testDelay)

	msgs := []model.Message{*model.NewUserMessage("hi")}
	q.Stage(conv("a"), msgs)

	ev := waitEvent(t, q)
	if ev.Kind != CommitFailed {
		t.Fatalf("event kind = %v, want CommitFailed", ev.Kind)
	}
	if ev.Err == nil {
		t.Error("failure event missing error")
	}
	// The entry carries the transcript so the caller can restore it.
	if ev.Entry.Conversation.ID != "a" || len(ev.Entry.Messages) != 1 {
		t.Errorf("rollback entry = %+v", ev.Entry)
	}
	// A failed commit is still final for the queue; it does not retry.
	if _, ok := q.Undo(); ok {
		t.Error("Undo succeeded after failed commit")
	}
}

func TestWindows_AreIndependent(t *testing.T) {
	rec := &commitRecorder{}
	q := NewWithDelay(rec.commit, testDelay)

	q.Stage(conv("a"), nil)
	time.Sleep(testDelay / 2)
	q.Stage(conv("b"), nil)

	// a commits first; b is still undoable at that point.
	ev := waitEvent(t, q)
	if ev.Entry.Conversation.ID != "a" {
		t.Fatalf("first commit = %s, want a", ev.Entry.Conversation.ID)
	}
	e, ok := q.Undo()
	if !ok || e.Conversation.ID != "b" {
		t.Errorf("Undo after a's commit = %+v, %v; want b", e, ok)
	}
}

func TestStage_SameIDRestartsWindow(t *testing.T) {
	rec := &commitRecorder{}
	q := NewWithDelay(rec.commit, time.Hour)

	q.Stage(conv("a"), nil)
	q.Stage(conv("a"), nil)
	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1", q.Len())
	}
	if _, ok := q.Undo(); !ok {
		t.Error("Undo refused after restage")
	}
	if _, ok := q.Undo(); ok {
		t.Error("duplicate stack entry survived restage")
	}
}

func TestFlushAll(t *testing.T) {
	rec := &commitRecorder{}
	q := NewWithDelay(rec.commit, time.Hour)

	q.Stage(conv("a"), nil)
	q.Stage(conv("b"), nil)
	q.FlushAll()

	if rec.count() != 2 {
		t.Errorf("backend called %d times, want 2", rec.count())
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d after flush, want 0", q.Len())
	}
}

func TestFlushAll_StopsOnFirstFailure(t *testing.T) {
	rec := &commitRecorder{err: errors.New("backend down")}
	q := NewWithDelay(rec.commit, time.Hour)

	q.Stage(conv("a"), nil)
	q.Stage(conv("b"), nil)
	q.Stage(conv("c"), nil)
	q.FlushAll()

	if rec.count() != 1 {
		t.Errorf("backend called %d times, want 1 before aborting", rec.count())
	}
	if ev := waitEvent(t, q); ev.Kind != CommitFailed {
		t.Errorf("event kind = %v, want CommitFailed", ev.Kind)
	}
}

func TestDeleteAll_CommitsEveryID(t *testing.T) {
	rec := &commitRecorder{}
	q := NewWithDelay(rec.commit, time.Hour)

	q.Stage(conv("a"), nil)
	deleted, err := q.DeleteAll([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if len(deleted) != 3 {
		t.Errorf("deleted %d conversations, want 3", len(deleted))
	}
	if rec.count() != 3 {
		t.Errorf("backend called %d times, want 3", rec.count())
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d after sweep, want 0", q.Len())
	}
}

func TestDeleteAll_HaltsOnFirstFailure(t *testing.T) {
	rec := &commitRecorder{err: errors.New("backend down"), failOn: "b"}
	q := NewWithDelay(rec.commit, time.Hour)

	deleted, err := q.DeleteAll([]string{"a", "b", "c"})
	if err == nil {
		t.Fatal("DeleteAll swallowed the backend error")
	}
	if len(deleted) != 1 || deleted[0] != "a" {
		t.Errorf("deleted = %v, want [a]", deleted)
	}
	if rec.count() != 2 {
		t.Errorf("backend called %d times, want 2 (halt at the failure)", rec.count())
	}
}

func TestDeleteAll_CancelsStagedTimer(t *testing.T) {
	rec := &commitRecorder{}
	q := NewWithDelay(rec.commit, testDelay)

	q.Stage(conv("a"), nil)
	if _, err := q.DeleteAll([]string{"a"}); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	time.Sleep(4 * testDelay)

	if rec.count() != 1 {
		t.Errorf("backend called %d times, want 1 (timer must not fire twice)", rec.count())
	}
}
