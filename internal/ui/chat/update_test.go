// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studia-tui/internal/model"
	"github.com/jeranaias/studia-tui/internal/softdel"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seedConversations(m Model, n int) Model {
	for i := 0; i < n; i++ {
		conv := model.Conversation{
			ID:        "conv-" + string(rune('a'+i)),
			Title:     "Topic " + string(rune('A'+i)),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		m.store.Upsert(conv)
	}
	return m
}

// =============================================================================
// SOFT DELETE
// =============================================================================

func TestStageDeleteRemovesFromVisibleList(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 3)
	m.store.SetMessages("conv-a", []model.Message{*model.NewUserMessage("keep me")})
	m.activeConvID = "conv-a"

	updated, _ := m.stageDelete()
	m = updated.(Model)

	if !m.queue.IsStaged("conv-a") {
		t.Fatal("expected conv-a staged")
	}
	if _, ok := m.store.Get("conv-a"); ok {
		t.Error("a staged conversation must leave the visible store")
	}
	for _, conv := range m.visibleConversations() {
		if conv.ID == "conv-a" {
			t.Error("sidebar listing still shows the staged conversation")
		}
	}
	// With the conversation out of the store and the view moved on,
	// nothing can open, rename, or send into it during the window.
	if _, ok := m.targetConversation(); ok {
		t.Error("staged conversation should not be a target for actions")
	}
}

func TestStageDeleteNewTurnCannotReachStagedConversation(t *testing.T) {
	m := newTestModel(&fakeBackend{reply: "ok", convID: "conv-new"})
	m = seedConversations(m, 1)
	m.activeConvID = "conv-a"

	updated, _ := m.stageDelete()
	m = updated.(Model)

	m.input.SetValue("follow-up question")
	updated, _ = m.submit()
	m = updated.(Model)

	if m.activeConvID == "conv-a" {
		t.Error("submit after staging must start fresh, not write into the doomed conversation")
	}
	for _, msg := range m.store.Messages("conv-a") {
		if msg.Text == "follow-up question" {
			t.Error("new user message leaked into the staged conversation")
		}
	}
}

func TestStageDeletePlaceholderDropsOutright(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	conv := model.NewConversation("Draft chat")
	m.store.Upsert(*conv)
	m.activeConvID = conv.ID

	updated, _ := m.stageDelete()
	m = updated.(Model)

	if _, ok := m.store.Get(conv.ID); ok {
		t.Error("placeholder conversation should be forgotten, not staged")
	}
	if m.queue.Len() != 0 {
		t.Error("placeholder deletion must not reach the queue")
	}
}

func TestUndoRestoresMostRecent(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 2)
	m.store.SetMessages("conv-b", []model.Message{*model.NewUserMessage("hi")})

	m.activeConvID = "conv-a"
	updated, _ := m.stageDelete()
	m = updated.(Model)
	m.activeConvID = "conv-b"
	updated, _ = m.stageDelete()
	m = updated.(Model)

	updated, _ = m.undoDelete()
	m = updated.(Model)

	if m.queue.IsStaged("conv-b") {
		t.Error("undo should cancel the most recent staging first")
	}
	if !m.queue.IsStaged("conv-a") {
		t.Error("earlier staging should remain")
	}
	list := m.visibleConversations()
	if len(list) == 0 || list[0].ID != "conv-b" {
		t.Fatal("undone conversation should return to the front of the list")
	}
	if got := m.store.Messages("conv-b"); len(got) != 1 || got[0].Text != "hi" {
		t.Error("undo should restore the cached transcript")
	}
	if _, ok := m.store.Get("conv-a"); ok {
		t.Error("the still-staged conversation must stay out of the store")
	}
}

func TestUndoTwiceRestoresOriginalOrder(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 3) // listed [conv-c, conv-b, conv-a]

	m.activeConvID = "conv-c"
	updated, _ := m.stageDelete()
	m = updated.(Model)
	m.activeConvID = "conv-b"
	updated, _ = m.stageDelete()
	m = updated.(Model)

	updated, _ = m.undoDelete()
	m = updated.(Model)
	updated, _ = m.undoDelete()
	m = updated.(Model)

	want := []string{"conv-c", "conv-b", "conv-a"}
	list := m.visibleConversations()
	if len(list) != len(want) {
		t.Fatalf("listed %d conversations, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("list[%d] = %q, want %q", i, list[i].ID, id)
		}
	}
}

func TestUndoWithNothingStaged(t *testing.T) {
	m := newTestModel(&fakeBackend{})

	if _, cmd := m.undoDelete(); cmd != nil {
		t.Error("undo with nothing staged should be a no-op")
	}
}

func TestDeleteEventCommittedForgetsConversation(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 2)
	m.activeConvID = "conv-a"

	conv, _ := m.store.Get("conv-a")
	ev := softdel.Event{Kind: softdel.Committed, Entry: softdel.Entry{Conversation: conv}}

	updated, cmd := m.handleDeleteEvent(DeleteEventMsg{Event: ev})
	m = updated.(Model)

	if _, ok := m.store.Get("conv-a"); ok {
		t.Error("committed conversation should leave the store")
	}
	if m.activeConvID != "" {
		t.Error("deleting the active conversation should clear the view")
	}
	if cmd == nil {
		t.Error("the delete-event listener must re-arm")
	}
}

func TestDeleteEventCommitFailedRollsBack(t *testing.T) {
	m := newTestModel(&fakeBackend{})

	conv := model.Conversation{ID: "conv-x", Title: "Kept"}
	msgs := []model.Message{*model.NewUserMessage("hi")}
	ev := softdel.Event{
		Kind:  softdel.CommitFailed,
		Entry: softdel.Entry{Conversation: conv, Messages: msgs},
		Err:   errors.New("backend down"),
	}

	updated, _ := m.handleDeleteEvent(DeleteEventMsg{Event: ev})
	m = updated.(Model)

	if _, ok := m.store.Get("conv-x"); !ok {
		t.Fatal("failed commit should roll the conversation back into view")
	}
	if got := m.store.Messages("conv-x"); len(got) != 1 {
		t.Errorf("rollback should restore the cached transcript, got %d messages", len(got))
	}
}

// =============================================================================
// LISTING
// =============================================================================

func TestConversationsLoadedKeepsPlaceholders(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	placeholder := model.NewConversation("Draft")
	m.store.Upsert(*placeholder)

	fetched := []model.Conversation{
		{ID: "conv-1", Title: "Mitosis"},
		{ID: "conv-2", Title: "Glycolysis"},
	}
	updated, _ := m.handleConversationsLoaded(ConversationsLoadedMsg{Conversations: fetched})
	m = updated.(Model)

	list := m.store.List()
	if len(list) != 3 {
		t.Fatalf("expected placeholder + 2 fetched, got %d", len(list))
	}
	if list[0].ID != placeholder.ID {
		t.Error("optimistic placeholder should stay at the front")
	}
}

func TestConversationsLoadedErrorLeavesStore(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 1)

	updated, _ := m.handleConversationsLoaded(ConversationsLoadedMsg{Err: errors.New("boom")})
	m = updated.(Model)

	if m.store.Len() != 1 {
		t.Error("a failed listing must not clobber local state")
	}
}

// =============================================================================
// RENAME
// =============================================================================

func TestRenameOptimistic(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 1)
	m.activeConvID = "conv-a"

	updated, _ := m.startRename()
	m = updated.(Model)
	if m.renamingID != "conv-a" {
		t.Fatalf("expected rename mode on conv-a, got %q", m.renamingID)
	}

	m.input.SetValue("Cell Biology")
	updated, cmd := m.handleRenameKey(keyMsg("enter"))
	m = updated.(Model)

	conv, _ := m.store.Get("conv-a")
	if conv.Title != "Cell Biology" {
		t.Errorf("rename should apply locally first, got %q", conv.Title)
	}
	if m.renamingID != "" {
		t.Error("rename mode should exit on submit")
	}
	if cmd == nil {
		t.Error("persisted conversations should get a backend rename")
	}
}

func TestRenameCancelled(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 1)
	m.activeConvID = "conv-a"

	updated, _ := m.startRename()
	m = updated.(Model)
	updated, _ = m.handleRenameKey(keyMsg("esc"))
	m = updated.(Model)

	conv, _ := m.store.Get("conv-a")
	if conv.Title != "Topic A" {
		t.Errorf("cancelled rename must not change the title, got %q", conv.Title)
	}
	if m.renamingID != "" {
		t.Error("rename mode should exit on cancel")
	}
}

// =============================================================================
// CLEAR, THEME, HELP
// =============================================================================

func TestClearMessagesKeepsConversation(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 1)
	m.activeConvID = "conv-a"
	m.store.SetMessages("conv-a", []model.Message{*model.NewUserMessage("hi")})

	updated, cmd := m.clearMessages()
	m = updated.(Model)

	if _, ok := m.store.Get("conv-a"); !ok {
		t.Error("clearing messages must keep the conversation shell")
	}
	if len(m.store.Messages("conv-a")) != 0 {
		t.Error("transcript should be empty after clear")
	}
	if cmd == nil {
		t.Error("persisted conversations should get a backend clear")
	}
}

func TestClearMessagesPlaceholderStaysLocal(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	conv := model.NewConversation("Draft")
	m.store.Upsert(*conv)
	m.activeConvID = conv.ID
	m.store.SetMessages(conv.ID, []model.Message{*model.NewUserMessage("hi")})

	updated, cmd := m.clearMessages()
	m = updated.(Model)

	if cmd != nil {
		t.Error("placeholder conversations never hit the backend")
	}
	if len(m.store.Messages(conv.ID)) != 0 {
		t.Error("transcript should be empty after clear")
	}
}

func TestThemeToggleRecordsPreference(t *testing.T) {
	m := newTestModel(&fakeBackend{})

	updated, _ := m.toggleTheme()
	m = updated.(Model)
	if m.prefs.Theme() != "light" {
		t.Errorf("expected light after first toggle, got %q", m.prefs.Theme())
	}

	updated, _ = m.toggleTheme()
	m = updated.(Model)
	if m.prefs.Theme() != "dark" {
		t.Errorf("expected dark after second toggle, got %q", m.prefs.Theme())
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	m := newTestModel(&fakeBackend{})

	updated, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlH})
	m = updated.(Model)
	if !m.showHelp {
		t.Fatal("ctrl+h should open the help overlay")
	}

	updated, _ = m.handleKey(keyMsg("x"))
	m = updated.(Model)
	if m.showHelp {
		t.Error("any key should dismiss the help overlay")
	}
}

func TestStageDeleteActiveNavigatesAway(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 2)
	m.activeConvID = "conv-a"

	updated, _ := m.stageDelete()
	m = updated.(Model)

	if m.activeConvID != "" {
		t.Errorf("deleting the open conversation should leave it immediately, still on %q", m.activeConvID)
	}
	if !m.queue.IsStaged("conv-a") {
		t.Error("conversation should still be staged for commit")
	}
}

// =============================================================================
// DELETE ALL
// =============================================================================

func TestDeleteAllSweepsStagedAndListed(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 2)
	m.activeConvID = "conv-a"

	updated, _ := m.stageDelete() // conv-a waits in the queue
	m = updated.(Model)
	updated, cmd := m.deleteAll()
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a sweep command")
	}

	msg, ok := cmd().(AllDeletedMsg)
	if !ok {
		t.Fatalf("sweep produced %T, want AllDeletedMsg", cmd())
	}
	if msg.Err != nil {
		t.Fatalf("sweep failed: %v", msg.Err)
	}
	if len(msg.Deleted) != 2 {
		t.Fatalf("deleted %d conversations, want 2 (staged + listed)", len(msg.Deleted))
	}

	updated, _ = m.handleAllDeleted(msg)
	m = updated.(Model)
	if m.store.Len() != 0 {
		t.Error("all conversations should be gone after the sweep")
	}
	if m.queue.Len() != 0 {
		t.Error("the sweep should absorb staged entries")
	}
}

func TestDeleteAllDropsPlaceholdersLocally(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	conv := model.NewConversation("Draft")
	m.store.Upsert(*conv)
	m.activeConvID = conv.ID

	updated, cmd := m.deleteAll()
	m = updated.(Model)

	if cmd != nil {
		t.Error("a placeholder-only sweep never reaches the backend")
	}
	if m.store.Len() != 0 {
		t.Error("placeholder should be forgotten outright")
	}
	if m.activeConvID != "" {
		t.Error("deleting the open placeholder should clear the view")
	}
}

func TestAllDeletedPartialKeepsRemainder(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 3)

	msg := AllDeletedMsg{Deleted: []string{"conv-a"}, Err: errors.New("backend down")}
	updated, _ := m.handleAllDeleted(msg)
	m = updated.(Model)

	if _, ok := m.store.Get("conv-a"); ok {
		t.Error("a committed id should leave the store")
	}
	if m.store.Len() != 2 {
		t.Errorf("store has %d conversations, want the 2 the sweep never reached", m.store.Len())
	}
}

func TestConversationsLoadedExcludesStaged(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m = seedConversations(m, 1)
	m.activeConvID = "conv-a"

	updated, _ := m.stageDelete()
	m = updated.(Model)

	// The backend still lists the conversation until the commit lands.
	fetched := []model.Conversation{
		{ID: "conv-a", Title: "Topic A"},
		{ID: "conv-z", Title: "Fresh"},
	}
	updated, _ = m.handleConversationsLoaded(ConversationsLoadedMsg{Conversations: fetched})
	m = updated.(Model)

	if _, ok := m.store.Get("conv-a"); ok {
		t.Error("a listing refresh must not resurrect a staged conversation")
	}
	if _, ok := m.store.Get("conv-z"); !ok {
		t.Error("unstaged fetched conversations should land in the store")
	}
}
