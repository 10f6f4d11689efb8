// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive chat view for the TUI.
//
// This file is the update loop. All store mutation happens here, on
// the Bubble Tea goroutine; commands only do network work and report
// back through messages.
package chat

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studia-tui/internal/api"
	"github.com/jeranaias/studia-tui/internal/model"
	"github.com/jeranaias/studia-tui/internal/session"
	"github.com/jeranaias/studia-tui/internal/softdel"
	"github.com/jeranaias/studia-tui/internal/turn"
	"github.com/jeranaias/studia-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages to the appropriate handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case TurnSettledMsg:
		return m.handleTurnSettled(msg)

	case ConversationsLoadedMsg:
		return m.handleConversationsLoaded(msg)

	case ConversationOpenedMsg:
		return m.handleConversationOpened(msg)

	case ConversationRenamedMsg:
		if msg.Err != nil {
			m.toasts.AddError("Rename failed: " + errorToastText(msg.Err))
		}
		return m, nil

	case MessagesClearedMsg:
		return m.handleMessagesCleared(msg)

	case DeleteEventMsg:
		return m.handleDeleteEvent(msg)

	case AllDeletedMsg:
		return m.handleAllDeleted(msg)

	case HealthMsg:
		return m.handleHealth(msg)

	case HealthTickMsg:
		return m, tea.Batch(HealthCheckCmd(m.client), HealthTickCmd())

	case ProfileMsg:
		return m.handleProfile(msg)

	case session.TickMsg:
		return m.handleSessionTick()

	case session.TimeoutWarningMsg:
		m.timeoutOverlay.SetSize(m.width, m.height)
		m.timeoutOverlay.Show(msg.Remaining)
		return m, nil

	case session.TimeoutMsg:
		m.timeoutOverlay.SetSize(m.width, m.height)
		m.timeoutOverlay.Show(0)
		return m, nil

	case components.SessionExtendedMsg:
		m.session.RecordActivity()
		return m, nil

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		return m, components.ToastTickCmd()
	}

	// Spinner frames and other component messages.
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.theme.SetSize(msg.Width, msg.Height)
	m.welcome.SetSize(msg.Width, msg.Height)
	m.timeoutOverlay.SetSize(msg.Width, msg.Height)

	sidebarWidth := m.sidebarWidth()
	contentWidth := msg.Width - sidebarWidth

	m.header.SetWidth(contentWidth)
	m.statusBar.SetWidth(msg.Width)
	m.input.SetWidth(contentWidth)
	m.sidebar.SetSize(sidebarWidth, msg.Height-chromeHeight)
	m.viewport.SetSize(contentWidth, msg.Height-chromeHeight)
	return m
}

// sidebarWidth returns the sidebar's allocation, zero when the
// terminal is too narrow to split.
func (m Model) sidebarWidth() int {
	if m.width < narrowBreakpoint {
		return 0
	}
	w := m.width / 4
	if w < sidebarMinWidth {
		w = sidebarMinWidth
	}
	if w > sidebarMaxWidth {
		w = sidebarMaxWidth
	}
	return w
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The timeout overlay swallows everything while visible.
	if m.timeoutOverlay.IsVisible() {
		var cmd tea.Cmd
		m.timeoutOverlay, cmd = m.timeoutOverlay.Update(msg)
		if m.timeoutOverlay.IsExpired() && key.Matches(msg, m.keyMap.Quit) {
			return m.quit()
		}
		return m, cmd
	}

	m.session.RecordActivity()

	if key.Matches(msg, m.keyMap.Quit) {
		return m.quit()
	}

	// Any other key dismisses the welcome screen, once.
	if m.showWelcome {
		if m.session.Once("welcome:dismiss") {
			m.showWelcome = false
		}
		return m, nil
	}

	if m.renamingID != "" {
		return m.handleRenameKey(msg)
	}

	// Any key dismisses the help overlay.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.NewConv):
		return m.startNewConversation()

	case key.Matches(msg, m.keyMap.Delete):
		return m.stageDelete()

	case key.Matches(msg, m.keyMap.Undo):
		return m.undoDelete()

	case key.Matches(msg, m.keyMap.Rename):
		return m.startRename()

	case key.Matches(msg, m.keyMap.Attach):
		return m.stageAttachment()

	case key.Matches(msg, m.keyMap.Clear):
		return m.clearMessages()

	case key.Matches(msg, m.keyMap.ThemeToggle):
		return m.toggleTheme()

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keyMap.FocusToggle):
		return m.toggleFocus()

	case key.Matches(msg, m.keyMap.PageUp),
		key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Home),
		key.Matches(msg, m.keyMap.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.sidebar.MoveUp()
		return m, nil
	case key.Matches(msg, m.keyMap.Down):
		m.sidebar.MoveDown(m.store.Len())
		return m, nil
	case key.Matches(msg, m.keyMap.Submit):
		conv, ok := components.EntryAt(m.visibleConversations(), m.sidebar.Selected)
		if !ok {
			return m, nil
		}
		return m.openConversation(conv)
	case msg.String() == "u":
		return m.undoDelete()
	case msg.String() == "r":
		return m.startRename()
	case msg.String() == "D":
		return m.deleteAll()
	case key.Matches(msg, m.keyMap.Cancel):
		return m.toggleFocus()
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	// The undo toast advertises a bare "u"; honor it whenever it
	// cannot collide with typing.
	case msg.String() == "u" && m.input.Value() == "" && m.queue.Len() > 0:
		return m.undoDelete()
	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case key.Matches(msg, m.keyMap.Cancel):
		if m.attachName != "" {
			m.attachName = ""
			m.attachContent = nil
			m.toasts.AddStatus("Attachment removed")
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		title := strings.TrimSpace(m.input.Value())
		id := m.renamingID
		m.exitRenameMode()
		if title == "" {
			return m, nil
		}
		// Optimistic: the sidebar updates now, the backend catches up.
		m.store.Rename(id, title)
		if m.activeConvID == id {
			m.header.SetConversation(title)
			m.statusBar.SetConversation(title)
		}
		if strings.HasPrefix(id, "tmp_") {
			return m, nil
		}
		return m, RenameConversationCmd(m.client, id, title)

	case key.Matches(msg, m.keyMap.Cancel):
		m.exitRenameMode()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// CONVERSATION ACTIONS
// =============================================================================

func (m Model) startNewConversation() (tea.Model, tea.Cmd) {
	m.activeConvID = ""
	m.header.SetConversation("")
	m.statusBar.SetConversation("")
	m.viewport.SetMessages(nil)
	m.input.Reset()
	m.focus = FocusInput
	return m, m.input.Focus()
}

func (m Model) openConversation(conv model.Conversation) (tea.Model, tea.Cmd) {
	m.activeConvID = conv.ID
	m.header.SetConversation(conv.DisplayTitle())
	m.statusBar.SetConversation(conv.DisplayTitle())
	m.focus = FocusInput

	cmds := []tea.Cmd{m.input.Focus()}
	if m.store.HasMessages(conv.ID) {
		m.viewport.SetMessages(m.store.Messages(conv.ID))
		m.viewport.ScrollToBottom()
	} else if !conv.IsPlaceholder() {
		m.viewport.SetMessages(nil)
		cmds = append(cmds, OpenConversationCmd(m.client, conv.ID))
	}
	return m, tea.Batch(cmds...)
}

// submit sends the input line as a turn. The attached file, when
// present, wins over a typed YouTube link or plain text.
func (m Model) submit() (tea.Model, tea.Cmd) {
	in := turn.Input{Text: m.input.Value()}
	if m.attachName != "" {
		in.FileName = m.attachName
		in.Content = bytes.NewReader(m.attachContent)
	}

	cmd := m.beginTurn(m.activeConvID, in)
	if cmd == nil {
		return m, nil
	}

	m.input.Reset()
	m.attachName = ""
	m.attachContent = nil
	m.statusBar.SetStatus(components.StatusSending)
	return m, tea.Batch(cmd, m.spinner.Start())
}

// beginTurn starts a turn synchronously and returns the command that
// settles it, or nil when the submission was refused.
func (m *Model) beginTurn(convID string, in turn.Input) tea.Cmd {
	t, err := m.ctrl.Begin(convID, in)
	if err != nil {
		if errors.Is(err, turn.ErrTurnInFlight) {
			m.toasts.AddWarning("Still thinking, hang on")
		}
		return nil
	}

	m.activeConvID = t.ConversationID
	if conv, ok := m.store.Get(t.ConversationID); ok {
		m.header.SetConversation(conv.DisplayTitle())
		m.statusBar.SetConversation(conv.DisplayTitle())
	}
	m.viewport.SetMessages(m.store.Messages(t.ConversationID))
	m.viewport.ScrollToBottom()
	m.showWelcome = false
	return ExecuteTurnCmd(m.ctrl, t, in)
}

func (m Model) startRename() (tea.Model, tea.Cmd) {
	conv, ok := m.targetConversation()
	if !ok {
		return m, nil
	}
	m.renamingID = conv.ID
	m.input.SetPlaceholder("New title for \"" + conv.DisplayTitle() + "\"")
	m.input.SetValue(conv.Title)
	m.focus = FocusInput
	return m, m.input.Focus()
}

func (m *Model) exitRenameMode() {
	m.renamingID = ""
	m.input.Reset()
	m.input.SetPlaceholder(components.DefaultInputPlaceholder)
}

// stageAttachment reads the file named on the input line and holds it
// for the next submit.
func (m Model) stageAttachment() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.input.Value())
	if path == "" {
		m.toasts.AddStatus("Type a file path, then attach it")
		return m, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		m.toasts.AddError("Could not read " + path)
		return m, nil
	}

	m.attachName = filepath.Base(path)
	m.attachContent = content
	m.input.Reset()
	m.toasts.AddSuccess("Attached " + m.attachName + ", press enter to upload")
	return m, nil
}

// clearMessages empties a conversation's transcript but keeps the
// conversation itself. The store clears now; the backend catches up.
func (m Model) clearMessages() (tea.Model, tea.Cmd) {
	conv, ok := m.targetConversation()
	if !ok {
		return m, nil
	}
	m.store.ClearMessages(conv.ID)
	if m.activeConvID == conv.ID {
		m.viewport.SetMessages(nil)
	}
	m.toasts.AddStatus("Cleared \"" + conv.DisplayTitle() + "\"")
	if conv.IsPlaceholder() {
		return m, nil
	}
	return m, ClearMessagesCmd(m.client, conv.ID)
}

// toggleTheme flips the palette and records it as an explicit choice,
// which also pushes it to the signed-in profile.
func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	next := "light"
	if m.prefs.Theme() == "light" {
		next = "dark"
	}
	m.prefs.Set(next)
	m.toasts.AddStatus("Theme set to " + next)
	return m, nil
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == FocusInput {
		m.focus = FocusSidebar
		m.input.Blur()
		return m, nil
	}
	m.focus = FocusInput
	return m, m.input.Focus()
}

// targetConversation is the conversation actions apply to: the sidebar
// selection when the sidebar has focus, otherwise the active one.
func (m Model) targetConversation() (model.Conversation, bool) {
	if m.focus == FocusSidebar {
		return components.EntryAt(m.visibleConversations(), m.sidebar.Selected)
	}
	if m.activeConvID == "" {
		return model.Conversation{}, false
	}
	return m.store.Get(m.activeConvID)
}

// =============================================================================
// SOFT DELETE
// =============================================================================

// stageDelete pulls a conversation out of the visible list behind the
// undo window. A staged conversation exists only in the queue: nothing
// can open, rename, or send into it while the timer runs. Placeholder
// conversations never reached the backend; they are dropped outright.
func (m Model) stageDelete() (tea.Model, tea.Cmd) {
	conv, ok := m.targetConversation()
	if !ok {
		return m, nil
	}

	if conv.IsPlaceholder() {
		m.store.Forget(conv.ID)
		if m.activeConvID == conv.ID {
			return m.startNewConversation()
		}
		return m, nil
	}

	if m.queue.IsStaged(conv.ID) {
		return m, nil
	}

	m.queue.Stage(conv, m.store.Messages(conv.ID))
	m.store.Remove(conv.ID)
	m.toasts.AddUndo(conv.ID, conv.DisplayTitle(), m.queue.Delay())
	m.sidebar.ClampTo(m.store.Len())
	m.statusBar.SetPendingDeletes(m.queue.Len())

	// Leave the doomed transcript right away; undo brings the entry
	// back to the sidebar, not back on screen.
	if m.activeConvID == conv.ID {
		updated, cmd := m.startNewConversation()
		m = updated.(Model)
		return m, cmd
	}
	return m, nil
}

// undoDelete cancels the most recent staged deletion and puts the
// conversation back at the front of the list, transcript included.
func (m Model) undoDelete() (tea.Model, tea.Cmd) {
	entry, ok := m.queue.Undo()
	if !ok {
		return m, nil
	}
	m.store.InsertFront(entry.Conversation)
	m.store.SetMessages(entry.Conversation.ID, entry.Messages)
	m.toasts.RemoveUndoToast(entry.Conversation.ID)
	m.statusBar.SetPendingDeletes(m.queue.Len())
	m.toasts.AddStatus("Restored \"" + entry.Conversation.DisplayTitle() + "\"")
	return m, nil
}

// deleteAll sweeps every known conversation, staged entries included.
// Placeholders never reached the backend and drop locally; the rest go
// to the backend one at a time. The sweep halts at the first failure,
// so whatever it did not reach stays visible.
func (m Model) deleteAll() (tea.Model, tea.Cmd) {
	ids := make([]string, 0, m.store.Len()+m.queue.Len())
	for _, e := range m.queue.Pending() {
		ids = append(ids, e.Conversation.ID)
		m.toasts.RemoveUndoToast(e.Conversation.ID)
	}
	for _, conv := range m.store.List() {
		if conv.IsPlaceholder() {
			m.store.Forget(conv.ID)
			if m.activeConvID == conv.ID {
				m.activeConvID = ""
				m.header.SetConversation("")
				m.statusBar.SetConversation("")
				m.viewport.SetMessages(nil)
			}
			continue
		}
		ids = append(ids, conv.ID)
	}
	m.sidebar.ClampTo(m.store.Len())

	if len(ids) == 0 {
		return m, nil
	}
	m.statusBar.SetStatus(components.StatusSending)
	return m, DeleteAllCmd(m.queue, ids)
}

func (m Model) handleAllDeleted(msg AllDeletedMsg) (tea.Model, tea.Cmd) {
	for _, id := range msg.Deleted {
		m.store.Forget(id)
		if m.activeConvID == id {
			m.activeConvID = ""
			m.header.SetConversation("")
			m.statusBar.SetConversation("")
			m.viewport.SetMessages(nil)
		}
	}
	m.sidebar.ClampTo(m.store.Len())
	m.statusBar.SetPendingDeletes(m.queue.Len())
	m.statusBar.SetStatus(components.StatusReady)

	if msg.Err != nil {
		m.toasts.AddError("Delete all stopped early: " + errorToastText(msg.Err))
	} else {
		m.toasts.AddSuccess("All conversations deleted")
	}
	return m, nil
}

func (m Model) handleDeleteEvent(msg DeleteEventMsg) (tea.Model, tea.Cmd) {
	ev := msg.Event
	id := ev.Entry.Conversation.ID

	switch ev.Kind {
	case softdel.Committed:
		m.store.Forget(id)
		m.toasts.RemoveUndoToast(id)
		if m.activeConvID == id {
			m.activeConvID = ""
			m.header.SetConversation("")
			m.statusBar.SetConversation("")
			m.viewport.SetMessages(nil)
		}

	case softdel.CommitFailed:
		// The conversation left the store at staging time; roll it
		// back into view with its cached transcript.
		if _, ok := m.store.Get(id); !ok {
			m.store.InsertFront(ev.Entry.Conversation)
			m.store.SetMessages(id, ev.Entry.Messages)
		}
		m.toasts.RemoveUndoToast(id)
		m.toasts.AddError("Delete failed, \"" + ev.Entry.Conversation.DisplayTitle() + "\" was kept")
	}

	m.sidebar.ClampTo(m.store.Len())
	m.statusBar.SetPendingDeletes(m.queue.Len())
	return m, WaitForDeleteEventCmd(m.queue)
}

// =============================================================================
// ASYNC RESULTS
// =============================================================================

func (m Model) handleTurnSettled(msg TurnSettledMsg) (tea.Model, tea.Cmd) {
	activeID := m.ctrl.Finish(msg.Turn, msg.Outcome)

	// Follow a backend-assigned ID when the settled turn is the one on
	// screen; an unrelated conversation's settlement stays put.
	if m.activeConvID == msg.Turn.ConversationID {
		m.activeConvID = activeID
		if conv, ok := m.store.Get(activeID); ok {
			m.header.SetConversation(conv.DisplayTitle())
			m.statusBar.SetConversation(conv.DisplayTitle())
		}
		m.viewport.SetMessages(m.store.Messages(activeID))
		m.viewport.ScrollToBottom()
	}

	if !m.ctrl.Awaiting(m.activeConvID) {
		m.spinner.Stop()
		m.statusBar.SetStatus(components.StatusReady)
	}

	if msg.Outcome.Err != nil && api.IsUnauthorized(msg.Outcome.Err) {
		m.signedIn = false
		m.statusBar.SetSignedIn(false)
	}
	return m, nil
}

func (m Model) handleConversationsLoaded(msg ConversationsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.toasts.AddWarning("Could not load conversations")
		return m, nil
	}

	// Keep optimistic placeholders at the front; the backend does not
	// know about them yet. Staged deletions stay out: the backend
	// still lists them until the commit lands.
	merged := make([]model.Conversation, 0, len(msg.Conversations)+1)
	for _, conv := range m.store.List() {
		if conv.IsPlaceholder() {
			merged = append(merged, conv)
		}
	}
	for _, conv := range msg.Conversations {
		if !m.queue.IsStaged(conv.ID) {
			merged = append(merged, conv)
		}
	}
	m.store.ReplaceAll(merged)
	m.sidebar.ClampTo(m.store.Len())
	return m, nil
}

func (m Model) handleConversationOpened(msg ConversationOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if api.IsNotFound(msg.Err) {
			m.store.Forget(msg.ConversationID)
			m.sidebar.ClampTo(m.store.Len())
			m.toasts.AddWarning("That conversation no longer exists")
		} else {
			m.toasts.AddError("Could not open conversation: " + errorToastText(msg.Err))
		}
		return m, nil
	}

	m.store.SetMessages(msg.ConversationID, msg.Messages)
	if m.activeConvID == msg.ConversationID {
		m.viewport.SetMessages(msg.Messages)
		m.viewport.ScrollToBottom()
	}
	return m, nil
}

func (m Model) handleMessagesCleared(msg MessagesClearedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.toasts.AddError("Clear failed: " + errorToastText(msg.Err))
		return m, nil
	}
	m.store.ClearMessages(msg.ConversationID)
	if m.activeConvID == msg.ConversationID {
		m.viewport.SetMessages(nil)
	}
	return m, nil
}

func (m Model) handleHealth(msg HealthMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil || msg.Status == nil {
		m.header.SetConn(components.ConnOffline)
		m.statusBar.SetConn(components.ConnOffline)
		return m, nil
	}
	m.header.SetConn(components.ConnOnline)
	m.statusBar.SetConn(components.ConnOnline)
	return m, nil
}

func (m Model) handleProfile(msg ProfileMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil || msg.User == nil {
		if msg.Err != nil && api.IsUnauthorized(msg.Err) {
			m.signedIn = false
			m.statusBar.SetSignedIn(false)
			m.welcome.SetSignedIn(false)
			m.toasts.AddWarning("Session expired, set a fresh token to sign back in")
		}
		return m, nil
	}

	if m.prefs.ApplyRemote(msg.User.Preferences.Theme) {
		m.toasts.AddStatus("Theme synced from your profile")
	}
	return m, nil
}

func (m Model) handleSessionTick() (tea.Model, tea.Cmd) {
	m.statusBar.SetSessionTime(session.FormatDuration(m.session.Duration()))
	if m.timeoutOverlay.IsVisible() && !m.timeoutOverlay.IsExpired() {
		m.timeoutOverlay.UpdateTime(m.session.RemainingTime())
	}
	return m, tea.Batch(session.TickCmd(), m.session.HandleTick())
}

// =============================================================================
// SHUTDOWN
// =============================================================================

// quit flushes staged deletions before exiting so hidden conversations
// do not come back next session.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.queue.FlushAll()
	return m, tea.Quit
}

func errorToastText(err error) string {
	switch {
	case api.IsUnauthorized(err):
		return "session expired"
	case api.IsNetwork(err):
		return "server unreachable"
	default:
		return "request failed"
	}
}
