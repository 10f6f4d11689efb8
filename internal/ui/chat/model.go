// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive chat view for the TUI.
package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studia-tui/internal/api"
	"github.com/jeranaias/studia-tui/internal/config"
	"github.com/jeranaias/studia-tui/internal/model"
	"github.com/jeranaias/studia-tui/internal/prefs"
	"github.com/jeranaias/studia-tui/internal/session"
	"github.com/jeranaias/studia-tui/internal/softdel"
	"github.com/jeranaias/studia-tui/internal/store"
	"github.com/jeranaias/studia-tui/internal/turn"
	"github.com/jeranaias/studia-tui/internal/ui/components"
	"github.com/jeranaias/studia-tui/internal/ui/styles"
)

// =============================================================================
// MODEL STATE
// =============================================================================

// Focus identifies which pane receives keystrokes.
type Focus int

const (
	FocusInput Focus = iota
	FocusSidebar
)

// =============================================================================
// MODEL
// =============================================================================

// Deps bundles everything the chat view needs. All fields except
// SeedPrompt and Version are required.
type Deps struct {
	Config     *config.Config
	Client     *api.Client
	Store      *store.Store
	Controller *turn.Controller
	Queue      *softdel.Queue
	Session    *session.Manager
	Prefs      *prefs.Prefs
	Theme      *styles.Theme

	// SeedPrompt, when non-empty, is sent as the first message of a
	// fresh conversation on startup.
	SeedPrompt string
	Version    string
}

// Model is the root Bubble Tea model for the chat view.
type Model struct {
	cfg     *config.Config
	client  *api.Client
	store   *store.Store
	ctrl    *turn.Controller
	queue   *softdel.Queue
	session *session.Manager
	prefs   *prefs.Prefs
	theme   *styles.Theme

	// Layout
	width  int
	height int
	ready  bool

	// Components
	header         *components.Header
	sidebar        *components.Sidebar
	statusBar      *components.StatusBar
	input          *components.InputArea
	viewport       *components.ChatViewport
	spinner        components.Spinner
	toasts         *components.ToastManager
	welcome        components.Welcome
	timeoutOverlay components.SessionTimeoutOverlay

	keyMap KeyMap

	// View state
	focus        Focus
	activeConvID string
	seedConvID   string
	seedPrompt   string
	showWelcome  bool
	showHelp     bool
	signedIn     bool
	version      string

	// Rename mode repurposes the input line; renamingID remembers the
	// target until submit or cancel.
	renamingID string

	// Attachment staged for the next submit.
	attachName    string
	attachContent []byte

	quitting bool
}

// New creates the chat model. When a seed prompt is given the
// placeholder conversation is created here, before Init, so duplicate
// initializations share one conversation ID for the auto-send claim.
func New(deps Deps) Model {
	theme := deps.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}

	m := Model{
		cfg:     deps.Config,
		client:  deps.Client,
		store:   deps.Store,
		ctrl:    deps.Controller,
		queue:   deps.Queue,
		session: deps.Session,
		prefs:   deps.Prefs,
		theme:   theme,

		header:         components.NewHeader(theme),
		sidebar:        components.NewSidebar(theme),
		statusBar:      components.NewStatusBar(theme),
		input:          components.NewInputArea(theme),
		viewport:       components.NewChatViewport(theme),
		spinner:        components.NewThinkingSpinner(),
		toasts:         components.NewToastManager(),
		welcome:        components.NewWelcome(theme),
		timeoutOverlay: components.NewSessionTimeoutOverlay(),

		keyMap: DefaultKeyMap(),

		focus:       FocusInput,
		seedPrompt:  deps.SeedPrompt,
		showWelcome: deps.SeedPrompt == "",
		version:     deps.Version,
	}

	if deps.Config != nil {
		m.viewport.SetMarkdown(deps.Config.UI.MarkdownEnabled)
		m.viewport.SetShowTimestamps(deps.Config.UI.ShowTimestamps)
	}

	m.welcome.SetVersion(deps.Version)
	if deps.Client != nil {
		m.welcome.SetServerURL(deps.Client.BaseURL())
	}
	m.signedIn = deps.Session != nil && deps.Session.Token() != ""
	m.welcome.SetSignedIn(m.signedIn)
	m.statusBar.SetSignedIn(m.signedIn)

	if m.seedPrompt != "" {
		conv := model.NewConversation(model.DeriveTitle(m.seedPrompt))
		m.store.Upsert(*conv)
		m.seedConvID = conv.ID
		m.activeConvID = conv.ID
	}

	return m
}

// ActiveConversationID returns the conversation the view is showing.
func (m Model) ActiveConversationID() string {
	return m.activeConvID
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// Init wires the startup commands: the one-shot conversation load, the
// delete-event listener, health polling, profile sync, and the session
// tick. The listing load is claimed against the session so a remounted
// view does not clobber optimistic local state.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.input.Focus(),
		WaitForDeleteEventCmd(m.queue),
		HealthCheckCmd(m.client),
		HealthTickCmd(),
		session.TickCmd(),
		components.ToastTickCmd(),
	}

	if m.store.ClaimBulkLoad(m.session.SessionID()) {
		cmds = append(cmds, LoadConversationsCmd(m.client, m.pageSize()))
	}
	if m.signedIn {
		cmds = append(cmds, SyncProfileCmd(m.client))
	}
	if m.seedPrompt != "" && m.ctrl.ClaimAutoSend(m.seedConvID) {
		if cmd := m.beginTurn(m.seedConvID, turn.Input{Text: m.seedPrompt}); cmd != nil {
			cmds = append(cmds, cmd, m.spinner.Start())
		}
	}

	return tea.Batch(cmds...)
}

// pageSize returns the configured listing page size.
func (m Model) pageSize() int {
	if m.cfg != nil && m.cfg.Chat.PageSize > 0 {
		return m.cfg.Chat.PageSize
	}
	return 50
}

// visibleConversations returns the sidebar listing. Staged deletions
// live in the queue, not here, so the slice is exactly what the user
// may still act on.
func (m Model) visibleConversations() []model.Conversation {
	return m.store.List()
}
