// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides sign-in session state and one-time guards.
package session

import (
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager tracks one sign-in session: its identity, the auth token,
// idle time, and the set of one-time actions already performed this
// session. The one-time set is what keeps re-renders and duplicate
// view mounts from repeating side effects like bulk loads.
type Manager struct {
	mu sync.Mutex

	// Session tracking
	sessionID    string
	startTime    time.Time
	lastActivity time.Time

	// Auth token source, consulted per request. May return empty.
	token func() string

	// Idle timeout configuration (0 = never lock)
	timeout       time.Duration
	warningBefore time.Duration
	warningShown  bool

	// One-time action guards, keyed by caller-chosen strings
	done map[string]bool

	// Callbacks
	onTimeout func()
	onWarning func(remaining time.Duration)
}

// Config holds configuration for the session manager.
type Config struct {
	// Token returns the current auth token (may be nil or return "")
	Token func() string

	// Timeout locks the session after this much idle time (0 = never)
	Timeout time.Duration

	// WarningBefore is how long before timeout to show warning (default: 1 minute)
	WarningBefore time.Duration
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:       0,
		WarningBefore: time.Minute,
	}
}

// NewManager creates a new session manager.
func NewManager(cfg Config) *Manager {
	now := time.Now()
	warn := cfg.WarningBefore
	if warn <= 0 {
		warn = time.Minute
	}
	return &Manager{
		sessionID:     generateSessionID(),
		startTime:     now,
		lastActivity:  now,
		token:         cfg.Token,
		timeout:       cfg.Timeout,
		warningBefore: warn,
		done:          make(map[string]bool),
	}
}

// =============================================================================
// SESSION STATE
// =============================================================================

// SessionID returns the current session ID.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Token returns the current auth token, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token == nil {
		return ""
	}
	return token()
}

// StartTime returns when the session started.
func (m *Manager) StartTime() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startTime
}

// Duration returns how long the session has been active.
func (m *Manager) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.startTime)
}

// IdleTime returns how long since last activity.
func (m *Manager) IdleTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.lastActivity)
}

// RemainingTime returns time until the idle lock, or 0 when locking
// is disabled or already due.
func (m *Manager) RemainingTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timeout == 0 {
		return 0
	}
	remaining := m.timeout - time.Since(m.lastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Renew starts a fresh session: new ID, cleared one-time guards.
// Called on sign-in so per-session actions run again.
func (m *Manager) Renew() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.sessionID = generateSessionID()
	m.startTime = now
	m.lastActivity = now
	m.warningShown = false
	m.done = make(map[string]bool)
}

// =============================================================================
// ONE-TIME GUARDS
// =============================================================================

// Once reports whether the keyed action should run. The first call per
// key this session returns true and marks it done; duplicates return
// false. This is the durable guard that survives view remounts.
func (m *Manager) Once(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done[key] {
		return false
	}
	m.done[key] = true
	return true
}

// Done reports whether a keyed action already ran, without claiming it.
func (m *Manager) Done(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done[key]
}

// =============================================================================
// ACTIVITY TRACKING
// =============================================================================

// RecordActivity updates the last activity timestamp.
// This should be called on user input or other activity.
func (m *Manager) RecordActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActivity = time.Now()
	m.warningShown = false
}

// =============================================================================
// CALLBACKS
// =============================================================================

// SetTimeoutCallback sets the function called when the session idles out.
func (m *Manager) SetTimeoutCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTimeout = fn
}

// SetWarningCallback sets the function called when approaching the idle lock.
func (m *Manager) SetWarningCallback(fn func(remaining time.Duration)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onWarning = fn
}

// =============================================================================
// TIMEOUT CHECKING
// =============================================================================

// IsExpired returns true if the session has idled out.
func (m *Manager) IsExpired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeout > 0 && time.Since(m.lastActivity) >= m.timeout
}

// ShouldShowWarning returns true if the idle warning should be shown.
func (m *Manager) ShouldShowWarning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timeout == 0 || m.warningShown {
		return false
	}

	idle := time.Since(m.lastActivity)
	threshold := m.timeout - m.warningBefore

	return idle >= threshold && idle < m.timeout
}

// Check evaluates session state and triggers appropriate callbacks.
// Returns true if session is still valid, false if expired.
func (m *Manager) Check() bool {
	m.mu.Lock()
	expired := m.timeout > 0 && time.Since(m.lastActivity) >= m.timeout

	shouldWarn := false
	var remaining time.Duration
	if m.timeout > 0 && !m.warningShown && !expired {
		idle := time.Since(m.lastActivity)
		threshold := m.timeout - m.warningBefore
		if idle >= threshold {
			shouldWarn = true
			remaining = m.timeout - idle
			m.warningShown = true
		}
	}

	onTimeout := m.onTimeout
	onWarning := m.onWarning
	m.mu.Unlock()

	// Execute callbacks outside lock
	if shouldWarn && onWarning != nil {
		onWarning(remaining)
	}
	if expired && onTimeout != nil {
		onTimeout()
	}

	return !expired
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to check session state.
type TickMsg struct {
	Time time.Time
}

// TimeoutWarningMsg indicates the session is about to idle out.
type TimeoutWarningMsg struct {
	Remaining time.Duration
}

// TimeoutMsg indicates the session has idled out.
type TimeoutMsg struct{}

// TickCmd returns a command that ticks periodically.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick processes a tick and returns appropriate messages.
func (m *Manager) HandleTick() tea.Cmd {
	var cmds []tea.Cmd

	if m.ShouldShowWarning() {
		remaining := m.RemainingTime()
		cmds = append(cmds, func() tea.Msg {
			return TimeoutWarningMsg{Remaining: remaining}
		})
		m.mu.Lock()
		m.warningShown = true
		m.mu.Unlock()
	}

	if m.IsExpired() {
		cmds = append(cmds, func() tea.Msg {
			return TimeoutMsg{}
		})
	}

	// Continue ticking
	cmds = append(cmds, TickCmd())

	return tea.Batch(cmds...)
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SetTimeout updates the idle timeout duration.
func (m *Manager) SetTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = d
}

// SetWarningTime updates when to show the idle warning.
func (m *Manager) SetWarningTime(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warningBefore = d
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateSessionID creates a unique session ID.
func generateSessionID() string {
	return "sess_" + uuid.NewString()
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status represents the current session status.
type Status struct {
	SessionID     string
	StartTime     time.Time
	Duration      time.Duration
	IdleTime      time.Duration
	RemainingTime time.Duration
	SignedIn      bool
	IsExpired     bool
}

// GetStatus returns the current session status.
func (m *Manager) GetStatus() Status {
	m.mu.Lock()
	token := m.token
	now := time.Now()
	idle := now.Sub(m.lastActivity)
	remaining := time.Duration(0)
	if m.timeout > 0 {
		remaining = m.timeout - idle
		if remaining < 0 {
			remaining = 0
		}
	}
	status := Status{
		SessionID:     m.sessionID,
		StartTime:     m.startTime,
		Duration:      now.Sub(m.startTime),
		IdleTime:      idle,
		RemainingTime: remaining,
		IsExpired:     m.timeout > 0 && idle >= m.timeout,
	}
	m.mu.Unlock()

	status.SignedIn = token != nil && token() != ""
	return status
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		return strconv.Itoa(secs) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
