// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs holds user preferences synced with the backend.
//
// The theme starts from the local config default. The first remote
// fetch after sign-in wins over that default, but never over a choice
// the user made this session. Local changes write through to the
// backend; a failed write-through keeps the local value and is logged,
// not surfaced.
package prefs

import "sync"

// SaveFunc persists a preference change to the backend.
type SaveFunc func(theme string) error

// Prefs is the session preference cell.
type Prefs struct {
	mu      sync.Mutex
	theme   string
	userSet bool
	synced  bool
	save    SaveFunc
	logf    func(format string, args ...any)
}

// New creates a preference cell seeded with the local default.
func New(defaultTheme string, save SaveFunc, logf func(string, ...any)) *Prefs {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Prefs{theme: defaultTheme, save: save, logf: logf}
}

// Theme returns the current theme name.
func (p *Prefs) Theme() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme
}

// ApplyRemote installs the backend's stored theme. Only the first
// remote value applies, and never over an explicit local change.
// Returns true when the theme actually changed.
func (p *Prefs) ApplyRemote(theme string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.synced || p.userSet || theme == "" {
		return false
	}
	p.synced = true
	if theme == p.theme {
		return false
	}
	p.theme = theme
	return true
}

// Set records a user choice and writes it through to the backend.
// The local value sticks even when the write-through fails.
func (p *Prefs) Set(theme string) {
	p.mu.Lock()
	p.theme = theme
	p.userSet = true
	save := p.save
	p.mu.Unlock()

	if save == nil {
		return
	}
	if err := save(theme); err != nil {
		p.logf("prefs: write-through failed: %v", err)
	}
}
