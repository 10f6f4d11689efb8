// studia - study assistant chat for your terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studia-tui/internal/api"
	"github.com/jeranaias/studia-tui/internal/cli"
	"github.com/jeranaias/studia-tui/internal/config"
	"github.com/jeranaias/studia-tui/internal/prefs"
	"github.com/jeranaias/studia-tui/internal/session"
	"github.com/jeranaias/studia-tui/internal/softdel"
	"github.com/jeranaias/studia-tui/internal/store"
	"github.com/jeranaias/studia-tui/internal/turn"
	"github.com/jeranaias/studia-tui/internal/ui/chat"
	"github.com/jeranaias/studia-tui/internal/ui/styles"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// plainCommands run without the full-screen TUI.
var plainCommands = map[string]bool{
	"ask": true, "chat": true, "status": true, "history": true,
	"config": true, "version": true, "help": true, "-h": true, "--help": true,
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "studia:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.SetGlobal(cfg)

	logf := openLog(cfg)

	client := api.NewClient(&api.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           time.Duration(cfg.API.TimeoutSecs) * time.Second,
		UploadTimeout:     time.Duration(cfg.API.UploadTimeoutSecs) * time.Second,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Token:             func() string { return config.Global().API.AuthToken },
		Logf:              logf,
	})

	if len(args) > 0 && plainCommands[args[0]] {
		return cli.Run(context.Background(), cli.Env{
			Client:  client,
			Config:  cfg,
			Version: Version,
			Out:     os.Stdout,
		}, args[0], args[1:])
	}

	// Anything else on the command line becomes the first question of a
	// fresh conversation.
	seed := strings.TrimSpace(strings.Join(args, " "))

	return runTUI(cfg, client, logf, seed)
}

func runTUI(cfg *config.Config, client *api.Client, logf func(string, ...any), seed string) error {
	st := store.New()
	ctrl := turn.New(client, st)

	queue := softdel.NewWithDelay(
		func(conversationID string) error {
			return client.DeleteConversation(context.Background(), conversationID)
		},
		time.Duration(cfg.Chat.UndoDelaySecs)*time.Second,
	)

	sess := session.NewManager(session.Config{
		Token:   func() string { return config.Global().API.AuthToken },
		Timeout: time.Duration(cfg.Session.IdleTimeoutSecs) * time.Second,
	})

	pref := prefs.New(cfg.UI.Theme, func(theme string) error {
		return client.UpdatePreferences(context.Background(), api.Preferences{Theme: theme})
	}, logf)

	// Live-reload config edits. The token func reads the global on
	// every request, so a pasted token takes effect without a restart.
	watcher, err := config.NewWatcher(500*time.Millisecond, func(next *config.Config) {
		config.SetGlobal(next)
	})
	if err == nil {
		if watchErr := watcher.Watch(); watchErr != nil {
			logf("config watcher: %v", watchErr)
		}
		defer watcher.Close()
	}

	m := chat.New(chat.Deps{
		Config:     cfg,
		Client:     client,
		Store:      st,
		Controller: ctrl,
		Queue:      queue,
		Session:    sess,
		Prefs:      pref,
		Theme:      styles.NewTheme(),
		SeedPrompt: seed,
		Version:    Version,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()

	// The quit key flushes too; this covers every other exit path.
	queue.FlushAll()
	return err
}

// openLog returns a logf sink backed by the configured debug log, or a
// no-op when logging is disabled. The TUI owns the terminal; nothing
// may write to stderr while it runs.
func openLog(cfg *config.Config) func(string, ...any) {
	if cfg.Logging.File == "" {
		return func(string, ...any) {}
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return func(string, ...any) {}
	}
	logger := log.New(f, "", log.LstdFlags)
	return logger.Printf
}
