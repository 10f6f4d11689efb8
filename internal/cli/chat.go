// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-based chat fallback.
//
// A readline loop for terminals where the full-screen TUI is unwelcome
// (ssh sessions, scripts, screen readers). The conversation ID carries
// across turns so the backend keeps context.
//
// Dot commands:
//   .new    Start a fresh conversation
//   .id     Print the current conversation id
//   .quit   Exit (also ctrl+d)
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/studia-tui/internal/config"
)

// Chat runs the readline chat loop until EOF or .quit.
func Chat(ctx context.Context, env Env) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := chatHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}
	defer saveChatHistory(line, historyPath)

	fmt.Fprintln(env.Out, "studia chat, .quit to exit")

	var conversationID *string
	for {
		input, err := line.Prompt("> ")
		if err != nil {
			// liner returns ErrPromptAborted on ctrl+c and io.EOF on ctrl+d.
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Fprintln(env.Out)
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case ".quit", ".exit":
			return nil
		case ".new":
			conversationID = nil
			fmt.Fprintln(env.Out, "started a fresh conversation")
			continue
		case ".id":
			if conversationID == nil {
				fmt.Fprintln(env.Out, "no conversation yet")
			} else {
				fmt.Fprintln(env.Out, *conversationID)
			}
			continue
		}

		res, err := env.Client.SendMessage(ctx, input, conversationID)
		if err != nil {
			fmt.Fprintln(env.Out, askError(err).Error())
			continue
		}
		if res.ConversationID != "" {
			id := res.ConversationID
			conversationID = &id
		}
		fmt.Fprintln(env.Out, renderReply(res.Reply))
	}
}

// chatHistoryPath returns the readline history location, "" when the
// config directory is unavailable.
func chatHistoryPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chat_history")
}

func saveChatHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
