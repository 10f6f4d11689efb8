// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command.
//
// Sends one message without a conversation and prints the reply.
// Markdown is rendered through glamour when stdout is a terminal;
// piped output stays plain so it composes with other tools.
//
// Examples:
//   studia ask "What is glycolysis?"
//   studia ask "Summarize the Krebs cycle" > notes.md
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Ask sends a single question and prints the answer.
func Ask(ctx context.Context, env Env, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("nothing to ask")
	}

	res, err := env.Client.SendMessage(ctx, question, nil)
	if err != nil {
		return askError(err)
	}

	fmt.Fprintln(env.Out, renderReply(res.Reply))
	return nil
}

// renderReply renders markdown for terminals and passes plain text
// through everywhere else.
func renderReply(reply string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return reply
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || width > 120 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return reply
	}
	out, err := r.Render(reply)
	if err != nil {
		return reply
	}
	return strings.Trim(out, "\n")
}
