// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command dispatch for the studia plain-terminal commands.
//
// The TUI is the primary surface; these commands cover scripting and
// terminals where a full-screen program is unwelcome.
//
// Commands:
//   ask [question]     Ask a single question and print the answer
//   chat               Line-based chat without the full-screen TUI
//   status             Backend health, service info, and usage stats
//   history            Study activity log and aggregate stats
//   config             Get and set configuration values
//   version            Print the client version
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/studia-tui/internal/api"
	"github.com/jeranaias/studia-tui/internal/config"
)

// Env carries what every command needs: the client, the loaded
// configuration, and the output stream.
type Env struct {
	Client  *api.Client
	Config  *config.Config
	Version string
	Out     io.Writer
}

// Run dispatches a command by name. Unknown names print usage and
// return an error so main can exit nonzero.
func Run(ctx context.Context, env Env, command string, args []string) error {
	if env.Out == nil {
		env.Out = os.Stdout
	}

	switch command {
	case "ask":
		return Ask(ctx, env, strings.Join(args, " "))
	case "chat":
		return Chat(ctx, env)
	case "status":
		return Status(ctx, env)
	case "history":
		return History(ctx, env, args)
	case "config":
		return ConfigCmd(env, args)
	case "version":
		fmt.Fprintf(env.Out, "studia %s\n", env.Version)
		return nil
	case "help", "-h", "--help":
		Usage(env.Out)
		return nil
	default:
		Usage(env.Out)
		return fmt.Errorf("unknown command %q", command)
	}
}

// Usage prints the command summary.
func Usage(w io.Writer) {
	fmt.Fprint(w, `studia - study assistant for your terminal

Usage:
  studia                 Launch the chat TUI
  studia ask <question>  Ask a single question and print the answer
  studia chat            Line-based chat without the full-screen TUI
  studia status          Backend health, service info, and usage stats
  studia history [sub]   Study activity log (sub: stats, clear)
  studia config [sub]    Configuration (sub: list, get <key>, set <key> <value>)
  studia version         Print the client version

Environment:
  STUDIA_API_URL     Backend base URL
  STUDIA_AUTH_TOKEN  Bearer token for authenticated requests
`)
}
