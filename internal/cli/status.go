// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend status command.
//
// Prints health, service info, and, when signed in, usage stats.
// Health failure is the headline result here, not an error exit: the
// command exists to answer "is the backend up".
package cli

import (
	"context"
	"fmt"
)

// Status reports backend liveness, service info, and usage stats.
func Status(ctx context.Context, env Env) error {
	fmt.Fprintf(env.Out, "server    %s\n", env.Client.BaseURL())

	health, err := env.Client.Health(ctx)
	if err != nil {
		fmt.Fprintln(env.Out, "status    offline")
		return nil
	}
	fmt.Fprintf(env.Out, "status    %s\n", health.Status)

	if info, err := env.Client.Info(ctx); err == nil {
		fmt.Fprintf(env.Out, "service   %s %s (%s)\n", info.Name, info.Version, info.Environment)
	}

	stats := env.Client.Stats(ctx)
	if stats.Conversations > 0 || stats.Messages > 0 || stats.Documents > 0 || stats.Videos > 0 {
		fmt.Fprintf(env.Out, "usage     %d conversations, %d messages, %d documents, %d videos\n",
			stats.Conversations, stats.Messages, stats.Documents, stats.Videos)
	}
	return nil
}
