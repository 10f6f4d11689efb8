// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the plain-terminal commands.

The TUI is the primary surface; this package covers the cases where a
full-screen program is the wrong tool: piping an answer into a file,
checking backend health from a script, or chatting over a connection
where alt-screen redraws are painful.

Commands print to the Env.Out writer and return errors instead of
exiting, so main owns the process exit code and tests can capture
output.
*/
package cli
