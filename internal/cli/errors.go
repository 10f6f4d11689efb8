// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Human-readable failure messages for the plain commands.
package cli

import (
	"fmt"

	"github.com/jeranaias/studia-tui/internal/api"
)

// askError turns an adapter error into something worth printing.
func askError(err error) error {
	switch {
	case api.IsUnauthorized(err):
		return fmt.Errorf("session expired: sign in again (set STUDIA_AUTH_TOKEN)")
	case api.IsNetwork(err):
		return fmt.Errorf("could not reach the server: %w", err)
	case api.IsValidation(err):
		return fmt.Errorf("the server rejected that request: %w", err)
	case api.IsServer(err):
		return fmt.Errorf("the server hit an internal error, try again shortly")
	default:
		return err
	}
}
