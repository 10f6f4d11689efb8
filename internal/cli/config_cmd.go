// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration inspection and editing.
//
// Subcommands:
//   list               Show all keys and current values
//   get <key>          Print one value
//   set <key> <value>  Set a value and save the config file
package cli

import (
	"fmt"

	"github.com/jeranaias/studia-tui/internal/config"
)

// ConfigCmd dispatches the config subcommands.
func ConfigCmd(env Env, args []string) error {
	cfg := env.Config
	if cfg == nil {
		cfg = config.Default()
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		for _, key := range config.GetAllKeys() {
			value, err := cfg.Get(key)
			if err != nil {
				continue
			}
			fmt.Fprintf(env.Out, "%-28s %v\n", key, value)
		}
		return nil

	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: studia config get <key>")
		}
		value, err := cfg.Get(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "%v\n", value)
		return nil

	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: studia config set <key> <value>")
		}
		if err := cfg.Set(args[1], args[2]); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(env.Out, "%s = %s\n", args[1], args[2])
		return nil

	default:
		return fmt.Errorf("unknown config subcommand %q", sub)
	}
}
