// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration commands for the arogya CLI.
//
// Command: config
// Subcommands:
//   show (default)   Print the effective configuration
//   path             Print the config file path
//   set KEY VALUE    Set a configuration value and save
//
// Settable keys:
//   backend.url, backend.user_id, ui.theme, ui.markdown,
//   history.enabled, history.max_entries
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/arogyaai/arogya-tui/internal/config"
	"github.com/arogyaai/arogya-tui/internal/ui/styles"
)

// runConfig dispatches the config subcommands.
func runConfig(args *Args) int {
	switch args.Subcommand {
	case "", "show":
		return showConfig(args)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			return 1
		}
		fmt.Println(path)
		return 0
	case "set":
		return setConfig(args)
	default:
		fmt.Fprintln(os.Stderr, styles.RenderError("Unknown config subcommand: "+args.Subcommand))
		return 1
	}
}

func showConfig(args *Args) int {
	cfg := loadConfig(args)
	fmt.Println(styles.RenderInfo("Effective configuration:"))
	fmt.Printf("  backend.url           %s\n", cfg.Backend.BaseURL)
	fmt.Printf("  backend.user_id       %s\n", cfg.Backend.UserID)
	fmt.Printf("  backend.timeouts      first %ds, retry %ds, delay %dms, attempts %d\n",
		cfg.Backend.FirstAttemptTimeoutSecs,
		cfg.Backend.RetryAttemptTimeoutSecs,
		cfg.Backend.RetryDelayMillis,
		cfg.Backend.MaxAttempts)
	fmt.Printf("  ui.theme              %s\n", cfg.UI.Theme)
	fmt.Printf("  ui.markdown           %t\n", cfg.UI.Markdown)
	fmt.Printf("  history.enabled       %t\n", cfg.History.Enabled)
	fmt.Printf("  history.max_entries   %d\n", cfg.History.MaxEntries)
	return 0
}

func setConfig(args *Args) int {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		fmt.Fprintln(os.Stderr, styles.RenderError("Usage: arogya config set KEY VALUE"))
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	if err := applyConfigKey(cfg, args.ConfigKey, args.ConfigVal); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("Invalid configuration: "+err.Error()))
		return 1
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("Failed to save: "+err.Error()))
		return 1
	}
	fmt.Println(styles.RenderSuccess(args.ConfigKey + " = " + args.ConfigVal))
	return 0
}

// applyConfigKey sets one dotted configuration key.
func applyConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "backend.url":
		cfg.Backend.BaseURL = value
	case "backend.user_id":
		cfg.Backend.UserID = value
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.markdown":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.markdown must be true or false")
		}
		cfg.UI.Markdown = b
	case "history.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("history.enabled must be true or false")
		}
		cfg.History.Enabled = b
	case "history.max_entries":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("history.max_entries must be a non-negative integer")
		}
		cfg.History.MaxEntries = n
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
