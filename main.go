// arogya - terminal client for the ArogyaAI health assistant.
//
// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arogyaai/arogya-tui/internal/cli"
	"github.com/arogyaai/arogya-tui/internal/config"
	"github.com/arogyaai/arogya-tui/internal/gateway"
	"github.com/arogyaai/arogya-tui/internal/history"
	"github.com/arogyaai/arogya-tui/internal/session"
	"github.com/arogyaai/arogya-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.ParseArgs(os.Args[1:])

	if code, handled := cli.Run(cmd, args); handled {
		os.Exit(code)
	}
	runTUI(args)
}

// runTUI starts the full-screen chat interface.
func runTUI(args *cli.Args) {
	cfg := config.Global()
	if args.Backend != "" {
		cfg.Backend.BaseURL = args.Backend
	}

	client := gateway.NewClientWithConfig(&gateway.ClientConfig{
		BaseURL:             cfg.Backend.BaseURL,
		FirstAttemptTimeout: cfg.Backend.FirstAttemptTimeout(),
		RetryAttemptTimeout: cfg.Backend.RetryAttemptTimeout(),
		RetryDelay:          cfg.Backend.RetryDelay(),
		MaxAttempts:         cfg.Backend.MaxAttempts,
		ProbeTimeout:        cfg.Backend.ProbeTimeout(),
		UserID:              cfg.Backend.UserID,
	})

	ctrl := session.NewController(client)

	// Record submitted queries for "arogya history"
	if cfg.History.Enabled {
		if path, err := cfg.HistoryPath(); err == nil {
			if store, err := history.Open(path, cfg.History.MaxEntries); err == nil {
				defer store.Close()
				ctrl.SetSubmitHook(func(query string) {
					store.Record(query)
				})
			}
		}
	}

	// Hot-reload config edits while the TUI runs
	if watcher, err := config.NewWatcher(nil); err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	model := chat.New(ctrl, client, cfg, Version)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ctrl.Wait()
}
