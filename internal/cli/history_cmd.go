// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Query-history commands for the arogya CLI.
//
// Command: history
// Subcommands:
//   show [n]       Show the n most recent queries (default 20)
//   search TERM    Search stored queries
//   clear          Delete all stored queries
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arogyaai/arogya-tui/internal/history"
	"github.com/arogyaai/arogya-tui/internal/ui/styles"
)

// runHistory dispatches the history subcommands.
func runHistory(args *Args) int {
	cfg := loadConfig(args)
	if !cfg.History.Enabled {
		fmt.Println(styles.RenderInfo("Query history is disabled in the configuration."))
		return 0
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("Failed to resolve history path: "+err.Error()))
		return 1
	}
	store, err := history.Open(path, cfg.History.MaxEntries)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("Failed to open history: "+err.Error()))
		return 1
	}
	defer store.Close()

	switch args.Subcommand {
	case "", "show":
		limit := 20
		if len(args.Raw) > 0 {
			if n, err := strconv.Atoi(args.Raw[0]); err == nil && n > 0 {
				limit = n
			}
		}
		return showHistory(store, limit)

	case "search":
		if len(args.Raw) == 0 {
			fmt.Fprintln(os.Stderr, styles.RenderError("Usage: arogya history search TERM"))
			return 1
		}
		return searchHistory(store, strings.Join(args.Raw, " "))

	case "clear":
		if err := store.Clear(); err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError("Failed to clear history: "+err.Error()))
			return 1
		}
		fmt.Println(styles.RenderSuccess("Query history cleared."))
		return 0

	default:
		fmt.Fprintln(os.Stderr, styles.RenderError("Unknown history subcommand: "+args.Subcommand))
		return 1
	}
}

func showHistory(store *history.Store, limit int) int {
	queries, err := store.Recent(limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("Failed to read history: "+err.Error()))
		return 1
	}
	if len(queries) == 0 {
		fmt.Println(styles.RenderInfo("No queries recorded yet."))
		return 0
	}
	for i, q := range queries {
		fmt.Printf("%3d  %s\n", i+1, q)
	}
	return 0
}

func searchHistory(store *history.Store, term string) int {
	queries, err := store.Search(term, 50)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("Search failed: "+err.Error()))
		return 1
	}
	if len(queries) == 0 {
		fmt.Println(styles.RenderInfo("No matching queries."))
		return 0
	}
	for i, q := range queries {
		fmt.Printf("%3d  %s\n", i+1, q)
	}
	return 0
}
