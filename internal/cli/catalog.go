// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// catalog.go - Disease and language listing commands for the arogya CLI.
//
// Commands: diseases, languages
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arogyaai/arogya-tui/internal/ui/styles"
)

// runDiseases lists the diseases the backend can answer about.
func runDiseases(args *Args) int {
	cfg := loadConfig(args)
	client := newClient(cfg)

	// The backend's catalog order is preserved; it matches the TUI picker.
	diseases, err := client.ListDiseases(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("Failed to load disease catalog: "+err.Error()))
		return 1
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]any{"status": "success", "diseases": diseases})
		return 0
	}

	fmt.Println(styles.RenderInfo(fmt.Sprintf("%d diseases in the knowledge base:", len(diseases))))
	printColumns(os.Stdout, diseases)
	return 0
}

// runLanguages lists the languages the backend accepts questions in.
func runLanguages(args *Args) int {
	cfg := loadConfig(args)
	client := newClient(cfg)

	languages, err := client.SupportedLanguages(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("Failed to load languages: "+err.Error()))
		return 1
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]any{"status": "success", "supported_languages": languages})
		return 0
	}

	fmt.Println(styles.RenderInfo(fmt.Sprintf("%d supported languages:", len(languages))))
	printColumns(os.Stdout, languages)
	return 0
}

// printColumns prints items in columns sized to the terminal, in the order
// given.
func printColumns(w io.Writer, items []string) {
	if len(items) == 0 {
		return
	}

	longest := 0
	for _, item := range items {
		if len(item) > longest {
			longest = len(item)
		}
	}
	colWidth := longest + 2
	cols := terminalWidth() / colWidth
	if cols < 1 {
		cols = 1
	}

	for i, item := range items {
		fmt.Fprintf(w, "%-*s", colWidth, item)
		if (i+1)%cols == 0 || i == len(items)-1 {
			fmt.Fprintln(w)
		}
	}
}
