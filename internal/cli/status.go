// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend health command for the arogya CLI.
//
// Command: status (alias: s)
// Short:   Show backend health and capabilities
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arogyaai/arogya-tui/internal/ui/styles"
)

// runStatus probes the backend and prints a health report.
func runStatus(args *Args) int {
	cfg := loadConfig(args)
	client := newClient(cfg)

	health, err := client.Health(context.Background())
	if err != nil {
		if args.JSON {
			json.NewEncoder(os.Stdout).Encode(map[string]string{
				"status": "unreachable",
				"error":  err.Error(),
			})
		} else {
			fmt.Println(styles.RenderError("Backend unreachable: " + err.Error()))
			fmt.Println(styles.RenderInfo("Backend URL: " + cfg.Backend.BaseURL))
		}
		return 1
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(health)
		return 0
	}

	healthy := health.Status == "healthy"
	fmt.Println(styles.RenderStatus(healthy, "Backend: "+health.Status))
	fmt.Println(styles.RenderInfo("URL: " + cfg.Backend.BaseURL))
	fmt.Println(styles.RenderStatus(health.RasaAvailable, "Conversation engine"))
	fmt.Println(styles.RenderStatus(health.DiseasesLoaded > 0,
		fmt.Sprintf("Disease knowledge base: %d diseases", health.DiseasesLoaded)))
	fmt.Println(styles.RenderStatus(health.MultilingualSupport, "Multilingual support"))
	fmt.Println(styles.RenderStatus(health.GroqAPIAvailable, "Fallback answer engine"))

	if !healthy {
		return 1
	}
	return 0
}
