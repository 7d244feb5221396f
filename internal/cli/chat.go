// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command for the arogya CLI.
//
// Command: chat
// Short:   Interactive chat without the full TUI
//
// Interactive commands (during chat):
//   /help, /h      Show available commands
//   /status, /s    Show backend health
//   /diseases      List known diseases
//   /history       Show the conversation so far
//   /export        Export the transcript to a Markdown file
//   /quit, /q      Exit chat
//   Ctrl+C         Abort the prompt
//   Ctrl+D         Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/arogyaai/arogya-tui/internal/config"
	"github.com/arogyaai/arogya-tui/internal/gateway"
	"github.com/arogyaai/arogya-tui/internal/history"
	"github.com/arogyaai/arogya-tui/internal/model"
	"github.com/arogyaai/arogya-tui/internal/session"
	"github.com/arogyaai/arogya-tui/internal/ui/chat"
	"github.com/arogyaai/arogya-tui/internal/ui/styles"
)

// =============================================================================
// INPUT
// =============================================================================

// chatInput wraps liner with a persistent input-history file.
type chatInput struct {
	line        *liner.State
	historyFile string
}

func newChatInput() *chatInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	in := &chatInput{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	in.loadHistory()
	return in
}

func (in *chatInput) loadHistory() {
	if f, err := os.Open(in.historyFile); err == nil {
		in.line.ReadHistory(f)
		f.Close()
	}
}

// read reads one line, adding non-empty input to the history.
func (in *chatInput) read(prompt string) (string, error) {
	input, err := in.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		in.line.AppendHistory(input)
	}
	return input, nil
}

func (in *chatInput) close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(in.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			in.line.WriteHistory(f)
			f.Close()
		}
	}
	in.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// runChat starts a readline-style chat loop against the backend.
func runChat(args *Args) int {
	if !isTTY() {
		fmt.Fprintln(os.Stderr, "arogya chat requires an interactive terminal; use arogya ask for piped input")
		return 1
	}

	cfg := loadConfig(args)
	client := newClient(cfg)
	ctrl := session.NewController(client)

	var store *history.Store
	if cfg.History.Enabled {
		if path, err := cfg.HistoryPath(); err == nil {
			if s, err := history.Open(path, cfg.History.MaxEntries); err == nil {
				store = s
				defer store.Close()
				ctrl.SetSubmitHook(func(query string) {
					store.Record(query)
				})
			}
		}
	}

	in := newChatInput()
	defer in.close()

	if !args.Quiet {
		fmt.Println(styles.RenderInfo("ArogyaAI chat. Ask a health question, /help for commands, /quit to exit."))
		printBackendBanner(client)
	}

	prompt := "arogya> "
	for {
		input, err := in.read(prompt)
		if err != nil {
			// Ctrl+C aborts the prompt, Ctrl+D ends the session
			fmt.Println()
			return 0
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := handleSlashCommand(input, ctrl, client); quit {
				return 0
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return 0
		}

		askOnce(ctrl, input)
	}
}

// askOnce submits one question through the controller and prints the reply.
func askOnce(ctrl *session.Controller, input string) {
	if !ctrl.SubmitUserMessage(input) {
		return
	}
	ctrl.Wait()

	snap := ctrl.Snapshot()
	for i := len(snap.Entries) - 1; i >= 0; i-- {
		if snap.Entries[i].Author != model.AuthorAssistant {
			continue
		}
		fmt.Println()
		if isStdoutTTY() {
			fmt.Print(renderMarkdown(snap.Entries[i].Body))
		} else {
			fmt.Println(snap.Entries[i].Body)
		}
		break
	}
	ctrl.DismissError()
}

// printBackendBanner shows a one-line backend summary on startup.
func printBackendBanner(client *gateway.Client) {
	health, err := client.Health(context.Background())
	if err != nil {
		fmt.Println(styles.RenderWarning("Backend unreachable; queries will fail until it is running."))
		return
	}
	fmt.Println(styles.RenderStatus(health.Status == "healthy",
		fmt.Sprintf("Backend %s, %d diseases loaded", health.Status, health.DiseasesLoaded)))
}

// handleSlashCommand executes a /command. Returns true when the session
// should end.
func handleSlashCommand(input string, ctrl *session.Controller, client *gateway.Client) bool {
	cmd := strings.Fields(input)[0]
	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println(`Commands:
  /status, /s    Show backend health
  /diseases      List known diseases
  /history       Show the conversation so far
  /export        Export the transcript to a Markdown file
  /quit, /q      Exit chat`)

	case "/status", "/s":
		runStatus(&Args{})

	case "/diseases":
		runDiseases(&Args{})

	case "/history":
		snap := ctrl.Snapshot()
		if len(snap.Entries) == 0 {
			fmt.Println(styles.RenderInfo("No messages yet."))
			break
		}
		for _, entry := range snap.Entries {
			fmt.Printf("[%s] %s: %s\n",
				entry.CreatedAt.Format("15:04"),
				entry.Author.DisplayName(),
				entry.Preview(72))
		}

	case "/export":
		path, err := chat.WriteTranscript(ctrl.Snapshot(), "")
		if err != nil {
			fmt.Println(styles.RenderError("Export failed: " + err.Error()))
			break
		}
		fmt.Println(styles.RenderSuccess("Transcript exported to " + path))

	default:
		fmt.Println(styles.RenderWarning("Unknown command " + cmd + ", try /help"))
	}
	return false
}
