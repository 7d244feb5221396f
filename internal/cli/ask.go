// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for the arogya CLI.
//
// Command: ask
// Short:   Ask a single question and exit
//
// Examples:
//   arogya ask "What are the symptoms of dengue?"
//   arogya ask --json "malaria treatment"
//   arogya ask --plain "typhoid prevention"
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"

	"github.com/arogyaai/arogya-tui/internal/gateway"
	"github.com/arogyaai/arogya-tui/internal/ui/styles"
)

// markdownRenderer renders markdown answers for terminal display.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content, falling back to plain text.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// askResult is the machine-readable shape of an answer for --json.
type askResult struct {
	Status           string `json:"status"`
	Answer           string `json:"answer,omitempty"`
	Source           string `json:"source,omitempty"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	WasTranslated    bool   `json:"was_translated,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorKind        string `json:"error_kind,omitempty"`
	Attempts         int    `json:"attempts"`
}

// runAsk submits a single question and prints the answer.
func runAsk(args *Args) int {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		fmt.Fprintln(os.Stderr, styles.RenderError("Please enter a question or disease name."))
		return 1
	}

	cfg := loadConfig(args)
	client := newClient(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !args.Quiet && !args.JSON && colorEnabled() {
		fmt.Println(styles.RenderInfo("Asking ArogyaAI…"))
	}

	outcome := client.Submit(ctx, gateway.Request{Text: query})

	if args.JSON {
		return printAskJSON(outcome)
	}
	return printAskText(outcome, cfg.UI.Markdown && !args.Plain)
}

func printAskJSON(outcome gateway.Outcome) int {
	result := askResult{Attempts: outcome.Attempts}
	if outcome.Answer != nil {
		result.Status = "success"
		result.Answer = outcome.Answer.Text
		result.Source = outcome.Answer.Source
		result.DetectedLanguage = outcome.Answer.DetectedLanguage
		result.WasTranslated = outcome.Answer.WasTranslated
	} else {
		result.Status = "error"
		if outcome.Failure != nil {
			result.Error = outcome.Failure.Message
			result.ErrorKind = outcome.Failure.Kind.String()
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return 1
	}
	if result.Status != "success" {
		return 1
	}
	return 0
}

func printAskText(outcome gateway.Outcome, markdown bool) int {
	if outcome.Answer == nil {
		msg := "query failed"
		if outcome.Failure != nil {
			msg = outcome.Failure.Message
		}
		fmt.Fprintln(os.Stderr, styles.RenderError(msg))
		return 1
	}

	answer := outcome.Answer
	if answer.WasTranslated && answer.DetectedLanguage != "" && !strings.EqualFold(answer.DetectedLanguage, "english") {
		fmt.Println(styles.RenderInfo("Detected language: " + answer.DetectedLanguage))
		fmt.Println()
	}

	if markdown && isStdoutTTY() {
		fmt.Print(renderMarkdown(answer.Text))
	} else {
		fmt.Println(answer.Text)
	}
	return 0
}
