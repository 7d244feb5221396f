// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for arogya.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/arogyaai/arogya-tui/internal/config"
	"github.com/arogyaai/arogya-tui/internal/gateway"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdStatus
	CmdDiseases
	CmdLanguages
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Backend string // Backend base URL override
	Quiet   bool
	JSON    bool // Output in JSON format
	Plain   bool // Disable markdown rendering

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `arogya - terminal client for the ArogyaAI health assistant

Arogya talks to an ArogyaAI backend and answers health questions about
diseases, symptoms, treatments, and prevention, in 15 languages.

Usage:
  arogya                      Start the chat TUI (default)
  arogya ask "question"       Ask a single question and exit
  arogya chat                 Interactive chat in the terminal
  arogya status, s            Show backend health
  arogya diseases             List diseases the backend knows about
  arogya languages            List supported languages
  arogya history [subcommand] Query history (show, search, clear)
  arogya config [show|set|path]  Configuration
  arogya version, -v          Show version
  arogya help, -h             Show this help

Flags:
  --backend URL   Override the backend base URL
  --json          Machine-readable output (ask, status, diseases, languages)
  --plain         Disable markdown rendering
  -q, --quiet     Minimal output

Examples:
  arogya ask "What are the symptoms of dengue?"
  arogya ask --json "malaria treatment"
  arogya status
  arogya history search typhoid

Environment:
  AROGYA_BACKEND_URL   Backend base URL (default http://127.0.0.1:8000)
  AROGYA_THEME         TUI theme: dark, light, auto
  NO_COLOR             Disable colored output
`

// Usage prints the top-level help text.
func Usage() {
	fmt.Print(usageText)
}

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// ParseArgs parses command-line arguments into a command and its options.
func ParseArgs(argv []string) (Command, *Args) {
	args := &Args{}
	cmd := CmdTUI

	rest := parseGlobalFlags(argv, args)

	if len(rest) == 0 {
		return cmd, args
	}

	switch rest[0] {
	case "ask":
		cmd = CmdAsk
		args.Query = strings.Join(rest[1:], " ")
	case "chat":
		cmd = CmdChat
	case "status", "s":
		cmd = CmdStatus
	case "diseases":
		cmd = CmdDiseases
	case "languages":
		cmd = CmdLanguages
	case "history":
		cmd = CmdHistory
		if len(rest) > 1 {
			args.Subcommand = rest[1]
			args.Raw = rest[2:]
		}
	case "config":
		cmd = CmdConfig
		if len(rest) > 1 {
			args.Subcommand = rest[1]
		}
		if len(rest) > 2 {
			args.ConfigKey = rest[2]
		}
		if len(rest) > 3 {
			args.ConfigVal = rest[3]
		}
	case "version", "-v", "--version":
		cmd = CmdVersion
	case "help", "-h", "--help":
		cmd = CmdHelp
	default:
		// Unknown word: treat it as a question, like "arogya what is malaria"
		cmd = CmdAsk
		args.Query = strings.Join(rest, " ")
	}

	return cmd, args
}

// parseGlobalFlags strips global flags from argv and returns the remainder.
func parseGlobalFlags(argv []string, args *Args) []string {
	var rest []string
	i := 0
	for i < len(argv) {
		arg := argv[i]
		switch {
		case arg == "--json":
			args.JSON = true
		case arg == "--plain":
			args.Plain = true
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
		case arg == "--backend":
			if i+1 < len(argv) {
				i++
				args.Backend = argv[i]
			}
		case strings.HasPrefix(arg, "--backend="):
			args.Backend = strings.TrimPrefix(arg, "--backend=")
		default:
			rest = append(rest, arg)
		}
		i++
	}
	return rest
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run executes the parsed command and returns the process exit code.
// CmdTUI is handled by the caller; Run reports it unhandled.
func Run(cmd Command, args *Args) (int, bool) {
	switch cmd {
	case CmdAsk:
		return runAsk(args), true
	case CmdChat:
		return runChat(args), true
	case CmdStatus:
		return runStatus(args), true
	case CmdDiseases:
		return runDiseases(args), true
	case CmdLanguages:
		return runLanguages(args), true
	case CmdHistory:
		return runHistory(args), true
	case CmdConfig:
		return runConfig(args), true
	case CmdVersion:
		printVersion()
		return 0, true
	case CmdHelp:
		Usage()
		return 0, true
	}
	return 0, false
}

func printVersion() {
	fmt.Printf("arogya %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// =============================================================================
// SHARED WIRING
// =============================================================================

// loadConfig loads configuration with env overrides and the --backend flag
// applied.
func loadConfig(args *Args) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		cfg = config.Default()
	}
	cfg.ApplyEnvOverrides()
	if args.Backend != "" {
		cfg.Backend.BaseURL = args.Backend
	}
	return cfg
}

// newClient builds a gateway client from configuration.
func newClient(cfg *config.Config) *gateway.Client {
	return gateway.NewClientWithConfig(&gateway.ClientConfig{
		BaseURL:             cfg.Backend.BaseURL,
		FirstAttemptTimeout: cfg.Backend.FirstAttemptTimeout(),
		RetryAttemptTimeout: cfg.Backend.RetryAttemptTimeout(),
		RetryDelay:          cfg.Backend.RetryDelay(),
		MaxAttempts:         cfg.Backend.MaxAttempts,
		ProbeTimeout:        cfg.Backend.ProbeTimeout(),
		UserID:              cfg.Backend.UserID,
	})
}
