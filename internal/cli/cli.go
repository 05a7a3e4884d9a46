// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for genz.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/genz-tui/internal/config"
	"github.com/jeranaias/genz-tui/internal/conversation"
	"github.com/jeranaias/genz-tui/internal/genai"
	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/storage"
	"github.com/jeranaias/genz-tui/internal/telemetry"
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
	CmdSession
	CmdConfig
	CmdLang
	CmdStats
	CmdVersion
	CmdHelp
)

const usageText = `genz - terminal client for the GenzAI chat service

It provides:
  - Streaming chat with reasoning and web-source display
  - Image generation via the Genz Art model
  - Saved sessions with search and export
  - Indonesian, English and Japanese UI language

Usage:
  genz                       Start TUI (default)
    -s, --session ID         Resume a saved session
    --continue               Resume the most recent session
  genz ask "question"        Ask a single question
    -m, --model NAME         Use a specific model
    --image                  Generate an image instead of text
    --plain                  Skip markdown rendering
  genz chat                  Interactive chat REPL
    -m, --model NAME         Use a specific model
  genz session [subcommand]  Session management
    genz session list        List saved sessions
    genz session search Q    Search titles and message text
    genz session show ID     Print a session transcript
    genz session export ID   Export a session
      --format md|json       Export format (default: md)
      --output FILE          Write to file (default: stdout)
    genz session delete ID --confirm
    genz session clear --confirm
  genz config [show|set|path]  Configuration
    genz config set KEY VALUE  Keys: model, theme, language, base_url
  genz lang [id|en|jp]       Show or set the UI language
  genz stats                 Usage statistics
    --recent N               Also show the last N turns
  genz version               Show version
  genz help                  Show this help

Environment:
  GENZ_BASE_URL, GENZ_MODEL, GENZ_LANGUAGE, GENZ_THEME, GENZ_TELEMETRY
  NO_COLOR / FORCE_COLOR     Color output control
`

// Parse reads os.Args and resolves the command plus its arguments.
func Parse() (Command, *ArgParser) {
	raw := os.Args[1:]
	if len(raw) == 0 {
		return CmdTUI, NewArgParser(nil)
	}

	switch raw[0] {
	case "ask":
		return CmdAsk, NewArgParser(raw[1:])
	case "chat":
		return CmdChat, NewArgParser(raw[1:])
	case "session", "sessions":
		return CmdSession, NewArgParser(raw[1:])
	case "config":
		return CmdConfig, NewArgParser(raw[1:])
	case "lang", "language":
		return CmdLang, NewArgParser(raw[1:])
	case "stats", "usage":
		return CmdStats, NewArgParser(raw[1:])
	case "version", "-v", "--version":
		return CmdVersion, NewArgParser(nil)
	case "help", "-h", "--help":
		return CmdHelp, NewArgParser(nil)
	case "tui":
		return CmdTUI, NewArgParser(raw[1:])
	default:
		// Flags without a subcommand belong to the TUI (genz --continue).
		if strings.HasPrefix(raw[0], "-") {
			return CmdTUI, NewArgParser(raw)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", raw[0])
		return CmdHelp, NewArgParser(nil)
	}
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("genz %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// =============================================================================
// SHARED COMMAND DEPENDENCIES
// =============================================================================

// Deps bundles everything the command handlers need. main assembles one
// Deps and passes it to each handler.
type Deps struct {
	Config    *config.Config
	Client    *genai.Client
	Sessions  *storage.SessionStore
	LangStore *storage.LanguageStore
	Turns     *telemetry.TurnLog // nil when telemetry is disabled
	Lang      i18n.Language
	Logger    *slog.Logger
}

// Generator returns the client, wrapped with usage recording when the
// turn log is available.
func (d *Deps) Generator() conversation.Generator {
	if d.Turns != nil {
		return telemetry.NewRecordingGenerator(d.Client, d.Turns, d.Logger)
	}
	return d.Client
}

// Strings returns the localized string pack for the active language.
func (d *Deps) Strings() *i18n.Strings {
	return i18n.Catalog(d.Lang)
}

// Fatalf prints a styled error and exits non-zero.
func Fatalf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+fmt.Sprintf(format, args...))
	os.Exit(1)
}
