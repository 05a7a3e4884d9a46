// genz - a terminal client for the GenzAI chat service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/genz-tui/internal/cli"
	"github.com/jeranaias/genz-tui/internal/config"
	"github.com/jeranaias/genz-tui/internal/conversation"
	"github.com/jeranaias/genz-tui/internal/genai"
	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/model"
	"github.com/jeranaias/genz-tui/internal/storage"
	"github.com/jeranaias/genz-tui/internal/telemetry"
	"github.com/jeranaias/genz-tui/internal/ui/chat"
	"github.com/jeranaias/genz-tui/internal/ui/styles"
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
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion()
		return
	case cli.CmdHelp:
		cli.PrintUsage()
		return
	}

	deps, err := buildDeps()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if deps.Turns != nil {
		defer deps.Turns.Close()
	}

	switch cmd {
	case cli.CmdTUI:
		runTUI(deps, args)
	case cli.CmdAsk:
		cli.HandleAsk(deps, args)
	case cli.CmdChat:
		cli.HandleChat(deps, args)
	case cli.CmdSession:
		cli.HandleSession(deps, args)
	case cli.CmdConfig:
		cli.HandleConfig(deps, args)
	case cli.CmdLang:
		cli.HandleLang(deps, args)
	case cli.CmdStats:
		cli.HandleStats(deps, args)
	}
}

// buildDeps loads configuration and assembles the shared dependencies.
func buildDeps() (*cli.Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	var sessions *storage.SessionStore
	if cfg.Storage.Dir != "" {
		sessions, err = storage.NewSessionStoreWithDir(cfg.Storage.Dir)
	} else {
		sessions, err = storage.NewSessionStore()
	}
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	sessions.MaxSessions = cfg.Storage.MaxSessions

	langStore, err := storage.NewLanguageStore()
	if err != nil {
		return nil, fmt.Errorf("language store: %w", err)
	}

	// The language file holds the user's in-app choice; config and env
	// act as the initial default.
	lang := cfg.Language()
	if saved := langStore.Load(); saved != i18n.DefaultLanguage {
		lang = saved
	}

	client := genai.NewClientWithConfig(&genai.ClientConfig{
		BaseURL:         cfg.Service.BaseURL,
		Timeout:         time.Duration(cfg.Service.TimeoutSecs) * time.Second,
		RequestInterval: time.Duration(cfg.Service.RequestIntervalMs) * time.Millisecond,
		RequestBurst:    cfg.Service.RequestBurst,
	})

	var turns *telemetry.TurnLog
	if cfg.Telemetry.Enabled {
		dbPath := cfg.Telemetry.Path
		if dbPath == "" {
			dbPath, err = telemetry.DefaultPath()
			if err != nil {
				return nil, fmt.Errorf("telemetry path: %w", err)
			}
		}
		turns, err = telemetry.NewTurnLog(dbPath)
		if err != nil {
			// Usage logging is optional; a broken database should not
			// keep the client from starting.
			logger.Warn("telemetry disabled", "error", err)
			turns = nil
		}
	}

	return &cli.Deps{
		Config:    cfg,
		Client:    client,
		Sessions:  sessions,
		LangStore: langStore,
		Turns:     turns,
		Lang:      lang,
		Logger:    logger,
	}, nil
}

// appModel is the root Bubble Tea model; it delegates everything to the
// chat view.
type appModel struct {
	chat   chat.Model
	resume *model.Session
}

func (a appModel) Init() tea.Cmd {
	if a.resume != nil {
		sess := *a.resume
		return tea.Batch(a.chat.Init(), func() tea.Msg {
			return chat.SessionLoadedMsg{Session: sess}
		})
	}
	return a.chat.Init()
}

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	return a, cmd
}

func (a appModel) View() string {
	return a.chat.View()
}

// runTUI starts the full-screen chat interface.
func runTUI(deps *cli.Deps, args *cli.ArgParser) {
	orch := conversation.NewOrchestrator(deps.Generator(), deps.Sessions, deps.Lang, deps.Logger)
	theme := styles.NewTheme(deps.Config.UI.Theme)
	view := chat.New(orch, deps.Config, theme, deps.Lang)

	resume, err := resumeSession(deps, args)
	if err != nil {
		cli.Fatalf("%v", err)
	}

	p := tea.NewProgram(appModel{chat: view, resume: resume}, tea.WithAltScreen())

	// Edits to the config file land in the running TUI. A missing file
	// just means there is nothing to watch yet.
	if cfgPath, perr := config.ConfigPathTOML(); perr == nil {
		watcher, werr := config.NewWatcher(cfgPath, func(cfg *config.Config) {
			p.Send(chat.ConfigReloadedMsg{Config: cfg})
		}, deps.Logger)
		if werr == nil {
			if werr = watcher.Watch(); werr != nil {
				deps.Logger.Warn("config hot-reload unavailable", "path", cfgPath, "error", werr)
			} else {
				defer watcher.Close()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resumeSession resolves the --session / --continue startup flags to a
// saved session, or nil when starting fresh.
func resumeSession(deps *cli.Deps, args *cli.ArgParser) (*model.Session, error) {
	id := args.Flag("session")
	if id == "" {
		id = args.Flag("s")
	}
	if id == "" && args.BoolFlag("continue") {
		metas, err := deps.Sessions.List()
		if err != nil {
			return nil, fmt.Errorf("sessions: %w", err)
		}
		if len(metas) == 0 {
			return nil, nil
		}
		id = metas[0].ID
	}
	if id == "" {
		return nil, nil
	}

	sess, err := deps.Sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return &sess, nil
}
