// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL for the genz CLI.
//
// Handles "genz chat": a line-based conversation loop with input
// history, for terminals where the full TUI is unwanted.
//
// Interactive commands (during chat):
//   /help, /h           Show available commands
//   /new, /n            Start a new conversation
//   /model [id]         Show or switch model
//   /lang [code]        Show or switch UI language
//   /sessions           List saved sessions
//   /load <id>          Load a saved session
//   /quit, /q           Exit chat
//   Ctrl+C              Cancel the current turn
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/jeranaias/genz-tui/internal/config"
	"github.com/jeranaias/genz-tui/internal/conversation"
	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/model"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with restrictive permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and releases the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// HandleChat runs the interactive REPL.
func HandleChat(deps *Deps, args *ArgParser) {
	modelID := args.FlagDefault("model", args.FlagDefault("m", deps.Config.DefaultModel))
	if _, ok := model.ModelByID(modelID); !ok {
		Fatalf("unknown model %q", modelID)
	}

	orch := conversation.NewOrchestrator(deps.Generator(), deps.Sessions, deps.Lang, deps.Logger)
	repl := NewChatCLI()
	defer repl.Close()

	// Ctrl+C during generation cancels the turn instead of killing the
	// process; liner handles Ctrl+C at the prompt itself.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	defer signal.Stop(sigCh)

	printChatWelcome(deps, modelID)

	for {
		input, err := repl.ReadInput(PromptStyle.Render("you> "))
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			// io.EOF on Ctrl+D
			fmt.Println()
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := handleChatCommand(deps, orch, &modelID, input); quit {
				return
			}
			continue
		}

		runReplTurn(deps, orch, modelID, input, sigCh)
	}
}

// runReplTurn sends one prompt and prints the response.
func runReplTurn(deps *Deps, orch *conversation.Orchestrator, modelID, prompt string, sigCh <-chan os.Signal) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-done:
		}
	}()

	err := orch.Send(ctx, conversation.SendRequest{
		Text:    prompt,
		ModelID: modelID,
	})
	close(done)

	fmt.Println()
	printLastResponse(deps, orch, false)
	if err != nil && ctx.Err() != nil {
		fmt.Println(WarningStyle.Render("(canceled)"))
	}
	fmt.Println()
}

// handleChatCommand executes a /command. Returns true to exit the REPL.
func handleChatCommand(deps *Deps, orch *conversation.Orchestrator, modelID *string, input string) bool {
	fields := strings.Fields(input)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println(DimStyle.Render(`  /new           start a new conversation
  /model [id]    show or switch model
  /lang [code]   show or switch language (id, en, jp)
  /sessions      list saved sessions
  /load <id>     load a saved session
  /quit          exit`))

	case "/new", "/n":
		orch.NewChat()
		fmt.Println(SuccessStyle.Render("Started a new conversation."))

	case "/model":
		if len(args) == 0 {
			for _, info := range model.Models {
				marker := "  "
				if info.ID == *modelID {
					marker = "* "
				}
				fmt.Printf("%s%s  %s\n", marker, ValueStyle.Render(info.ID), DimStyle.Render(info.Name))
			}
			break
		}
		if _, ok := model.ModelByID(args[0]); !ok {
			fmt.Println(ErrorStyle.Render("Unknown model: ") + args[0])
			break
		}
		*modelID = args[0]
		fmt.Println(SuccessStyle.Render("Switched to " + args[0]))

	case "/lang":
		if len(args) == 0 {
			fmt.Printf("Current language: %s\n", deps.Lang)
			break
		}
		lang := i18n.Resolve(args[0])
		deps.Lang = lang
		orch.SetLanguage(lang)
		if deps.LangStore != nil {
			if err := deps.LangStore.Save(lang); err != nil {
				deps.Logger.Warn("failed to persist language", "error", err)
			}
		}
		fmt.Println(SuccessStyle.Render("Language set to " + string(lang)))

	case "/sessions":
		printSessionList(deps)

	case "/load":
		if len(args) == 0 {
			fmt.Println(ErrorStyle.Render("Usage: /load <session-id>"))
			break
		}
		sess, err := deps.Sessions.Get(args[0])
		if err != nil {
			fmt.Println(ErrorStyle.Render("Error: ") + err.Error())
			break
		}
		orch.LoadSession(sess)
		fmt.Println(SuccessStyle.Render("Loaded: " + sess.Title))

	default:
		fmt.Println(DimStyle.Render("Unknown command. Try /help"))
	}
	return false
}

// printChatWelcome prints the localized greeting and quick hints.
func printChatWelcome(deps *Deps, modelID string) {
	name := modelID
	if info, ok := model.ModelByID(modelID); ok {
		name = info.Name
	}
	fmt.Println(TitleStyle.Render("✦ GenzAI"))
	fmt.Println(deps.Strings().Greeting)
	fmt.Println(DimStyle.Render(fmt.Sprintf("Model: %s  ·  /help for commands, Ctrl+D to exit", name)))
	fmt.Println()
}
