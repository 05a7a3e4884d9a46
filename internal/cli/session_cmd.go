// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// session_cmd.go - Session management command handlers.
//
// Subcommands: list, search, show, export, delete, clear.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/genz-tui/internal/model"
	"github.com/jeranaias/genz-tui/internal/storage"
)

// HandleSession routes the session subcommands.
func HandleSession(deps *Deps, args *ArgParser) {
	switch args.Subcommand() {
	case "", "list":
		printSessionList(deps)

	case "search":
		query := args.RestJoined()
		if query == "" {
			Fatalf("search needs a query. Usage: genz session search <text>")
		}
		metas, err := deps.Sessions.Search(query)
		if err != nil {
			Fatalf("search failed: %v", err)
		}
		if len(metas) == 0 {
			fmt.Println(DimStyle.Render("No sessions match " + fmt.Sprintf("%q", query)))
			return
		}
		fmt.Print(storage.FormatSessionList(metas))

	case "show":
		sess := mustGetSession(deps, args)
		fmt.Println(TitleStyle.Render(sess.Title))
		for _, msg := range sess.Messages {
			label := PromptStyle.Render(msg.Role.DisplayName() + ":")
			text := model.StripThinking(msg.Text)
			if text == "" && msg.Image != "" {
				text = "[image]"
			}
			fmt.Printf("%s %s\n\n", label, text)
		}

	case "export":
		sess := mustGetSession(deps, args)
		var out []byte
		switch format := args.FlagDefault("format", "md"); format {
		case "md", "markdown":
			out = []byte(storage.ExportMarkdown(sess))
		case "json":
			data, err := storage.ExportJSON(sess)
			if err != nil {
				Fatalf("export failed: %v", err)
			}
			out = data
		default:
			Fatalf("unknown export format %q (want md or json)", format)
		}

		if path := args.Flag("output"); path != "" {
			if err := os.WriteFile(path, out, 0644); err != nil {
				Fatalf("write failed: %v", err)
			}
			fmt.Println(SuccessStyle.Render("Exported to " + path))
			return
		}
		fmt.Print(string(out))

	case "delete":
		id := args.RestJoined()
		if id == "" {
			Fatalf("delete needs a session id")
		}
		if !args.BoolFlag("confirm") {
			Fatalf("deleting is permanent; re-run with --confirm")
		}
		if err := deps.Sessions.Delete(id); err != nil {
			Fatalf("delete failed: %v", err)
		}
		fmt.Println(SuccessStyle.Render("Deleted " + id))

	case "clear":
		if !args.BoolFlag("confirm") {
			Fatalf("clearing removes every session; re-run with --confirm")
		}
		if err := deps.Sessions.Clear(); err != nil {
			Fatalf("clear failed: %v", err)
		}
		fmt.Println(SuccessStyle.Render("All sessions removed."))

	default:
		Fatalf("unknown session subcommand %q (want list, search, show, export, delete or clear)", args.Subcommand())
	}
}

// printSessionList prints all saved sessions, newest first.
func printSessionList(deps *Deps) {
	metas, err := deps.Sessions.List()
	if err != nil {
		Fatalf("could not list sessions: %v", err)
	}
	if len(metas) == 0 {
		fmt.Println(DimStyle.Render("No saved sessions yet."))
		return
	}
	fmt.Print(storage.FormatSessionList(metas))
}

// mustGetSession resolves the id argument or exits.
func mustGetSession(deps *Deps, args *ArgParser) model.Session {
	id := strings.TrimSpace(args.RestJoined())
	if id == "" {
		Fatalf("%s needs a session id", args.Subcommand())
	}
	sess, err := deps.Sessions.Get(id)
	if err != nil {
		Fatalf("%v", err)
	}
	return sess
}
