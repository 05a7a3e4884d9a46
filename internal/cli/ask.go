// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the genz CLI.
//
// Handles "genz ask" which sends one prompt, waits for the full
// response and prints it, markdown-rendered when stdout is a TTY.
//
// Examples:
//   genz ask "Apa ibu kota Indonesia?"
//   genz ask -m gemini-2.0-flash "Summarize this repo"
//   genz ask --image "a rose garden at dusk"
//   genz ask --plain "print raw markdown" > out.md
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/genz-tui/internal/conversation"
	"github.com/jeranaias/genz-tui/internal/model"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the shared glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Plain text fallback when the renderer cannot initialize
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display, falling back to
// the original content on any failure.
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

// displayResponse prints a response, markdown-rendered only on a TTY so
// piped output stays clean.
func displayResponse(response string, plain bool) {
	if !plain && IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
	} else {
		fmt.Println(response)
	}
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk runs a single turn and prints the result.
func HandleAsk(deps *Deps, args *ArgParser) {
	prompt := strings.TrimSpace(strings.Join(args.Positional(), " "))
	if prompt == "" {
		Fatalf("ask needs a question. Usage: genz ask \"question\"")
	}

	modelID := args.FlagDefault("model", args.FlagDefault("m", deps.Config.DefaultModel))
	if args.BoolFlag("image") {
		modelID = imageModelID()
	}
	if _, ok := model.ModelByID(modelID); !ok {
		Fatalf("unknown model %q", modelID)
	}

	orch := conversation.NewOrchestrator(deps.Generator(), deps.Sessions, deps.Lang, deps.Logger)

	err := orch.Send(context.Background(), conversation.SendRequest{
		Text:    prompt,
		ModelID: modelID,
	})

	printLastResponse(deps, orch, args.BoolFlag("plain"))

	if err != nil {
		os.Exit(1)
	}
}

// printLastResponse prints the final model message of the transcript:
// visible text, image note and sources. Errors were already reconciled
// into the transcript as the localized failure template.
func printLastResponse(deps *Deps, orch *conversation.Orchestrator, plain bool) {
	last, ok := model.LastMessage(orch.Messages())
	if !ok || last.Role != model.RoleModel {
		return
	}

	split := model.SplitThinking(last.Text)
	if split.Visible != "" {
		displayResponse(split.Visible, plain)
	}

	if last.Image != "" {
		fmt.Println(DimStyle.Render(fmt.Sprintf("[image data URI, %d bytes]", len(last.Image))))
	}

	if sources := last.Grounding.Sources(); len(sources) > 0 {
		fmt.Println(SectionStyle.Render(deps.Strings().SourcesHeader))
		for i, src := range sources {
			title := src.Title
			if title == "" {
				title = src.URI
			}
			fmt.Printf("  %d. %s\n", i+1, title)
		}
	}
}

// imageModelID returns the registry's image generation model.
func imageModelID() string {
	for _, info := range model.Models {
		if info.ImageGen {
			return info.ID
		}
	}
	return model.DefaultModelID
}
