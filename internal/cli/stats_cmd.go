// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// stats_cmd.go - Usage statistics command handler.
package cli

import (
	"fmt"
	"sort"

	"github.com/jeranaias/genz-tui/internal/util"
)

// HandleStats prints aggregate usage from the telemetry log.
func HandleStats(deps *Deps, args *ArgParser) {
	if deps.Turns == nil {
		fmt.Println(DimStyle.Render("Telemetry is disabled; no usage data recorded."))
		return
	}

	stats, err := deps.Turns.Stats()
	if err != nil {
		Fatalf("could not read usage stats: %v", err)
	}

	fmt.Println(TitleStyle.Render("genz usage"))
	row := func(label, value string) {
		fmt.Println(LabelStyle.Render(label) + ValueStyle.Render(value))
	}
	row("Total turns", fmt.Sprintf("%d", stats.TotalTurns))
	row("Succeeded", fmt.Sprintf("%d", stats.Successes))
	row("Failed", fmt.Sprintf("%d", stats.Failures))
	row("Avg duration", fmt.Sprintf("%dms", stats.AvgDurationMs))

	if len(stats.ByModel) > 0 {
		fmt.Println(SectionStyle.Render("By model"))
		ids := make([]string, 0, len(stats.ByModel))
		for id := range stats.ByModel {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			name := id
			if name == "" {
				name = "(image)"
			}
			row("  "+name, fmt.Sprintf("%d", stats.ByModel[id]))
		}
	}

	if n := args.IntFlag("recent", 0); n > 0 {
		records, err := deps.Turns.Recent(n)
		if err != nil {
			Fatalf("could not read recent turns: %v", err)
		}
		fmt.Println(SectionStyle.Render("Recent turns"))
		for _, rec := range records {
			status := SuccessStyle.Render("ok")
			if !rec.Success {
				status = ErrorStyle.Render("fail")
			}
			fmt.Printf("  %s  %-5s %-6s %6dms  %s\n",
				rec.CreatedAt.Format("2006-01-02 15:04"),
				rec.Kind, status, rec.Duration.Milliseconds(),
				DimStyle.Render(util.TruncateRunes(rec.ErrorText, 40)))
		}
	}
}
