// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/genz-tui/internal/genai"
	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/ui/styles"
	"github.com/jeranaias/genz-tui/internal/util"
)

// =============================================================================
// WEB SOURCE LIST
// =============================================================================

// maxSourceTitle caps how much of a source title is shown before truncation.
const maxSourceTitle = 60

// RenderSources renders the grounding source list attached to a message.
// Returns the empty string when there is nothing to show.
func RenderSources(theme *styles.Theme, strs *i18n.Strings, meta *genai.GroundingMetadata) string {
	if meta == nil {
		return ""
	}
	sources := meta.Sources()
	if len(sources) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.SourcesHeader.Render(strs.SourcesHeader))
	for i, src := range sources {
		title := src.Title
		if title == "" {
			title = src.URI
		}
		title = util.TruncateRunes(title, maxSourceTitle)
		b.WriteString("\n")
		b.WriteString(theme.Timestamp.Render(fmt.Sprintf("  %d. ", i+1)))
		b.WriteString(theme.SourceLink.Render(title))
	}
	return b.String()
}
