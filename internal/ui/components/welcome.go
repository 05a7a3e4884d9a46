// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

// RenderWelcome renders the empty-conversation greeting, centered in the
// available area.
func RenderWelcome(theme *styles.Theme, strs *i18n.Strings, width, height int) string {
	var b strings.Builder
	b.WriteString(theme.WelcomeGreeting.Render("✦ GenzAI"))
	b.WriteString("\n\n")
	b.WriteString(strs.Greeting)
	b.WriteString("\n\n")
	b.WriteString(theme.WelcomeHint.Render(strs.PlaceholderDefault))

	box := theme.WelcomeBox.Render(b.String())

	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
