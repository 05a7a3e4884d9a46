// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// colors.go - Shared color palette for the genz TUI and CLI.
//
// All colors are defined as adaptive pairs so output stays readable on
// both light and dark terminal backgrounds. The brand leans pink/rose
// to match the GenzAI identity.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

var (
	// Pink is the primary brand color, used for the header and accents.
	Pink = lipgloss.AdaptiveColor{Light: "#db2777", Dark: "#f472b6"}

	// Rose is a softer companion to Pink for secondary accents.
	Rose = lipgloss.AdaptiveColor{Light: "#e11d48", Dark: "#fb7185"}

	// Purple highlights the reasoning panel and model names.
	Purple = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}

	// Cyan marks links and source references.
	Cyan = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
)

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

var (
	// Emerald indicates success and connected status.
	Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}

	// Amber indicates warnings and in-progress states.
	Amber = lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}

	// Red indicates errors and failed turns.
	Red = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// =============================================================================
// TEXT AND SURFACE COLORS
// =============================================================================

var (
	// TextPrimary is the main body text color.
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#f3f4f6"}

	// TextSecondary is for labels, timestamps and hints.
	TextSecondary = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}

	// TextMuted is for de-emphasized chrome.
	TextMuted = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}

	// Surface is the default panel background.
	Surface = lipgloss.AdaptiveColor{Light: "#f9fafb", Dark: "#1f2937"}

	// SurfaceDim is a slightly recessed background for bubbles.
	SurfaceDim = lipgloss.AdaptiveColor{Light: "#f3f4f6", Dark: "#111827"}

	// Border is the default border color.
	Border = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
)

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicators pairs a shape with each status so state is readable
// even without color.
var StatusIndicators = map[string]string{
	"ok":      "●",
	"error":   "✗",
	"warning": "▲",
	"busy":    "◌",
}

// RenderSuccess renders text in the success color with its indicator.
func RenderSuccess(text string) string {
	return lipgloss.NewStyle().Foreground(Emerald).Render(StatusIndicators["ok"] + " " + text)
}

// RenderError renders text in the error color with its indicator.
func RenderError(text string) string {
	return lipgloss.NewStyle().Foreground(Red).Render(StatusIndicators["error"] + " " + text)
}

// RenderWarning renders text in the warning color with its indicator.
func RenderWarning(text string) string {
	return lipgloss.NewStyle().Foreground(Amber).Render(StatusIndicators["warning"] + " " + text)
}
