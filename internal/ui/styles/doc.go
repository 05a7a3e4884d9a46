// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the genz TUI.
//
// It holds the shared color palette and a Theme that bundles every
// lip gloss style the chat view needs. Colors are adaptive: each one
// carries a light and a dark variant and lipgloss picks the right one
// for the detected terminal background.
package styles
