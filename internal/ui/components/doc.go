// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces for the genz TUI:
// the status spinner with its rotating localized status lines, the
// syntax-highlighted code block renderer, the web source list and the
// welcome screen.
package components
