// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the genz command line surface: argument
// parsing, the one-shot ask command, the interactive chat REPL, and the
// session, config, language and stats management commands.
//
// The TUI itself lives in internal/ui; this package covers everything
// reachable without it.
package cli
