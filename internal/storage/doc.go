// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chat sessions and user preferences for genz TUI.
//
// All sessions live in a single JSON document that is replaced wholesale on
// every save, so the file is always a complete, self-consistent snapshot.
// Writes go through an atomic temp-file-and-rename so a crash mid-save can
// never leave a torn file behind.
//
// Default location: ~/.genz/
package storage
