// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for sessions and messages.
//
// Messages are value types and message lists are treated as immutable
// snapshots: streaming updates build a new list with a new last element
// instead of mutating shared state in place. The conversation package relies
// on this to hand consistent snapshots to both the renderer and the session
// store.
//
// The package also carries the content splitter that separates a model
// response into its reasoning block and visible answer while the response is
// still streaming.
package model
