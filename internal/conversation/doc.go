// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation drives a chat turn from user input to a finalized
// model response.
//
// Three collaborators share the work:
//
//   - Reconciler: applies decoded stream chunks to the message list with
//     copy-on-write semantics and owns every terminal transition
//   - Projector: mirrors each reconciled snapshot into the session store
//   - Orchestrator: the per-turn state machine tying input, generation
//     mode, streaming, and finalization together
//
// The message list is single-writer: only one turn runs at a time, and
// every observable change is a fresh snapshot rather than a mutation of
// a previously handed-out slice.
package conversation
