// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for the genz TUI.
//
// The view drives a turn orchestrator in a background command: message
// snapshots committed during streaming land in a SnapshotBuffer, and a
// 30fps tick drains the buffer into the viewport so rendering stays
// smooth no matter how fast chunks arrive.
package chat
