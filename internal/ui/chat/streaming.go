// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for the genz TUI.
//
// This file implements streaming optimization for smooth, flicker-free
// rendering while a response streams in. Each commit from the turn
// orchestrator carries a full transcript snapshot that supersedes the
// previous one, so the buffer coalesces: only the newest snapshot is
// kept, and it is drained at a capped frame rate.
package chat

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/genz-tui/internal/model"
)

// =============================================================================
// SNAPSHOT BUFFER
// =============================================================================

// SnapshotBuffer coalesces transcript snapshots for efficient rendering.
// Snapshots are written from the streaming goroutine and drained by the
// main Bubble Tea loop at most once per frame interval.
//
// Draining more often than ~30fps causes flicker and wasted CPU when
// chunks arrive quickly; coalescing is lossless because every snapshot
// contains the whole transcript.
//
// Thread-safety: all operations are protected by a mutex since commits
// happen in a goroutine while rendering happens in the main loop.
type SnapshotBuffer struct {
	mu        sync.Mutex
	latest    []model.Message
	hasLatest bool
	coalesced int
	lastDrain time.Time

	// Configuration
	maxFPS      int           // Max frames per second (default: 30)
	minDrainGap time.Duration // Min time between drains (1000/maxFPS)
}

// NewSnapshotBuffer creates a snapshot buffer with the default 30fps cap.
func NewSnapshotBuffer() *SnapshotBuffer {
	const defaultMaxFPS = 30

	return &SnapshotBuffer{
		maxFPS:      defaultMaxFPS,
		minDrainGap: time.Duration(1000/defaultMaxFPS) * time.Millisecond,
		lastDrain:   time.Now(),
	}
}

// NewSnapshotBufferWithFPS creates a snapshot buffer with a custom frame cap.
func NewSnapshotBufferWithFPS(maxFPS int) *SnapshotBuffer {
	if maxFPS <= 0 || maxFPS > 60 {
		maxFPS = 30
	}
	return &SnapshotBuffer{
		maxFPS:      maxFPS,
		minDrainGap: time.Duration(1000/maxFPS) * time.Millisecond,
		lastDrain:   time.Now(),
	}
}

// Write stores a snapshot, replacing any undrained one.
// Called from the streaming goroutine; the snapshot is already a copy
// owned by the caller, so it is stored as-is.
func (sb *SnapshotBuffer) Write(messages []model.Message) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.latest = messages
	sb.hasLatest = true
	sb.coalesced++
}

// Drain returns the newest snapshot if the frame interval has elapsed.
// Returns (snapshot, true) on a drain, (nil, false) otherwise.
func (sb *SnapshotBuffer) Drain() ([]model.Message, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.hasLatest || time.Since(sb.lastDrain) < sb.minDrainGap {
		return nil, false
	}
	return sb.takeLocked(), true
}

// ForceDrain returns the newest snapshot regardless of the frame interval.
// Use when a turn completes so the final state always renders.
func (sb *SnapshotBuffer) ForceDrain() ([]model.Message, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.hasLatest {
		return nil, false
	}
	return sb.takeLocked(), true
}

// takeLocked extracts the pending snapshot. Caller must hold the lock.
func (sb *SnapshotBuffer) takeLocked() []model.Message {
	snap := sb.latest
	sb.latest = nil
	sb.hasLatest = false
	sb.coalesced = 0
	sb.lastDrain = time.Now()
	return snap
}

// Reset clears the buffer without draining.
// Use when canceling a turn or loading a different session.
func (sb *SnapshotBuffer) Reset() {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.latest = nil
	sb.hasLatest = false
	sb.coalesced = 0
	sb.lastDrain = time.Now()
}

// Pending returns how many commits have coalesced since the last drain.
func (sb *SnapshotBuffer) Pending() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.coalesced
}

// =============================================================================
// STREAMING TICK COMMAND
// =============================================================================

// streamTickCmd creates a tea.Cmd that emits StreamTickMsg at ~30fps,
// matching the buffer's drain interval.
func streamTickCmd() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg {
		return StreamTickMsg{Time: t}
	})
}
