// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view for the genz TUI.
//
// This file defines the Bubble Tea message types used by the chat view:
//   - Streaming: frame ticks that drain the snapshot buffer
//   - Turn lifecycle: start and completion of a send
//   - Session: loading a saved conversation
//   - Config: picking up edits to the config file while running
package chat

import (
	"time"

	"github.com/jeranaias/genz-tui/internal/config"
	"github.com/jeranaias/genz-tui/internal/model"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamTickMsg drives the 30fps drain of the snapshot buffer while a
// turn is streaming.
type StreamTickMsg struct {
	Time time.Time
}

// TurnDoneMsg signals that a send has finished, successfully or not.
// The orchestrator has already reconciled the error into the transcript,
// so Err is only used to decide status display.
type TurnDoneMsg struct {
	Err error
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionLoadedMsg delivers a saved session picked outside the chat view.
type SessionLoadedMsg struct {
	Session model.Session
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a configuration that was reloaded from disk
// while the TUI is running.
type ConfigReloadedMsg struct {
	Config *config.Config
}
