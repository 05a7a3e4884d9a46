// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"log/slog"
	"time"

	"github.com/jeranaias/genz-tui/internal/model"
)

// =============================================================================
// SESSION PROJECTOR
// =============================================================================

// SessionWriter persists one session snapshot. *storage.SessionStore
// satisfies it.
type SessionWriter interface {
	Upsert(model.Session) error
}

// Projector mirrors the reconciled message list into the session store on
// every commit. It performs no durable I/O itself; the writer owns that.
type Projector struct {
	writer SessionWriter
	logger *slog.Logger
}

// NewProjector creates a projector writing through the given store.
func NewProjector(writer SessionWriter, logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Projector{writer: writer, logger: logger}
}

// Project replaces the session's messages with the given snapshot, bumps
// its modification time, and persists it. A session without an id has not
// been minted yet and is returned untouched. A persistence failure is
// logged, never propagated: losing a write must not abort the turn that
// produced it.
func (p *Projector) Project(sess model.Session, messages []model.Message) model.Session {
	if sess.ID == "" {
		return sess
	}

	sess.Messages = model.CloneMessages(messages)
	sess.LastModified = time.Now()

	if p.writer != nil {
		if err := p.writer.Upsert(sess); err != nil {
			p.logger.Warn("session write failed", "session_id", sess.ID, "error", err)
		}
	}

	return sess
}
