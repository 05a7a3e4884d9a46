// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/jeranaias/genz-tui/internal/util"
)

// =============================================================================
// SESSION
// =============================================================================

// DefaultSessionTitle is used when a session has no user text to derive a
// title from.
const DefaultSessionTitle = "New Chat"

// titleMaxRunes caps derived session titles.
const titleMaxRunes = 30

// Session is one conversation: an ordered message list plus identity and
// bookkeeping. Sessions are value types; the store and the projector hand
// out and accept whole snapshots rather than sharing mutable state.
type Session struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Messages     []Message `json:"messages"`
	LastModified time.Time `json:"lastModified"`
}

// NewSession creates an empty session with a fresh identifier and the
// default title. The identifier is minted here, at first use, not when the
// UI merely shows an empty conversation.
func NewSession() Session {
	return Session{
		ID:           generateID("sess"),
		Title:        DefaultSessionTitle,
		LastModified: time.Now(),
	}
}

// DeriveTitle produces a session title from the first user message text:
// the first 30 runes (no ellipsis), or the default title when the text is
// empty.
func DeriveTitle(firstUserText string) string {
	if firstUserText == "" {
		return DefaultSessionTitle
	}
	return util.TruncateRunesNoEllipsis(firstUserText, titleMaxRunes)
}

// Preview returns a single-line summary of the session's latest message,
// for session list rendering.
func (s Session) Preview(maxRunes int) string {
	last, ok := LastMessage(s.Messages)
	if !ok {
		return ""
	}
	return last.Preview(maxRunes)
}

// IsEmpty reports whether the session has no messages yet.
func (s Session) IsEmpty() bool {
	return len(s.Messages) == 0
}
