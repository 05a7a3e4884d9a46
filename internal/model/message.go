// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for sessions and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jeranaias/genz-tui/internal/genai"
	"github.com/jeranaias/genz-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleModel:
		return "GenzAI"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single conversational turn.
//
// Role and Timestamp are immutable once created. Text accumulates
// monotonically for model turns while streaming and is frozen on finalize.
// Grounding is attached at most once, at any point during the stream.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Text string `json:"text"`

	// Attachment is a user-supplied payload, set once at creation for user
	// turns only.
	Attachment *genai.Attachment `json:"attachment,omitempty"`

	// Image is a generated data URI, set once, only on model turns produced
	// by the image-generation mode.
	Image string `json:"image,omitempty"`

	// Streaming state. IsStreaming is true from placeholder creation until
	// the turn's terminal event; it becomes false exactly once, on every
	// exit path.
	IsStreaming       bool `json:"isStreaming,omitempty"`
	IsGeneratingImage bool `json:"isGeneratingImage,omitempty"`

	// Grounding holds citation metadata when the model searched the web.
	Grounding *genai.GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// NewUserMessage creates a user turn with an optional attachment.
func NewUserMessage(text string, attachment *genai.Attachment) Message {
	return Message{
		ID:         generateID("msg"),
		Role:       RoleUser,
		Text:       text,
		Attachment: attachment,
		Timestamp:  time.Now(),
	}
}

// NewModelPlaceholder creates the empty model turn that a generation streams
// into. Exactly one of the two streaming flags is set depending on mode.
func NewModelPlaceholder(imageGen bool) Message {
	return Message{
		ID:                generateID("msg"),
		Role:              RoleModel,
		IsStreaming:       !imageGen,
		IsGeneratingImage: imageGen,
		Timestamp:         time.Now(),
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsBusy returns true while a generation is outstanding for this turn.
func (m Message) IsBusy() bool {
	return m.IsStreaming || m.IsGeneratingImage
}

// Preview returns a single-line truncated preview of the message text.
func (m Message) Preview(maxRunes int) string {
	return util.TruncateRunes(util.Flatten(m.Text), maxRunes)
}

// IsEmpty returns true if the message has no content at all.
func (m Message) IsEmpty() bool {
	return m.Text == "" && m.Image == "" && m.Attachment == nil
}

// =============================================================================
// MESSAGE LIST SNAPSHOTS
// =============================================================================

// CloneMessages returns a shallow copy of the list. Messages are value types,
// so the copy can be extended or have its last element replaced without
// touching the snapshot it came from.
func CloneMessages(messages []Message) []Message {
	out := make([]Message, len(messages))
	copy(out, messages)
	return out
}

// LastMessage returns the most recent message and true, or a zero Message and
// false for an empty list.
func LastMessage(messages []Message) (Message, bool) {
	if len(messages) == 0 {
		return Message{}, false
	}
	return messages[len(messages)-1], true
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique id with the given prefix.
func generateID(prefix string) string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return prefix + "_" + hex.EncodeToString(bytes)
}
