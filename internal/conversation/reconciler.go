// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"strings"

	"github.com/jeranaias/genz-tui/internal/genai"
	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/model"
)

// apiErrorLabel is the transport-level prefix stripped from raw error text
// before it is shown to the user.
const apiErrorLabel = "API Error:"

// =============================================================================
// MESSAGE RECONCILER
// =============================================================================

// Reconciler applies decoded stream events to a message list. Every method
// is copy-on-write: the input slice and its elements are never mutated, and
// each accepted event yields a fresh snapshot safe to hand to the renderer
// and the session projector.
//
// All events target the last message, which during a turn is always the
// model placeholder created by the orchestrator.
type Reconciler struct {
	strings *i18n.Strings
}

// NewReconciler creates a reconciler rendering user-facing notices in the
// given language.
func NewReconciler(lang i18n.Language) *Reconciler {
	return &Reconciler{strings: i18n.Catalog(lang)}
}

// SetLanguage switches the language used for user-facing notices.
func (r *Reconciler) SetLanguage(lang i18n.Language) {
	r.strings = i18n.Catalog(lang)
}

// ApplyChunk merges one decoded chunk into the last message. Text is
// appended; grounding metadata is attached at most once, and a chunk
// carrying only metadata still counts as progress. The second return
// reports whether anything was committed: empty chunks and chunks arriving
// when the last message is not a model turn are ignored.
func (r *Reconciler) ApplyChunk(messages []model.Message, chunk genai.DecodedChunk) ([]model.Message, bool) {
	if chunk.IsEmpty() {
		return messages, false
	}

	last, ok := model.LastMessage(messages)
	if !ok || last.Role != model.RoleModel {
		return messages, false
	}

	next := model.CloneMessages(messages)
	msg := &next[len(next)-1]

	committed := false
	if chunk.Text != "" {
		msg.Text += chunk.Text
		committed = true
	}
	if chunk.Grounding != nil && !chunk.Grounding.IsEmpty() && msg.Grounding == nil {
		msg.Grounding = chunk.Grounding
		committed = true
	}

	if !committed {
		return messages, false
	}
	return next, true
}

// AttachImage records a successful image generation on the last message:
// the image payload plus a fixed confirmation text. Busy flags are left
// for FinalizeSuccess, which runs on every exit path.
func (r *Reconciler) AttachImage(messages []model.Message, image string) []model.Message {
	last, ok := model.LastMessage(messages)
	if !ok || last.Role != model.RoleModel {
		return messages
	}

	next := model.CloneMessages(messages)
	msg := &next[len(next)-1]
	msg.Image = image
	msg.Text = r.strings.ImageReady
	return next
}

// FinalizeSuccess clears the busy flags on the last message. It is
// idempotent and tolerant of any message list shape so the orchestrator
// can run it unconditionally.
func (r *Reconciler) FinalizeSuccess(messages []model.Message) []model.Message {
	if len(messages) == 0 {
		return messages
	}

	next := model.CloneMessages(messages)
	msg := &next[len(next)-1]
	msg.IsStreaming = false
	msg.IsGeneratingImage = false
	return next
}

// FinalizeError replaces the last message's text with a formatted failure
// notice and clears the busy flags. The transport's "API Error:" label is
// stripped from the raw message before display.
func (r *Reconciler) FinalizeError(messages []model.Message, err error) []model.Message {
	if len(messages) == 0 {
		return messages
	}

	raw := "Unknown error"
	if err != nil && err.Error() != "" {
		raw = err.Error()
	}
	display := strings.TrimSpace(strings.Replace(raw, apiErrorLabel, "", 1))

	next := model.CloneMessages(messages)
	msg := &next[len(next)-1]
	if msg.Role == model.RoleModel {
		msg.Text = "⚠️ **" + r.strings.FailureHeader + "**\n\n" + display
	}
	msg.IsStreaming = false
	msg.IsGeneratingImage = false
	return next
}
