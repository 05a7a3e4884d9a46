// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/genz-tui/internal/genai"
	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/model"
)

func streamingTurn() []model.Message {
	return []model.Message{
		model.NewUserMessage("question", nil),
		model.NewModelPlaceholder(false),
	}
}

func grounding() *genai.GroundingMetadata {
	return &genai.GroundingMetadata{
		GroundingChunks: []genai.GroundingChunk{
			{Web: &genai.WebSource{URI: "https://example.com", Title: "Example"}},
		},
	}
}

func TestApplyChunkAppendsText(t *testing.T) {
	r := NewReconciler(i18n.LangEnglish)
	msgs := streamingTurn()

	msgs, committed := r.ApplyChunk(msgs, genai.DecodedChunk{Text: "Hello"})
	if !committed {
		t.Fatal("text chunk not committed")
	}
	msgs, committed = r.ApplyChunk(msgs, genai.DecodedChunk{Text: ", world"})
	if !committed {
		t.Fatal("second text chunk not committed")
	}

	last, _ := model.LastMessage(msgs)
	if last.Text != "Hello, world" {
		t.Errorf("Text = %q, want %q", last.Text, "Hello, world")
	}
	if !last.IsStreaming {
		t.Error("IsStreaming cleared before finalize")
	}
}

func TestApplyChunkCopyOnWrite(t *testing.T) {
	r := NewReconciler(i18n.LangEnglish)
	before := streamingTurn()

	after, committed := r.ApplyChunk(before, genai.DecodedChunk{Text: "delta"})
	if !committed {
		t.Fatal("not committed")
	}

	// The prior snapshot must be untouched.
	if before[len(before)-1].Text != "" {
		t.Errorf("prior snapshot mutated: %q", before[len(before)-1].Text)
	}
	if after[len(after)-1].Text != "delta" {
		t.Errorf("new snapshot Text = %q", after[len(after)-1].Text)
	}
}

func TestApplyChunkMetadataOnlyCommits(t *testing.T) {
	r := NewReconciler(i18n.LangEnglish)
	msgs := streamingTurn()
	md := grounding()

	msgs, committed := r.ApplyChunk(msgs, genai.DecodedChunk{Grounding: md})
	if !committed {
		t.Fatal("metadata-only chunk must count as progress")
	}

	last, _ := model.LastMessage(msgs)
	if last.Text != "" {
		t.Errorf("Text = %q, want empty", last.Text)
	}
	if last.Grounding == nil || len(last.Grounding.GroundingChunks) != 1 {
		t.Error("grounding not attached")
	}
}

func TestApplyChunkGroundingAttachedAtMostOnce(t *testing.T) {
	r := NewReconciler(i18n.LangEnglish)
	msgs := streamingTurn()

	first := grounding()
	msgs, _ = r.ApplyChunk(msgs, genai.DecodedChunk{Grounding: first})

	second := &genai.GroundingMetadata{
		GroundingChunks: []genai.GroundingChunk{
			{Web: &genai.WebSource{URI: "https://other.example", Title: "Other"}},
		},
	}
	msgs, committed := r.ApplyChunk(msgs, genai.DecodedChunk{Grounding: second})
	if committed {
		t.Error("duplicate metadata-only chunk should not commit")
	}

	last, _ := model.LastMessage(msgs)
	if last.Grounding.GroundingChunks[0].Web.URI != "https://example.com" {
		t.Error("first grounding was overwritten")
	}
}

func TestApplyChunkIgnoresEmptyAndMisdirected(t *testing.T) {
	r := NewReconciler(i18n.LangEnglish)

	// Empty chunk.
	msgs := streamingTurn()
	if _, committed := r.ApplyChunk(msgs, genai.DecodedChunk{}); committed {
		t.Error("empty chunk committed")
	}

	// Empty grounding object is treated as absent.
	if _, committed := r.ApplyChunk(msgs, genai.DecodedChunk{Grounding: &genai.GroundingMetadata{}}); committed {
		t.Error("empty grounding committed")
	}

	// Last message is a user turn.
	userOnly := []model.Message{model.NewUserMessage("hi", nil)}
	if _, committed := r.ApplyChunk(userOnly, genai.DecodedChunk{Text: "x"}); committed {
		t.Error("chunk applied to a user message")
	}

	// Empty list.
	if _, committed := r.ApplyChunk(nil, genai.DecodedChunk{Text: "x"}); committed {
		t.Error("chunk applied to empty list")
	}
}

func TestAttachImage(t *testing.T) {
	r := NewReconciler(i18n.LangIndonesian)
	msgs := []model.Message{
		model.NewUserMessage("a cat", nil),
		model.NewModelPlaceholder(true),
	}

	msgs = r.AttachImage(msgs, "data:image/png;base64,AAAA")
	last, _ := model.LastMessage(msgs)
	if last.Image != "data:image/png;base64,AAAA" {
		t.Errorf("Image = %q", last.Image)
	}
	if last.Text != "Berikut adalah gambar yang Anda minta:" {
		t.Errorf("Text = %q", last.Text)
	}
}

func TestFinalizeSuccess(t *testing.T) {
	r := NewReconciler(i18n.LangEnglish)
	msgs := streamingTurn()

	msgs = r.FinalizeSuccess(msgs)
	last, _ := model.LastMessage(msgs)
	if last.IsStreaming || last.IsGeneratingImage {
		t.Error("busy flags not cleared")
	}

	// Idempotent, and safe on an empty list.
	msgs = r.FinalizeSuccess(msgs)
	if got := r.FinalizeSuccess(nil); got != nil {
		t.Errorf("FinalizeSuccess(nil) = %v", got)
	}
}

func TestFinalizeErrorStripsLabel(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantIn  string
		wantOut string
	}{
		{
			name:    "protocol label stripped",
			err:     errors.New("API Error: rate limited"),
			wantIn:  "rate limited",
			wantOut: "API Error:",
		},
		{
			name:   "plain message kept",
			err:    errors.New("connection refused"),
			wantIn: "connection refused",
		},
		{
			name:   "nil error gets fallback",
			err:    nil,
			wantIn: "Unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReconciler(i18n.LangEnglish)
			msgs := r.FinalizeError(streamingTurn(), tt.err)

			last, _ := model.LastMessage(msgs)
			if last.IsStreaming || last.IsGeneratingImage {
				t.Error("busy flags not cleared")
			}
			if !strings.Contains(last.Text, tt.wantIn) {
				t.Errorf("Text = %q, missing %q", last.Text, tt.wantIn)
			}
			if tt.wantOut != "" && strings.Contains(last.Text, tt.wantOut) {
				t.Errorf("Text = %q, should not contain %q", last.Text, tt.wantOut)
			}
			if !strings.Contains(last.Text, "⚠️ **Failed**") {
				t.Errorf("Text = %q, missing failure header", last.Text)
			}
		})
	}
}

func TestFinalizeErrorLocalized(t *testing.T) {
	r := NewReconciler(i18n.LangIndonesian)
	msgs := r.FinalizeError(streamingTurn(), errors.New("boom"))

	last, _ := model.LastMessage(msgs)
	if !strings.Contains(last.Text, "⚠️ **Gagal**") {
		t.Errorf("Text = %q, missing localized header", last.Text)
	}
}
