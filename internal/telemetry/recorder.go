// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/jeranaias/genz-tui/internal/conversation"
	"github.com/jeranaias/genz-tui/internal/genai"
)

// =============================================================================
// RECORDING GENERATOR
// =============================================================================

// RecordingGenerator wraps a Generator and logs one TurnRecord per chat
// or image turn. Recording failures are logged and never surface to the
// caller; telemetry must not break a conversation.
type RecordingGenerator struct {
	gen    conversation.Generator
	log    *TurnLog
	logger *slog.Logger
}

// NewRecordingGenerator wraps gen so its turns land in log.
func NewRecordingGenerator(gen conversation.Generator, log *TurnLog, logger *slog.Logger) *RecordingGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordingGenerator{gen: gen, log: log, logger: logger}
}

// ChatStream streams through the wrapped generator while counting chunks,
// response runes and grounding.
func (r *RecordingGenerator) ChatStream(ctx context.Context, req genai.ChatRequest, callback genai.StreamCallback) error {
	start := time.Now()
	var chunkCount, responseRunes int
	var grounded bool

	err := r.gen.ChatStream(ctx, req, func(chunk genai.DecodedChunk) {
		chunkCount++
		responseRunes += utf8.RuneCountInString(chunk.Text)
		if !chunk.Grounding.IsEmpty() {
			grounded = true
		}
		callback(chunk)
	})

	r.record(TurnRecord{
		ModelID:       req.ModelID,
		Kind:          KindChat,
		PromptRunes:   utf8.RuneCountInString(req.Prompt),
		ResponseRunes: responseRunes,
		ChunkCount:    chunkCount,
		Grounded:      grounded,
		Success:       err == nil,
		ErrorText:     errText(err),
		Duration:      time.Since(start),
	})
	return err
}

// GenerateImage generates through the wrapped generator and records the turn.
func (r *RecordingGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	image, err := r.gen.GenerateImage(ctx, prompt)

	r.record(TurnRecord{
		Kind:        KindImage,
		PromptRunes: utf8.RuneCountInString(prompt),
		Success:     err == nil,
		ErrorText:   errText(err),
		Duration:    time.Since(start),
	})
	return image, err
}

// EnhancePrompt passes through unrecorded; it is a best-effort helper,
// not a turn.
func (r *RecordingGenerator) EnhancePrompt(ctx context.Context, prompt string) string {
	return r.gen.EnhancePrompt(ctx, prompt)
}

func (r *RecordingGenerator) record(rec TurnRecord) {
	if r.log == nil {
		return
	}
	if err := r.log.Record(rec); err != nil {
		r.logger.Warn("failed to record turn", "error", err)
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
