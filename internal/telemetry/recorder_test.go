// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/jeranaias/genz-tui/internal/genai"
)

type scriptedGenerator struct {
	chunks  []genai.DecodedChunk
	chatErr error
}

func (g *scriptedGenerator) ChatStream(ctx context.Context, req genai.ChatRequest, callback genai.StreamCallback) error {
	for _, c := range g.chunks {
		callback(c)
	}
	return g.chatErr
}

func (g *scriptedGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "data:image/png;base64,xxxx", nil
}

func (g *scriptedGenerator) EnhancePrompt(ctx context.Context, prompt string) string {
	return prompt
}

func TestRecordingGeneratorChat(t *testing.T) {
	log := testLog(t)
	gen := &scriptedGenerator{chunks: []genai.DecodedChunk{
		{Text: "halo"},
		{Text: " dunia", Grounding: &genai.GroundingMetadata{
			GroundingChunks: []genai.GroundingChunk{{Web: &genai.WebSource{URI: "https://x"}}},
		}},
	}}
	rec := NewRecordingGenerator(gen, log, nil)

	var got string
	err := rec.ChatStream(context.Background(), genai.ChatRequest{ModelID: "gemini-2.5-flash", Prompt: "hai"}, func(c genai.DecodedChunk) {
		got += c.Text
	})
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}
	if got != "halo dunia" {
		t.Errorf("chunks not passed through, got %q", got)
	}

	records, err := log.Recent(1)
	if err != nil || len(records) != 1 {
		t.Fatalf("Recent = %v, %v", records, err)
	}
	r := records[0]
	if r.Kind != KindChat || r.ModelID != "gemini-2.5-flash" {
		t.Errorf("wrong record identity: %+v", r)
	}
	if r.ChunkCount != 2 || !r.Grounded || !r.Success {
		t.Errorf("wrong counters: %+v", r)
	}
	if r.ResponseRunes != len([]rune("halo dunia")) {
		t.Errorf("ResponseRunes = %d", r.ResponseRunes)
	}
}

func TestRecordingGeneratorChatFailure(t *testing.T) {
	log := testLog(t)
	gen := &scriptedGenerator{chatErr: errors.New("API Error: boom")}
	rec := NewRecordingGenerator(gen, log, nil)

	err := rec.ChatStream(context.Background(), genai.ChatRequest{ModelID: "m"}, func(genai.DecodedChunk) {})
	if err == nil {
		t.Fatal("error should pass through")
	}

	records, _ := log.Recent(1)
	if len(records) != 1 || records[0].Success || records[0].ErrorText == "" {
		t.Errorf("failure not recorded: %+v", records)
	}
}

func TestRecordingGeneratorImage(t *testing.T) {
	log := testLog(t)
	rec := NewRecordingGenerator(&scriptedGenerator{}, log, nil)

	if _, err := rec.GenerateImage(context.Background(), "a cat"); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	records, _ := log.Recent(1)
	if len(records) != 1 || records[0].Kind != KindImage || !records[0].Success {
		t.Errorf("image turn not recorded: %+v", records)
	}
}

func TestRecordingGeneratorNilLog(t *testing.T) {
	rec := NewRecordingGenerator(&scriptedGenerator{}, nil, nil)
	// Recording into a nil log must be a no-op, not a panic.
	if _, err := rec.GenerateImage(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}
}
