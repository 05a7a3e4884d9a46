// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package genai

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// chunkedReader delivers its payload in fixed-size reads to exercise records
// split across arbitrary boundaries.
type chunkedReader struct {
	data []byte
	size int
	pos  int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	end := r.pos + r.size
	if end > len(r.data) {
		end = len(r.data)
	}
	n := copy(p, r.data[r.pos:end])
	r.pos += n
	return n, nil
}

// failingReader returns some data and then a transport error.
type failingReader struct {
	data string
	err  error
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.done {
		r.done = true
		return copy(p, r.data), nil
	}
	return 0, r.err
}

func collectChunks(t *testing.T, r io.Reader) []DecodedChunk {
	t.Helper()
	var got []DecodedChunk
	err := NewStreamReader(r).Process(context.Background(), func(c DecodedChunk) {
		got = append(got, c)
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	return got
}

// =============================================================================
// LINE FRAMING TESTS
// =============================================================================

func TestStreamReader_BasicSequence(t *testing.T) {
	input := `{"text":"Hel"}` + "\n" + `{"text":"lo"}` + "\n"

	got := collectChunks(t, strings.NewReader(input))

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Text != "Hel" || got[1].Text != "lo" {
		t.Errorf("chunks out of order or corrupted: %+v", got)
	}
}

func TestStreamReader_ArbitraryBoundaries(t *testing.T) {
	// The same payload must decode identically no matter how the transport
	// slices it, including splits mid-JSON-object.
	payload := `{"text":"alpha"}` + "\n" +
		`{"groundingMetadata":{"webSearchQueries":["q"]}}` + "\n" +
		`{"text":"beta"}` + "\n"

	whole := collectChunks(t, strings.NewReader(payload))

	for _, size := range []int{1, 2, 3, 7, 16} {
		got := collectChunks(t, &chunkedReader{data: []byte(payload), size: size})
		if len(got) != len(whole) {
			t.Fatalf("size %d: expected %d chunks, got %d", size, len(whole), len(got))
		}
		for i := range got {
			if got[i].Text != whole[i].Text {
				t.Errorf("size %d chunk %d: text %q, want %q", size, i, got[i].Text, whole[i].Text)
			}
		}
	}

	if whole[1].Grounding == nil || len(whole[1].Grounding.WebSearchQueries) != 1 {
		t.Errorf("metadata-only record lost its grounding: %+v", whole[1])
	}
}

func TestStreamReader_TrailingUnterminatedLineDropped(t *testing.T) {
	input := `{"text":"kept"}` + "\n" + `{"text":"dropp` // no terminator, cut mid-record

	got := collectChunks(t, strings.NewReader(input))

	if len(got) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(got))
	}
	if got[0].Text != "kept" {
		t.Errorf("chunk text = %q, want %q", got[0].Text, "kept")
	}
}

func TestStreamReader_MalformedLinesSkipped(t *testing.T) {
	input := `{"text":"a"}` + "\n" +
		`this is not json` + "\n" +
		"\n" + // blank lines are also skipped
		`{"text":"b"}` + "\n"

	reader := NewStreamReader(strings.NewReader(input))
	var got []DecodedChunk
	if err := reader.Process(context.Background(), func(c DecodedChunk) {
		got = append(got, c)
	}); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if len(got) != 2 || got[0].Text != "a" || got[1].Text != "b" {
		t.Fatalf("malformed line aborted or corrupted the sequence: %+v", got)
	}
	if reader.SkippedCount() != 1 {
		t.Errorf("SkippedCount() = %d, want 1", reader.SkippedCount())
	}
	if reader.Accumulated() != "ab" {
		t.Errorf("Accumulated() = %q, want %q", reader.Accumulated(), "ab")
	}
}

func TestStreamReader_EmptyStream(t *testing.T) {
	got := collectChunks(t, strings.NewReader(""))
	if len(got) != 0 {
		t.Errorf("expected no chunks from empty stream, got %d", len(got))
	}
}

// =============================================================================
// FAILURE PROPAGATION TESTS
// =============================================================================

func TestStreamReader_TransportErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection reset")
	r := &failingReader{data: `{"text":"partial"}` + "\n", err: wantErr}

	var got []DecodedChunk
	err := NewStreamReader(r).Process(context.Background(), func(c DecodedChunk) {
		got = append(got, c)
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("Process error = %v, want %v", err, wantErr)
	}
	// Chunks decoded before the failure are still delivered.
	if len(got) != 1 || got[0].Text != "partial" {
		t.Errorf("chunks before failure lost: %+v", got)
	}
}

func TestStreamReader_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStreamReader(strings.NewReader(`{"text":"x"}`+"\n")).Process(ctx, func(DecodedChunk) {
		t.Error("callback should not run after cancellation")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Process error = %v, want context.Canceled", err)
	}
}
