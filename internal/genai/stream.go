// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package genai provides the HTTP client for the GenzAI model service.
package genai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
)

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader decodes the newline-delimited JSON chat stream into
// DecodedChunks. It buffers bytes across arbitrary read boundaries: a record
// split mid-JSON across two reads decodes identically to one delivered whole.
type StreamReader struct {
	reader *bufio.Reader
	logger *slog.Logger

	// PERFORMANCE: strings.Builder avoids quadratic allocations
	accumulator strings.Builder
	chunkCount  int
	skipped     int
}

// NewStreamReader creates a stream reader over a raw response body.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{
		reader: bufio.NewReader(r),
		logger: slog.Default(),
	}
}

// StreamCallback is called once per decoded chunk, in arrival order.
type StreamCallback func(chunk DecodedChunk)

// Process reads the stream to completion, invoking the callback for each
// decoded chunk strictly in the order the records were framed. It returns nil
// on normal end of stream and the transport error otherwise. Each callback
// runs to completion before the next read; there is no parallel decoding.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			chunk, err := s.readChunk()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
			if chunk != nil {
				callback(*chunk)
			}
		}
	}
}

// readChunk reads and parses a single line from the stream.
// Returns (nil, nil) for lines that are skipped (blank or malformed).
func (s *StreamReader) readChunk() (*DecodedChunk, error) {
	line, err := s.reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF {
			// A trailing line with no terminator is dropped, never parsed.
			// The protocol tolerates streams that end mid-record.
			if len(bytes.TrimSpace(line)) > 0 {
				s.logger.Warn("dropping unterminated trailing line",
					"bytes", len(line))
			}
			return nil, io.EOF
		}
		return nil, err
	}

	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, nil
	}

	var record streamRecord
	if err := json.Unmarshal(line, &record); err != nil {
		// Malformed lines are a local protocol hiccup, not a stream failure.
		s.skipped++
		s.logger.Warn("skipping malformed stream record",
			"error", err, "bytes", len(line))
		return nil, nil
	}

	chunk := &DecodedChunk{
		Text:      record.Text,
		Grounding: record.GroundingMetadata,
	}
	if chunk.Text != "" {
		s.accumulator.WriteString(chunk.Text)
	}
	s.chunkCount++

	return chunk, nil
}

// Accumulated returns all text received so far.
func (s *StreamReader) Accumulated() string {
	return s.accumulator.String()
}

// ChunkCount returns the number of records decoded so far.
func (s *StreamReader) ChunkCount() int {
	return s.chunkCount
}

// SkippedCount returns the number of malformed records skipped.
func (s *StreamReader) SkippedCount() int {
	return s.skipped
}
