// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package genai provides the HTTP client for the GenzAI model service.
//
// The service exposes three endpoints:
//
//   - POST /api/chat     chunked streaming chat; the response body is a
//     sequence of newline-delimited JSON records, each carrying an optional
//     text delta and optional grounding (citation) metadata
//   - POST /api/image    single request/response image generation returning a
//     base64 data URI
//   - POST /api/enhance  best-effort prompt enhancement; failures fall back
//     to the original prompt and never abort a turn
//
// StreamReader handles the line framing of the chat stream: complete lines
// are parsed as records, a partial trailing line is carried across reads, and
// a line left unterminated when the stream ends is dropped. Individually
// malformed lines are skipped with a warning; only transport failures abort
// the stream.
package genai
