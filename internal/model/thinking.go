// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for sessions and messages.
package model

import (
	"regexp"
	"strings"
)

// The reasoning model is instructed to open every response with a
// <thinking>...</thinking> block. The splitter lets the UI render the
// reasoning live while it streams and withhold the visible answer until it
// actually begins, without ever flashing the raw delimiter tags.

var (
	// completeThinkingRe matches a whole delimited reasoning region.
	// Case-insensitive, tolerant of whitespace inside the tag brackets,
	// non-greedy so only the first region is captured.
	completeThinkingRe = regexp.MustCompile(`(?is)<\s*thinking\s*>(.*?)<\s*/\s*thinking\s*>`)

	// openThinkingRe matches a bare opening tag (closing tag not yet seen).
	openThinkingRe = regexp.MustCompile(`(?i)<\s*thinking\s*>`)
)

// =============================================================================
// CONTENT SPLITTER
// =============================================================================

// ThinkingSplit is the result of splitting accumulated response text.
type ThinkingSplit struct {
	// Reasoning is the model's analysis text. Meaningful only when
	// HasReasoning is true; it grows while the block is still open.
	Reasoning string

	// HasReasoning reports whether an opening tag has been seen at all.
	HasReasoning bool

	// Visible is the answer text shown to the user, never containing tags.
	Visible string
}

// SplitThinking splits the full accumulated response text into its reasoning
// and visible segments. It is pure and idempotent: it is called on every
// incremental update with the whole text so far and keeps no state between
// calls.
//
// Three cases, checked in order:
//  1. a complete <thinking>...</thinking> region: reasoning is the inner
//     text, visible is the text with the entire region removed and trimmed;
//     only the first complete region is honored
//  2. an opening tag without its closing tag (mid-stream): reasoning is
//     everything after the tag, visible everything before, both trimmed
//  3. no tag: no reasoning, visible is the input unchanged
func SplitThinking(fullText string) ThinkingSplit {
	if loc := completeThinkingRe.FindStringSubmatchIndex(fullText); loc != nil {
		return ThinkingSplit{
			Reasoning:    strings.TrimSpace(fullText[loc[2]:loc[3]]),
			HasReasoning: true,
			Visible:      strings.TrimSpace(fullText[:loc[0]] + fullText[loc[1]:]),
		}
	}

	if loc := openThinkingRe.FindStringIndex(fullText); loc != nil {
		return ThinkingSplit{
			Reasoning:    strings.TrimSpace(fullText[loc[1]:]),
			HasReasoning: true,
			Visible:      strings.TrimSpace(fullText[:loc[0]]),
		}
	}

	return ThinkingSplit{Visible: fullText}
}

// StripThinking removes every complete reasoning region from text and trims
// the result. Used when replaying history to models that were not prompted
// to reason, so delimiter blocks never leak back into a context window.
func StripThinking(text string) string {
	return strings.TrimSpace(completeThinkingRe.ReplaceAllString(text, ""))
}
