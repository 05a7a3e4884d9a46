// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

func TestSplitThinkingComplete(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		reasoning string
		visible   string
	}{
		{
			name:      "simple block then answer",
			input:     "<thinking>plan the reply</thinking>Here is the answer.",
			reasoning: "plan the reply",
			visible:   "Here is the answer.",
		},
		{
			name:      "uppercase tags",
			input:     "<THINKING>shouty</THINKING>answer",
			reasoning: "shouty",
			visible:   "answer",
		},
		{
			name:      "whitespace inside tags",
			input:     "< thinking >padded< / thinking >done",
			reasoning: "padded",
			visible:   "done",
		},
		{
			name:      "multiline reasoning",
			input:     "<thinking>line one\nline two</thinking>\n\nanswer",
			reasoning: "line one\nline two",
			visible:   "answer",
		},
		{
			name:      "text before and after block",
			input:     "prefix <thinking>mid</thinking> suffix",
			reasoning: "mid",
			visible:   "prefix  suffix",
		},
		{
			name:      "only first complete region honored",
			input:     "<thinking>one</thinking>a<thinking>two</thinking>b",
			reasoning: "one",
			visible:   "a<thinking>two</thinking>b",
		},
		{
			name:      "empty block",
			input:     "<thinking></thinking>answer",
			reasoning: "",
			visible:   "answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitThinking(tt.input)
			if !got.HasReasoning {
				t.Fatal("HasReasoning = false, want true")
			}
			if got.Reasoning != tt.reasoning {
				t.Errorf("Reasoning = %q, want %q", got.Reasoning, tt.reasoning)
			}
			if got.Visible != tt.visible {
				t.Errorf("Visible = %q, want %q", got.Visible, tt.visible)
			}
		})
	}
}

func TestSplitThinkingOpenTag(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		reasoning string
		visible   string
	}{
		{
			name:      "open tag only",
			input:     "<thinking>still going",
			reasoning: "still going",
			visible:   "",
		},
		{
			name:      "open tag with leading text",
			input:     "intro <thinking>partial",
			reasoning: "partial",
			visible:   "intro",
		},
		{
			name:      "bare open tag",
			input:     "<thinking>",
			reasoning: "",
			visible:   "",
		},
		{
			name:      "partial closing tag still open",
			input:     "<thinking>almost</think",
			reasoning: "almost</think",
			visible:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitThinking(tt.input)
			if !got.HasReasoning {
				t.Fatal("HasReasoning = false, want true")
			}
			if got.Reasoning != tt.reasoning {
				t.Errorf("Reasoning = %q, want %q", got.Reasoning, tt.reasoning)
			}
			if got.Visible != tt.visible {
				t.Errorf("Visible = %q, want %q", got.Visible, tt.visible)
			}
		})
	}
}

func TestSplitThinkingNoTag(t *testing.T) {
	tests := []string{
		"plain answer",
		"",
		"mentions thinking without tags",
		"almost a tag <thinkin>nope</thinkin>",
	}

	for _, input := range tests {
		got := SplitThinking(input)
		if got.HasReasoning {
			t.Errorf("SplitThinking(%q).HasReasoning = true, want false", input)
		}
		if got.Visible != input {
			t.Errorf("SplitThinking(%q).Visible = %q, want input unchanged", input, got.Visible)
		}
	}
}

// TestSplitThinkingStreaming simulates the splitter being re-run on every
// accumulated prefix of a streamed response: it must never surface tag text
// in the visible segment at any point, and reasoning must be monotonic
// until the block closes.
func TestSplitThinkingStreaming(t *testing.T) {
	full := "<thinking>analyze the question carefully</thinking>The answer is 42."

	var prevReasoning string
	closed := false
	for i := 0; i <= len(full); i++ {
		got := SplitThinking(full[:i])
		if strings.Contains(strings.ToLower(got.Visible), "<thinking>") {
			t.Fatalf("prefix %d: visible leaked tag text: %q", i, got.Visible)
		}
		if closed {
			continue
		}
		if strings.Contains(full[:i], "</thinking>") {
			closed = true
			continue
		}
		if got.HasReasoning {
			if !strings.HasPrefix(got.Reasoning, prevReasoning) {
				t.Fatalf("prefix %d: reasoning shrank from %q to %q", i, prevReasoning, got.Reasoning)
			}
			prevReasoning = got.Reasoning
		}
	}

	final := SplitThinking(full)
	if final.Reasoning != "analyze the question carefully" {
		t.Errorf("final reasoning = %q", final.Reasoning)
	}
	if final.Visible != "The answer is 42." {
		t.Errorf("final visible = %q", final.Visible)
	}
}

func TestSplitThinkingIdempotent(t *testing.T) {
	input := "<thinking>reason</thinking>answer"
	first := SplitThinking(input)
	second := SplitThinking(input)
	if first != second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestStripThinking(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single block removed",
			input: "<thinking>gone</thinking>kept",
			want:  "kept",
		},
		{
			name:  "multiple blocks removed",
			input: "<thinking>a</thinking>x<thinking>b</thinking>y",
			want:  "xy",
		},
		{
			name:  "no block unchanged",
			input: "plain text",
			want:  "plain text",
		},
		{
			name:  "open tag left alone",
			input: "<thinking>unterminated",
			want:  "<thinking>unterminated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripThinking(tt.input); got != tt.want {
				t.Errorf("StripThinking(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
