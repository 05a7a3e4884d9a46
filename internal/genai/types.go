// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package genai provides the HTTP client for the GenzAI model service.
package genai

// =============================================================================
// GROUNDING METADATA
// =============================================================================

// GroundingMetadata holds citation data attached to a streamed response.
// It can arrive on any record of the stream, with or without a text delta,
// and is attached to at most one message per turn.
type GroundingMetadata struct {
	// WebSearchQueries are the search queries the model issued.
	WebSearchQueries []string `json:"webSearchQueries,omitempty"`

	// GroundingChunks are the sources backing the response.
	GroundingChunks []GroundingChunk `json:"groundingChunks,omitempty"`
}

// GroundingChunk is a single grounding source.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// WebSource is a web citation.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Sources returns the web sources with a non-empty URI.
func (g *GroundingMetadata) Sources() []WebSource {
	if g == nil {
		return nil
	}
	var out []WebSource
	for _, c := range g.GroundingChunks {
		if c.Web != nil && c.Web.URI != "" {
			out = append(out, *c.Web)
		}
	}
	return out
}

// IsEmpty returns true when the metadata carries no usable content.
func (g *GroundingMetadata) IsEmpty() bool {
	return g == nil || (len(g.WebSearchQueries) == 0 && len(g.GroundingChunks) == 0)
}

// =============================================================================
// DECODED CHUNK
// =============================================================================

// DecodedChunk is one parsed record of the chat stream: a text delta and/or
// grounding metadata. It is transient and never persisted.
type DecodedChunk struct {
	Text      string
	Grounding *GroundingMetadata
}

// IsEmpty returns true when the chunk carries neither text nor metadata.
// Empty chunks are valid protocol records and are simply not progress.
func (c DecodedChunk) IsEmpty() bool {
	return c.Text == "" && c.Grounding.IsEmpty()
}

// streamRecord is the wire shape of one line of the chat stream.
type streamRecord struct {
	Text              string             `json:"text"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// =============================================================================
// REQUEST / RESPONSE TYPES
// =============================================================================

// Attachment is a user-supplied binary payload sent with the current turn.
// Attachments are never replayed into history; only the current turn's
// attachment travels with a request.
type Attachment struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

// HistoryPart is one text part of a history turn.
type HistoryPart struct {
	Text string `json:"text"`
}

// HistoryTurn is one prior conversation turn, text only.
type HistoryTurn struct {
	Role  string        `json:"role"`
	Parts []HistoryPart `json:"parts"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	ModelID    string        `json:"modelId"`
	Prompt     string        `json:"prompt"`
	History    []HistoryTurn `json:"history"`
	Attachment *Attachment   `json:"attachment,omitempty"`
	Language   string        `json:"language,omitempty"`
}

// imageRequest is the body of POST /api/image.
type imageRequest struct {
	Prompt string `json:"prompt"`
}

// imageResponse is the success body of POST /api/image.
type imageResponse struct {
	Image string `json:"image"` // mime-prefixed base64 data URI
}

// enhanceRequest is the body of POST /api/enhance.
type enhanceRequest struct {
	Prompt string `json:"prompt"`
}

// enhanceResponse is the body of POST /api/enhance.
type enhanceResponse struct {
	EnhancedText string `json:"enhancedText"`
}

// errorResponse is the error body the service returns on non-2xx statuses.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
