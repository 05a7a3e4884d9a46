// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// MODEL REGISTRY
// =============================================================================

// ModelInfo describes one selectable generation model.
type ModelInfo struct {
	// ID is the wire identifier sent to the service.
	ID string

	// Name is the display name shown in pickers and headers.
	Name string

	// Description is a one-line capability summary.
	Description string

	// Reasoning marks models that emit a delimited analysis block before
	// their visible answer. Reasoning models also receive full history
	// including prior analysis blocks; others get sanitized history.
	Reasoning bool

	// Search marks models whose answers may carry web grounding metadata.
	Search bool

	// ImageGen marks models that produce an image instead of text.
	ImageGen bool

	// IsNew flags the model with a badge in the picker.
	IsNew bool
}

// DefaultModelID is the model selected when none is configured.
const DefaultModelID = "gemini-2.5-flash"

// Models is the registry of selectable models, in picker order.
var Models = []ModelInfo{
	{
		ID:          "gemini-2.5-flash",
		Name:        "Genz 2.5 Pro",
		Description: "Deep reasoning with live web search",
		Reasoning:   true,
		Search:      true,
		IsNew:       true,
	},
	{
		ID:          "gemini-2.0-flash",
		Name:        "Genz 2.0 Flash",
		Description: "Fast general-purpose responses",
	},
	{
		ID:          "gemini-2.0-flash-lite-preview-02-05",
		Name:        "Genz 2.0 Lite",
		Description: "Lightweight, lowest latency",
	},
	{
		ID:          "stable-diffusion-xl",
		Name:        "Genz Art (SDXL)",
		Description: "Image generation from a text prompt",
		ImageGen:    true,
	},
}

// ModelByID looks up a model by wire identifier.
func ModelByID(id string) (ModelInfo, bool) {
	for _, m := range Models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// IsReasoningModel reports whether id names a reasoning model. Unknown
// identifiers are treated as non-reasoning so their history is sanitized.
func IsReasoningModel(id string) bool {
	m, ok := ModelByID(id)
	return ok && m.Reasoning
}

// IsImageModel reports whether id names an image generation model.
func IsImageModel(id string) bool {
	m, ok := ModelByID(id)
	return ok && m.ImageGen
}
