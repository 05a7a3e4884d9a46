// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package genai provides the HTTP client for the GenzAI model service.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the GenzAI service client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeBadStatus
	ErrTypeInvalidResponse
	ErrTypeGeneration
)

// ErrNoResponseBody is returned when the service accepts the request but
// sends no body to stream from.
var ErrNoResponseBody = &ClientError{Type: ErrTypeInvalidResponse, Message: "no response body"}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the GenzAI client.
type ClientConfig struct {
	// BaseURL of the service (default: http://127.0.0.1:3000)
	BaseURL string

	// Timeout for non-streaming requests (default: 60s; image generation on
	// a cold model can take most of that)
	Timeout time.Duration

	// RequestInterval is the minimum spacing between outbound requests,
	// enforced client-side (default: 500ms)
	RequestInterval time.Duration

	// RequestBurst allows short bursts above the interval (default: 3)
	RequestBurst int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:         "http://127.0.0.1:3000",
		Timeout:         60 * time.Second,
		RequestInterval: 500 * time.Millisecond,
		RequestBurst:    3,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the GenzAI service.
// It is safe for concurrent use, though the application drives at most one
// generation per session at a time.
type Client struct {
	config *ClientConfig

	// httpClient serves the single-shot endpoints and carries a timeout.
	httpClient *http.Client

	// streamClient serves /api/chat; it carries no overall timeout because a
	// generation legitimately outlives any fixed budget.
	streamClient *http.Client

	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:3000"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.RequestInterval == 0 {
		config.RequestInterval = 500 * time.Millisecond
	}
	if config.RequestBurst == 0 {
		config.RequestBurst = 3
	}

	return &Client{
		config:       config,
		httpClient:   &http.Client{Timeout: config.Timeout},
		streamClient: &http.Client{},
		limiter:      rate.NewLimiter(rate.Every(config.RequestInterval), config.RequestBurst),
		logger:       slog.Default(),
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// ChatStream performs a streaming chat request. The callback is invoked for
// every decoded chunk in arrival order and the call blocks until the stream
// ends. A non-success status or transport failure is returned as an error;
// malformed individual records are skipped inside the stream reader.
func (c *Client) ChatStream(ctx context.Context, req ChatRequest, callback StreamCallback) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &ClientError{Type: ErrTypeTimeout, Message: "chat request timed out", Cause: err}
		}
		return &ClientError{Type: ErrTypeConnection, Message: "chat request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The service labels its failures; the label is stripped again before
		// anything reaches the user.
		return &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "API Error: " + resp.Status,
		}
	}
	if resp.Body == nil {
		return ErrNoResponseBody
	}

	return NewStreamReader(resp.Body).Process(ctx, callback)
}

// =============================================================================
// IMAGE GENERATION
// =============================================================================

// GenerateImage requests an image for the given prompt and returns a
// mime-prefixed base64 data URI.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(imageRequest{Prompt: prompt})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/image", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &ClientError{Type: ErrTypeTimeout, Message: "image request timed out", Cause: err}
		}
		return "", &ClientError{Type: ErrTypeConnection, Message: "image request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The service reports generation failures with a human-readable
		// message in the body; prefer it over the bare status line.
		var errBody errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Error != "" {
			return "", &ClientError{Type: ErrTypeGeneration, Message: errBody.Error}
		}
		return "", &ClientError{Type: ErrTypeGeneration, Message: "failed to generate image: " + resp.Status}
	}

	var result imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode image response", Cause: err}
	}
	if result.Image == "" {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "image response carried no image"}
	}

	return result.Image, nil
}

// =============================================================================
// PROMPT ENHANCEMENT
// =============================================================================

// EnhancePrompt asks the service to rewrite a prompt into a richer image
// generation prompt. It is strictly best-effort: any failure returns the
// original prompt unchanged and must never abort a turn.
func (c *Client) EnhancePrompt(ctx context.Context, prompt string) string {
	if err := c.limiter.Wait(ctx); err != nil {
		return prompt
	}

	body, err := json.Marshal(enhanceRequest{Prompt: prompt})
	if err != nil {
		return prompt
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/enhance", bytes.NewReader(body))
	if err != nil {
		return prompt
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("prompt enhancement unavailable", "error", err)
		return prompt
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return prompt
	}

	var result enhanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.EnhancedText == "" {
		return prompt
	}
	return result.EnhancedText
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckReachable verifies that the service answers at all.
func (c *Client) CheckReachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &ClientError{Type: ErrTypeTimeout, Message: "health check timed out", Cause: err}
		}
		return &ClientError{Type: ErrTypeConnection, Message: "service is not reachable", Cause: err}
	}
	resp.Body.Close()
	return nil
}
