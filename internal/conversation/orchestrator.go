// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"log/slog"

	"github.com/jeranaias/genz-tui/internal/genai"
	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/model"
)

// =============================================================================
// GENERATOR INTERFACE
// =============================================================================

// Generator is the slice of the service client the orchestrator needs.
// *genai.Client satisfies it; tests substitute doubles.
type Generator interface {
	// ChatStream streams a chat response, invoking the callback once per
	// decoded chunk in arrival order.
	ChatStream(ctx context.Context, req genai.ChatRequest, callback genai.StreamCallback) error

	// GenerateImage produces one image from a text prompt.
	GenerateImage(ctx context.Context, prompt string) (string, error)

	// EnhancePrompt rewrites a prompt for better image results. It is
	// best-effort: on any failure it returns the original prompt.
	EnhancePrompt(ctx context.Context, prompt string) string
}

// ErrTurnInProgress is returned when a send arrives while a previous turn
// is still streaming. One generation per session at a time.
var ErrTurnInProgress = &TurnError{Message: "a turn is already in progress"}

// TurnError represents an orchestration error.
type TurnError struct {
	Message string
}

func (e *TurnError) Error() string {
	return e.Message
}

// Is implements errors.Is support.
func (e *TurnError) Is(target error) bool {
	t, ok := target.(*TurnError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// TURN ORCHESTRATOR
// =============================================================================

// Orchestrator runs a conversation: it owns the live message list and the
// active session, and drives each user turn through session creation, the
// user message, the model placeholder, generation, and finalization.
//
// A turn always reaches a terminal state. The flag-clearing step runs in a
// deferred finalizer on every exit path, so no failure mode can leave the
// last message marked busy.
//
// Not safe for concurrent use; callers serialize sends, which the turn
// guard also enforces.
type Orchestrator struct {
	gen        Generator
	reconciler *Reconciler
	projector  *Projector
	logger     *slog.Logger
	lang       i18n.Language

	session  model.Session
	messages []model.Message
	busy     bool
}

// NewOrchestrator creates an orchestrator with no active session.
func NewOrchestrator(gen Generator, writer SessionWriter, lang i18n.Language, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		gen:        gen,
		reconciler: NewReconciler(lang),
		projector:  NewProjector(writer, logger),
		logger:     logger,
		lang:       lang,
	}
}

// Messages returns a snapshot of the live message list.
func (o *Orchestrator) Messages() []model.Message {
	return model.CloneMessages(o.messages)
}

// Session returns the active session and whether one has been minted yet.
func (o *Orchestrator) Session() (model.Session, bool) {
	return o.session, o.session.ID != ""
}

// Busy reports whether a turn is currently running.
func (o *Orchestrator) Busy() bool {
	return o.busy
}

// SetLanguage switches the language used for generated notices and for
// the language hint sent with chat requests.
func (o *Orchestrator) SetLanguage(lang i18n.Language) {
	o.lang = lang
	o.reconciler.SetLanguage(lang)
}

// NewChat clears the live list and active session. The next send mints a
// fresh session.
func (o *Orchestrator) NewChat() {
	o.session = model.Session{}
	o.messages = nil
}

// LoadSession resumes a stored session as the active conversation.
func (o *Orchestrator) LoadSession(sess model.Session) {
	o.session = sess
	o.messages = model.CloneMessages(sess.Messages)
}

// SendRequest carries one user turn.
type SendRequest struct {
	Text       string
	Attachment *genai.Attachment
	ModelID    string

	// OnCommit, when set, receives a snapshot of the message list after
	// every reconciled change, in commit order. Snapshots are independent
	// copies; holding one across later commits is safe.
	OnCommit func([]model.Message)
}

// Send runs one full turn: ensure a session exists, record the user
// message, create the model placeholder, generate (image or streaming
// chat), and finalize. The returned error is the turn's failure cause;
// by the time Send returns the failure is already reflected in the
// message list as a formatted notice.
func (o *Orchestrator) Send(ctx context.Context, req SendRequest) (err error) {
	if o.busy {
		return ErrTurnInProgress
	}
	o.busy = true

	// SessionEnsured: mint lazily on the first send of a fresh chat.
	if o.session.ID == "" {
		o.session = model.NewSession()
		o.session.Title = model.DeriveTitle(req.Text)
	}

	// UserTurnRecorded
	o.messages = append(model.CloneMessages(o.messages), model.NewUserMessage(req.Text, req.Attachment))
	o.commit(req.OnCommit)

	// History is captured before the placeholder so the pending model
	// turn is never replayed to the service.
	history := o.buildHistory(req.ModelID)

	// PlaceholderCreated
	imageGen := model.IsImageModel(req.ModelID)
	o.messages = append(o.messages, model.NewModelPlaceholder(imageGen))
	o.commit(req.OnCommit)

	// Finalization runs exactly once on every exit path, success or not.
	defer func() {
		if err != nil {
			o.logger.Warn("turn failed", "model", req.ModelID, "error", err)
			o.messages = o.reconciler.FinalizeError(o.messages, err)
		} else {
			o.messages = o.reconciler.FinalizeSuccess(o.messages)
		}
		o.commit(req.OnCommit)
		o.busy = false
	}()

	if imageGen {
		return o.runImageTurn(ctx, req)
	}
	return o.runChatTurn(ctx, req, history)
}

// runImageTurn drives the image generation branch.
func (o *Orchestrator) runImageTurn(ctx context.Context, req SendRequest) error {
	prompt := o.gen.EnhancePrompt(ctx, req.Text)

	image, err := o.gen.GenerateImage(ctx, prompt)
	if err != nil {
		return err
	}

	o.messages = o.reconciler.AttachImage(o.messages, image)
	o.commit(req.OnCommit)
	return nil
}

// runChatTurn drives the streaming chat branch. Chunks are applied in
// arrival order; each committed change is projected before the next chunk
// is processed.
func (o *Orchestrator) runChatTurn(ctx context.Context, req SendRequest, history []genai.HistoryTurn) error {
	return o.gen.ChatStream(ctx, genai.ChatRequest{
		ModelID:    req.ModelID,
		Prompt:     req.Text,
		History:    history,
		Attachment: req.Attachment,
		Language:   string(o.lang),
	}, func(chunk genai.DecodedChunk) {
		next, committed := o.reconciler.ApplyChunk(o.messages, chunk)
		if committed {
			o.messages = next
			o.commit(req.OnCommit)
		}
	})
}

// buildHistory converts the live message list, through and including the
// current user turn, into outbound history. Only role and text are
// replayed; attachments ride on the current request alone. Models not
// prompted to reason get history with analysis blocks stripped so
// delimiter text never re-enters their context.
func (o *Orchestrator) buildHistory(modelID string) []genai.HistoryTurn {
	sanitize := !model.IsReasoningModel(modelID)

	history := make([]genai.HistoryTurn, 0, len(o.messages))
	for _, msg := range o.messages {
		text := msg.Text
		if sanitize {
			text = model.StripThinking(text)
		}
		history = append(history, genai.HistoryTurn{
			Role:  string(msg.Role),
			Parts: []genai.HistoryPart{{Text: text}},
		})
	}
	return history
}

// commit projects the current snapshot into the session store and notifies
// the renderer.
func (o *Orchestrator) commit(onCommit func([]model.Message)) {
	o.session = o.projector.Project(o.session, o.messages)
	if onCommit != nil {
		onCommit(model.CloneMessages(o.messages))
	}
}
