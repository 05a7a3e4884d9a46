// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/genz-tui/internal/config"
	"github.com/jeranaias/genz-tui/internal/conversation"
	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/model"
	"github.com/jeranaias/genz-tui/internal/ui/components"
	"github.com/jeranaias/genz-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady     State = iota // Ready for input
	StateStreaming              // Turn in flight
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling and localization
	theme   *styles.Theme
	strings *i18n.Strings
	lang    i18n.Language

	// Dimensions
	width  int
	height int

	// Conversation engine
	orch *conversation.Orchestrator

	// Transcript snapshot currently on screen
	messages []model.Message

	// Streaming optimization
	buffer *SnapshotBuffer

	// Cancels the in-flight turn
	turnCancel context.CancelFunc

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  components.StatusSpinner

	// Key bindings
	keyMap KeyMap

	// Active model selection
	modelID string

	// Display toggles
	showReasoning bool
	showSources   bool
	showHelp      bool

	// Transient status line
	statusMsg string
}

// New creates a new chat model wired to the given orchestrator.
func New(orch *conversation.Orchestrator, cfg *config.Config, theme *styles.Theme, lang i18n.Language) Model {
	strs := i18n.Catalog(lang)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = strs.PlaceholderDefault
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	modelID := cfg.DefaultModel
	if _, ok := model.ModelByID(modelID); !ok {
		modelID = model.DefaultModelID
	}

	return Model{
		state:         StateReady,
		theme:         theme,
		strings:       strs,
		lang:          lang,
		orch:          orch,
		buffer:        NewSnapshotBuffer(),
		viewport:      vp,
		input:         ti,
		spinner:       components.NewStatusSpinner(theme, strs),
		keyMap:        DefaultKeyMap(),
		modelID:       modelID,
		showReasoning: cfg.UI.ShowReasoning,
		showSources:   cfg.UI.ShowSources,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates layout dimensions for the view and its components.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	// Header, input box and status bar take fixed rows.
	chromeRows := 7
	vpHeight := height - chromeRows
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - 6
}

// ModelID returns the currently selected model.
func (m Model) ModelID() string {
	return m.modelID
}

// Language returns the active UI language.
func (m Model) Language() i18n.Language {
	return m.lang
}

// setLanguage switches every localized surface at once.
func (m *Model) setLanguage(lang i18n.Language) {
	m.lang = lang
	m.strings = i18n.Catalog(lang)
	m.orch.SetLanguage(lang)
	m.spinner.SetStrings(m.strings)
	m.refreshPlaceholder()
}

// applyConfig picks up a configuration reloaded from disk. The file is
// the source of truth for theme and display toggles; in-session choices
// (model, language) stay untouched so an edit mid-conversation does not
// yank the user's selections out from under them.
func (m *Model) applyConfig(cfg *config.Config) {
	m.theme = styles.NewTheme(cfg.UI.Theme)
	m.theme.SetSize(m.width, m.height)
	m.spinner.SetTheme(m.theme)
	m.showReasoning = cfg.UI.ShowReasoning
	m.showSources = cfg.UI.ShowSources
}

// refreshPlaceholder matches the input hint to the selected model.
func (m *Model) refreshPlaceholder() {
	if model.IsImageModel(m.modelID) {
		m.input.Placeholder = m.strings.PlaceholderImage
	} else {
		m.input.Placeholder = m.strings.PlaceholderDefault
	}
}

// activity maps the selected model to the spinner's status line set.
func (m Model) activity() components.Activity {
	info, ok := model.ModelByID(m.modelID)
	switch {
	case ok && info.ImageGen:
		return components.ActivityImage
	case ok && info.Search:
		return components.ActivitySearching
	default:
		return components.ActivityThinking
	}
}

// startTurn builds the command that runs a full send in the background.
// Transcript snapshots land in the buffer; completion surfaces as a
// TurnDoneMsg.
func (m *Model) startTurn(text string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.turnCancel = cancel

	orch := m.orch
	buffer := m.buffer
	req := conversation.SendRequest{
		Text:     text,
		ModelID:  m.modelID,
		OnCommit: buffer.Write,
	}

	return func() tea.Msg {
		defer cancel()
		err := orch.Send(ctx, req)
		return TurnDoneMsg{Err: err}
	}
}

// cancelTurn aborts the in-flight turn, if any.
func (m *Model) cancelTurn() {
	if m.turnCancel != nil {
		m.turnCancel()
		m.turnCancel = nil
	}
}

// flashStatus sets a transient status line.
func (m *Model) flashStatus(text string) {
	m.statusMsg = text
}

// clearStatusAfter clears the status line after the given delay.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

type clearStatusMsg struct{}
