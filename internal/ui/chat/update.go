// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/model"
)

// Update handles incoming Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.renderTranscript()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamTickMsg:
		if m.state != StateStreaming {
			return m, nil
		}
		if snap, ok := m.buffer.Drain(); ok {
			m.messages = snap
			m.renderTranscript()
			m.viewport.GotoBottom()
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd, streamTickCmd())
		return m, tea.Batch(cmds...)

	case TurnDoneMsg:
		m.state = StateReady
		m.turnCancel = nil
		m.spinner.Stop()

		// Whatever the buffer still holds, plus the orchestrator's final
		// word, must land on screen.
		if snap, ok := m.buffer.ForceDrain(); ok {
			m.messages = snap
		}
		m.messages = m.orch.Messages()
		m.renderTranscript()
		m.viewport.GotoBottom()
		m.input.Focus()
		return m, textinput.Blink

	case SessionLoadedMsg:
		m.cancelTurn()
		m.buffer.Reset()
		m.orch.LoadSession(msg.Session)
		m.messages = m.orch.Messages()
		m.state = StateReady
		m.renderTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		m.renderTranscript()
		return m, nil

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	// Let the components consume whatever is left (blink, spinner frames).
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.cancelTurn()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		m.renderTranscript()
		return m, nil

	case key.Matches(msg, m.keyMap.Cancel):
		if m.state == StateStreaming {
			m.cancelTurn()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		if m.state == StateStreaming {
			return m, nil
		}
		m.buffer.Reset()
		m.orch.NewChat()
		m.messages = nil
		m.renderTranscript()
		return m, nil

	case key.Matches(msg, m.keyMap.CycleModel):
		if m.state == StateStreaming {
			return m, nil
		}
		m.modelID = nextModelID(m.modelID)
		m.refreshPlaceholder()
		if info, ok := model.ModelByID(m.modelID); ok {
			m.flashStatus(info.Name)
		}
		return m, clearStatusAfter(2 * time.Second)

	case key.Matches(msg, m.keyMap.CycleLanguage):
		m.setLanguage(nextLanguage(m.lang))
		m.renderTranscript()
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleReason):
		m.showReasoning = !m.showReasoning
		m.renderTranscript()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keyMap.Home):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keyMap.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit starts a turn from the input field.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	if m.state == StateStreaming {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.input.Reset()
	m.state = StateStreaming
	m.buffer.Reset()
	m.spinner.Start(m.activity())

	return m, tea.Batch(
		m.startTurn(text),
		m.spinner.Tick(),
		streamTickCmd(),
	)
}

// nextModelID cycles through the model registry in order.
func nextModelID(current string) string {
	for i, info := range model.Models {
		if info.ID == current {
			return model.Models[(i+1)%len(model.Models)].ID
		}
	}
	return model.DefaultModelID
}

// nextLanguage cycles through the supported languages in order.
func nextLanguage(current i18n.Language) i18n.Language {
	for i, lang := range i18n.Supported {
		if lang == current {
			return i18n.Supported[(i+1)%len(i18n.Supported)]
		}
	}
	return i18n.DefaultLanguage
}
