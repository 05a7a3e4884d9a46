// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/genz-tui/internal/model"
	"github.com/jeranaias/genz-tui/internal/ui/components"
)

// View renders the complete chat view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.spinner.Active() {
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n")

	b.WriteString(m.theme.InputContainer.Width(max(m.width-2, 20)).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.theme.App.Render(b.String())
}

// renderHeader renders the brand line with the active model and session.
func (m Model) renderHeader() string {
	brand := m.theme.HeaderBrand.Render("✦ GenzAI")

	name := m.modelID
	if info, ok := model.ModelByID(m.modelID); ok {
		name = info.Name
	}
	right := m.theme.HeaderModel.Render(name)

	if sess, ok := m.orch.Session(); ok {
		right += m.theme.Timestamp.Render("  " + sess.Title)
	}

	gap := m.width - lipgloss.Width(brand) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.Header.Width(max(m.width, 20)).Render(brand + strings.Repeat(" ", gap) + right)
}

// renderStatusBar renders shortcuts and the transient status message.
func (m Model) renderStatusBar() string {
	if m.statusMsg != "" {
		return m.theme.StatusBar.Render(m.statusMsg)
	}

	var parts []string
	for _, binding := range m.keyMap.ShortHelp() {
		help := binding.Help()
		parts = append(parts,
			m.theme.ShortcutKey.Render(help.Key)+" "+m.theme.ShortcutDesc.Render(help.Desc))
	}
	return m.theme.StatusBar.Render(strings.Join(parts, "  "))
}

// renderTranscript rebuilds the viewport content from the current
// transcript snapshot.
func (m *Model) renderTranscript() {
	if m.showHelp {
		m.viewport.SetContent(m.renderHelp())
		return
	}
	if len(m.messages) == 0 {
		m.viewport.SetContent(components.RenderWelcome(m.theme, m.strings, m.viewport.Width, m.viewport.Height))
		return
	}

	var sections []string
	for _, msg := range m.messages {
		sections = append(sections, m.renderMessage(msg))
	}
	m.viewport.SetContent(strings.Join(sections, "\n\n"))
}

// renderMessage renders one transcript entry.
func (m *Model) renderMessage(msg model.Message) string {
	var b strings.Builder

	label := m.theme.ModelLabel
	if msg.Role == model.RoleUser {
		label = m.theme.UserLabel
	}
	b.WriteString(label.Render(msg.Role.DisplayName()))
	b.WriteString(" ")
	b.WriteString(m.theme.Timestamp.Render(msg.Timestamp.Format("15:04")))
	b.WriteString("\n")

	if msg.Role == model.RoleUser {
		b.WriteString(m.theme.UserBubble.Render(msg.Text))
		return b.String()
	}

	// A busy placeholder with no text yet renders as just the label; the
	// spinner below the viewport carries the waiting state.
	split := model.SplitThinking(msg.Text)

	if m.showReasoning && split.HasReasoning && split.Reasoning != "" {
		b.WriteString(m.theme.ReasoningHeader.Render(m.strings.ThinkingHeader))
		b.WriteString("\n")
		b.WriteString(m.theme.ReasoningBody.Render(split.Reasoning))
		b.WriteString("\n")
	}

	if split.Visible != "" {
		rendered := components.ParseCodeBlocks(split.Visible, max(m.viewport.Width, 40))
		b.WriteString(m.theme.ModelBubble.Render(rendered))
	}

	if msg.Image != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Timestamp.Render(fmt.Sprintf("[image attached, %d bytes]", len(msg.Image))))
	}

	if m.showSources && msg.Grounding != nil {
		if src := components.RenderSources(m.theme, m.strings, msg.Grounding); src != "" {
			b.WriteString("\n")
			b.WriteString(src)
		}
	}

	return b.String()
}

// renderHelp renders the full key binding reference.
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.ReasoningHeader.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")

	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			help := binding.Help()
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				m.theme.ShortcutKey.Width(12).Render(help.Key),
				m.theme.ShortcutDesc.Render(help.Desc)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
