// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/ui/styles"
)

// =============================================================================
// STATUS SPINNER
// =============================================================================

// Activity selects which rotating status line set the spinner shows
// while a turn is in flight.
type Activity int

const (
	ActivityThinking  Activity = iota // Model is reasoning
	ActivitySearching                 // Model is grounding via web search
	ActivityImage                     // Image generation in progress
)

// statusRotateInterval is how long each status line stays on screen
// before the next one from the set rotates in.
const statusRotateInterval = 2 * time.Second

// StatusSpinner is a loading spinner that pairs the frame animation with
// localized status lines that rotate while waiting for the service.
type StatusSpinner struct {
	spinner  spinner.Model
	theme    *styles.Theme
	strings  *i18n.Strings
	activity Activity

	active    bool
	startTime time.Time
	showTimer bool
}

// NewStatusSpinner creates a spinner with ASCII-compatible frames.
func NewStatusSpinner(theme *styles.Theme, strings *i18n.Strings) StatusSpinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner

	return StatusSpinner{
		spinner:   s,
		theme:     theme,
		strings:   strings,
		showTimer: true,
	}
}

// SetStrings swaps the localized status line sets, for language changes.
func (s *StatusSpinner) SetStrings(strings *i18n.Strings) {
	s.strings = strings
}

// SetTheme swaps the styles, for theme changes.
func (s *StatusSpinner) SetTheme(theme *styles.Theme) {
	s.theme = theme
	s.spinner.Style = theme.Spinner
}

// Start activates the spinner for the given activity.
func (s *StatusSpinner) Start(activity Activity) {
	s.activity = activity
	s.active = true
	s.startTime = time.Now()
}

// Stop deactivates the spinner.
func (s *StatusSpinner) Stop() {
	s.active = false
}

// Active reports whether the spinner is running.
func (s *StatusSpinner) Active() bool {
	return s.active
}

// Tick returns the command that drives the frame animation.
func (s StatusSpinner) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the frame animation.
func (s StatusSpinner) Update(msg tea.Msg) (StatusSpinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// statusLines returns the rotation set for the current activity.
func (s StatusSpinner) statusLines() []string {
	switch s.activity {
	case ActivitySearching:
		return s.strings.SearchingStatus
	case ActivityImage:
		return s.strings.GeneratingImage
	default:
		return s.strings.ThinkingStatus
	}
}

// StatusLine returns the localized status line for the current moment.
// Lines rotate on a fixed interval so long waits feel alive.
func (s StatusSpinner) StatusLine() string {
	lines := s.statusLines()
	if len(lines) == 0 {
		return ""
	}
	idx := int(time.Since(s.startTime)/statusRotateInterval) % len(lines)
	return lines[idx]
}

// View renders the spinner frame, status line and optional elapsed timer.
func (s StatusSpinner) View() string {
	if !s.active {
		return ""
	}

	out := s.spinner.View() + " " + s.theme.ThinkingText.Render(s.StatusLine())

	if s.showTimer {
		elapsed := time.Since(s.startTime).Round(time.Second)
		if elapsed >= time.Second {
			out += " " + s.theme.Timestamp.Render(fmt.Sprintf("(%s)", elapsed))
		}
	}
	return out
}
