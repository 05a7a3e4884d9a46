// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"
	"time"

	"github.com/jeranaias/genz-tui/internal/config"
	"github.com/jeranaias/genz-tui/internal/conversation"
	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/model"
	"github.com/jeranaias/genz-tui/internal/ui/styles"
)

func newTestModel(cfg *config.Config) Model {
	orch := conversation.NewOrchestrator(nil, nil, i18n.LangEnglish, nil)
	return New(orch, cfg, styles.NewTheme(cfg.UI.Theme), i18n.LangEnglish)
}

func TestConfigReloadApplies(t *testing.T) {
	m := newTestModel(config.Default())
	if !m.theme.IsDark {
		t.Fatal("default theme should be dark")
	}
	if !m.showReasoning || !m.showSources {
		t.Fatal("default toggles should be on")
	}

	edited := config.Default()
	edited.UI.Theme = "light"
	edited.UI.ShowReasoning = false
	edited.UI.ShowSources = false

	m, _ = m.Update(ConfigReloadedMsg{Config: edited})

	if m.theme.IsDark {
		t.Error("reload did not switch the theme to light")
	}
	if m.showReasoning {
		t.Error("reload did not pick up show_reasoning = false")
	}
	if m.showSources {
		t.Error("reload did not pick up show_sources = false")
	}
}

func TestConfigReloadKeepsSessionChoices(t *testing.T) {
	m := newTestModel(config.Default())
	m.modelID = nextModelID(m.modelID)
	picked := m.modelID

	m, _ = m.Update(ConfigReloadedMsg{Config: config.Default()})

	if m.modelID != picked {
		t.Errorf("reload changed the model to %q, want %q kept", m.modelID, picked)
	}
	if m.lang != i18n.LangEnglish {
		t.Errorf("reload changed the language to %q", m.lang)
	}
}

func TestSessionLoadedReplacesTranscript(t *testing.T) {
	m := newTestModel(config.Default())

	sess := model.Session{
		ID:    "sess-1",
		Title: "resep nasi goreng",
		Messages: []model.Message{
			{ID: "m1", Role: model.RoleUser, Text: "resep nasi goreng", Timestamp: time.Now()},
			{ID: "m2", Role: model.RoleModel, Text: "Bahan-bahan: nasi, bawang, kecap.", Timestamp: time.Now()},
		},
		LastModified: time.Now(),
	}

	m, _ = m.Update(SessionLoadedMsg{Session: sess})

	if m.state != StateReady {
		t.Errorf("state = %v, want StateReady", m.state)
	}
	if len(m.messages) != 2 {
		t.Fatalf("transcript has %d messages, want 2", len(m.messages))
	}
	if m.messages[1].Text != sess.Messages[1].Text {
		t.Errorf("transcript text = %q, want %q", m.messages[1].Text, sess.Messages[1].Text)
	}

	got, ok := m.orch.Session()
	if !ok || got.ID != "sess-1" {
		t.Errorf("orchestrator session = (%q, %v), want (%q, true)", got.ID, ok, "sess-1")
	}
}
