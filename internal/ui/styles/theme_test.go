// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewThemeModes(t *testing.T) {
	dark := NewTheme("dark")
	if !dark.IsDark {
		t.Error("dark mode should set IsDark")
	}

	light := NewTheme("light")
	if light.IsDark {
		t.Error("light mode should clear IsDark")
	}

	// "auto" resolves from the terminal; it must not panic and must
	// still produce usable styles.
	auto := NewTheme("auto")
	if auto == nil {
		t.Fatal("auto theme is nil")
	}
}

func TestThemeSetSize(t *testing.T) {
	th := NewTheme("dark")
	th.SetSize(120, 40)
	if th.Width != 120 || th.Height != 40 {
		t.Errorf("SetSize = %dx%d, want 120x40", th.Width, th.Height)
	}
}

func TestStatusRenderers(t *testing.T) {
	if !strings.Contains(RenderSuccess("saved"), "saved") {
		t.Error("RenderSuccess dropped the text")
	}
	if !strings.Contains(RenderError("broken"), StatusIndicators["error"]) {
		t.Error("RenderError missing indicator")
	}
	if !strings.Contains(RenderWarning("careful"), "careful") {
		t.Error("RenderWarning dropped the text")
	}
}
