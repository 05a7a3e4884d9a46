// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/genz-tui/internal/config"
)

func TestArgParserFlagFormats(t *testing.T) {
	args := NewArgParser([]string{"export", "--format", "md", "--output=out.md", "--confirm", "-m", "gemini-2.0-flash"})

	assert.Equal(t, "export", args.Subcommand())
	assert.Equal(t, "md", args.Flag("format"))
	assert.Equal(t, "out.md", args.Flag("output"))
	assert.True(t, args.BoolFlag("confirm"))
	assert.Equal(t, "gemini-2.0-flash", args.Flag("m"))
}

func TestArgParserExplicitBools(t *testing.T) {
	args := NewArgParser([]string{"--json=true", "--color=false"})
	assert.True(t, args.BoolFlag("json"))
	assert.False(t, args.BoolFlag("color"))
}

func TestArgParserPositionals(t *testing.T) {
	args := NewArgParser([]string{"search", "chat", "tentang", "kopi"})
	assert.Equal(t, "search", args.Subcommand())
	assert.Equal(t, []string{"chat", "tentang", "kopi"}, args.Rest())
	assert.Equal(t, "chat tentang kopi", args.RestJoined())
}

func TestArgParserEmpty(t *testing.T) {
	args := NewArgParser(nil)
	assert.Equal(t, "", args.Subcommand())
	assert.Nil(t, args.Rest())
	assert.Equal(t, "", args.Flag("missing"))
	assert.False(t, args.BoolFlag("missing"))
}

func TestArgParserIntFlag(t *testing.T) {
	args := NewArgParser([]string{"--recent", "5", "--bad", "x"})
	assert.Equal(t, 5, args.IntFlag("recent", 20))
	assert.Equal(t, 20, args.IntFlag("bad", 20))
	assert.Equal(t, 20, args.IntFlag("absent", 20))
}

func TestArgParserFlagDefault(t *testing.T) {
	args := NewArgParser([]string{"--format", "json"})
	assert.Equal(t, "json", args.FlagDefault("format", "md"))
	assert.Equal(t, "md", args.FlagDefault("other", "md"))
}

func TestApplyConfigKey(t *testing.T) {
	cfg := config.Default()

	if err := applyConfigKey(cfg, "model", "gemini-2.0-flash"); err != nil {
		t.Fatalf("set model: %v", err)
	}
	assert.Equal(t, "gemini-2.0-flash", cfg.DefaultModel)

	if err := applyConfigKey(cfg, "model", "nope"); err == nil {
		t.Error("unknown model should be rejected")
	}

	if err := applyConfigKey(cfg, "language", "ja"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	assert.Equal(t, "jp", cfg.UI.Language)

	if err := applyConfigKey(cfg, "base_url", "http://localhost:9999"); err != nil {
		t.Fatalf("set base_url: %v", err)
	}

	if err := applyConfigKey(cfg, "bogus", "x"); err == nil {
		t.Error("unknown key should be rejected")
	}
}

func TestImageModelID(t *testing.T) {
	id := imageModelID()
	assert.Equal(t, "stable-diffusion-xl", id)
}

func TestParseFlagsWithoutSubcommandGoToTUI(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"genz", "--session", "sess-1"}
	cmd, args := Parse()
	assert.Equal(t, CmdTUI, cmd)
	assert.Equal(t, "sess-1", args.Flag("session"))

	os.Args = []string{"genz", "--continue"}
	cmd, args = Parse()
	assert.Equal(t, CmdTUI, cmd)
	assert.True(t, args.BoolFlag("continue"))
}
