// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration and language command handlers.
package cli

import (
	"fmt"

	"github.com/jeranaias/genz-tui/internal/config"
	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/model"
)

// HandleConfig routes the config subcommands.
func HandleConfig(deps *Deps, args *ArgParser) {
	switch args.Subcommand() {
	case "", "show":
		printConfig(deps.Config)

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			Fatalf("%v", err)
		}
		fmt.Println(path)

	case "set":
		rest := args.Rest()
		if len(rest) < 2 {
			Fatalf("Usage: genz config set KEY VALUE (keys: model, theme, language, base_url)")
		}
		key, value := rest[0], rest[1]
		if err := applyConfigKey(deps.Config, key, value); err != nil {
			Fatalf("%v", err)
		}
		if err := deps.Config.Validate(); err != nil {
			Fatalf("invalid value: %v", err)
		}
		if err := config.Save(deps.Config); err != nil {
			Fatalf("save failed: %v", err)
		}
		fmt.Println(SuccessStyle.Render(fmt.Sprintf("Set %s = %s", key, value)))

	default:
		Fatalf("unknown config subcommand %q (want show, set or path)", args.Subcommand())
	}
}

// applyConfigKey maps a CLI key to its config field.
func applyConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "model":
		if _, ok := model.ModelByID(value); !ok {
			return fmt.Errorf("unknown model %q", value)
		}
		cfg.DefaultModel = value
	case "theme":
		cfg.UI.Theme = value
	case "language":
		cfg.UI.Language = string(i18n.Resolve(value))
	case "base_url":
		cfg.Service.BaseURL = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// printConfig prints the effective configuration.
func printConfig(cfg *config.Config) {
	fmt.Println(TitleStyle.Render("genz configuration"))

	row := func(label, value string) {
		fmt.Println(LabelStyle.Render(label) + ValueStyle.Render(value))
	}
	row("Default model", cfg.DefaultModel)
	row("Service URL", cfg.Service.BaseURL)
	row("Timeout", fmt.Sprintf("%ds", cfg.Service.TimeoutSecs))
	row("Theme", cfg.UI.Theme)
	row("Language", cfg.UI.Language)
	row("Sessions dir", cfg.Storage.Dir)
	row("Max sessions", fmt.Sprintf("%d", cfg.Storage.MaxSessions))
	row("Telemetry", fmt.Sprintf("%t", cfg.Telemetry.Enabled))
}

// HandleLang shows or sets the persisted UI language.
func HandleLang(deps *Deps, args *ArgParser) {
	code := args.Subcommand()
	if code == "" {
		fmt.Printf("Current language: %s\n", deps.Lang)
		fmt.Println(DimStyle.Render("Supported: id, en, jp"))
		return
	}

	lang := i18n.Resolve(code)
	if deps.LangStore != nil {
		if err := deps.LangStore.Save(lang); err != nil {
			Fatalf("could not persist language: %v", err)
		}
	}
	fmt.Println(SuccessStyle.Render("Language set to " + string(lang)))
}
