// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/util"
)

// languageFile holds the single language preference value.
const languageFile = "language"

// =============================================================================
// LANGUAGE PREFERENCE
// =============================================================================

// LanguageStore persists the interface language preference as a single
// scalar value alongside the sessions document.
type LanguageStore struct {
	BaseDir string
}

// NewLanguageStore creates a language store under the user's home directory.
func NewLanguageStore() (*LanguageStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Join(homeDir, ".genz")
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LanguageStore{BaseDir: baseDir}, nil
}

// Load returns the stored language, or the default when nothing is stored
// or the stored value no longer names a supported language.
func (s *LanguageStore) Load() i18n.Language {
	data, err := os.ReadFile(filepath.Join(s.BaseDir, languageFile))
	if err != nil {
		return i18n.DefaultLanguage
	}
	return i18n.Resolve(strings.TrimSpace(string(data)))
}

// Save stores the language preference.
func (s *LanguageStore) Save(lang i18n.Language) error {
	return util.AtomicWriteFile(filepath.Join(s.BaseDir, languageFile), []byte(lang), 0644)
}
