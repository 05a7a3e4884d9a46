// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/genz-tui/internal/i18n"
	"github.com/jeranaias/genz-tui/internal/model"
)

func testStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := NewSessionStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionStoreWithDir: %v", err)
	}
	return store
}

func testSession(title, userText string) model.Session {
	sess := model.NewSession()
	sess.Title = title
	sess.Messages = []model.Message{model.NewUserMessage(userText, nil)}
	sess.LastModified = time.Now()
	return sess
}

func TestLoadEmptyStore(t *testing.T) {
	store := testStore(t)

	sessions, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("len = %d, want 0", len(sessions))
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := testStore(t)

	sess := testSession("First chat", "hello world")
	if err := store.Save([]model.Session{sess}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("len = %d, want 1", len(loaded))
	}
	if loaded[0].ID != sess.ID {
		t.Errorf("ID = %q, want %q", loaded[0].ID, sess.ID)
	}
	if loaded[0].Title != "First chat" {
		t.Errorf("Title = %q", loaded[0].Title)
	}
	if len(loaded[0].Messages) != 1 || loaded[0].Messages[0].Text != "hello world" {
		t.Errorf("messages did not round-trip: %+v", loaded[0].Messages)
	}
}

func TestSaveReplacesWholeDocument(t *testing.T) {
	store := testStore(t)

	a := testSession("a", "one")
	b := testSession("b", "two")
	if err := store.Save([]model.Session{a, b}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A save with only one session drops the other entirely.
	if err := store.Save([]model.Session{a}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != a.ID {
		t.Errorf("document not fully replaced: %+v", loaded)
	}
}

func TestUpsert(t *testing.T) {
	store := testStore(t)

	sess := testSession("original", "hi")
	if err := store.Upsert(sess); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}

	sess.Title = "renamed"
	if err := store.Upsert(sess); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("len = %d, want 1 (upsert duplicated)", len(loaded))
	}
	if loaded[0].Title != "renamed" {
		t.Errorf("Title = %q, want %q", loaded[0].Title, "renamed")
	}
}

func TestGet(t *testing.T) {
	store := testStore(t)

	sess := testSession("findme", "hi")
	if err := store.Upsert(sess); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "findme" {
		t.Errorf("Title = %q", got.Title)
	}

	if _, err := store.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(missing) = %v, want ErrSessionNotFound", err)
	}
}

func TestListMostRecentFirst(t *testing.T) {
	store := testStore(t)

	old := testSession("old", "first")
	old.LastModified = time.Now().Add(-time.Hour)
	recent := testSession("recent", "second")

	if err := store.Save([]model.Session{old, recent}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("len = %d, want 2", len(metas))
	}
	if metas[0].Title != "recent" || metas[1].Title != "old" {
		t.Errorf("order = [%q, %q], want most recent first", metas[0].Title, metas[1].Title)
	}
	if metas[0].MessageCount != 1 {
		t.Errorf("MessageCount = %d", metas[0].MessageCount)
	}
}

func TestSearch(t *testing.T) {
	store := testStore(t)

	a := testSession("Groceries", "buy some milk")
	b := testSession("Coding", "explain goroutines")
	if err := store.Save([]model.Session{a, b}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"matches title", "grocer", []string{"Groceries"}},
		{"matches message text", "goroutine", []string{"Coding"}},
		{"case insensitive", "MILK", []string{"Groceries"}},
		{"no match", "quantum", nil},
		{"empty returns all", "", []string{"Groceries", "Coding"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Search(tt.query)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(results) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.want))
			}
			got := make(map[string]bool)
			for _, r := range results {
				got[r.Title] = true
			}
			for _, title := range tt.want {
				if !got[title] {
					t.Errorf("missing %q in results", title)
				}
			}
		})
	}
}

func TestDelete(t *testing.T) {
	store := testStore(t)

	sess := testSession("doomed", "bye")
	if err := store.Upsert(sess); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := store.Delete(sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get after delete = %v, want ErrSessionNotFound", err)
	}

	if err := store.Delete("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrSessionNotFound", err)
	}
}

func TestClear(t *testing.T) {
	store := testStore(t)

	if err := store.Save([]model.Session{testSession("a", "x"), testSession("b", "y")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	sessions, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("len = %d after clear", len(sessions))
	}

	// Clearing an already-empty store is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestMaxSessionsEnforced(t *testing.T) {
	store := testStore(t)
	store.MaxSessions = 2

	sessions := make([]model.Session, 3)
	for i := range sessions {
		sessions[i] = testSession("s", "text")
		sessions[i].LastModified = time.Now().Add(time.Duration(i) * time.Minute)
	}

	if err := store.Save(sessions); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("len = %d, want 2", len(loaded))
	}
	// The least recently modified session is the one dropped.
	for _, sess := range loaded {
		if sess.ID == sessions[0].ID {
			t.Error("oldest session survived the limit")
		}
	}
}

func TestCorruptedDocument(t *testing.T) {
	store := testStore(t)

	path := filepath.Join(store.BaseDir, sessionsFile)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("Load on corrupted document should error")
	}
}

func TestFormatSessionList(t *testing.T) {
	if got := FormatSessionList(nil); got != "No sessions found." {
		t.Errorf("empty list = %q", got)
	}

	metas := []SessionMeta{{
		ID:           "sess_0011223344556677",
		Title:        "A title",
		LastModified: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		MessageCount: 4,
	}}
	out := FormatSessionList(metas)
	if !strings.Contains(out, "sess_001122334") {
		t.Errorf("missing truncated id:\n%s", out)
	}
	if !strings.Contains(out, "A title") || !strings.Contains(out, "2025-03-01 10:30") {
		t.Errorf("missing fields:\n%s", out)
	}
}

func TestExportMarkdown(t *testing.T) {
	sess := testSession("Export me", "question text")
	reply := model.NewModelPlaceholder(false)
	reply.Text = "answer text"
	reply.IsStreaming = false
	sess.Messages = append(sess.Messages, reply)

	out := ExportMarkdown(sess)
	for _, want := range []string{"# Export me", "**You**", "**GenzAI**", "question text", "answer text"} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}

func TestLanguageStore(t *testing.T) {
	store := &LanguageStore{BaseDir: t.TempDir()}

	if got := store.Load(); got != i18n.DefaultLanguage {
		t.Errorf("empty store Load = %q, want default", got)
	}

	if err := store.Save(i18n.LangEnglish); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := store.Load(); got != i18n.LangEnglish {
		t.Errorf("Load = %q, want en", got)
	}

	// A stored value that no longer resolves falls back to the default.
	if err := os.WriteFile(filepath.Join(store.BaseDir, languageFile), []byte("zz-bogus"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := store.Load(); got != i18n.DefaultLanguage {
		t.Errorf("bogus value Load = %q, want default", got)
	}
}
