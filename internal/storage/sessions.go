// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/genz-tui/internal/model"
	"github.com/jeranaias/genz-tui/internal/util"
)

// sessionsFile is the name of the single document holding every session.
const sessionsFile = "sessions.json"

// =============================================================================
// SESSION STORE
// =============================================================================

// SessionStore handles session persistence.
type SessionStore struct {
	// BaseDir is the directory holding the sessions document.
	// Default: ~/.genz/
	BaseDir string

	// MaxSessions limits stored sessions (0 = unlimited). When the limit
	// is exceeded the least recently modified sessions are dropped.
	MaxSessions int
}

// NewSessionStore creates a session store under the user's home directory.
func NewSessionStore() (*SessionStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return NewSessionStoreWithDir(filepath.Join(homeDir, ".genz"))
}

// NewSessionStoreWithDir creates a store with a custom directory.
func NewSessionStoreWithDir(baseDir string) (*SessionStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &SessionStore{
		BaseDir:     baseDir,
		MaxSessions: 100,
	}, nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads every stored session. A missing document is an empty store,
// not an error. A corrupted document is reported so the caller can decide
// whether to start fresh.
func (s *SessionStore) Load() ([]model.Session, error) {
	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sessions []model.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Save replaces the whole document with the given sessions. The previous
// contents are not merged; callers own the full collection.
func (s *SessionStore) Save(sessions []model.Session) error {
	if s.MaxSessions > 0 && len(sessions) > s.MaxSessions {
		sessions = trimOldest(sessions, s.MaxSessions)
	}

	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return err
	}

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	return util.AtomicWriteFile(s.filePath(), data, 0644)
}

// Upsert inserts or replaces one session in the document and saves it.
func (s *SessionStore) Upsert(session model.Session) error {
	sessions, err := s.Load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, session)
	}

	return s.Save(sessions)
}

// Get retrieves one session by ID.
func (s *SessionStore) Get(id string) (model.Session, error) {
	sessions, err := s.Load()
	if err != nil {
		return model.Session{}, err
	}

	for _, sess := range sessions {
		if sess.ID == id {
			return sess, nil
		}
	}

	return model.Session{}, ErrSessionNotFound
}

// trimOldest keeps the max most recently modified sessions.
func trimOldest(sessions []model.Session, max int) []model.Session {
	sorted := make([]model.Session, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LastModified.After(sorted[j].LastModified)
	})
	return sorted[:max]
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// SessionMeta contains metadata for listing sessions.
type SessionMeta struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	LastModified time.Time `json:"lastModified"`
	MessageCount int       `json:"messageCount"`
	Preview      string    `json:"preview"`
}

// List returns metadata for all saved sessions (most recent first).
func (s *SessionStore) List() ([]SessionMeta, error) {
	sessions, err := s.Load()
	if err != nil {
		return nil, err
	}

	metas := make([]SessionMeta, 0, len(sessions))
	for _, sess := range sessions {
		metas = append(metas, SessionMeta{
			ID:           sess.ID,
			Title:        sess.Title,
			LastModified: sess.LastModified,
			MessageCount: len(sess.Messages),
			Preview:      sess.Preview(80),
		})
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].LastModified.After(metas[j].LastModified)
	})

	return metas, nil
}

// Search finds sessions whose title or any message text contains the query
// (case-insensitive). An empty query returns everything.
func (s *SessionStore) Search(query string) ([]SessionMeta, error) {
	if query == "" {
		return s.List()
	}

	sessions, err := s.Load()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	byID := make(map[string]bool)
	for _, sess := range sessions {
		if strings.Contains(strings.ToLower(sess.Title), query) {
			byID[sess.ID] = true
			continue
		}
		for _, msg := range sess.Messages {
			if strings.Contains(strings.ToLower(msg.Text), query) {
				byID[sess.ID] = true
				break
			}
		}
	}

	all, err := s.List()
	if err != nil {
		return nil, err
	}

	var results []SessionMeta
	for _, meta := range all {
		if byID[meta.ID] {
			results = append(results, meta)
		}
	}

	return results, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes one session from the document.
func (s *SessionStore) Delete(id string) error {
	sessions, err := s.Load()
	if err != nil {
		return err
	}

	kept := sessions[:0]
	found := false
	for _, sess := range sessions {
		if sess.ID == id {
			found = true
			continue
		}
		kept = append(kept, sess)
	}
	if !found {
		return ErrSessionNotFound
	}

	return s.Save(kept)
}

// Clear removes all saved sessions.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.filePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// filePath returns the path of the sessions document.
func (s *SessionStore) filePath() string {
	return filepath.Join(s.BaseDir, sessionsFile)
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrSessionNotFound is returned when a session doesn't exist.
// Use errors.Is(err, ErrSessionNotFound) to check for this error.
var ErrSessionNotFound = &SessionError{Message: "session not found"}

// SessionError represents a session storage error.
// It implements the error interface and can be compared using errors.Is.
type SessionError struct {
	Message string
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing session errors.
func (e *SessionError) Is(target error) bool {
	t, ok := target.(*SessionError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// SESSION LIST FORMATTING
// =============================================================================

// FormatSessionList formats session metadata for display in a table.
func FormatSessionList(sessions []SessionMeta) string {
	if len(sessions) == 0 {
		return "No sessions found."
	}

	var sb strings.Builder
	sb.WriteString("Sessions:\n")
	sb.WriteString("-----------------------------------------------------\n")
	sb.WriteString(formatPadded("ID", 14) + " " + formatPadded("Modified", 17) + " " + formatPadded("Messages", 8) + " Title\n")
	sb.WriteString("-----------------------------------------------------\n")

	for _, s := range sessions {
		idStr := s.ID
		if len(idStr) > 14 {
			idStr = idStr[:14]
		}
		modifiedStr := s.LastModified.Format("2006-01-02 15:04")
		countStr := util.IntToString(s.MessageCount)

		sb.WriteString(formatPadded(idStr, 14) + " " +
			formatPadded(modifiedStr, 17) + " " +
			formatPadded(countStr, 8) + " " +
			util.TruncateRunes(s.Title, 30) + "\n")
	}
	return sb.String()
}

// formatPadded pads a string to the specified width with spaces.
func formatPadded(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// =============================================================================
// SESSION EXPORT
// =============================================================================

// ExportMarkdown renders a session as a Markdown document with role labels
// and timestamps.
func ExportMarkdown(sess model.Session) string {
	var sb strings.Builder
	sb.WriteString("# " + sess.Title + "\n\n")
	sb.WriteString("Last modified: " + sess.LastModified.Format(time.RFC3339) + "\n\n")
	sb.WriteString("---\n\n")

	for _, msg := range sess.Messages {
		sb.WriteString("**" + msg.Role.DisplayName() + "** (" + msg.Timestamp.Format("15:04") + "):\n\n")
		sb.WriteString(msg.Text)
		if msg.Image != "" {
			sb.WriteString("\n\n![generated image](" + msg.Image + ")")
		}
		sb.WriteString("\n\n---\n\n")
	}

	return sb.String()
}

// ExportJSON renders a session as pretty-printed JSON.
func ExportJSON(sess model.Session) ([]byte, error) {
	return json.MarshalIndent(sess, "", "  ")
}
