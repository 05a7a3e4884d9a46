// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"path/filepath"
	"testing"
	"time"
)

func testLog(t *testing.T) *TurnLog {
	t.Helper()
	log, err := NewTurnLog(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatalf("NewTurnLog: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestRecordAndRecent(t *testing.T) {
	log := testLog(t)

	err := log.Record(TurnRecord{
		SessionID:     "sess_1",
		ModelID:       "gemini-2.0-flash",
		Kind:          KindChat,
		PromptRunes:   12,
		ResponseRunes: 340,
		ChunkCount:    8,
		Grounded:      true,
		Success:       true,
		Duration:      1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	records, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len = %d, want 1", len(records))
	}

	rec := records[0]
	if rec.ID == "" {
		t.Error("ID not generated")
	}
	if rec.ModelID != "gemini-2.0-flash" || rec.Kind != KindChat {
		t.Errorf("record = %+v", rec)
	}
	if !rec.Grounded || !rec.Success {
		t.Error("flags did not round-trip")
	}
	if rec.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v", rec.Duration)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not filled")
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	log := testLog(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		err := log.Record(TurnRecord{
			SessionID: "sess_1",
			ModelID:   "gemini-2.0-flash",
			Kind:      KindChat,
			Success:   true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	records, err := log.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Error("records not ordered most recent first")
		}
	}
}

func TestStats(t *testing.T) {
	log := testLog(t)

	turns := []TurnRecord{
		{SessionID: "s", ModelID: "gemini-2.0-flash", Kind: KindChat, Success: true, Duration: 100 * time.Millisecond},
		{SessionID: "s", ModelID: "gemini-2.0-flash", Kind: KindChat, Success: false, ErrorText: "rate limited", Duration: 300 * time.Millisecond},
		{SessionID: "s", ModelID: "stable-diffusion-xl", Kind: KindImage, Success: true, Duration: 200 * time.Millisecond},
	}
	for i, rec := range turns {
		if err := log.Record(rec); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	stats, err := log.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalTurns != 3 || stats.Successes != 2 || stats.Failures != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgDurationMs != 200 {
		t.Errorf("AvgDurationMs = %d, want 200", stats.AvgDurationMs)
	}
	if stats.ByModel["gemini-2.0-flash"] != 2 || stats.ByModel["stable-diffusion-xl"] != 1 {
		t.Errorf("ByModel = %+v", stats.ByModel)
	}
}

func TestEmptyLogStats(t *testing.T) {
	log := testLog(t)

	stats, err := log.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalTurns != 0 || stats.Failures != 0 {
		t.Errorf("stats = %+v", stats)
	}

	records, err := log.Recent(5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len = %d, want 0", len(records))
	}
}
