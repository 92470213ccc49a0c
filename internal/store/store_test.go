package store

import (
	"path/filepath"
	"testing"
)

func TestArchiveStorePlans(t *testing.T) {
	s, err := NewArchiveStore(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	id, err := s.SavePlan("run-1", "renew my insurance", `{"purpose":"renew"}`, `{"scenarios":[]}`, "You are a caller.")
	if err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	if id == 0 {
		t.Error("SavePlan returned id 0")
	}

	records, err := s.RecentPlans(5)
	if err != nil {
		t.Fatalf("RecentPlans failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("RecentPlans returned %d records, want 1", len(records))
	}
	got := records[0]
	if got.RunID != "run-1" || got.UserInput != "renew my insurance" {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.SystemPrompt != "You are a caller." {
		t.Errorf("SystemPrompt = %q", got.SystemPrompt)
	}
}

func TestArchiveStoreSummaries(t *testing.T) {
	s, err := NewArchiveStore(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.SaveSummary("transcript text", `{"result":"failure"}`); err != nil {
		t.Fatalf("SaveSummary failed: %v", err)
	}

	records, err := s.RecentSummaries(5)
	if err != nil {
		t.Fatalf("RecentSummaries failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("RecentSummaries returned %d records, want 1", len(records))
	}
	if records[0].SummaryJSON != `{"result":"failure"}` {
		t.Errorf("SummaryJSON = %q", records[0].SummaryJSON)
	}
}
