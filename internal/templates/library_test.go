package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLibrary_BuiltinTemplates(t *testing.T) {
	lib := NewLibrary("")
	for _, stage := range lib.Stages() {
		tmpl, err := lib.Template(stage)
		if err != nil {
			t.Fatalf("Template(%s) failed: %v", stage, err)
		}
		if strings.TrimSpace(tmpl) == "" {
			t.Errorf("Template(%s) is empty", stage)
		}
	}
}

func TestLibrary_UnknownStage(t *testing.T) {
	lib := NewLibrary("")
	if _, err := lib.Template("mystery_stage"); err == nil {
		t.Error("expected error for unknown stage")
	}
}

func TestLibrary_DirectoryOverride(t *testing.T) {
	tempDir := t.TempDir()
	override := "Summarize this call in one line: {{.call_log}}"
	err := os.WriteFile(filepath.Join(tempDir, StageCallSummary+".md"), []byte(override), 0644)
	if err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(tempDir)

	got, err := lib.Template(StageCallSummary)
	if err != nil {
		t.Fatalf("Template failed: %v", err)
	}
	if got != override {
		t.Errorf("Template() = %q, want override content", got)
	}

	// Stages without an override file still resolve to builtins.
	tmpl, err := lib.Template(StagePlanGeneration)
	if err != nil {
		t.Fatalf("Template failed: %v", err)
	}
	if !strings.Contains(tmpl, "scenarios") {
		t.Errorf("builtin plan template missing expected content")
	}
}
