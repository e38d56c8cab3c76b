package markers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateExistsRemove(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, ".claude"))

	if s.Exists(NeedsValidation) {
		t.Fatal("marker should not exist before Create")
	}
	if err := s.Create(NeedsValidation); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !s.Exists(NeedsValidation) {
		t.Fatal("marker should exist after Create")
	}
	if err := s.Remove(NeedsValidation); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Exists(NeedsValidation) {
		t.Fatal("marker should not exist after Remove")
	}
}

func TestRemoveAbsentMarkerIsNoop(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, ".claude"))
	if err := s.Remove(ProblemModeActive); err != nil {
		t.Fatalf("Remove of absent marker should succeed, got %v", err)
	}
}

func TestCreateMakesIntermediateDirs(t *testing.T) {
	dir := t.TempDir()
	claudeDir := filepath.Join(dir, "nested", "does", "not", "exist", ".claude")
	s := New(claudeDir)
	if err := s.Create(HadChanges); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := os.Stat(filepath.Join(claudeDir, string(HadChanges))); err != nil {
		t.Fatalf("marker file not created: %v", err)
	}
}

func TestCreateIsIdempotentTruncate(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, ".claude"))
	if err := s.Create(BeadsWarningGiven); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if err := s.Create(BeadsWarningGiven); err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if !s.Exists(BeadsWarningGiven) {
		t.Fatal("marker should exist after repeated Create")
	}
}
