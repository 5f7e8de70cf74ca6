package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/willibrandon/postmortem/pkg/logging"
)

func TestFileRecorder(t *testing.T) {
	path := InfoPath(t.TempDir(), 1234)

	// Create a new FileRecorder
	fr, err := NewFileRecorder(path, logging.Discard())
	if err != nil {
		t.Fatalf("Failed to create FileRecorder: %v", err)
	}
	if fr.Path() != path {
		t.Errorf("Path mismatch. Got %s, want %s", fr.Path(), path)
	}

	fr.Printf("Catch fatal exception: Code: %08x\n", uint32(0xc0000005))
	fr.Section(SectionMappedModules)
	fr.Section(SectionModules)
	if err := fr.Close(); err != nil {
		t.Fatalf("Failed to close FileRecorder: %v", err)
	}
	// Close is idempotent
	if err := fr.Close(); err != nil {
		t.Errorf("Failed to close FileRecorder twice: %v", err)
	}
	if fr.Failures() != 0 {
		t.Errorf("Expected 0 write failures, got %d", fr.Failures())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	want := "Catch fatal exception: Code: c0000005\n\nMemory modules:\n\nNormal modules:\n"
	if string(data) != want {
		t.Errorf("Artifact content mismatch. Got %q, want %q", data, want)
	}
}

func TestFileRecorderReplacesPreviousArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmp_dump_1.einfo")
	if err := os.WriteFile(path, []byte("stale content from an earlier crash"), 0644); err != nil {
		t.Fatalf("Failed to write stale artifact: %v", err)
	}

	fr, err := NewFileRecorder(path, logging.Discard())
	if err != nil {
		t.Fatalf("Failed to create FileRecorder: %v", err)
	}
	fr.Printf("fresh\n")
	if err := fr.Close(); err != nil {
		t.Fatalf("Failed to close FileRecorder: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	if string(data) != "fresh\n" {
		t.Errorf("Expected the previous artifact to be replaced, got %q", data)
	}
}

func TestFileRecorderWriteAfterClose(t *testing.T) {
	fr, err := NewFileRecorder(filepath.Join(t.TempDir(), "a.einfo"), logging.Discard())
	if err != nil {
		t.Fatalf("Failed to create FileRecorder: %v", err)
	}
	if err := fr.Close(); err != nil {
		t.Fatalf("Failed to close FileRecorder: %v", err)
	}

	if _, err := fr.Write([]byte("late")); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Expected os.ErrClosed, got %v", err)
	}
	if fr.Failures() != 1 {
		t.Errorf("Expected 1 write failure, got %d", fr.Failures())
	}
}

func TestNewFileRecorderMissingDir(t *testing.T) {
	if _, err := NewFileRecorder(filepath.Join(t.TempDir(), "missing", "a.einfo"), logging.Discard()); err == nil {
		t.Error("Expected an error creating a recorder in a missing directory")
	}
}
