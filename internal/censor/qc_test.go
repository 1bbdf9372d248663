package censor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"censorr/internal/services"
	"censorr/internal/subtitle"
)

func TestVerifyEventsCleanTrack(t *testing.T) {
	events := []subtitle.Event{
		{StartMS: 1000, EndMS: 2000, Text: "****, that hurt!"},
		{StartMS: 3000, EndMS: 4000, Text: "All quiet."},
	}
	if v := VerifyEvents(events, testCatalog(t, "damn")); len(v) != 0 {
		t.Fatalf("unexpected violations: %#v", v)
	}
}

func TestVerifyEventsFindsSurvivors(t *testing.T) {
	events := []subtitle.Event{
		{StartMS: 1000, EndMS: 2000, Text: "Damn, still here. DAMN!"},
		{StartMS: 3000, EndMS: 4000, Text: "damnation is a different word"},
	}
	violations := VerifyEvents(events, testCatalog(t, "damn"))
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1: %#v", len(violations), violations)
	}
	v := violations[0]
	if v.EventIndex != 0 || v.Term != "damn" || v.Count != 2 {
		t.Errorf("violation = %#v", v)
	}
}

func TestVerifyFile(t *testing.T) {
	dir := t.TempDir()
	clean := filepath.Join(dir, "clean.srt")
	dirty := filepath.Join(dir, "dirty.srt")
	if err := os.WriteFile(clean, []byte("1\n00:00:01,000 --> 00:00:02,000\n**** it.\n"), 0o644); err != nil {
		t.Fatalf("write clean: %v", err)
	}
	if err := os.WriteFile(dirty, []byte("1\n00:00:01,000 --> 00:00:02,000\nDamn it.\n"), 0o644); err != nil {
		t.Fatalf("write dirty: %v", err)
	}

	cat := testCatalog(t, "damn")
	if err := VerifyFile(clean, cat, nil); err != nil {
		t.Fatalf("clean track should pass: %v", err)
	}
	err := VerifyFile(dirty, cat, nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("dirty track should fail validation, got %v", err)
	}
}
