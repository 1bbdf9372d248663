package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"censorr/internal/catalog"
	"censorr/internal/fuzzy"
)

func TestCollect(t *testing.T) {
	matches := []fuzzy.Match{
		{Term: catalog.Term{Word: "Damn", Threshold: 85}, WindowText: "damn", Score: 100},
		{Term: catalog.Term{Word: "heck", Threshold: 85}, WindowText: "heck", Score: 100},
	}
	records := Collect(1500, 2750, "Damn, heck!", "****, ****!", matches)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	first := records[0]
	if first.StartMS != 1500 || first.EndMS != 2750 {
		t.Errorf("time bounds not copied: %#v", first)
	}
	if first.TargetWord != "Damn" {
		t.Errorf("target word should be as configured, got %q", first.TargetWord)
	}
	if first.OriginalText != "Damn, heck!" || first.MaskedText != "****, ****!" {
		t.Errorf("snapshots wrong: %#v", first)
	}
	if records[1].OriginalText != first.OriginalText || records[1].MaskedText != first.MaskedText {
		t.Error("snapshots should be identical across records of one event")
	}
}

func TestWriteAndReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profanity_matches.csv")
	records := []Record{
		{StartMS: 1000, EndMS: 2000, MatchedText: "damn", TargetWord: "damn", Score: 100, OriginalText: "damn it", MaskedText: "**** it"},
		{StartMS: 1900, EndMS: 2100, MatchedText: "heck", TargetWord: "heck", Score: 92.5, OriginalText: "heck", MaskedText: "****"},
		{StartMS: 3000, EndMS: 3200, MatchedText: "damn", TargetWord: "damn", Score: 100, OriginalText: "damn", MaskedText: "****"},
	}
	if err := WriteCSV(path, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "start_ms,end_ms,matched_text,target_word,score,original_text,masked_text" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	spans, err := ReadMuteWindows(path)
	if err != nil {
		t.Fatalf("ReadMuteWindows: %v", err)
	}
	// 1.0-2.0 and 1.9-2.1 merge; 3.0-3.2 stands alone.
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2: %v", len(spans), spans)
	}
	if spans[0].Start != 1.0 || spans[0].End != 2.1 {
		t.Errorf("first span = %v, want {1 2.1}", spans[0])
	}
	if spans[1].Start != 3.0 || spans[1].End != 3.2 {
		t.Errorf("second span = %v, want {3 3.2}", spans[1])
	}
}

func TestReadMuteWindowsSkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")
	content := "start_ms,end_ms,matched_text,target_word,score,original_text,masked_text\n" +
		"oops,2000,x,x,100,a,b\n" +
		"1000,2000,damn,damn,100,a,b\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	spans, err := ReadMuteWindows(path)
	if err != nil {
		t.Fatalf("ReadMuteWindows: %v", err)
	}
	if len(spans) != 1 || spans[0].Start != 1.0 {
		t.Errorf("unexpected spans: %v", spans)
	}
}

func TestReadMuteWindowsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := ReadMuteWindows(path); err == nil {
		t.Fatal("expected error for missing columns")
	}
}
