package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, catalog string) string {
	t.Helper()
	base := t.TempDir()
	catalogPath := filepath.Join(base, "catalog.json")
	if err := os.WriteFile(catalogPath, []byte(catalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	content := fmt.Sprintf(`[paths]
output_dir = %q
state_dir = %q
log_dir = %q
catalog_path = %q
`,
		filepath.Join(base, "out"),
		filepath.Join(base, "state"),
		filepath.Join(base, "logs"),
		catalogPath,
	)
	cfgPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected target path in output, got %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists")
	}
}

func TestConfigShowPrintsDefaults(t *testing.T) {
	cfgPath := writeTestConfig(t, `["damn"]`)
	out, err := runCLI(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "loaded from") {
		t.Fatalf("expected source comment, got %q", out)
	}
	if !strings.Contains(out, "default_threshold") {
		t.Fatalf("expected TOML output, got %q", out)
	}
}

func TestQueueAddListStatus(t *testing.T) {
	cfgPath := writeTestConfig(t, `["damn"]`)

	out, err := runCLI(t, "--config", cfgPath, "queue", "add", "/media/Sample.mkv")
	if err != nil {
		t.Fatalf("queue add: %v", err)
	}
	if !strings.Contains(out, "Queued item 1") {
		t.Fatalf("unexpected add output %q", out)
	}

	// Re-adding the same pending source is refused.
	out, err = runCLI(t, "--config", cfgPath, "queue", "add", "/media/Sample.mkv")
	if err != nil {
		t.Fatalf("queue add repeat: %v", err)
	}
	if !strings.Contains(out, "Already queued") {
		t.Fatalf("expected dedupe message, got %q", out)
	}

	out, err = runCLI(t, "--config", cfgPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(out, "Sample") || !strings.Contains(out, "pending") {
		t.Fatalf("unexpected list output %q", out)
	}

	out, err = runCLI(t, "--config", cfgPath, "queue", "status")
	if err != nil {
		t.Fatalf("queue status: %v", err)
	}
	if !strings.Contains(out, "pending") || !strings.Contains(out, "1") {
		t.Fatalf("unexpected status output %q", out)
	}
}

func TestQueueClearRequiresScope(t *testing.T) {
	cfgPath := writeTestConfig(t, `["damn"]`)
	if _, err := runCLI(t, "--config", cfgPath, "queue", "clear"); err == nil {
		t.Fatal("expected error without a clear scope flag")
	}
	out, err := runCLI(t, "--config", cfgPath, "queue", "clear", "--all")
	if err != nil {
		t.Fatalf("queue clear --all: %v", err)
	}
	if !strings.Contains(out, "Cleared 0") {
		t.Fatalf("unexpected clear output %q", out)
	}
}

func TestSubtitlesMaskCommand(t *testing.T) {
	cfgPath := writeTestConfig(t, `["damn"]`)

	srtPath := filepath.Join(t.TempDir(), "dialogue.srt")
	srt := "1\n00:00:01,000 --> 00:00:02,000\nDamn, that hurt!\n\n" +
		"2\n00:00:03,000 --> 00:00:04,000\nNothing to see here.\n"
	if err := os.WriteFile(srtPath, []byte(srt), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}

	maskedPath := filepath.Join(filepath.Dir(srtPath), "masked.srt")
	reportPath := filepath.Join(filepath.Dir(srtPath), "matches.csv")
	out, err := runCLI(t, "--config", cfgPath, "subtitles", "mask", srtPath,
		"--output", maskedPath, "--report", reportPath)
	if err != nil {
		t.Fatalf("subtitles mask: %v", err)
	}
	if !strings.Contains(out, "Masked 1 of 2 events") {
		t.Fatalf("unexpected mask output %q", out)
	}

	masked, err := os.ReadFile(maskedPath)
	if err != nil {
		t.Fatalf("read masked: %v", err)
	}
	if !strings.Contains(string(masked), "****, that hurt!") {
		t.Fatalf("masked text missing, got %q", masked)
	}
	if _, err := os.Stat(reportPath); err != nil {
		t.Fatalf("match report not written: %v", err)
	}

	// The masked track passes QC.
	out, err = runCLI(t, "--config", cfgPath, "subtitles", "qc", maskedPath)
	if err != nil {
		t.Fatalf("subtitles qc: %v", err)
	}
	if !strings.Contains(out, "passed QC") {
		t.Fatalf("unexpected qc output %q", out)
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	cfgPath := writeTestConfig(t, `["damn"]`)
	if _, err := runCLI(t, "--config", cfgPath, "queue", "list", "--status", "ripping"); err == nil {
		t.Fatal("expected unknown status error")
	}
}
