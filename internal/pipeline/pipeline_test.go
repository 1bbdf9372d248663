package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"censorr/internal/logging"
	"censorr/internal/testsupport"
)

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestRunRequiresExistingSource(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalog(`["damn"]`))
	p, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "missing.mkv")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestRunRequiresCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	source := filepath.Join(t.TempDir(), "movie.mkv")
	testsupport.WriteFile(t, source, "not a real container")
	if _, err := p.Run(context.Background(), source); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestWorkDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := p.WorkDir("/media/Some Movie (2020).mkv")
	want := filepath.Join(cfg.Paths.OutputDir, "Some Movie (2020)")
	if got != want {
		t.Fatalf("WorkDir = %q, want %q", got, want)
	}
}

func TestCleanupStaysInsideWorkDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	workDir := t.TempDir()
	inside := filepath.Join(workDir, "audio.wav")
	stream := filepath.Join(workDir, "movie.stream2.srt")
	outside := filepath.Join(t.TempDir(), "precious.txt")
	for _, path := range []string{inside, stream, outside} {
		testsupport.WriteFile(t, path, "x")
	}

	p.cleanup(logging.NewNop(), workDir, inside, outside)

	if _, err := os.Stat(inside); !os.IsNotExist(err) {
		t.Fatalf("expected %s removed", inside)
	}
	if _, err := os.Stat(stream); !os.IsNotExist(err) {
		t.Fatalf("expected extracted stream %s removed", stream)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside work dir must survive: %v", err)
	}
}
