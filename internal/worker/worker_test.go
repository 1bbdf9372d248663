package worker

import (
	"context"
	"strings"
	"testing"

	"censorr/internal/pipeline"
	"censorr/internal/queue"
	"censorr/internal/services"
	"censorr/internal/testsupport"
)

type fakeRunner struct {
	results map[string]pipeline.Result
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, sourcePath string) (pipeline.Result, error) {
	f.calls = append(f.calls, sourcePath)
	if err, ok := f.errs[sourcePath]; ok {
		return pipeline.Result{}, err
	}
	return f.results[sourcePath], nil
}

func TestRunAllCompletesItems(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := testsupport.AddItem(t, store, "/media/a.mkv")

	runner := &fakeRunner{results: map[string]pipeline.Result{
		"/media/a.mkv": {FinalPath: "/out/a {edition-Censorr}.mkv", ReportPath: "/out/a/report.csv", Matches: 3},
	}}
	w, err := New(cfg, store, runner, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	processed, err := w.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if processed != 1 {
		t.Fatalf("expected 1 processed, got %d", processed)
	}

	updated, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != queue.StatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if updated.ResultPath != "/out/a {edition-Censorr}.mkv" {
		t.Fatalf("unexpected result path %q", updated.ResultPath)
	}
	if updated.ReportPath != "/out/a/report.csv" {
		t.Fatalf("unexpected report path %q", updated.ReportPath)
	}
}

func TestRunAllNoMatches(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	item := testsupport.AddItem(t, store, "/media/clean.mkv")

	runner := &fakeRunner{results: map[string]pipeline.Result{
		"/media/clean.mkv": {NoMatches: true},
	}}
	w, err := New(cfg, store, runner, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := w.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	updated, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != queue.StatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if !strings.Contains(updated.ProgressMessage, "no catalog terms") {
		t.Fatalf("expected no-match message, got %q", updated.ProgressMessage)
	}
	if updated.ResultPath != "" {
		t.Fatalf("expected no result path, got %q", updated.ResultPath)
	}
}

func TestRunAllFailsNonRetryableImmediately(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Worker.MaxRetries = 2
	store := testsupport.MustOpenStore(t, cfg)
	item := testsupport.AddItem(t, store, "/media/bad.mkv")

	runner := &fakeRunner{errs: map[string]error{
		"/media/bad.mkv": services.Wrap(services.ErrValidation, "subtitles", "select",
			"no subtitle stream matched the configured selectors", nil),
	}}
	w, err := New(cfg, store, runner, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := w.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	updated, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != queue.StatusFailed {
		t.Fatalf("expected failed, got %s", updated.Status)
	}
	if updated.RetryCount != 0 {
		t.Fatalf("validation failures must not retry, retry count %d", updated.RetryCount)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 pipeline call, got %d", len(runner.calls))
	}
}

func TestRunAllRetriesTransientFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Worker.MaxRetries = 1
	store := testsupport.MustOpenStore(t, cfg)
	item := testsupport.AddItem(t, store, "/media/flaky.mkv")

	runner := &fakeRunner{errs: map[string]error{
		"/media/flaky.mkv": services.Wrap(services.ErrExternalTool, "audio-mute", "ffmpeg",
			"boom", nil),
	}}
	w, err := New(cfg, store, runner, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	processed, err := w.RunAll(context.Background())
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if processed != 2 {
		t.Fatalf("expected initial attempt plus one retry, got %d", processed)
	}

	updated, err := store.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != queue.StatusFailed {
		t.Fatalf("expected failed after retries, got %s", updated.Status)
	}
	if updated.RetryCount != 1 {
		t.Fatalf("expected retry count 1, got %d", updated.RetryCount)
	}
	if updated.ErrorMessage == "" {
		t.Fatal("expected error message persisted")
	}
}

func TestSecondWorkerCannotAcquireLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	runner := &fakeRunner{}

	first, err := New(cfg, store, runner, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := first.acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer first.release()

	second, err := New(cfg, store, runner, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := second.RunAll(context.Background()); err == nil {
		t.Fatal("expected lock conflict error")
	}
}
