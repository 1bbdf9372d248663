package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"censorr/internal/config"
	"censorr/internal/logging"
	"censorr/internal/pipeline"
	"censorr/internal/queue"
	"censorr/internal/services"
)

// heartbeatInterval is how often an in-flight item's heartbeat is
// refreshed while the pipeline runs.
const heartbeatInterval = 30 * time.Second

// Runner executes the censoring pipeline for one source file. It is an
// interface so tests can substitute a fake.
type Runner interface {
	Run(ctx context.Context, sourcePath string) (pipeline.Result, error)
}

// Worker drains the queue, running the pipeline for each pending item.
// A lock file enforces a single instance per state directory.
type Worker struct {
	cfg    *config.Config
	store  *queue.Store
	runner Runner
	log    *slog.Logger

	lockPath string
	lock     *flock.Flock
}

// New constructs a worker with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, runner Runner, logger *slog.Logger) (*Worker, error) {
	if cfg == nil || store == nil || runner == nil {
		return nil, errors.New("worker requires config, store, and runner")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.StateDir, "censorr-worker.lock")
	return &Worker{
		cfg:      cfg,
		store:    store,
		runner:   runner,
		log:      logger,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the single-instance lock file location.
func (w *Worker) LockPath() string {
	return w.lockPath
}

func (w *Worker) acquire() error {
	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire worker lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another censorr worker is already running (lock %s)", w.lockPath)
	}
	return nil
}

func (w *Worker) release() {
	if err := w.lock.Unlock(); err != nil {
		w.log.Warn("failed to release worker lock", logging.Error(err))
	}
}

// Run polls the queue until the context is cancelled, processing items
// as they appear. Items stuck in processing from a previous crash are
// reset to pending at startup.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.acquire(); err != nil {
		return err
	}
	defer w.release()

	if reset, err := w.store.ResetStuckProcessing(ctx); err != nil {
		return fmt.Errorf("reset stuck items: %w", err)
	} else if reset > 0 {
		w.log.Info("reset stuck processing items", logging.Int64("count", reset))
	}

	interval := time.Duration(w.cfg.Worker.PollInterval) * time.Second
	w.log.Info("worker started",
		logging.Duration("poll_interval", interval),
		logging.String("lock", w.lockPath))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := w.drain(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			w.log.Info("worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// RunAll drains every pending item and exits. Used by batch invocations
// that do not want a resident process.
func (w *Worker) RunAll(ctx context.Context) (int, error) {
	if err := w.acquire(); err != nil {
		return 0, err
	}
	defer w.release()

	if _, err := w.store.ResetStuckProcessing(ctx); err != nil {
		return 0, fmt.Errorf("reset stuck items: %w", err)
	}

	processed := 0
	for {
		ok, err := w.processNext(ctx)
		if err != nil {
			return processed, err
		}
		if !ok {
			return processed, nil
		}
		processed++
	}
}

// drain processes pending items until the queue is empty or the context
// is cancelled.
func (w *Worker) drain(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		ok, err := w.processNext(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// processNext claims and runs one item. The second return is false when
// the queue had no pending work. Pipeline failures are persisted on the
// item and never abort the loop.
func (w *Worker) processNext(ctx context.Context) (bool, error) {
	item, err := w.store.NextPending(ctx)
	if err != nil {
		return false, fmt.Errorf("claim next item: %w", err)
	}
	if item == nil {
		return false, nil
	}

	itemCtx, stopHeartbeat := context.WithCancel(services.WithItemID(ctx, item.ID))
	go w.heartbeatLoop(itemCtx, item.ID)

	log := logging.WithContext(itemCtx, w.log)
	log.Info("processing item", logging.String("source", item.SourcePath))

	item.SetProgress("pipeline", "processing")
	if err := w.store.Update(itemCtx, item); err != nil {
		stopHeartbeat()
		return false, fmt.Errorf("persist processing state: %w", err)
	}

	result, runErr := w.runner.Run(itemCtx, item.SourcePath)
	stopHeartbeat()
	item.LastHeartbeat = nil

	if runErr != nil {
		w.recordFailure(ctx, log, item, runErr)
		return true, nil
	}

	item.Status = queue.StatusCompleted
	item.ResultPath = result.FinalPath
	item.ReportPath = result.ReportPath
	if result.NoMatches {
		item.SetProgress("done", "no catalog terms found; source unchanged")
	} else {
		item.SetProgress("done", fmt.Sprintf("censored %d matches", result.Matches))
	}
	if err := w.store.Update(ctx, item); err != nil {
		return false, fmt.Errorf("persist completion: %w", err)
	}
	log.Info("item completed",
		logging.String("result", item.ResultPath),
		logging.Int("matches", result.Matches))
	return true, nil
}

// recordFailure either requeues a retryable failure or marks the item
// failed once retries are exhausted.
func (w *Worker) recordFailure(ctx context.Context, log *slog.Logger, item *queue.Item, runErr error) {
	if services.Retryable(runErr) && item.RetryCount < w.cfg.Worker.MaxRetries {
		item.RetryCount++
		item.Status = queue.StatusPending
		item.ErrorMessage = runErr.Error()
		item.SetProgress("retry", fmt.Sprintf("attempt %d of %d failed, requeued",
			item.RetryCount, w.cfg.Worker.MaxRetries+1))
		log.Warn("item requeued after failure",
			logging.Int("retry", item.RetryCount),
			logging.Error(runErr))
	} else {
		item.SetFailed(runErr.Error())
		log.Error("item failed", logging.Error(runErr))
	}
	if err := w.store.Update(ctx, item); err != nil {
		log.Error("failed to persist failure", logging.Error(err))
	}
}

func (w *Worker) heartbeatLoop(ctx context.Context, id int64) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.store.UpdateHeartbeat(ctx, id); err != nil {
				w.log.Debug("heartbeat update failed", logging.Error(err))
			}
		}
	}
}
