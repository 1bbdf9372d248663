package queue_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"censorr/internal/queue"
	"censorr/internal/testsupport"
)

func TestOpenCreatesSchemaAndAdds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item, err := store.Add(ctx, "/media/Sample Movie (2020).mkv", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if item.ID == 0 {
		t.Fatal("expected item ID to be assigned")
	}
	if item.Status != queue.StatusPending {
		t.Fatalf("expected pending status, got %s", item.Status)
	}
	if item.Title != "Sample Movie (2020)" {
		t.Fatalf("unexpected inferred title %q", item.Title)
	}

	fetched, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.SourcePath != "/media/Sample Movie (2020).mkv" {
		t.Fatalf("unexpected fetched item: %#v", fetched)
	}
}

func TestAddRequiresSourcePath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.Add(context.Background(), "  ", ""); err == nil {
		t.Fatal("expected error for empty source path")
	}
}

func TestNextPendingClaimsOldest(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first, err := store.Add(ctx, "/media/a.mkv", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, "/media/b.mkv", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}

	claimed, err := store.NextPending(ctx)
	if err != nil {
		t.Fatalf("NextPending: %v", err)
	}
	if claimed == nil || claimed.ID != first.ID {
		t.Fatalf("expected oldest item claimed, got %#v", claimed)
	}
	if claimed.Status != queue.StatusProcessing {
		t.Fatalf("expected processing status, got %s", claimed.Status)
	}
	if claimed.LastHeartbeat == nil {
		t.Fatal("expected heartbeat set on claim")
	}

	stored, err := store.GetByID(ctx, claimed.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != queue.StatusProcessing {
		t.Fatalf("claim not persisted, status %s", stored.Status)
	}
}

func TestNextPendingEmptyQueue(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	item, err := store.NextPending(context.Background())
	if err != nil {
		t.Fatalf("NextPending: %v", err)
	}
	if item != nil {
		t.Fatalf("expected nil item for empty queue, got %#v", item)
	}
}

func TestFindBySourcePathSkipsTerminal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item, err := store.Add(ctx, "/media/a.mkv", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	found, err := store.FindBySourcePath(ctx, "/media/a.mkv")
	if err != nil {
		t.Fatalf("FindBySourcePath: %v", err)
	}
	if found == nil || found.ID != item.ID {
		t.Fatalf("expected pending item found, got %#v", found)
	}

	item.Status = queue.StatusCompleted
	if err := store.Update(ctx, item); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err = store.FindBySourcePath(ctx, "/media/a.mkv")
	if err != nil {
		t.Fatalf("FindBySourcePath: %v", err)
	}
	if found != nil {
		t.Fatalf("completed item should not be found, got %#v", found)
	}
}

func TestListSupportsStatusFilter(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	a := testsupport.AddItem(t, store, "/media/a.mkv")
	b := testsupport.AddItem(t, store, "/media/b.mkv")
	c := testsupport.AddItem(t, store, "/media/c.mkv")

	b.Status = queue.StatusCompleted
	if err := store.Update(ctx, b); err != nil {
		t.Fatalf("Update: %v", err)
	}
	c.SetFailed("boom")
	if err := store.Update(ctx, c); err != nil {
		t.Fatalf("Update: %v", err)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != a.ID || items[1].ID != b.ID || items[2].ID != c.ID {
		t.Fatalf("expected order a,b,c, got IDs %d,%d,%d", items[0].ID, items[1].ID, items[2].ID)
	}

	filtered, err := store.List(ctx, queue.StatusCompleted, queue.StatusFailed)
	if err != nil {
		t.Fatalf("Filtered list failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 items, got %d", len(filtered))
	}
	if filtered[0].ID != b.ID || filtered[1].ID != c.ID {
		t.Fatalf("unexpected filtered order: got %d,%d", filtered[0].ID, filtered[1].ID)
	}
}

func TestStatsAndHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		testsupport.AddItem(t, store, fmt.Sprintf("/media/p%d.mkv", i))
	}
	failed := testsupport.AddItem(t, store, "/media/f.mkv")
	failed.SetFailed("boom")
	if err := store.Update(ctx, failed); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[queue.StatusPending] != 2 || stats[queue.StatusFailed] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Total != 3 || health.Pending != 2 || health.Failed != 1 {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestRetryFailed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	a := testsupport.AddItem(t, store, "/media/a.mkv")
	b := testsupport.AddItem(t, store, "/media/b.mkv")
	for _, item := range []*queue.Item{a, b} {
		item.SetFailed("boom")
		item.RetryCount = 2
		if err := store.Update(ctx, item); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}

	updated, err := store.RetryFailed(ctx)
	if err != nil {
		t.Fatalf("RetryFailed all: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 items retried, got %d", updated)
	}

	item, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if item.Status != queue.StatusPending {
		t.Fatalf("expected item A pending, got %s", item.Status)
	}
	if item.ErrorMessage != "" || item.RetryCount != 0 {
		t.Fatalf("expected error state cleared, got %q retries=%d", item.ErrorMessage, item.RetryCount)
	}

	// Mark B failed again and retry targeted selection.
	b.SetFailed("boom again")
	if err := store.Update(ctx, b); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, err = store.RetryFailed(ctx, b.ID)
	if err != nil {
		t.Fatalf("RetryFailed targeted: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 item retried, got %d", updated)
	}
}

func TestCancelOnlyPending(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item := testsupport.AddItem(t, store, "/media/a.mkv")

	ok, err := store.Cancel(ctx, item.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !ok {
		t.Fatal("expected pending item cancelled")
	}

	again, err := store.Cancel(ctx, item.ID)
	if err != nil {
		t.Fatalf("Cancel repeat: %v", err)
	}
	if again {
		t.Fatal("cancelled item should not cancel twice")
	}
}

func TestResetStuckProcessing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item := testsupport.AddItem(t, store, "/media/a.mkv")
	claimed, err := store.NextPending(ctx)
	if err != nil || claimed == nil {
		t.Fatalf("NextPending: %v %#v", err, claimed)
	}

	count, err := store.ResetStuckProcessing(ctx)
	if err != nil {
		t.Fatalf("ResetStuckProcessing: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 item reset, got %d", count)
	}

	updated, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != queue.StatusPending {
		t.Fatalf("expected pending after reset, got %s", updated.Status)
	}
	if updated.LastHeartbeat != nil {
		t.Fatal("expected heartbeat cleared")
	}
}

func TestReclaimStaleProcessing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	past := time.Now().Add(-2 * time.Hour).UTC()

	stale := testsupport.AddItem(t, store, "/media/stale.mkv")
	stale.Status = queue.StatusProcessing
	stale.LastHeartbeat = &past
	if err := store.Update(ctx, stale); err != nil {
		t.Fatalf("Update stale: %v", err)
	}

	fresh := testsupport.AddItem(t, store, "/media/fresh.mkv")
	claimed, err := store.NextPending(ctx)
	if err != nil || claimed == nil || claimed.ID != fresh.ID {
		t.Fatalf("NextPending: %v %#v", err, claimed)
	}

	count, err := store.ReclaimStaleProcessing(ctx, time.Now().Add(-1*time.Hour))
	if err != nil {
		t.Fatalf("ReclaimStaleProcessing: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 item reclaimed, got %d", count)
	}

	reclaimed, err := store.GetByID(ctx, stale.ID)
	if err != nil {
		t.Fatalf("GetByID stale: %v", err)
	}
	if reclaimed.Status != queue.StatusPending {
		t.Fatalf("expected stale item pending, got %s", reclaimed.Status)
	}
	if reclaimed.LastHeartbeat != nil {
		t.Fatalf("expected stale heartbeat cleared, got %v", reclaimed.LastHeartbeat)
	}

	unchanged, err := store.GetByID(ctx, fresh.ID)
	if err != nil {
		t.Fatalf("GetByID fresh: %v", err)
	}
	if unchanged.Status != queue.StatusProcessing {
		t.Fatalf("expected fresh item untouched, got %s", unchanged.Status)
	}
}

func TestUpdateHeartbeat(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	item := testsupport.AddItem(t, store, "/media/a.mkv")
	if err := store.UpdateHeartbeat(ctx, item.ID); err != nil {
		t.Fatalf("UpdateHeartbeat: %v", err)
	}

	updated, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.LastHeartbeat == nil {
		t.Fatal("expected last heartbeat to be set")
	}
}

func TestRemoveAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	a := testsupport.AddItem(t, store, "/media/a.mkv")
	b := testsupport.AddItem(t, store, "/media/b.mkv")
	c := testsupport.AddItem(t, store, "/media/c.mkv")

	b.Status = queue.StatusCompleted
	if err := store.Update(ctx, b); err != nil {
		t.Fatalf("Update: %v", err)
	}
	c.SetFailed("boom")
	if err := store.Update(ctx, c); err != nil {
		t.Fatalf("Update: %v", err)
	}

	removed, err := store.Remove(ctx, a.ID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Fatal("expected item removed")
	}

	cleared, err := store.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 completed cleared, got %d", cleared)
	}

	cleared, err = store.ClearFailed(ctx)
	if err != nil {
		t.Fatalf("ClearFailed: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 failed cleared, got %d", cleared)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty queue, got %d items", len(items))
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := queue.ParseStatus(" Pending "); !ok || status != queue.StatusPending {
		t.Fatalf("ParseStatus pending = %q %v", status, ok)
	}
	if _, ok := queue.ParseStatus("ripping"); ok {
		t.Fatal("unknown status should not parse")
	}
	if !queue.StatusCompleted.IsTerminal() || queue.StatusProcessing.IsTerminal() {
		t.Fatal("terminal classification wrong")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", cfg.QueueDatabasePath())
	if err != nil {
		t.Fatalf("open raw database: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("rewrite schema version: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw database: %v", err)
	}

	if _, err := queue.Open(cfg); !errors.Is(err, queue.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
