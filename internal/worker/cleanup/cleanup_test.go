package cleanup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hitoshi/tsunagu/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// mockPurger はテスト用のSessionPurger。
type mockPurger struct {
	purged int
	calls  int
	err    error
}

func (m *mockPurger) PurgeExpired(_ context.Context) (int, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.purged, nil
}

// mockPurgeRecorder はテスト用のPurgeRecorder。
type mockPurgeRecorder struct {
	total int
}

func (m *mockPurgeRecorder) RecordSessionsPurged(count int) {
	m.total += count
}

func TestRun_PurgesAndRecordsMetrics(t *testing.T) {
	purger := &mockPurger{purged: 3}
	recorder := &mockPurgeRecorder{}
	job := NewCleanupJob(purger, testLogger(), recorder)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if purger.calls != 1 {
		t.Errorf("calls = %d, want 1", purger.calls)
	}
	if recorder.total != 3 {
		t.Errorf("recorded purge count = %d, want 3", recorder.total)
	}
}

func TestRun_NothingToPurge_Succeeds(t *testing.T) {
	job := NewCleanupJob(&mockPurger{purged: 0}, testLogger(), nil)

	if err := job.Run(context.Background()); err != nil {
		t.Errorf("Run returned error: %v", err)
	}
}

func TestRun_StoreError_Propagates(t *testing.T) {
	purger := &mockPurger{err: errors.New("disk failure")}
	job := NewCleanupJob(purger, testLogger(), nil)

	if err := job.Run(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestRun_WithMemoryStore_RemovesExpiredSessions(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	expired := &session.Record{ID: "old", ExpiresAt: time.Now().Add(-time.Hour)}
	live := &session.Record{ID: "live", ExpiresAt: time.Now().Add(time.Hour)}
	for _, rec := range []*session.Record{expired, live} {
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	job := NewCleanupJob(store, testLogger(), nil)
	if err := job.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got, _ := store.Find(ctx, "old"); got != nil {
		t.Error("expired session should be purged")
	}
	if got, _ := store.Find(ctx, "live"); got == nil {
		t.Error("live session should survive")
	}
}

func TestRunPeriodic_StopsOnContextCancel(t *testing.T) {
	purger := &mockPurger{}
	job := NewCleanupJob(purger, testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		job.RunPeriodic(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunPeriodic did not stop after cancel")
	}

	// 起動直後の1回と、ティックによる複数回が実行されている
	if purger.calls < 2 {
		t.Errorf("calls = %d, want at least 2", purger.calls)
	}
}
