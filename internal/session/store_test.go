package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// 各ストア実装に共通の仕様を検証するテーブル駆動テスト。
func TestStores_SaveFindDelete(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   newTestFileStore(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			rec := &Record{
				ID:        "abc123-session",
				Identity:  &Identity{Email: "taro@example.com", UserID: 42},
				ExpiresAt: time.Now().Add(1 * time.Hour),
			}

			if err := store.Save(ctx, rec); err != nil {
				t.Fatalf("Save returned error: %v", err)
			}

			found, err := store.Find(ctx, "abc123-session")
			if err != nil {
				t.Fatalf("Find returned error: %v", err)
			}
			if found == nil {
				t.Fatal("expected record, got nil")
			}
			if found.Identity == nil || found.Identity.Email != "taro@example.com" || found.Identity.UserID != 42 {
				t.Errorf("identity = %+v, want email=taro@example.com id=42", found.Identity)
			}

			if err := store.Delete(ctx, "abc123-session"); err != nil {
				t.Fatalf("Delete returned error: %v", err)
			}

			found, err = store.Find(ctx, "abc123-session")
			if err != nil {
				t.Fatalf("Find after delete returned error: %v", err)
			}
			if found != nil {
				t.Error("expected nil after delete")
			}
		})
	}
}

func TestStores_Find_UnknownID_ReturnsNil(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   newTestFileStore(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			found, err := store.Find(context.Background(), "no-such-session")
			if err != nil {
				t.Fatalf("Find returned error: %v", err)
			}
			if found != nil {
				t.Errorf("expected nil for unknown id, got %+v", found)
			}
		})
	}
}

func TestStores_Find_ExpiredRecord_ReturnsNil(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   newTestFileStore(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			rec := &Record{
				ID:        "expired-session",
				Identity:  &Identity{Email: "taro@example.com", UserID: 42},
				ExpiresAt: time.Now().Add(-1 * time.Minute),
			}
			if err := store.Save(ctx, rec); err != nil {
				t.Fatalf("Save returned error: %v", err)
			}

			found, err := store.Find(ctx, "expired-session")
			if err != nil {
				t.Fatalf("Find returned error: %v", err)
			}
			if found != nil {
				t.Error("expected nil for expired record")
			}
		})
	}
}

func TestStores_PurgeExpired(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   newTestFileStore(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			expired := &Record{ID: "old-session", ExpiresAt: time.Now().Add(-1 * time.Hour)}
			live := &Record{ID: "live-session", ExpiresAt: time.Now().Add(1 * time.Hour)}

			if err := store.Save(ctx, expired); err != nil {
				t.Fatalf("Save(expired) returned error: %v", err)
			}
			if err := store.Save(ctx, live); err != nil {
				t.Fatalf("Save(live) returned error: %v", err)
			}

			purged, err := store.PurgeExpired(ctx)
			if err != nil {
				t.Fatalf("PurgeExpired returned error: %v", err)
			}
			if purged != 1 {
				t.Errorf("purged = %d, want 1", purged)
			}

			found, err := store.Find(ctx, "live-session")
			if err != nil {
				t.Fatalf("Find returned error: %v", err)
			}
			if found == nil {
				t.Error("live record should survive the purge")
			}
		})
	}
}

func TestMemoryStore_Find_ReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := &Record{
		ID:        "copy-test",
		Identity:  &Identity{Email: "taro@example.com", UserID: 42},
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	found, _ := store.Find(ctx, "copy-test")
	found.Identity.Email = "mutated@example.com"

	again, _ := store.Find(ctx, "copy-test")
	if again.Identity.Email != "taro@example.com" {
		t.Error("mutating a returned record should not affect the store")
	}
}

func TestFileStore_RejectsUnsafeIDs(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	// パストラバーサルを試みるIDはファイル名として拒否される
	found, err := store.Find(ctx, "../../etc/passwd")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if found != nil {
		t.Error("unsafe id should yield nil")
	}

	rec := &Record{ID: "../escape", ExpiresAt: time.Now().Add(1 * time.Hour)}
	if err := store.Save(ctx, rec); err == nil {
		t.Error("Save with unsafe id should return an error")
	}
}

func TestFileStore_PurgeExpired_RemovesCorruptedFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "session:")
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "session:broken.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	purged, err := store.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("PurgeExpired returned error: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), "session:")
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	return store
}
