package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore はプロセス内メモリを使用したセッションストア。
// プロセス再起動で全セッションが失われるため、開発・テスト用途を想定する。
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore はMemoryStoreを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

// Find は指定IDのレコードを取得する。見つからない場合・期限切れの場合はnilを返す。
func (s *MemoryStore) Find(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok || rec.Expired(time.Now()) {
		return nil, nil
	}

	// 呼び出し側の変更がストア内部に漏れないようコピーを返す
	cp := *rec
	if rec.Identity != nil {
		ident := *rec.Identity
		cp.Identity = &ident
	}
	return &cp, nil
}

// Save はレコードを保存する。
func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	if rec.Identity != nil {
		ident := *rec.Identity
		cp.Identity = &ident
	}
	s.records[rec.ID] = &cp
	return nil
}

// Delete は指定IDのレコードを削除する。
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

// PurgeExpired は期限切れレコードを削除し、削除件数を返す。
func (s *MemoryStore) PurgeExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	purged := 0
	for id, rec := range s.records {
		if rec.Expired(now) {
			delete(s.records, id)
			purged++
		}
	}
	return purged, nil
}

// compile-time interface check
var _ Store = (*MemoryStore)(nil)
