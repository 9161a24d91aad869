package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore はファイルシステムを使用したセッションストア。
// 1セッション1ファイルのJSON形式で保存する。
type FileStore struct {
	dir    string
	prefix string
}

// NewFileStore はFileStoreを生成する。保存先ディレクトリがなければ作成する。
func NewFileStore(dir, prefix string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileStore{dir: dir, prefix: prefix}, nil
}

// path はセッションIDに対応するファイルパスを返す。
// IDはCookie署名の検証を通過した値だが、パストラバーサル防止のため英数字とハイフンのみ許可する。
func (s *FileStore) path(id string) (string, error) {
	if id == "" || !isSafeID(id) {
		return "", fmt.Errorf("invalid session id")
	}
	name := strings.ReplaceAll(s.prefix, string(filepath.Separator), "_") + id + ".json"
	return filepath.Join(s.dir, name), nil
}

// Find は指定IDのレコードを取得する。見つからない場合・期限切れの場合はnilを返す。
func (s *FileStore) Find(ctx context.Context, id string) (*Record, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, nil
	}

	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// 壊れたファイルはセッションなしとして扱う
		return nil, nil
	}

	if rec.Expired(time.Now()) {
		return nil, nil
	}

	return &rec, nil
}

// Save はレコードをJSONファイルとして保存する。
func (s *FileStore) Save(ctx context.Context, rec *Record) error {
	p, err := s.path(rec.ID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	if err := os.WriteFile(p, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Delete は指定IDのレコードを削除する。存在しない場合もエラーにしない。
func (s *FileStore) Delete(ctx context.Context, id string) error {
	p, err := s.path(id)
	if err != nil {
		return nil
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// PurgeExpired は期限切れのセッションファイルを削除し、削除件数を返す。
func (s *FileStore) PurgeExpired(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read session directory: %w", err)
	}

	now := time.Now()
	purged := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		p := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}

		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			// 壊れたファイルも削除対象にする
			if err := os.Remove(p); err == nil {
				purged++
			}
			continue
		}

		if rec.Expired(now) {
			if err := os.Remove(p); err == nil {
				purged++
			}
		}
	}

	return purged, nil
}

// isSafeID はセッションIDがファイル名として安全な文字のみで構成されているかを返す。
func isSafeID(id string) bool {
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

// compile-time interface check
var _ Store = (*FileStore)(nil)
