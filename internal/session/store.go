package session

import "context"

// Store はセッションレコードの永続化インターフェース。
// 有効期限の管理はバックエンドの責務であり、期限切れレコードは
// Findでnilとして扱われる。
type Store interface {
	// Find は指定IDのレコードを取得する。見つからない場合・期限切れの場合はnilを返す。
	Find(ctx context.Context, id string) (*Record, error)

	// Save はレコードを保存する。既存レコードは上書きする。
	Save(ctx context.Context, rec *Record) error

	// Delete は指定IDのレコードを削除する。存在しない場合もエラーにしない。
	Delete(ctx context.Context, id string) error

	// PurgeExpired は期限切れレコードを削除し、削除件数を返す。
	// TTLで自動失効するバックエンドでは何もしない。
	PurgeExpired(ctx context.Context) (int, error)
}
