// Package session は署名付きCookieをキーとするサーバーサイドセッションを提供する。
// セッションIDはCookieに署名付きで保存し、セッション本体はバックエンド
// （メモリ・ファイル・Redis）に保存する。
package session

import "time"

// Identity は認証済みユーザーのセッション上の識別情報を表す。
type Identity struct {
	Email  string `json:"email"`
	UserID int64  `json:"id"`
}

// Record はセッションストアに保存される1セッション分のレコードを表す。
// Identityがnilの場合は匿名（未認証）セッションを表す。
type Record struct {
	ID        string    `json:"id"`
	Identity  *Identity `json:"identity,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired はレコードが期限切れかどうかを返す。
func (r *Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}
