// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"net/http"

	"github.com/hitoshi/tsunagu/internal/session"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// sessionContextKey はリクエストコンテキストにセッションレコードを格納するためのキー。
var sessionContextKey = contextKey("session")

// SessionLoader はリクエストからセッションを復元するインターフェース。
// session.Managerの部分集合として定義する。
type SessionLoader interface {
	Load(r *http.Request) *session.Record
}

// NewSessionMiddleware は署名付きCookieからセッションを復元し、
// リクエストコンテキストに注入するミドルウェアを返す。
// Cookieが無い・改ざんされている・期限切れの場合は匿名セッションを注入する。
// 認証を強制しない。各ハンドラーがセッションの有無に応じて応答を変える。
func NewSessionMiddleware(loader SessionLoader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := loader.Load(r)
			ctx := context.WithValue(r.Context(), sessionContextKey, rec)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext はリクエストコンテキストからセッションレコードを取得する。
// セッションミドルウェアを通過していない場合はnilを返す。
func SessionFromContext(ctx context.Context) *session.Record {
	rec, ok := ctx.Value(sessionContextKey).(*session.Record)
	if !ok {
		return nil
	}
	return rec
}

// ContextWithSession はコンテキストにセッションレコードを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithSession(ctx context.Context, rec *session.Record) context.Context {
	return context.WithValue(ctx, sessionContextKey, rec)
}
