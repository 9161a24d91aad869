package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// Config はセッションCookieの設定。
type Config struct {
	CookieName string
	MaxAge     int // 秒
	Secure     bool
	Domain     string
}

// Manager はセッションの発行・破棄とCookieの読み書きを担う。
// 状態は2つ: 匿名（Identityなし）と認証済み（Identityあり）。
// Cookieにはセッションボディではなく署名付きセッションIDのみを保存する。
type Manager struct {
	store  Store
	codec  *securecookie.SecureCookie
	config Config
}

// NewManager はManagerを生成する。
// secretはCookie署名鍵。署名のみ行い、Cookie値の暗号化はしない。
func NewManager(secret []byte, store Store, config Config) *Manager {
	codec := securecookie.New(secret, nil)
	codec.MaxAge(config.MaxAge)
	return &Manager{
		store:  store,
		codec:  codec,
		config: config,
	}
}

// Load はリクエストのCookieからセッションを復元する。
// Cookieなし・署名不正・ストア未検出のいずれの場合も新しい匿名セッションを返す。
// 匿名セッションはEstablishされるまでストアには保存されない。
func (m *Manager) Load(r *http.Request) *Record {
	cookie, err := r.Cookie(m.config.CookieName)
	if err != nil || cookie.Value == "" {
		return m.newAnonymous()
	}

	var id string
	if err := m.codec.Decode(m.config.CookieName, cookie.Value, &id); err != nil {
		return m.newAnonymous()
	}

	rec, err := m.store.Find(r.Context(), id)
	if err != nil || rec == nil {
		return m.newAnonymous()
	}

	return rec
}

// Establish はセッションを認証済み状態に遷移させる。
// 既存のIdentityは上書きされる。レコードをストアに保存し、
// 署名付きセッションID Cookieをレスポンスに書き込む。
func (m *Manager) Establish(ctx context.Context, w http.ResponseWriter, rec *Record, email string, userID int64) error {
	rec.Identity = &Identity{Email: email, UserID: userID}
	rec.ExpiresAt = time.Now().Add(time.Duration(m.config.MaxAge) * time.Second)

	if err := m.store.Save(ctx, rec); err != nil {
		return err
	}

	encoded, err := m.codec.Encode(m.config.CookieName, rec.ID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    encoded,
		Path:     "/",
		Domain:   m.config.Domain,
		MaxAge:   m.config.MaxAge,
		HttpOnly: true,
		Secure:   m.config.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Clear はセッションを匿名状態に遷移させる。
// ストアからレコードを削除し、Cookieを失効させる。
// ストア削除に失敗してもCookieは必ずクリアする。
func (m *Manager) Clear(ctx context.Context, w http.ResponseWriter, rec *Record) error {
	err := m.store.Delete(ctx, rec.ID)
	rec.Identity = nil

	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   m.config.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.config.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return err
}

// Current はセッションの識別情報を返す。
// 認証済みの場合は(identity, true)、匿名の場合は(nil, false)。
func (m *Manager) Current(rec *Record) (*Identity, bool) {
	if rec == nil || rec.Identity == nil {
		return nil, false
	}
	return rec.Identity, true
}

// newAnonymous は新しい匿名セッションレコードを生成する。
func (m *Manager) newAnonymous() *Record {
	return &Record{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Duration(m.config.MaxAge) * time.Second),
	}
}
