package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/tsunagu/internal/metrics"
	"github.com/hitoshi/tsunagu/internal/middleware"
)

// HealthPinger はヘルスチェックで疎通確認する依存のインターフェース。
// *sql.DBが満たす。
type HealthPinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	SessionLoader     middleware.SessionLoader
	CORSAllowedOrigin string
	Metrics           *metrics.Collector

	// サービス
	AuthService      AuthServiceInterface
	SessionManager   SessionManagerInterface
	DirectoryService DirectoryServiceInterface
	PostService      PostServiceInterface

	// ヘルスチェック
	DB HealthPinger
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → CORS → SecurityHeaders → Logging → Metrics → Session
//
// パスはフロントエンドとの互換性のため従来のまま維持する（プレフィックスなし）。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewSessionMiddleware(deps.SessionLoader))

	var authEvents AuthEventRecorder = noopEvents{}
	var postEvents PostEventRecorder = noopEvents{}
	if deps.Metrics != nil {
		authEvents = deps.Metrics
		postEvents = deps.Metrics
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.SessionManager, authEvents)
	directoryHandler := NewDirectoryHandler(deps.DirectoryService)
	postHandler := NewPostHandler(deps.PostService, postEvents)

	// 認証
	r.Post("/login", authHandler.Login)
	r.Post("/register", authHandler.Register)
	r.Post("/forgot_password", authHandler.ForgotPassword)
	r.Get("/user", authHandler.CurrentUser)
	r.Post("/logout", authHandler.Logout)

	// ユーザー検索・参照
	r.Get("/search", directoryHandler.Search)
	r.Get("/user/{id:[0-9]+}", directoryHandler.GetUser)

	// 投稿
	r.Post("/post", postHandler.Create)
	r.Get("/posts", postHandler.List)
	r.Get("/user_posts/{id:[0-9]+}", postHandler.ListByUser)
	r.Delete("/posts/{id:[0-9]+}", postHandler.Delete)

	// ヘルスチェック
	r.Get("/health", NewHealthHandler(deps.DB))

	return r
}

// noopEvents はメトリクス未設定時のフォールバック。
type noopEvents struct{}

func (noopEvents) RecordLoginSuccess()   {}
func (noopEvents) RecordLoginFailure()   {}
func (noopEvents) RecordUserRegistered() {}
func (noopEvents) RecordPostCreated()    {}
func (noopEvents) RecordPostDeleted()    {}

// NewHealthHandler はデータベース疎通を確認するヘルスチェックハンドラーを返す。
func NewHealthHandler(db HealthPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				writeJSONResponse(w, http.StatusServiceUnavailable, map[string]any{
					"status": "unavailable",
				})
				return
			}
		}
		writeJSONResponse(w, http.StatusOK, map[string]any{
			"status": "ok",
		})
	}
}
