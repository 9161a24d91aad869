package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/tsunagu/internal/auth"
	"github.com/hitoshi/tsunagu/internal/middleware"
	"github.com/hitoshi/tsunagu/internal/model"
	"github.com/hitoshi/tsunagu/internal/session"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*model.User, error)
	Register(ctx context.Context, input auth.RegisterInput) (*model.User, error)
	ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error
}

// SessionManagerInterface はハンドラーが必要とするセッション操作インターフェース。
// session.Managerの部分集合として定義する。
type SessionManagerInterface interface {
	Establish(ctx context.Context, w http.ResponseWriter, rec *session.Record, email string, userID int64) error
	Clear(ctx context.Context, w http.ResponseWriter, rec *session.Record) error
	Current(rec *session.Record) (*session.Identity, bool)
}

// AuthEventRecorder は認証イベントのメトリクス記録インターフェース。
type AuthEventRecorder interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordUserRegistered()
}

// AuthHandler はログイン・登録・パスワード変更・セッション確認のHTTPハンドラー。
type AuthHandler struct {
	service  AuthServiceInterface
	sessions SessionManagerInterface
	events   AuthEventRecorder
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, sessions SessionManagerInterface, events AuthEventRecorder) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		events:   events,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login は資格情報を検証し、セッションを発行する。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.events.RecordLoginFailure()
		handleServiceError(w, err, fmt.Sprintf("Login failed: %s", err))
		return
	}

	rec := middleware.SessionFromContext(r.Context())
	if rec == nil {
		slog.Error("session record missing from context")
		writeAPIErrorResponse(w, http.StatusInternalServerError, "Login failed: session unavailable")
		return
	}
	if err := h.sessions.Establish(r.Context(), w, rec, user.Email, user.ID); err != nil {
		writeAPIErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Login failed: %s", err))
		return
	}

	h.events.RecordLoginSuccess()
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"message":  "Login successful",
		"redirect": "/dashboard",
	})
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register は新規ユーザーを登録する。自動ログインはしない。
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.service.Register(r.Context(), auth.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthday:  req.Birthday,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		handleServiceError(w, err, fmt.Sprintf("Registration failed: %s", err))
		return
	}

	h.events.RecordUserRegistered()
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"message": "Registration successful",
	})
}

type forgotPasswordRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// ForgotPassword は現在のパスワードを本人確認としてパスワードを変更する。
// トークンやメールによる確認フローは持たない。
// POST /forgot_password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(r.Context(), req.Email, req.Password, req.NewPassword); err != nil {
		handleServiceError(w, err, fmt.Sprintf("Password change failed: %s", err))
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"message": "Password successfully changed",
	})
}

// CurrentUser はセッションの識別情報とログイン状態を返す。常に200を返す。
// GET /user
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	rec := middleware.SessionFromContext(r.Context())

	identity, loggedIn := h.sessions.Current(rec)
	redirect := "/"
	if loggedIn {
		redirect = "/dashboard"
	}

	// identityがnilの場合はJSONのnullとして返る
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"user":      identity,
		"logged_in": loggedIn,
		"redirect":  redirect,
	})
}

// Logout はセッションを破棄する。未ログインでも200を返す。
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	rec := middleware.SessionFromContext(r.Context())
	if rec != nil {
		// ストア側の失敗はログに残すのみ。Cookieは常に失効させる。
		if err := h.sessions.Clear(r.Context(), w, rec); err != nil {
			slog.Warn("failed to delete session from store", slog.String("error", err.Error()))
		}
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"message":  "Logout successful",
		"redirect": "/",
	})
}
