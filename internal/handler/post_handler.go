package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/tsunagu/internal/middleware"
	"github.com/hitoshi/tsunagu/internal/model"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	Create(ctx context.Context, userID int64, content string, requesterID int64) (*model.Post, error)
	List(ctx context.Context) ([]model.PostWithAuthor, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Post, error)
	Delete(ctx context.Context, postID, requesterID int64) error
}

// PostEventRecorder は投稿イベントのメトリクス記録インターフェース。
type PostEventRecorder interface {
	RecordPostCreated()
	RecordPostDeleted()
}

// PostHandler は投稿の作成・一覧・削除のHTTPハンドラー。
type PostHandler struct {
	service PostServiceInterface
	events  PostEventRecorder
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface, events PostEventRecorder) *PostHandler {
	return &PostHandler{
		service: service,
		events:  events,
	}
}

type createPostRequest struct {
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
}

// Create は投稿を作成する。
// POST /post
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// 所有者チェック用にセッションユーザーのIDを渡す（未ログインは0）
	var requesterID int64
	if rec := middleware.SessionFromContext(r.Context()); rec != nil && rec.Identity != nil {
		requesterID = rec.Identity.UserID
	}

	created, err := h.service.Create(r.Context(), req.UserID, req.Content, requesterID)
	if err != nil {
		handleServiceError(w, err, err.Error())
		return
	}

	h.events.RecordPostCreated()
	writeJSONResponse(w, http.StatusCreated, map[string]any{
		"message": "Post created successfully",
		"post":    created,
	})
}

// List は全投稿を投稿者の氏名付きで新しい順に返す。
// GET /posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err, err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, posts)
}

// ListByUser は指定ユーザーの投稿を新しい順に返す。
// GET /user_posts/{id}
func (h *PostHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	posts, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, posts)
}

// Delete は指定IDの投稿を削除する。
// DELETE /posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// 所有者チェック用にセッションユーザーのIDを渡す（未ログインは0）
	var requesterID int64
	if rec := middleware.SessionFromContext(r.Context()); rec != nil && rec.Identity != nil {
		requesterID = rec.Identity.UserID
	}

	if err := h.service.Delete(r.Context(), postID, requesterID); err != nil {
		handleServiceError(w, err, "An error occurred while deleting the post")
		return
	}

	h.events.RecordPostDeleted()
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"message": "Post deleted successfully",
		"post_id": postID,
	})
}
