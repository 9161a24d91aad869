package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/tsunagu/internal/model"
)

// DirectoryServiceInterface はユーザー検索ハンドラーが必要とするサービスインターフェース。
type DirectoryServiceInterface interface {
	Search(ctx context.Context, query string) ([]model.UserSummary, error)
	GetProfile(ctx context.Context, id int64) (*model.UserProfile, error)
}

// DirectoryHandler はユーザー検索・参照のHTTPハンドラー。
type DirectoryHandler struct {
	service DirectoryServiceInterface
}

// NewDirectoryHandler はDirectoryHandlerを生成する。
func NewDirectoryHandler(service DirectoryServiceInterface) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// Search は氏名の部分一致でユーザーを検索する。
// GET /search?query=xxx
func (h *DirectoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	users, err := h.service.Search(r.Context(), query)
	if err != nil {
		handleServiceError(w, err, err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"users": users,
	})
}

// GetUser は指定IDのユーザーの公開プロフィールを返す。
// GET /user/{id}
func (h *DirectoryHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// ルートの数値制約により通常は到達しない
		http.NotFound(w, r)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, profile)
}
