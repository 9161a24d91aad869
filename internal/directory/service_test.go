package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hitoshi/tsunagu/internal/model"
)

// mockUserRepo はテスト用のUserRepositoryモック。
type mockUserRepo struct {
	usersByID   map[int64]*model.User
	summaries   []model.UserSummary
	searchCalls int
	searchQuery string
	searchErr   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{usersByID: make(map[int64]*model.User)}
}

func (m *mockUserRepo) FindByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.usersByID[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *mockUserRepo) Create(_ context.Context, _ *model.User) error { return nil }

func (m *mockUserRepo) UpdatePasswordByEmail(_ context.Context, _, _ string) error { return nil }

func (m *mockUserRepo) SearchByName(_ context.Context, query string) ([]model.UserSummary, error) {
	m.searchCalls++
	m.searchQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.summaries, nil
}

func TestSearch_ReturnsMatches(t *testing.T) {
	repo := newMockUserRepo()
	repo.summaries = []model.UserSummary{
		{ID: 1, FirstName: "Taro", LastName: "Yamada"},
		{ID: 2, FirstName: "Hanako", LastName: "Yamada"},
	}
	service := NewService(repo)

	users, err := service.Search(context.Background(), "yamada")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("result count = %d, want 2", len(users))
	}
	if repo.searchQuery != "yamada" {
		t.Errorf("query passed to repo = %q, want %q", repo.searchQuery, "yamada")
	}
}

func TestSearch_BlankQuery_SkipsStore(t *testing.T) {
	tests := []string{"", "   ", "\t"}
	for _, query := range tests {
		t.Run(fmt.Sprintf("query=%q", query), func(t *testing.T) {
			repo := newMockUserRepo()
			service := NewService(repo)

			users, err := service.Search(context.Background(), query)
			if err != nil {
				t.Fatalf("Search returned error: %v", err)
			}
			if users == nil || len(users) != 0 {
				t.Errorf("blank query should yield empty list, got %v", users)
			}
			if repo.searchCalls != 0 {
				t.Error("blank query must not reach the store")
			}
		})
	}
}

func TestSearch_TrimsQuery(t *testing.T) {
	repo := newMockUserRepo()
	service := NewService(repo)

	if _, err := service.Search(context.Background(), "  taro  "); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if repo.searchQuery != "taro" {
		t.Errorf("query passed to repo = %q, want trimmed %q", repo.searchQuery, "taro")
	}
}

func TestSearch_NilResult_ReturnsEmptyList(t *testing.T) {
	// リポジトリがnilスライスを返してもJSONでは[]として返せること
	service := NewService(newMockUserRepo())

	users, err := service.Search(context.Background(), "nomatch")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if users == nil {
		t.Error("expected non-nil empty slice")
	}
}

func TestSearch_RepoError_Propagates(t *testing.T) {
	repo := newMockUserRepo()
	repo.searchErr = fmt.Errorf("connection refused")
	service := NewService(repo)

	_, err := service.Search(context.Background(), "taro")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestGetProfile_Success(t *testing.T) {
	repo := newMockUserRepo()
	repo.usersByID[7] = &model.User{
		ID:           7,
		FirstName:    "Taro",
		LastName:     "Yamada",
		Email:        "taro@example.com",
		PasswordHash: "$2b$04$secret",
	}
	service := NewService(repo)

	profile, err := service.GetProfile(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	want := model.UserProfile{ID: 7, FirstName: "Taro", LastName: "Yamada", Email: "taro@example.com"}
	if *profile != want {
		t.Errorf("profile = %+v, want %+v", *profile, want)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	service := NewService(newMockUserRepo())

	_, err := service.GetProfile(context.Background(), 999)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Errorf("expected USER_NOT_FOUND, got %v", err)
	}
}
