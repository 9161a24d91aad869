// Package directory はユーザーの検索とID参照を提供する。
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/hitoshi/tsunagu/internal/model"
	"github.com/hitoshi/tsunagu/internal/repository"
)

// Service はユーザー検索に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// Search は姓または名に対する大文字小文字を区別しない部分一致検索を行う。
// クエリが空白のみの場合はストアに問い合わせず空リストを返す。
func (s *Service) Search(ctx context.Context, query string) ([]model.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.UserSummary{}, nil
	}

	users, err := s.userRepo.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	if users == nil {
		users = []model.UserSummary{}
	}
	return users, nil
}

// GetProfile は指定IDのユーザーの公開プロフィールを返す。
func (s *Service) GetProfile(ctx context.Context, id int64) (*model.UserProfile, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	return &model.UserProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}, nil
}
