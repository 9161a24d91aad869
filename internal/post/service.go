// Package post は投稿の作成・一覧・削除を提供する。
package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/tsunagu/internal/model"
	"github.com/hitoshi/tsunagu/internal/repository"
)

// ServiceConfig は投稿サービスの設定。
type ServiceConfig struct {
	// EnforceOwnership が真の場合、作成・削除をセッションユーザー本人に限定する。
	EnforceOwnership bool
}

// Service は投稿に関するビジネスロジックを提供する。
type Service struct {
	postRepo repository.PostRepository
	config   ServiceConfig
}

// NewService はServiceを生成する。
func NewService(postRepo repository.PostRepository, config ServiceConfig) *Service {
	return &Service{
		postRepo: postRepo,
		config:   config,
	}
}

// Create は投稿を作成し、採番されたIDと作成日時を含むレコードを返す。
// requesterID はセッションユーザーのID（未認証は0）。EnforceOwnership が
// 有効な場合、user_id がセッションユーザーと一致しない作成は拒否する。
func (s *Service) Create(ctx context.Context, userID int64, content string, requesterID int64) (*model.Post, error) {
	if userID == 0 || content == "" {
		return nil, model.NewMissingFieldError("user_id and content are required")
	}

	if s.config.EnforceOwnership && userID != requesterID {
		return nil, model.NewForbiddenError()
	}

	created, err := s.postRepo.Create(ctx, userID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created",
		slog.Int64("post_id", created.ID),
		slog.Int64("user_id", userID),
	)
	return created, nil
}

// List は全投稿を投稿者の氏名付きで新しい順に返す。
func (s *Service) List(ctx context.Context) ([]model.PostWithAuthor, error) {
	posts, err := s.postRepo.ListWithAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if posts == nil {
		posts = []model.PostWithAuthor{}
	}
	return posts, nil
}

// ListByUser は指定ユーザーの投稿を新しい順に返す。
// ユーザーが存在しない場合も空リストを返す。
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]model.Post, error) {
	posts, err := s.postRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

// Delete は指定IDの投稿を削除する。
// requesterID はセッションユーザーのID（未認証は0）。所有者チェックは
// EnforceOwnership が有効な場合のみ行う。
func (s *Service) Delete(ctx context.Context, postID, requesterID int64) error {
	found, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to find post: %w", err)
	}
	if found == nil {
		return model.NewPostNotFoundError()
	}

	if s.config.EnforceOwnership && found.UserID != requesterID {
		return model.NewForbiddenError()
	}

	if err := s.postRepo.DeleteByID(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	slog.Info("post deleted",
		slog.Int64("post_id", postID),
		slog.Int64("requester_id", requesterID),
	)
	return nil
}
