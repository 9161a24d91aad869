// Package auth は資格情報の検証とアカウント登録を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/tsunagu/internal/model"
	"github.com/hitoshi/tsunagu/internal/password"
	"github.com/hitoshi/tsunagu/internal/repository"
	"github.com/hitoshi/tsunagu/internal/validate"
)

// RegisterInput は登録リクエストの入力。
type RegisterInput struct {
	FirstName string
	LastName  string
	Birthday  string // "YYYY-MM-DD"
	Email     string
	Password  string
}

// Service は認証に関するビジネスロジックを提供する。
// セッションの発行・破棄はハンドラー層のsession.Managerが担う。
type Service struct {
	userRepo repository.UserRepository
	hasher   *password.Hasher
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, hasher *password.Hasher) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Login はメールアドレスとパスワードを検証し、該当ユーザーを返す。
// ユーザー不存在とパスワード不一致は区別せず同一のエラーを返す。
func (s *Service) Login(ctx context.Context, email, plainPassword string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if !s.hasher.Verify(user.PasswordHash, plainPassword) {
		return nil, model.NewInvalidCredentialsError()
	}

	slog.Info("user logged in", slog.Int64("user_id", user.ID))
	return user, nil
}

// Register は入力を検証し、新規ユーザーを作成する。
// 検証順序は 必須フィールド → 誕生日 → パスワード強度。自動ログインはしない。
// メールアドレスの重複チェックは行わない（ストア側でも未強制）。
func (s *Service) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.Birthday == "" ||
		input.Email == "" || input.Password == "" {
		return nil, model.NewMissingFieldError("All fields are required")
	}

	birthday, err := validate.ParseBirthday(input.Birthday)
	if err != nil {
		return nil, err
	}

	if !validate.Password(input.Password) {
		return nil, model.NewWeakPasswordError()
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		BirthMonth:   birthday.MonthName,
		BirthDay:     birthday.Day,
		BirthYear:    birthday.Year,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("new user registered",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return user, nil
}

// ChangePassword は現在のパスワードを本人確認としてパスワードハッシュを更新する。
// トークンやメールによる帯域外確認は行わない。既存セッションは有効なまま残る。
func (s *Service) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return model.NewInvalidCredentialsError()
	}

	if !s.hasher.Verify(user.PasswordHash, currentPassword) {
		return model.NewInvalidCredentialsError()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordByEmail(ctx, email, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password changed", slog.Int64("user_id", user.ID))
	return nil
}
