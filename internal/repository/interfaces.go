// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/tsunagu/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	// 重複メールが存在する場合は最初の1件を返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// Create はユーザーを作成し、採番されたIDをuser.IDに書き戻す。
	Create(ctx context.Context, user *model.User) error

	// UpdatePasswordByEmail は指定メールアドレスのユーザーのパスワードハッシュを更新する。
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error

	// SearchByName は姓または名に対する大文字小文字を区別しない部分一致検索を行う。
	// 並び順はストア依存。
	SearchByName(ctx context.Context, query string) ([]model.UserSummary, error)
}

// PostRepository は投稿データの永続化インターフェース。
type PostRepository interface {
	// Create は投稿を作成し、採番されたIDと作成日時を含むレコードを返す。
	Create(ctx context.Context, userID int64, content string) (*model.Post, error)

	// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Post, error)

	// ListWithAuthors は全投稿を投稿者の氏名付きで作成日時の降順で返す。
	ListWithAuthors(ctx context.Context) ([]model.PostWithAuthor, error)

	// ListByUserID は指定ユーザーの投稿を作成日時の降順で返す。
	// ユーザーが存在しない場合も空リストを返す。
	ListByUserID(ctx context.Context, userID int64) ([]model.Post, error)

	// DeleteByID は指定IDの投稿を削除する。
	DeleteByID(ctx context.Context, id int64) error
}
