// Package model はドメインモデルを定義する。
package model

// User はサービス利用ユーザーを表す。
// IDはデータベースが採番する。PasswordHashはbcryptダイジェスト。
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	BirthMonth   string // 英語の月名（"January"〜"December"）
	BirthDay     int
	BirthYear    int
}

// UserSummary はユーザー検索・参照APIが返す公開属性のみのビュー。
// パスワードハッシュや生年月日は含まない。
type UserSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserProfile はID指定のユーザー参照APIが返すビュー。
// UserSummaryに加えてメールアドレスを含む。
type UserProfile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
