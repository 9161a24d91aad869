// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// Messageはそのままレスポンスボディに載るため、互換性のある文言を保つこと。
type APIError struct {
	Code    string // エラーコード
	Message string // エラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidBirthday    = "INVALID_BIRTHDAY"
	ErrCodeWeakPassword       = "WEAK_PASSWORD"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodePostNotFound       = "POST_NOT_FOUND"
	ErrCodeForbidden          = "FORBIDDEN"
)

// NewMissingFieldError は必須フィールド欠落エラーを生成する。
// 文言はエンドポイントごとに異なるため呼び出し側が指定する。
func NewMissingFieldError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeMissingField,
		Message: message,
	}
}

// NewInvalidBirthdayFormatError は誕生日の形式エラーを生成する。
// 3つの整数に分割できない、または月が1〜12の範囲外の場合。
func NewInvalidBirthdayFormatError() *APIError {
	return &APIError{
		Code:    ErrCodeInvalidBirthday,
		Message: "Invalid birthday format",
	}
}

// NewInvalidBirthdayRangeError は誕生日の範囲エラーを生成する。
// 日が1〜31、年が1900〜2025の範囲外の場合。
func NewInvalidBirthdayRangeError() *APIError {
	return &APIError{
		Code:    ErrCodeInvalidBirthday,
		Message: "Invalid birthday",
	}
}

// NewWeakPasswordError はパスワード強度不足エラーを生成する。
func NewWeakPasswordError() *APIError {
	return &APIError{
		Code:    ErrCodeWeakPassword,
		Message: "Password must be at least 8 characters long, include an uppercase letter, a lowercase letter, and a number or special character.",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メールアドレス不存在とパスワード不一致を区別しない（情報漏洩防止）。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid email or password",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
	}
}

// NewPostNotFoundError は投稿未検出エラーを生成する。
func NewPostNotFoundError() *APIError {
	return &APIError{
		Code:    ErrCodePostNotFound,
		Message: "Post not found",
	}
}

// NewForbiddenError は投稿所有者ポリシー違反エラーを生成する。
// ENFORCE_POST_OWNERSHIPが有効な場合のみ発生する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: "You can only manage your own posts",
	}
}
