// Package password はパスワードのbcryptハッシュ化と検証を提供する。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost はbcryptのデフォルトコストファクタ。
const DefaultCost = 12

// Hasher はbcryptによるパスワードハッシュ化を行う。
// コストファクタは設定から注入する。
type Hasher struct {
	cost int
}

// NewHasher はHasherを生成する。
// costがbcryptの許容範囲外の場合はDefaultCostを使用する。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash は平文パスワードからソルト付きダイジェストを生成する。
// ソルトは毎回ランダムに生成されるため、同じ平文でも毎回異なるダイジェストになる。
func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify はダイジェストと平文の一致を検証する。
// 不正な形式のダイジェストは検証失敗として扱い、エラーは返さない。
func (h *Hasher) Verify(digest, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
