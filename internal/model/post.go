// Package model はドメインモデルを定義する。
package model

import "time"

// Post はユーザーの投稿を表す。
// IDと作成日時はデータベースが採番・付与する。
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostWithAuthor は投稿と投稿者の氏名をJOINしたフィード表示用ビュー。
type PostWithAuthor struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
