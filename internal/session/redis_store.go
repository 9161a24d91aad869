package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore はRedisを使用したセッションストア。
// 有効期限はRedisのTTLに委譲する。
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisStoreConfig はRedisStoreの接続設定。
type RedisStoreConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // キープレフィックス（例: "session:"）
}

// NewRedisStore はRedisStoreを生成し、接続を確認する。
func NewRedisStore(ctx context.Context, cfg RedisStoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

// key はセッションIDからRedisキーを組み立てる。
func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Find は指定IDのレコードを取得する。見つからない場合はnilを返す。
// 期限切れレコードはRedisのTTLで自動削除されている。
func (s *RedisStore) Find(ctx context.Context, id string) (*Record, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil
	}

	return &rec, nil
}

// Save はレコードを保存する。TTLはExpiresAtまでの残り時間に設定する。
func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session record already expired")
	}

	if err := s.client.Set(ctx, s.key(rec.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

// Delete は指定IDのレコードを削除する。
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}

// PurgeExpired はRedisではTTLによる自動失効のため何もしない。
func (s *RedisStore) PurgeExpired(ctx context.Context) (int, error) {
	return 0, nil
}

// Close はRedis接続を閉じる。
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// compile-time interface check
var _ Store = (*RedisStore)(nil)
