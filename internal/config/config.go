// Package config は環境変数からのアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// セッションバックエンドの種類。
const (
	SessionBackendFilesystem = "filesystem"
	SessionBackendMemory     = "memory"
	SessionBackendRedis      = "redis"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Session
	SessionSecret          string
	SessionBackend         string // filesystem | memory | redis
	SessionFileDir         string
	SessionKeyPrefix       string
	SessionCookieName      string
	SessionMaxAge          int // 秒
	SessionCleanupInterval time.Duration

	// Redis（SessionBackend=redisの場合のみ使用）
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Password
	BcryptCost int

	// Policy
	EnforcePostOwnership bool

	// Server
	ServerPort string
	AppEnv     string // development | production

	// Cookie
	CookieSecure bool
	CookieDomain string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// カレントディレクトリに.envがあればまず読み込む（上書きはしない）。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.SessionBackend = getEnvString("SESSION_BACKEND", SessionBackendFilesystem)
	cfg.SessionFileDir = getEnvString("SESSION_FILE_DIR", "./session_data")
	cfg.SessionKeyPrefix = getEnvString("SESSION_KEY_PREFIX", "session:")
	cfg.SessionCookieName = getEnvString("SESSION_COOKIE_NAME", "session_id")
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)
	cfg.SessionCleanupInterval = getEnvDuration("SESSION_CLEANUP_INTERVAL", 1*time.Hour)
	cfg.RedisAddr = getEnvString("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", 12)
	cfg.EnforcePostOwnership = getEnvBool("ENFORCE_POST_OWNERSHIP", false)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.AppEnv = getEnvString("APP_ENV", "development")
	cfg.CookieSecure = cfg.AppEnv == "production"
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	switch cfg.SessionBackend {
	case SessionBackendFilesystem, SessionBackendMemory, SessionBackendRedis:
	default:
		return nil, fmt.Errorf("invalid SESSION_BACKEND: %q (must be filesystem, memory or redis)", cfg.SessionBackend)
	}

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
