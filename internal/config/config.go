// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabasePath string

	// Rate Limit
	RateLimitGeneral int // API全般（req/min/クライアント）
	RateLimitListing int // 物件登録（req/min/クライアント）

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// すべての項目に既定値があり、ローカル利用では環境変数なしで起動できる。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabasePath = getEnvString("DATABASE_PATH", "./bashachai.db")
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitListing = getEnvInt("RATE_LIMIT_LISTING", 10)

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return nil, fmt.Errorf("SERVER_PORT must be numeric: %q", cfg.ServerPort)
	}
	if cfg.RateLimitGeneral <= 0 || cfg.RateLimitListing <= 0 {
		return nil, fmt.Errorf("rate limits must be positive: general=%d listing=%d",
			cfg.RateLimitGeneral, cfg.RateLimitListing)
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
