package config

import "testing"

// TestLoad_Defaults は環境変数なしで既定値が適用されることを検証する。
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DatabasePath != "./bashachai.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.RateLimitGeneral != 120 || cfg.RateLimitListing != 10 {
		t.Errorf("rate limits = (%d, %d)", cfg.RateLimitGeneral, cfg.RateLimitListing)
	}
}

// TestLoad_Overrides は環境変数が既定値を上書きすることを検証する。
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_GENERAL", "60")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.RateLimitGeneral != 60 {
		t.Errorf("RateLimitGeneral = %d", cfg.RateLimitGeneral)
	}
}

// TestLoad_InvalidPort は数値でないポート指定がエラーになることを検証する。
func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "http")

	if _, err := Load(); err == nil {
		t.Error("数値でないSERVER_PORTはエラーになるべき")
	}
}

// TestLoad_InvalidIntFallsBack は解析不能な数値指定が既定値に戻ることを検証する。
func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_GENERAL", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want default 120", cfg.RateLimitGeneral)
	}
}
