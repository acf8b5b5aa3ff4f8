package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

// TestSetup_JSONOutput はJSON形式でログが出力されることを検証する。
func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, "info")

	logger.Info("test message", slog.String("key", "value"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("出力がJSONとして解析できない: %v", err)
	}
	if entry["msg"] != "test message" {
		t.Errorf("msg = %v, want %q", entry["msg"], "test message")
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want %q", entry["key"], "value")
	}
}

// TestSetup_LevelFilter はレベル未満のログが抑制されることを検証する。
func TestSetup_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, "warn")

	logger.Info("should be suppressed")
	if buf.Len() != 0 {
		t.Errorf("infoログが抑制されていない: %s", buf.String())
	}

	logger.Warn("should be written")
	if buf.Len() == 0 {
		t.Error("warnログが出力されていない")
	}
}

// TestParseLevel は不明なレベル文字列がinfoにフォールバックすることを検証する。
func TestParseLevel(t *testing.T) {
	if parseLevel("DEBUG") != slog.LevelDebug {
		t.Error("debugは大文字でも解釈されるべき")
	}
	if parseLevel("verbose") != slog.LevelInfo {
		t.Error("不明な値はinfo扱いになるべき")
	}
}
