package database

import (
	"path/filepath"
	"testing"
)

// TestOpenAndMigrate は一時ファイル上でマイグレーションが適用できることを検証する。
func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	if err := RunMigrations(path); err != nil {
		t.Fatalf("RunMigrations returned error: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}

	var count int
	err = db.Get(&count, `SELECT COUNT(*) FROM slots`)
	if err != nil {
		t.Fatalf("slotsテーブルが作成されていない: %v", err)
	}
	if count != 0 {
		t.Errorf("slots count = %d, want 0", count)
	}
}

// TestRunMigrations_Idempotent は再適用がエラーにならないことを検証する。
func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	if err := RunMigrations(path); err != nil {
		t.Fatalf("first RunMigrations returned error: %v", err)
	}
	if err := RunMigrations(path); err != nil {
		t.Fatalf("second RunMigrations returned error: %v", err)
	}
}
