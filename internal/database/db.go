package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Open はSQLiteデータベース接続を開く。
// pathにはデータベースファイルのパスを指定する（例: "./bashachai.db"）。
// sqlx.Openは接続を試行しないため、実際の接続確認にはdb.Ping()を使用すること。
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLiteは単一ファイルへの書き込みのため、同時書き込みコネクションを1本に制限する
	db.SetMaxOpenConns(1)

	return db, nil
}
