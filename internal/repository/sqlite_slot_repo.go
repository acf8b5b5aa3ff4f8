package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLiteSlotRepo はSQLiteを使用したスロットリポジトリ。
// slotsテーブルの1行が1スロットに対応する。
type SQLiteSlotRepo struct {
	db *sqlx.DB
}

// NewSQLiteSlotRepo はSQLiteSlotRepoを生成する。
func NewSQLiteSlotRepo(db *sqlx.DB) *SQLiteSlotRepo {
	return &SQLiteSlotRepo{db: db}
}

// Read は指定スロットのスナップショットを取得する。存在しない場合は (nil, nil) を返す。
func (r *SQLiteSlotRepo) Read(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := r.db.GetContext(ctx, &data,
		`SELECT data FROM slots WHERE name = ?`, name)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", name, err)
	}

	return data, nil
}

// Write は指定スロットのスナップショットを全置換で書き込む。
func (r *SQLiteSlotRepo) Write(ctx context.Context, name string, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO slots (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", name, err)
	}

	return nil
}

// Delete は指定スロットを削除する。存在しない場合もエラーにしない。
func (r *SQLiteSlotRepo) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM slots WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", name, err)
	}

	return nil
}

// compile-time interface check
var _ SlotRepository = (*SQLiteSlotRepo)(nil)
