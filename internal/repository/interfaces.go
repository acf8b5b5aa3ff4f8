// Package repository はデータ永続化のインターフェースを定義する。
package repository

import "context"

// スロット名。コレクションごとのJSONスナップショットを保持する3つの名前付きスロット。
const (
	SlotUsers       = "users"
	SlotProperties  = "properties"
	SlotCurrentUser = "currentUser"
)

// SlotRepository は名前付きスロットへのスナップショット永続化インターフェース。
// 各スロットはコレクション全体のシリアライズ済みスナップショットを保持する。
// 部分書き込みやトランザクションの保証はない（書き込みは全置換）。
type SlotRepository interface {
	// Read は指定スロットのスナップショットを取得する。
	// スロットが存在しない場合は (nil, nil) を返す。
	Read(ctx context.Context, name string) ([]byte, error)

	// Write は指定スロットのスナップショットを全置換で書き込む。
	Write(ctx context.Context, name string, data []byte) error

	// Delete は指定スロットを削除する。存在しない場合もエラーにしない。
	Delete(ctx context.Context, name string) error
}
