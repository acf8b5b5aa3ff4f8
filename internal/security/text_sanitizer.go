// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizerService はユーザー入力のテキスト（物件タイトル、説明、
// レビューコメント等）をサニタイズし、保存データ経由のXSSからUIを保護する。
// bluemondayライブラリの許可リストベースのポリシーで、タグを一切許可しない。
package security

import "github.com/microcosm-cc/bluemonday"

// TextSanitizerService はテキストサニタイズ機能のインターフェースを定義する。
// ユーザー入力の保存前に使用される。
type TextSanitizerService interface {
	// Sanitize は入力テキストからすべてのHTMLタグを除去して返す。
	// script等のタグはタグごと除去され、タグに挟まれた本文は保持される。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
// 物件情報・レビューはプレーンテキストとして扱うため、許可タグは空
// （StrictPolicy相当）とし、すべてのタグと属性を除去する。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力テキストからすべてのHTMLタグを除去して返す。
func (s *textSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
