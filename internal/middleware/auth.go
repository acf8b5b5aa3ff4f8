// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hitoshi/bashachai/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userContextKey はリクエストコンテキストにログインユーザーを格納するためのキー。
var userContextKey = contextKey("current_user")

// CurrentUserSource はログイン中のユーザーの取得に必要なインターフェース。
// store.Storeの部分集合として定義する。
type CurrentUserSource interface {
	CurrentUser(ctx context.Context) *model.User
}

// NewRequireLoginMiddleware はログイン必須のエンドポイントを保護するミドルウェアを返す。
// セッションが存在する場合はユーザーをリクエストコンテキストに注入し、
// 未ログインリクエストには統一フォーマットの401を返す。
func NewRequireLoginMiddleware(source CurrentUserSource) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := source.CurrentUser(r.Context())
			if user == nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext はリクエストコンテキストからログインユーザーを取得する。
// ログイン必須ミドルウェアを通過したリクエストでのみ有効。
func UserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// ContextWithUser はコンテキストにユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
