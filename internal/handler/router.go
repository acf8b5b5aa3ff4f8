package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/bashachai/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// データベース接続の死活確認に使用する。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CurrentUserSource middleware.CurrentUserSource
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	StatusRecorder    middleware.StatusRecorder

	// 認証
	AccountService AccountServiceInterface

	// 物件
	PropertyService PropertyServiceInterface

	// レビュー
	ReviewService ReviewServiceInterface

	// 支払い
	PaymentService PaymentServiceInterface

	// 運用
	HealthChecker  HealthChecker
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → RateLimit(General)
//
// 物件の閲覧は未ログインでも可能なため、変更系のルートのみ
// ログイン必須ミドルウェアで保護する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.StatusRecorder))

	authHandler := NewAuthHandler(deps.AccountService)
	propertyHandler := NewPropertyHandler(deps.PropertyService)
	reviewHandler := NewReviewHandler(deps.ReviewService)
	paymentHandler := NewPaymentHandler(deps.PaymentService)

	// --- 運用ルート（レート制限の外） ---

	r.Get("/healthz", healthzHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- APIルート ---

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 認証
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		// 物件の閲覧（未ログイン可）
		r.Get("/api/properties", propertyHandler.ListProperties)
		r.Get("/api/properties/{id}", propertyHandler.GetProperty)
		r.Get("/api/hostels", propertyHandler.ListHostels)

		// 変更系ルート（ログイン必須）
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewRequireLoginMiddleware(deps.CurrentUserSource))

			// POST /api/properties - 物件登録（登録専用レート制限を追加）
			r.With(deps.RateLimiter.ListingRegistrationMiddleware()).
				Post("/api/properties", propertyHandler.CreateProperty)

			r.Delete("/api/properties/{id}", propertyHandler.DeleteProperty)
			r.Post("/api/properties/{id}/reviews", reviewHandler.SubmitReview)
			r.Post("/api/properties/{id}/payment/quote", paymentHandler.Quote)
			r.Post("/api/properties/{id}/payment", paymentHandler.Confirm)
		})
	})

	return r
}

// healthzHandler はヘルスチェックエンドポイントのハンドラーを返す。
// データベースへの疎通が取れない場合は503を返す。
func healthzHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
