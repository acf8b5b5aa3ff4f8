// Package app はアプリケーションの起動と依存関係のワイヤリングを提供する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/bashachai/internal/account"
	"github.com/hitoshi/bashachai/internal/config"
	"github.com/hitoshi/bashachai/internal/database"
	"github.com/hitoshi/bashachai/internal/handler"
	"github.com/hitoshi/bashachai/internal/logger"
	"github.com/hitoshi/bashachai/internal/metrics"
	"github.com/hitoshi/bashachai/internal/middleware"
	"github.com/hitoshi/bashachai/internal/payment"
	"github.com/hitoshi/bashachai/internal/property"
	"github.com/hitoshi/bashachai/internal/repository"
	"github.com/hitoshi/bashachai/internal/security"
	"github.com/hitoshi/bashachai/internal/store"
)

// Init はアプリケーションの初期化を行う。
// .envファイルがあれば読み込み、JSON構造化ログをセットアップしたうえで
// 環境変数からConfigを読み込む。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// .envは任意。存在しなくてもエラーにしない
	_ = godotenv.Load()

	// ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("database_path", cfg.DatabasePath),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、マイグレーションを適用し、全依存関係をワイヤリングして
// HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. マイグレーションとDB接続
	if err := database.RunMigrations(cfg.DatabasePath); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリとストアの初期化
	slotRepo := repository.NewSQLiteSlotRepo(db)
	st := store.New(slotRepo)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelLoad()
	if err := st.Load(loadCtx); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	// 3. メトリクスとセキュリティサービスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	sanitizer := security.NewTextSanitizer()

	// 4. ドメインサービスの初期化
	accountService := account.NewService(st, collector)
	propertyService := property.NewService(st, sanitizer, collector)
	paymentService := payment.NewService(st, collector)

	// 5. ルーターの構築
	rateLimiter := middleware.NewRateLimiter(
		middleware.NewRateLimiterConfig(cfg.RateLimitGeneral, cfg.RateLimitListing),
	)
	defer rateLimiter.Stop()

	deps := &handler.RouterDeps{
		CurrentUserSource: st,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),
		StatusRecorder:    collector,

		AccountService:  accountService,
		PropertyService: propertyService,
		ReviewService:   propertyService,
		PaymentService:  paymentService,

		HealthChecker:  db,
		MetricsHandler: metrics.Handler(registry),
	}

	router := handler.NewRouter(deps)

	// 6. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_path", cfg.DatabasePath),
	)

	if err := database.RunMigrations(cfg.DatabasePath); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /healthz エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/healthz", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
