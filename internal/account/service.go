// Package account はユーザー登録・ログイン・セッション管理のドメインロジックを提供する。
package account

import (
	"context"
	"log/slog"

	"github.com/hitoshi/bashachai/internal/model"
	"github.com/hitoshi/bashachai/internal/store"
)

// MetricsRecorder はアカウント操作のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordRegistration()
	RecordLogin(success bool)
}

// Service はアカウント管理のサービス層。
type Service struct {
	store   *store.Store
	metrics MetricsRecorder
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(st *store.Store, metrics MetricsRecorder) *Service {
	return &Service{
		store:   st,
		metrics: metrics,
	}
}

// Register は新規ユーザーを登録する。
// 同一メールアドレスのユーザーが存在する場合はDUPLICATE_EMAILで失敗する。
// パスワードの強度・形式の検証は行わない。
func (s *Service) Register(ctx context.Context, name, email, phone, password string, role model.Role) (*model.User, error) {
	if existing := s.store.FindUserByEmail(ctx, email); existing != nil {
		return nil, model.NewDuplicateEmailError(email)
	}

	user := model.User{
		ID:       model.NewID(),
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password,
		Role:     role,
	}
	s.store.AddUser(ctx, user)

	if s.metrics != nil {
		s.metrics.RecordRegistration()
	}
	slog.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return &user, nil
}

// Login はメールアドレスとパスワードの完全一致でログインする。
// 成功時はセッションを設定してユーザーを返し、失敗時はINVALID_CREDENTIALSを返す。
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	user := s.store.FindUserByEmail(ctx, email)
	if user == nil || user.Password != password {
		if s.metrics != nil {
			s.metrics.RecordLogin(false)
		}
		return nil, model.NewInvalidCredentialsError()
	}

	s.store.SetCurrentUser(ctx, user)

	if s.metrics != nil {
		s.metrics.RecordLogin(true)
	}
	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// Logout はセッションを解除する。未ログインでもエラーにしない。
func (s *Service) Logout(ctx context.Context) {
	s.store.SetCurrentUser(ctx, nil)
	slog.Info("user logged out")
}

// CurrentUser は現在ログイン中のユーザーを返す。未ログインの場合はnil。
func (s *Service) CurrentUser(ctx context.Context) *model.User {
	return s.store.CurrentUser(ctx)
}
