// Package property は物件の登録・削除・レビュー投稿のドメインロジックを提供する。
package property

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hitoshi/bashachai/internal/model"
	"github.com/hitoshi/bashachai/internal/store"
)

// TextSanitizer はユーザー入力テキストのサニタイズ機能。
type TextSanitizer interface {
	Sanitize(raw string) string
}

// MetricsRecorder は物件操作のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordPropertyAdded()
	RecordPropertyDeleted()
	RecordReviewSubmitted()
}

// Service は物件管理のサービス層。
type Service struct {
	store     *store.Store
	sanitizer TextSanitizer
	metrics   MetricsRecorder
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(st *store.Store, sanitizer TextSanitizer, metrics MetricsRecorder) *Service {
	return &Service{
		store:     st,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// Add は新規物件を登録する。オーナー権限が必要。
// 画像バッチはいずれか1枚でも不正なら全体を拒否し、物件は保存されない。
// テキストフィールドは保存前にサニタイズされる。
func (s *Service) Add(ctx context.Context, actor *model.User, fields model.PropertyFields, images []string) (*model.Property, error) {
	if actor == nil {
		return nil, model.NewUnauthorizedError()
	}
	if actor.Role != model.RoleOwner {
		return nil, model.NewOwnerRoleRequiredError()
	}

	if err := ValidateImageBatch(images); err != nil {
		return nil, err
	}

	fields.Title = s.sanitizer.Sanitize(fields.Title)
	fields.Area = s.sanitizer.Sanitize(fields.Area)
	fields.Address = s.sanitizer.Sanitize(fields.Address)
	fields.Description = s.sanitizer.Sanitize(fields.Description)

	property, err := model.NewProperty(actor, fields, images)
	if err != nil {
		return nil, err
	}
	s.store.AddProperty(ctx, *property)

	if s.metrics != nil {
		s.metrics.RecordPropertyAdded()
	}
	slog.Info("property added",
		slog.Int64("property_id", property.ID),
		slog.Int64("owner_id", actor.ID),
		slog.String("type", property.Type),
	)

	return property, nil
}

// Get はIDで物件を取得する。見つからない場合はPROPERTY_NOT_FOUND。
func (s *Service) Get(ctx context.Context, id int64) (*model.Property, error) {
	property := s.store.PropertyByID(ctx, id)
	if property == nil {
		return nil, model.NewPropertyNotFoundError(id)
	}
	return property, nil
}

// Delete は物件を削除する。物件の所有者本人のみが削除できる。
// 存在しない物件の削除はPROPERTY_NOT_FOUND、他人の物件はFORBIDDEN。
func (s *Service) Delete(ctx context.Context, actor *model.User, id int64) error {
	if actor == nil {
		return model.NewUnauthorizedError()
	}

	property := s.store.PropertyByID(ctx, id)
	if property == nil {
		return model.NewPropertyNotFoundError(id)
	}
	if property.OwnerID != actor.ID {
		return model.NewNotOwnerError()
	}

	if !s.store.RemoveProperty(ctx, id) {
		return model.NewPropertyNotFoundError(id)
	}

	if s.metrics != nil {
		s.metrics.RecordPropertyDeleted()
	}
	slog.Info("property deleted",
		slog.Int64("property_id", id),
		slog.Int64("owner_id", actor.ID),
	)

	return nil
}

// SubmitReview は物件にレビューを投稿する。テナント権限が必要。
// コメントはサニタイズ後に空白のみなら空コメントとして拒否される。
// 評価は1〜5の範囲でなければならない。
func (s *Service) SubmitReview(ctx context.Context, actor *model.User, propertyID int64, rating int, comment string) (*model.Review, error) {
	if actor == nil {
		return nil, model.NewUnauthorizedError()
	}
	if actor.Role != model.RoleTenant {
		return nil, model.NewTenantRoleRequiredError()
	}

	if s.store.PropertyByID(ctx, propertyID) == nil {
		return nil, model.NewPropertyNotFoundError(propertyID)
	}

	sanitized := strings.TrimSpace(s.sanitizer.Sanitize(comment))
	review, err := model.NewReview(actor.Name, actor.ID, rating, sanitized)
	if err != nil {
		return nil, err
	}

	if !s.store.AppendReview(ctx, propertyID, *review) {
		return nil, model.NewPropertyNotFoundError(propertyID)
	}

	if s.metrics != nil {
		s.metrics.RecordReviewSubmitted()
	}
	slog.Info("review submitted",
		slog.Int64("property_id", propertyID),
		slog.Int64("user_id", actor.ID),
		slog.Int("rating", rating),
	)

	return review, nil
}

// List はすべての物件を返す。
func (s *Service) List(ctx context.Context) []model.Property {
	return s.store.Properties(ctx)
}
