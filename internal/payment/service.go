// Package payment はモバイルウォレット支払いの模擬処理を提供する。
// 確認は受領記録を返すのみで、決済ゲートウェイ連携も永続化も行わない。
package payment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/bashachai/internal/listing"
	"github.com/hitoshi/bashachai/internal/model"
	"github.com/hitoshi/bashachai/internal/store"
)

// MetricsRecorder は支払い操作のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordPaymentConfirmed(amount float64)
}

// Service は支払い処理のサービス層。
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

// Quote は支払いプレビューを返す。ログインが必要。
// ホステル物件をテナントが支払う場合のみ20%割引が適用される。
func (s *Service) Quote(ctx context.Context, actor *model.User, propertyID int64) (*model.PaymentQuote, error) {
	if actor == nil {
		return nil, model.NewUnauthorizedError()
	}

	property := s.store.PropertyByID(ctx, propertyID)
	if property == nil {
		return nil, model.NewPropertyNotFoundError(propertyID)
	}

	quote := listing.DiscountQuote(property, actor)
	return &quote, nil
}

// Confirm は支払いを確定し、受領記録を返す。ログインが必要。
// 支払い方法はbKash / Nagad / Rocketのいずれか、携帯番号と
// トランザクションIDはトリム後に空でないこと。
func (s *Service) Confirm(ctx context.Context, actor *model.User, propertyID int64, method, mobileNumber, transactionID string) (*model.Receipt, error) {
	if actor == nil {
		return nil, model.NewUnauthorizedError()
	}

	property := s.store.PropertyByID(ctx, propertyID)
	if property == nil {
		return nil, model.NewPropertyNotFoundError(propertyID)
	}

	parsedMethod, err := model.ParsePaymentMethod(method)
	if err != nil {
		return nil, err
	}

	mobileNumber = strings.TrimSpace(mobileNumber)
	transactionID = strings.TrimSpace(transactionID)
	if mobileNumber == "" || transactionID == "" {
		return nil, model.NewMissingPaymentDetailsError()
	}

	quote := listing.DiscountQuote(property, actor)
	receipt := model.Receipt{
		ID:            uuid.NewString(),
		PropertyID:    propertyID,
		Method:        parsedMethod,
		Amount:        quote.FinalRent,
		MobileNumber:  mobileNumber,
		TransactionID: transactionID,
		PaidAt:        time.Now(),
	}

	if s.metrics != nil {
		s.metrics.RecordPaymentConfirmed(receipt.Amount)
	}
	slog.Info("payment confirmed",
		slog.String("receipt_id", receipt.ID),
		slog.Int64("property_id", propertyID),
		slog.Int64("user_id", actor.ID),
		slog.String("method", string(parsedMethod)),
		slog.Float64("amount", receipt.Amount),
	)

	return &receipt, nil
}
