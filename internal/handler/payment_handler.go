package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/bashachai/internal/middleware"
	"github.com/hitoshi/bashachai/internal/model"
)

// PaymentServiceInterface は支払いハンドラーが必要とするサービスインターフェース。
type PaymentServiceInterface interface {
	Quote(ctx context.Context, actor *model.User, propertyID int64) (*model.PaymentQuote, error)
	Confirm(ctx context.Context, actor *model.User, propertyID int64, method, mobileNumber, transactionID string) (*model.Receipt, error)
}

// PaymentHandler はモバイルウォレット支払いのHTTPハンドラー。
type PaymentHandler struct {
	service PaymentServiceInterface
}

// NewPaymentHandler はPaymentHandlerを生成する。
func NewPaymentHandler(service PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// confirmPaymentRequest は支払い確定リクエストのボディ。
type confirmPaymentRequest struct {
	Method        string `json:"method"`
	MobileNumber  string `json:"mobileNumber"`
	TransactionID string `json:"transactionId"`
}

// receiptResponse は受領記録のAPIレスポンス。
type receiptResponse struct {
	ID            string    `json:"id"`
	PropertyID    int64     `json:"propertyId"`
	Method        string    `json:"method"`
	Amount        float64   `json:"amount"`
	MobileNumber  string    `json:"mobileNumber"`
	TransactionID string    `json:"transactionId"`
	PaidAt        time.Time `json:"paidAt"`
}

// Quote は支払いプレビューを返す。ログインが必要。
// POST /api/properties/:id/payment/quote
func (h *PaymentHandler) Quote(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	propertyID, err := propertyIDFromURL(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	quote, err := h.service.Quote(r.Context(), actor, propertyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}

// Confirm は支払いを確定し、受領記録を返す。ログインが必要。
// POST /api/properties/:id/payment
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	propertyID, err := propertyIDFromURL(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var req confirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	receipt, err := h.service.Confirm(r.Context(), actor, propertyID, req.Method, req.MobileNumber, req.TransactionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(receiptResponse{
		ID:            receipt.ID,
		PropertyID:    receipt.PropertyID,
		Method:        string(receipt.Method),
		Amount:        receipt.Amount,
		MobileNumber:  receipt.MobileNumber,
		TransactionID: receipt.TransactionID,
		PaidAt:        receipt.PaidAt,
	})
}
