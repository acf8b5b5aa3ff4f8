package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/bashachai/internal/middleware"
	"github.com/hitoshi/bashachai/internal/model"
)

// ReviewServiceInterface はレビューハンドラーが必要とするサービスインターフェース。
type ReviewServiceInterface interface {
	SubmitReview(ctx context.Context, actor *model.User, propertyID int64, rating int, comment string) (*model.Review, error)
}

// ReviewHandler はレビュー投稿のHTTPハンドラー。
type ReviewHandler struct {
	service ReviewServiceInterface
}

// NewReviewHandler はReviewHandlerを生成する。
func NewReviewHandler(service ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// submitReviewRequest はレビュー投稿リクエストのボディ。
type submitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SubmitReview はレビュー投稿を処理する。ログインとテナント権限が必要。
// POST /api/properties/:id/reviews
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
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

	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	review, err := h.service.SubmitReview(r.Context(), actor, propertyID, req.Rating, req.Comment)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(reviewResponse{
		UserName: review.UserName,
		Rating:   review.Rating,
		Comment:  review.Comment,
		Date:     review.Date,
	})
}
