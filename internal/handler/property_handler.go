package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/bashachai/internal/listing"
	"github.com/hitoshi/bashachai/internal/middleware"
	"github.com/hitoshi/bashachai/internal/model"
)

// PropertyServiceInterface は物件ハンドラーが必要とするサービスインターフェース。
type PropertyServiceInterface interface {
	// Add は新規物件を登録する。
	Add(ctx context.Context, actor *model.User, fields model.PropertyFields, images []string) (*model.Property, error)
	// Get はIDで物件を取得する。
	Get(ctx context.Context, id int64) (*model.Property, error)
	// Delete は物件を削除する。
	Delete(ctx context.Context, actor *model.User, id int64) error
	// List はすべての物件を返す。
	List(ctx context.Context) []model.Property
}

// PropertyHandler は物件管理のHTTPハンドラー。
type PropertyHandler struct {
	service PropertyServiceInterface
}

// NewPropertyHandler はPropertyHandlerを生成する。
func NewPropertyHandler(service PropertyServiceInterface) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// createPropertyRequest は物件登録リクエストのボディ。
type createPropertyRequest struct {
	Title       string                 `json:"title"`
	Type        string                 `json:"type"`
	Area        string                 `json:"area"`
	Rent        int                    `json:"rent"`
	Address     string                 `json:"address"`
	Description string                 `json:"description"`
	Images      []string               `json:"images"`
	Nearby      model.NearbyFacilities `json:"nearby"`
}

// propertySummaryResponse は物件一覧のAPIレスポンス。
type propertySummaryResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Area          string   `json:"area"`
	Rent          int      `json:"rent"`
	Address       string   `json:"address"`
	Images        []string `json:"images"`
	OwnerName     string   `json:"ownerName"`
	AverageRating float64  `json:"averageRating"`
	Stars         int      `json:"stars"`
	ReviewCount   int      `json:"reviewCount"`
}

// reviewResponse はレビューのAPIレスポンス。
type reviewResponse struct {
	UserName string    `json:"userName"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

// propertyDetailResponse は物件詳細のAPIレスポンス。
type propertyDetailResponse struct {
	ID            int64                  `json:"id"`
	Title         string                 `json:"title"`
	Type          string                 `json:"type"`
	Area          string                 `json:"area"`
	Rent          int                    `json:"rent"`
	Address       string                 `json:"address"`
	Description   string                 `json:"description"`
	Images        []string               `json:"images"`
	Nearby        model.NearbyFacilities `json:"nearby"`
	Reviews       []reviewResponse       `json:"reviews"`
	OwnerID       int64                  `json:"ownerId"`
	OwnerName     string                 `json:"ownerName"`
	AverageRating float64                `json:"averageRating"`
	Stars         int                    `json:"stars"`
}

// ListProperties は一般物件の一覧を返す。
// GET /api/properties?area=&budget=min-max&type=
// 未指定のクエリはワイルドカード。ホステルは含まれない。
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	filter := listing.GeneralFilter{
		Area: r.URL.Query().Get("area"),
		Type: r.URL.Query().Get("type"),
	}

	if raw := r.URL.Query().Get("budget"); raw != "" {
		budget, err := listing.ParseBudgetRange(raw)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		filter.Budget = budget
	}

	properties := listing.FilterGeneral(h.service.List(r.Context()), filter)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toSummaryResponses(properties))
}

// ListHostels は指定種別のホステル一覧を返す。
// GET /api/hostels?type=boys|girls
func (h *PropertyHandler) ListHostels(w http.ResponseWriter, r *http.Request) {
	kind, err := listing.HostelTypeFromKey(r.URL.Query().Get("type"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	hostels, err := listing.FilterHostelsByType(h.service.List(r.Context()), kind)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toSummaryResponses(hostels))
}

// GetProperty は物件詳細をレビュー・平均評価つきで返す。
// GET /api/properties/:id
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := propertyIDFromURL(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	property, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDetailResponse(property))
}

// CreateProperty は物件登録を処理する。ログインとオーナー権限が必要。
// POST /api/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	fields := model.PropertyFields{
		Title:       req.Title,
		Type:        req.Type,
		Area:        req.Area,
		Rent:        req.Rent,
		Address:     req.Address,
		Description: req.Description,
		Nearby:      req.Nearby,
	}
	property, err := h.service.Add(r.Context(), actor, fields, req.Images)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toDetailResponse(property))
}

// DeleteProperty は物件を削除する。ログインと所有者本人であることが必要。
// DELETE /api/properties/:id
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	id, err := propertyIDFromURL(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- ヘルパー関数 ---

// propertyIDFromURL はURLパスのid部分を解析する。
// 数値でない場合は存在しない物件として扱う。
func propertyIDFromURL(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.NewPropertyNotFoundError(0)
	}
	return id, nil
}

// toSummaryResponses は物件スライスから一覧レスポンスに変換する。
func toSummaryResponses(properties []model.Property) []propertySummaryResponse {
	responses := make([]propertySummaryResponse, 0, len(properties))
	for _, property := range properties {
		average := listing.AverageRating(property.Reviews)
		responses = append(responses, propertySummaryResponse{
			ID:            property.ID,
			Title:         property.Title,
			Type:          property.Type,
			Area:          property.Area,
			Rent:          property.Rent,
			Address:       property.Address,
			Images:        property.Images,
			OwnerName:     property.OwnerName,
			AverageRating: average,
			Stars:         listing.StarCount(average),
			ReviewCount:   len(property.Reviews),
		})
	}
	return responses
}

// toDetailResponse は物件から詳細レスポンスに変換する。
func toDetailResponse(property *model.Property) propertyDetailResponse {
	reviews := make([]reviewResponse, 0, len(property.Reviews))
	for _, review := range property.Reviews {
		reviews = append(reviews, reviewResponse{
			UserName: review.UserName,
			Rating:   review.Rating,
			Comment:  review.Comment,
			Date:     review.Date,
		})
	}

	average := listing.AverageRating(property.Reviews)
	return propertyDetailResponse{
		ID:            property.ID,
		Title:         property.Title,
		Type:          property.Type,
		Area:          property.Area,
		Rent:          property.Rent,
		Address:       property.Address,
		Description:   property.Description,
		Images:        property.Images,
		Nearby:        property.Nearby,
		Reviews:       reviews,
		OwnerID:       property.OwnerID,
		OwnerName:     property.OwnerName,
		AverageRating: average,
		Stars:         listing.StarCount(average),
	}
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// writeInvalidRequestBody はリクエストボディ解析失敗の400レスポンスを書き込む。
func writeInvalidRequestBody(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeDuplicateEmail:
		return http.StatusConflict
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodePropertyNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidRole,
		model.ErrCodeInvalidRating,
		model.ErrCodeEmptyComment,
		model.ErrCodeTooManyImages,
		model.ErrCodeInvalidImage,
		model.ErrCodeInvalidHostelType,
		model.ErrCodeInvalidBudgetRange,
		model.ErrCodeInvalidPaymentMethod,
		model.ErrCodeMissingPaymentDetails:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
