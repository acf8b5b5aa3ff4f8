// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/bashachai/internal/model"
)

// AccountServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AccountServiceInterface interface {
	Register(ctx context.Context, name, email, phone, password string, role model.Role) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) *model.User
}

// AuthHandler はユーザー登録・ログイン関連のHTTPハンドラー。
type AuthHandler struct {
	service AccountServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AccountServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// registerRequest はユーザー登録リクエストのボディ。
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse はユーザー情報のAPIレスポンス。パスワードは含めない。
type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// Register はユーザー登録を処理する。
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password, role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toUserResponse(user))
}

// Login はログインを処理する。
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toUserResponse(user))
}

// Logout はログアウトを処理する。未ログインでも成功として扱う。
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Me はログイン中のユーザー情報を返す。
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.service.CurrentUser(r.Context())
	if user == nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toUserResponse(user))
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  string(user.Role),
	}
}
