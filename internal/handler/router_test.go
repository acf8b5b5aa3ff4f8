package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/hitoshi/bashachai/internal/account"
	"github.com/hitoshi/bashachai/internal/middleware"
	"github.com/hitoshi/bashachai/internal/model"
	"github.com/hitoshi/bashachai/internal/payment"
	"github.com/hitoshi/bashachai/internal/property"
	"github.com/hitoshi/bashachai/internal/security"
	"github.com/hitoshi/bashachai/internal/store"
)

// fakeSlotRepo はインメモリのスロットリポジトリ。
type fakeSlotRepo struct {
	data map[string][]byte
}

func (f *fakeSlotRepo) Read(ctx context.Context, name string) ([]byte, error) {
	return f.data[name], nil
}
func (f *fakeSlotRepo) Write(ctx context.Context, name string, data []byte) error {
	f.data[name] = data
	return nil
}
func (f *fakeSlotRepo) Delete(ctx context.Context, name string) error {
	delete(f.data, name)
	return nil
}

// newTestRouter は実サービスを組み合わせたルーターを構築する。
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	st := store.New(&fakeSlotRepo{data: map[string][]byte{}})
	sanitizer := security.NewTextSanitizer()
	rl := middleware.NewRateLimiter(middleware.NewRateLimiterConfig(1200, 100))
	t.Cleanup(rl.Stop)

	deps := &RouterDeps{
		CurrentUserSource: st,
		CORSAllowedOrigin: "http://localhost:3000",
		RateLimiter:       rl,
		Logger:            slog.New(slog.NewJSONHandler(io.Discard, nil)),
		AccountService:    account.NewService(st, nil),
		PropertyService:   property.NewService(st, sanitizer, nil),
		ReviewService:     property.NewService(st, sanitizer, nil),
		PaymentService:    payment.NewService(st, nil),
	}
	return NewRouter(deps)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// TestRouter_RegisterLoginCreateFlow は登録からログイン、物件登録、一覧
// までの一連のフローを検証する。
func TestRouter_RegisterLoginCreateFlow(t *testing.T) {
	router := newTestRouter(t)

	// 登録
	rec := doJSON(t, router, http.MethodPost, "/auth/register",
		`{"name":"Owner","email":"owner@example.com","phone":"017","password":"pw","role":"owner"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// 未ログインでの物件登録は401
	rec = doJSON(t, router, http.MethodPost, "/api/properties", `{"title":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("create before login: status = %d, want 401", rec.Code)
	}

	// ログイン
	rec = doJSON(t, router, http.MethodPost, "/auth/login",
		`{"email":"owner@example.com","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// 物件登録
	rec = doJSON(t, router, http.MethodPost, "/api/properties",
		`{"title":"Flat A","type":"Apartment","area":"Dhanmondi","rent":25000,"address":"Road 1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var created propertyDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}

	// 一覧に登録した物件が含まれる
	rec = doJSON(t, router, http.MethodGet, "/api/properties", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var list []propertySummaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	found := false
	for _, p := range list {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("登録した物件が一覧に含まれていない: %+v", list)
	}

	// ログアウト後は変更系が401
	rec = doJSON(t, router, http.MethodPost, "/auth/logout", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/properties/1", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("delete after logout: status = %d, want 401", rec.Code)
	}
}

// TestRouter_HostelDiscountFlow はホステル登録からテナントの支払い見積もり
// までのフローを検証する。
func TestRouter_HostelDiscountFlow(t *testing.T) {
	router := newTestRouter(t)

	// オーナー登録・ログイン・ホステル登録
	doJSON(t, router, http.MethodPost, "/auth/register",
		`{"name":"Owner","email":"owner@example.com","password":"pw","role":"owner"}`)
	doJSON(t, router, http.MethodPost, "/auth/login",
		`{"email":"owner@example.com","password":"pw"}`)
	rec := doJSON(t, router, http.MethodPost, "/api/properties",
		`{"title":"Green Hostel","type":"Boys Hostel","area":"Mirpur","rent":10000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create hostel: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var hostel propertyDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&hostel); err != nil {
		t.Fatalf("failed to decode hostel: %v", err)
	}

	// ホステル一覧に出る
	rec = doJSON(t, router, http.MethodGet, "/api/hostels?type=boys", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("hostels: status = %d", rec.Code)
	}

	// テナントに切り替え
	doJSON(t, router, http.MethodPost, "/auth/register",
		`{"name":"Tenant","email":"tenant@example.com","password":"pw","role":"tenant"}`)
	doJSON(t, router, http.MethodPost, "/auth/login",
		`{"email":"tenant@example.com","password":"pw"}`)

	// 見積もり: 20%割引
	rec = doJSON(t, router, http.MethodPost,
		"/api/properties/"+itoa(hostel.ID)+"/payment/quote", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("quote: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var quote model.PaymentQuote
	if err := json.NewDecoder(rec.Body).Decode(&quote); err != nil {
		t.Fatalf("failed to decode quote: %v", err)
	}
	if quote.OriginalRent != 10000 || quote.Discount != 2000 || quote.FinalRent != 8000 {
		t.Errorf("quote = %+v", quote)
	}

	// 支払い確定
	rec = doJSON(t, router, http.MethodPost,
		"/api/properties/"+itoa(hostel.ID)+"/payment",
		`{"method":"bKash","mobileNumber":"01711111111","transactionId":"TXN1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("confirm: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var receipt receiptResponse
	if err := json.NewDecoder(rec.Body).Decode(&receipt); err != nil {
		t.Fatalf("failed to decode receipt: %v", err)
	}
	if receipt.Amount != 8000 || receipt.ID == "" {
		t.Errorf("receipt = %+v", receipt)
	}

	// レビュー投稿
	rec = doJSON(t, router, http.MethodPost,
		"/api/properties/"+itoa(hostel.ID)+"/reviews",
		`{"rating":5,"comment":"最高のホステルでした"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("review: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// 詳細にレビューと平均評価が反映される
	rec = doJSON(t, router, http.MethodGet, "/api/properties/"+itoa(hostel.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail: status = %d", rec.Code)
	}
	var detail propertyDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&detail); err != nil {
		t.Fatalf("failed to decode detail: %v", err)
	}
	if len(detail.Reviews) != 1 || detail.AverageRating != 5 || detail.Stars != 5 {
		t.Errorf("detail = %+v", detail)
	}
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

// itoa はint64の10進文字列表現を返すテストヘルパー。
func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
