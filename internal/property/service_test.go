package property

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/hitoshi/bashachai/internal/model"
	"github.com/hitoshi/bashachai/internal/store"
)

// --- モック ---

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

// passthroughSanitizer はテスト用のサニタイザ。入力をそのまま返す。
type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(raw string) string {
	return raw
}

type mockMetrics struct {
	added   int
	deleted int
	reviews int
}

func (m *mockMetrics) RecordPropertyAdded()   { m.added++ }
func (m *mockMetrics) RecordPropertyDeleted() { m.deleted++ }
func (m *mockMetrics) RecordReviewSubmitted() { m.reviews++ }

func newTestService() (*Service, *mockMetrics, *store.Store) {
	st := store.New(&fakeSlotRepo{data: map[string][]byte{}})
	m := &mockMetrics{}
	return NewService(st, passthroughSanitizer{}, m), m, st
}

func testOwner() *model.User {
	return &model.User{ID: 100, Name: "Owner A", Email: "owner@example.com", Role: model.RoleOwner}
}

func testTenant() *model.User {
	return &model.User{ID: 200, Name: "Tenant B", Email: "tenant@example.com", Role: model.RoleTenant}
}

func validImage() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

// --- テスト ---

func TestService_Add(t *testing.T) {
	svc, m, st := newTestService()
	ctx := context.Background()

	fields := model.PropertyFields{
		Title:   "Lakeview Flat",
		Type:    "Apartment",
		Area:    "Gulshan",
		Rent:    30000,
		Address: "Road 11, Gulshan",
	}
	created, err := svc.Add(ctx, testOwner(), fields, []string{validImage()})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if created.OwnerID != 100 || created.OwnerName != "Owner A" {
		t.Errorf("owner snapshot = %d %q", created.OwnerID, created.OwnerName)
	}

	if got := len(st.Properties(ctx)); got != 1 {
		t.Errorf("len(properties) = %d, want 1", got)
	}
	if m.added != 1 {
		t.Errorf("added metric = %d", m.added)
	}
}

// TestService_Add_TenantForbidden はテナントによる物件登録が拒否されることを検証する。
func TestService_Add_TenantForbidden(t *testing.T) {
	svc, _, st := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, testTenant(), model.PropertyFields{Title: "x"}, nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeForbidden {
		t.Fatalf("err = %v, want FORBIDDEN", err)
	}
	if len(st.Properties(ctx)) != 0 {
		t.Error("拒否された登録で物件が保存されてはならない")
	}
}

func TestService_Add_Unauthenticated(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Add(context.Background(), nil, model.PropertyFields{}, nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUnauthorized {
		t.Fatalf("err = %v, want UNAUTHORIZED", err)
	}
}

// TestService_Add_TooManyImages は6枚の画像バッチが全体拒否され、
// コレクションが変化しないことを検証する。
func TestService_Add_TooManyImages(t *testing.T) {
	svc, _, st := newTestService()
	ctx := context.Background()

	images := make([]string, model.MaxImages+1)
	for i := range images {
		images[i] = validImage()
	}

	_, err := svc.Add(ctx, testOwner(), model.PropertyFields{Title: "x"}, images)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeTooManyImages {
		t.Fatalf("err = %v, want TOO_MANY_IMAGES", err)
	}
	if len(st.Properties(ctx)) != 0 {
		t.Error("拒否されたバッチで物件が保存されてはならない")
	}
}

// TestService_Add_InvalidImageRejectsBatch は1枚でも不正なら
// バッチ全体が拒否されることを検証する。
func TestService_Add_InvalidImageRejectsBatch(t *testing.T) {
	svc, _, st := newTestService()
	ctx := context.Background()

	images := []string{validImage(), "data:text/plain;base64,aGVsbG8="}

	_, err := svc.Add(ctx, testOwner(), model.PropertyFields{Title: "x"}, images)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidImage {
		t.Fatalf("err = %v, want INVALID_IMAGE", err)
	}
	if len(st.Properties(ctx)) != 0 {
		t.Error("拒否されたバッチで物件が保存されてはならない")
	}
}

func TestValidateImagePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"有効なPNG", validImage(), false},
		{"有効なJPEG", "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8}), false},
		{"data URIではない", "https://example.com/a.png", true},
		{"画像以外のメディアタイプ", "data:text/html;base64,aGVsbG8=", true},
		{"base64指定なし", "data:image/png,rawbytes", true},
		{"base64本文が不正", "data:image/png;base64,%%%%", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePayload(0, tt.payload)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePayload(%q) error = %v, wantErr %v", tt.payload, err, tt.wantErr)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	svc, m, st := newTestService()
	ctx := context.Background()
	owner := testOwner()

	created, err := svc.Add(ctx, owner, model.PropertyFields{Title: "x", Type: "Apartment"}, nil)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if err := svc.Delete(ctx, owner, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(st.Properties(ctx)) != 0 {
		t.Error("物件が削除されていない")
	}
	if m.deleted != 1 {
		t.Errorf("deleted metric = %d", m.deleted)
	}
}

// TestService_Delete_NotOwner は他人の物件の削除がFORBIDDENになり、
// 物件が残ることを検証する。
func TestService_Delete_NotOwner(t *testing.T) {
	svc, _, st := newTestService()
	ctx := context.Background()

	created, err := svc.Add(ctx, testOwner(), model.PropertyFields{Title: "x"}, nil)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	other := &model.User{ID: 999, Name: "Other", Role: model.RoleOwner}
	deleteErr := svc.Delete(ctx, other, created.ID)
	var apiErr *model.APIError
	if !errors.As(deleteErr, &apiErr) || apiErr.Code != model.ErrCodeForbidden {
		t.Fatalf("err = %v, want FORBIDDEN", deleteErr)
	}
	if len(st.Properties(ctx)) != 1 {
		t.Error("拒否された削除で物件が消えてはならない")
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Delete(context.Background(), testOwner(), 424242)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodePropertyNotFound {
		t.Fatalf("err = %v, want PROPERTY_NOT_FOUND", err)
	}
}

func TestService_SubmitReview(t *testing.T) {
	svc, m, st := newTestService()
	ctx := context.Background()

	created, err := svc.Add(ctx, testOwner(), model.PropertyFields{Title: "x"}, nil)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	review, err := svc.SubmitReview(ctx, testTenant(), created.ID, 4, "広くて清潔でした")
	if err != nil {
		t.Fatalf("SubmitReview returned error: %v", err)
	}
	if review.UserName != "Tenant B" || review.Rating != 4 {
		t.Errorf("review = %+v", review)
	}
	if review.Date.IsZero() {
		t.Error("review date should be set")
	}

	got := st.PropertyByID(ctx, created.ID)
	if len(got.Reviews) != 1 {
		t.Fatalf("len(reviews) = %d, want 1", len(got.Reviews))
	}
	if m.reviews != 1 {
		t.Errorf("reviews metric = %d", m.reviews)
	}
}

// TestService_SubmitReview_OwnerForbidden はオーナーによるレビュー投稿が
// 拒否されることを検証する。
func TestService_SubmitReview_OwnerForbidden(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	owner := testOwner()

	created, err := svc.Add(ctx, owner, model.PropertyFields{Title: "x"}, nil)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	_, reviewErr := svc.SubmitReview(ctx, owner, created.ID, 5, "自画自賛")
	var apiErr *model.APIError
	if !errors.As(reviewErr, &apiErr) || apiErr.Code != model.ErrCodeForbidden {
		t.Fatalf("err = %v, want FORBIDDEN", reviewErr)
	}
}

func TestService_SubmitReview_InvalidInput(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Add(ctx, testOwner(), model.PropertyFields{Title: "x"}, nil)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	tests := []struct {
		rating   int
		comment  string
		wantCode string
	}{
		{0, "ok", model.ErrCodeInvalidRating},
		{6, "ok", model.ErrCodeInvalidRating},
		{3, "   ", model.ErrCodeEmptyComment},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("rating=%d comment=%q", tt.rating, tt.comment), func(t *testing.T) {
			_, err := svc.SubmitReview(ctx, testTenant(), created.ID, tt.rating, tt.comment)
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) || apiErr.Code != tt.wantCode {
				t.Fatalf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestService_SubmitReview_PropertyNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SubmitReview(context.Background(), testTenant(), 424242, 3, "ok")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodePropertyNotFound {
		t.Fatalf("err = %v, want PROPERTY_NOT_FOUND", err)
	}
}

func TestService_Get(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Add(ctx, testOwner(), model.PropertyFields{Title: "x"}, nil)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("Get ID = %d, want %d", got.ID, created.ID)
	}

	if _, err := svc.Get(ctx, 424242); err == nil {
		t.Error("missing property should return error")
	}
}
