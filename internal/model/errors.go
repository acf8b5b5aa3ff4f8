// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, listing, payment, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeDuplicateEmail        = "DUPLICATE_EMAIL"
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodePropertyNotFound      = "PROPERTY_NOT_FOUND"
	ErrCodeInvalidRole           = "INVALID_ROLE"
	ErrCodeInvalidRating         = "INVALID_RATING"
	ErrCodeEmptyComment          = "EMPTY_COMMENT"
	ErrCodeTooManyImages         = "TOO_MANY_IMAGES"
	ErrCodeInvalidImage          = "INVALID_IMAGE"
	ErrCodeInvalidHostelType     = "INVALID_HOSTEL_TYPE"
	ErrCodeInvalidBudgetRange    = "INVALID_BUDGET_RANGE"
	ErrCodeInvalidPaymentMethod  = "INVALID_PAYMENT_METHOD"
	ErrCodeMissingPaymentDetails = "MISSING_PAYMENT_DETAILS"
)

// NewDuplicateEmailError はメールアドレス重複エラーを生成する。
func NewDuplicateEmailError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateEmail,
		Message:  fmt.Sprintf("このメールアドレスは既に登録されています: %s", email),
		Category: "auth",
		Action:   "別のメールアドレスで登録するか、登録済みのアカウントでログインしてください。",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メールアドレス・パスワードのどちらが誤っているかは区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewUnauthorizedError は未ログインエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "ログインが必要です。",
		Category: "auth",
		Action:   "ログインしてから再度お試しください。",
	}
}

// NewOwnerRoleRequiredError はオーナー権限が必要な操作に対するエラーを生成する。
func NewOwnerRoleRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "物件を登録できるのはオーナーのみです。",
		Category: "auth",
		Action:   "オーナーアカウントでログインしてください。",
	}
}

// NewTenantRoleRequiredError は入居者権限が必要な操作に対するエラーを生成する。
func NewTenantRoleRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作ができるのは入居者のみです。",
		Category: "auth",
		Action:   "入居者アカウントでログインしてください。",
	}
}

// NewNotOwnerError は他人の物件に対する削除操作のエラーを生成する。
func NewNotOwnerError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "自分が登録した物件のみ削除できます。",
		Category: "auth",
		Action:   "物件のオーナーアカウントでログインしてください。",
	}
}

// NewPropertyNotFoundError は物件未検出エラーを生成する。
func NewPropertyNotFoundError(propertyID int64) *APIError {
	return &APIError{
		Code:     ErrCodePropertyNotFound,
		Message:  fmt.Sprintf("指定された物件が見つかりません: %d", propertyID),
		Category: "listing",
		Action:   "物件IDを確認してください。既に削除された可能性があります。",
	}
}

// NewInvalidRoleError は無効なロールエラーを生成する。
func NewInvalidRoleError(role string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRole,
		Message:  fmt.Sprintf("無効なロールです: %s", role),
		Category: "validation",
		Action:   "ロールには owner または tenant を指定してください。",
	}
}

// NewInvalidRatingError は評価値の範囲外エラーを生成する。
func NewInvalidRatingError(rating int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRating,
		Message:  fmt.Sprintf("無効な評価値です: %d", rating),
		Category: "validation",
		Action:   "評価は1から5の整数で指定してください。",
	}
}

// NewEmptyCommentError はレビューコメント未入力エラーを生成する。
func NewEmptyCommentError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyComment,
		Message:  "レビューコメントが入力されていません。",
		Category: "validation",
		Action:   "コメントを入力してから投稿してください。",
	}
}

// NewTooManyImagesError は画像枚数超過エラーを生成する。
// 超過した場合はバッチ全体を拒否する（一部だけの登録は行わない）。
func NewTooManyImagesError(count int) *APIError {
	return &APIError{
		Code:     ErrCodeTooManyImages,
		Message:  fmt.Sprintf("画像は最大%d枚までです（%d枚指定されました）。", MaxImages, count),
		Category: "validation",
		Action:   "画像の枚数を減らしてから再度お試しください。",
	}
}

// NewInvalidImageError は画像ペイロード不正エラーを生成する。
// indexは0始まりの画像位置。
func NewInvalidImageError(index int, reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidImage,
		Message:  fmt.Sprintf("%d番目の画像データが不正です: %s", index+1, reason),
		Category: "validation",
		Action:   "画像ファイルを選び直してから再度お試しください。",
	}
}

// NewInvalidHostelTypeError は無効なホステル種別エラーを生成する。
func NewInvalidHostelTypeError(kind string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidHostelType,
		Message:  fmt.Sprintf("無効なホステル種別です: %s", kind),
		Category: "validation",
		Action:   "種別には boys または girls を指定してください。",
	}
}

// NewInvalidBudgetRangeError は無効な家賃範囲エラーを生成する。
func NewInvalidBudgetRangeError(raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidBudgetRange,
		Message:  fmt.Sprintf("無効な家賃範囲です: %s", raw),
		Category: "validation",
		Action:   "家賃範囲は「最小-最大」の形式で指定してください（例: 15000-25000）。",
	}
}

// NewInvalidPaymentMethodError は無効な支払い方法エラーを生成する。
func NewInvalidPaymentMethodError(method string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPaymentMethod,
		Message:  fmt.Sprintf("無効な支払い方法です: %s", method),
		Category: "payment",
		Action:   "bKash、Nagad、Rocketのいずれかを選択してください。",
	}
}

// NewMissingPaymentDetailsError は支払い情報未入力エラーを生成する。
func NewMissingPaymentDetailsError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingPaymentDetails,
		Message:  "支払い情報が入力されていません。",
		Category: "payment",
		Action:   "携帯電話番号とトランザクションIDを入力してください。",
	}
}
