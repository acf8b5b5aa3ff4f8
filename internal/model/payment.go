// Package model はドメインモデルを定義する。
package model

import "time"

// PaymentMethod はモバイルウォレットの支払い方法を表す。
type PaymentMethod string

const (
	// MethodBKash はbKashでの支払いを表す。
	MethodBKash PaymentMethod = "bKash"
	// MethodNagad はNagadでの支払いを表す。
	MethodNagad PaymentMethod = "Nagad"
	// MethodRocket はRocketでの支払いを表す。
	MethodRocket PaymentMethod = "Rocket"
)

// ParsePaymentMethod は文字列からPaymentMethodを解析する。
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodBKash, MethodNagad, MethodRocket:
		return PaymentMethod(s), nil
	default:
		return "", NewInvalidPaymentMethodError(s)
	}
}

// PaymentQuote は支払いプレビューを表す。
// ホステル物件を入居者が予約する場合のみ20%の学生割引が適用される。
type PaymentQuote struct {
	PropertyID      int64   `json:"property_id"`
	Title           string  `json:"title"`
	OriginalRent    int     `json:"original_rent"`
	Discount        float64 `json:"discount"`
	FinalRent       float64 `json:"final_rent"`
	StudentDiscount bool    `json:"student_discount"`
}

// Receipt は模擬支払いの受領記録を表す。
// 実際の決済処理は行わず、どこにも永続化されない。
type Receipt struct {
	ID            string        `json:"id"`
	PropertyID    int64         `json:"property_id"`
	Method        PaymentMethod `json:"method"`
	Amount        float64       `json:"amount"`
	MobileNumber  string        `json:"mobile_number"`
	TransactionID string        `json:"transaction_id"`
	PaidAt        time.Time     `json:"paid_at"`
}
