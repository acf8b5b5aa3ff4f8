// Package model はドメインモデルを定義する。
package model

// Role はユーザーのロールを表す。
type Role string

const (
	// RoleOwner は物件オーナーを表す。
	RoleOwner Role = "owner"
	// RoleTenant は入居者（テナント）を表す。
	RoleTenant Role = "tenant"
)

// ParseRole は文字列からRoleを解析する。
// owner、tenant以外はエラーを返す。
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleTenant:
		return RoleTenant, nil
	default:
		return "", NewInvalidRoleError(s)
	}
}

// User はサービス利用ユーザーを表す。
// パスワードは平文で保持する既知の弱点がある。APIレスポンスには含めない。
// JSONタグは永続化スロットのスナップショット形式を定める。
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}
