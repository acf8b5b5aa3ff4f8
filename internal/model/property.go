// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
)

// 予約済みの物件種別。この2種別のみがホステル扱いとなり、一般物件と区別される。
const (
	TypeBoysHostel  = "Boys Hostel"
	TypeGirlsHostel = "Girls Hostel"
)

// MaxImages は1物件あたりの画像枚数上限。
const MaxImages = 5

// NotSpecified は周辺施設が未入力の場合の既定値。
const NotSpecified = "Not specified"

// IsHostelType は物件種別がホステル種別かどうかを返す。
func IsHostelType(propertyType string) bool {
	return propertyType == TypeBoysHostel || propertyType == TypeGirlsHostel
}

// NearbyFacilities は周辺施設までの距離情報を表す固定4項目のレコード。
// 各項目は自由記述で、未入力はNotSpecifiedに正規化される。
type NearbyFacilities struct {
	Hospital   string `json:"hospital"`
	School     string `json:"school"`
	University string `json:"university"`
	Restaurant string `json:"restaurant"`
}

// Normalize は未入力の項目をNotSpecifiedで埋めたコピーを返す。
func (n NearbyFacilities) Normalize() NearbyFacilities {
	if strings.TrimSpace(n.Hospital) == "" {
		n.Hospital = NotSpecified
	}
	if strings.TrimSpace(n.School) == "" {
		n.School = NotSpecified
	}
	if strings.TrimSpace(n.University) == "" {
		n.University = NotSpecified
	}
	if strings.TrimSpace(n.Restaurant) == "" {
		n.Restaurant = NotSpecified
	}
	return n
}

// Review は入居者による物件レビューを表す。作成後は変更されない。
type Review struct {
	UserName string    `json:"userName"`
	UserID   int64     `json:"userId"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

// NewReview はレビューを生成する。
// 評価値の範囲（1〜5）とコメントの非空（トリム後）を構築時に強制する。
func NewReview(userName string, userID int64, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, NewInvalidRatingError(rating)
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, NewEmptyCommentError()
	}

	return &Review{
		UserName: userName,
		UserID:   userID,
		Rating:   rating,
		Comment:  comment,
		Date:     time.Now(),
	}, nil
}

// Property は賃貸物件を表す。
// 作成後の変更はレビューの追記のみで、削除はオーナー本人に限られる。
type Property struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Type        string           `json:"type"`
	Area        string           `json:"area"`
	Rent        int              `json:"rent"`
	Address     string           `json:"address"`
	Description string           `json:"description"`
	Images      []string         `json:"images"`
	Nearby      NearbyFacilities `json:"nearby"`
	Reviews     []Review         `json:"reviews"`
	OwnerID     int64            `json:"ownerId"`
	OwnerName   string           `json:"ownerName"`
}

// PropertyFields は物件作成時の入力フィールド。
// ID、レビュー、オーナー情報は構築時に付与されるため含まない。
type PropertyFields struct {
	Title       string
	Type        string
	Area        string
	Rent        int
	Address     string
	Description string
	Nearby      NearbyFacilities
}

// NewProperty は物件を生成する。
// 画像枚数の上限を構築時に強制し、超過した場合はバッチ全体を拒否する。
// オーナー名は作成時点のスナップショットとして非正規化コピーされる。
func NewProperty(owner *User, f PropertyFields, images []string) (*Property, error) {
	if len(images) > MaxImages {
		return nil, NewTooManyImagesError(len(images))
	}

	imgs := make([]string, len(images))
	copy(imgs, images)

	return &Property{
		ID:          NewID(),
		Title:       f.Title,
		Type:        f.Type,
		Area:        f.Area,
		Rent:        f.Rent,
		Address:     f.Address,
		Description: f.Description,
		Images:      imgs,
		Nearby:      f.Nearby.Normalize(),
		Reviews:     []Review{},
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
	}, nil
}
