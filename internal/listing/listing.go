// Package listing は物件コレクションに対する検索・集計の純粋関数を提供する。
// 本パッケージの関数は入力を変更せず、副作用を持たない。
package listing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hitoshi/bashachai/internal/model"
)

// Partition は一般物件とホステルに分割されたコレクション。
type Partition struct {
	General []model.Property
	Hostels []model.Property
}

// PartitionByCategory は物件を一般物件とホステル（Boys Hostel / Girls Hostel）
// の2つのバケットに分割する。
func PartitionByCategory(properties []model.Property) Partition {
	p := Partition{
		General: []model.Property{},
		Hostels: []model.Property{},
	}
	for _, property := range properties {
		if model.IsHostelType(property.Type) {
			p.Hostels = append(p.Hostels, property)
		} else {
			p.General = append(p.General, property)
		}
	}
	return p
}

// HostelTypeFromKey は外部表現のタブキー（"boys" / "girls"）を
// 予約済みの物件タイプ文字列に変換する。
func HostelTypeFromKey(key string) (string, error) {
	switch key {
	case "boys":
		return model.TypeBoysHostel, nil
	case "girls":
		return model.TypeGirlsHostel, nil
	default:
		return "", model.NewInvalidHostelTypeError(key)
	}
}

// FilterHostelsByType は指定種別のホステルのみを返す。
// kindはBoys Hostel / Girls Hostelのいずれかでなければならない。
func FilterHostelsByType(properties []model.Property, kind string) ([]model.Property, error) {
	if !model.IsHostelType(kind) {
		return nil, model.NewInvalidHostelTypeError(kind)
	}

	matched := []model.Property{}
	for _, property := range properties {
		if property.Type == kind {
			matched = append(matched, property)
		}
	}
	return matched, nil
}

// BudgetRange は家賃の包含範囲 [Min, Max]。
type BudgetRange struct {
	Min int
	Max int
}

// Contains はrentが範囲内（両端含む）かを返す。
func (r BudgetRange) Contains(rent int) bool {
	return rent >= r.Min && rent <= r.Max
}

// ParseBudgetRange は"min-max"形式の文字列を解析する。
// 数値でない値、負の値、min > maxはINVALID_BUDGET_RANGEエラー。
func ParseBudgetRange(raw string) (*BudgetRange, error) {
	minStr, maxStr, found := strings.Cut(raw, "-")
	if !found {
		return nil, model.NewInvalidBudgetRangeError(raw)
	}
	min, err := strconv.Atoi(strings.TrimSpace(minStr))
	if err != nil {
		return nil, model.NewInvalidBudgetRangeError(raw)
	}
	max, err := strconv.Atoi(strings.TrimSpace(maxStr))
	if err != nil {
		return nil, model.NewInvalidBudgetRangeError(raw)
	}
	if min < 0 || max < 0 || min > max {
		return nil, model.NewInvalidBudgetRangeError(raw)
	}
	return &BudgetRange{Min: min, Max: max}, nil
}

// GeneralFilter は一般物件の検索条件。未指定のフィールドはワイルドカード。
type GeneralFilter struct {
	Area   string
	Budget *BudgetRange
	Type   string
}

// FilterGeneral は一般カテゴリの物件のうち、指定されたすべての条件に
// 一致するものを返す。ホステルは常に除外される。
// 一致なしは空のスライスであり、エラーではない。
func FilterGeneral(properties []model.Property, filter GeneralFilter) []model.Property {
	matched := []model.Property{}
	for _, property := range properties {
		if model.IsHostelType(property.Type) {
			continue
		}
		if filter.Area != "" && property.Area != filter.Area {
			continue
		}
		if filter.Type != "" && property.Type != filter.Type {
			continue
		}
		if filter.Budget != nil && !filter.Budget.Contains(property.Rent) {
			continue
		}
		matched = append(matched, property)
	}
	return matched
}

// AverageRating はレビューの算術平均を返す。レビューなしは0。
// 丸めは行わない。表示用の丸めはStarCountが担う。
func AverageRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// StarCount は平均評価を四捨五入した星の数（0〜5）を返す。
func StarCount(average float64) int {
	return int(math.Floor(average + 0.5))
}

// FormatRating は平均評価の表示文字列を返す。小数1桁。
func FormatRating(average float64) string {
	return fmt.Sprintf("%.1f", average)
}

// DiscountQuote は物件の支払いプレビューを計算する。
// ホステル物件かつテナントの場合のみ固定20%の学生割引を適用する。
func DiscountQuote(property *model.Property, user *model.User) model.PaymentQuote {
	quote := model.PaymentQuote{
		PropertyID:   property.ID,
		Title:        property.Title,
		OriginalRent: property.Rent,
	}
	if model.IsHostelType(property.Type) && user != nil && user.Role == model.RoleTenant {
		quote.StudentDiscount = true
		quote.Discount = 0.2 * float64(property.Rent)
		quote.FinalRent = 0.8 * float64(property.Rent)
	} else {
		quote.FinalRent = float64(property.Rent)
	}
	return quote
}
