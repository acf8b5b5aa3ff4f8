package store

import "github.com/hitoshi/bashachai/internal/model"

// sampleProperties は初回起動時に投入する固定のサンプル物件を返す。
// オーナーIDは0（実在ユーザーなし）のため、削除操作の所有者チェックを通過しない。
func sampleProperties() []model.Property {
	return []model.Property{
		{
			ID:          model.NewID(),
			Title:       "Modern 2BHK Apartment in Dhanmondi",
			Type:        "Apartment",
			Area:        "Dhanmondi",
			Rent:        25000,
			Address:     "Road 15, Dhanmondi, Dhaka",
			Description: "Spacious 2 bedroom apartment with modern amenities",
			Images:      []string{},
			Nearby: model.NearbyFacilities{
				Hospital:   "Square Hospital - 1.2km",
				School:     "Scholastica School - 0.8km",
				University: "Dhaka University - 2.5km",
				Restaurant: "Star Kabab - 0.3km",
			},
			Reviews:   []model.Review{},
			OwnerName: "Sample Owner",
		},
	}
}
