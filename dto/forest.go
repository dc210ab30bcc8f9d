package dto

import "hyurimbot/models"

// ForestWithStatus 휴양림과 수집 상태
type ForestWithStatus struct {
	models.Forest
	DataStatus     string `json:"data_status"`     // 미수집/기본/상세
	DiscountStatus string `json:"discount_status"` // 미수집/수집
}

// AccommodationWithStatus 숙박시설과 수집 상태
type AccommodationWithStatus struct {
	models.Accommodation
	DataStatus string `json:"data_status"` // 기본/상세
	ForestName string `json:"forest_name"`
}

// DBStats 테이블별 행 수
type DBStats struct {
	Forests        int64 `json:"forests"`
	Accommodations int64 `json:"accommodations"`
	Facilities     int64 `json:"facilities"`
	Discounts      int64 `json:"discounts"`
}
