package models

import (
	"strings"
	"time"

	"hyurimbot/constants"
)

// Accommodation 휴양림 숙박시설 상세 정보
// (forest_id, name) 조합이 upsert 키
type Accommodation struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ForestID         uint      `json:"forest_id" gorm:"uniqueIndex:idx_accom_forest_name;not null"`
	Name             string    `json:"name" gorm:"uniqueIndex:idx_accom_forest_name;size:100;not null"`
	FacilityType     string    `json:"facility_type" gorm:"size:40"` // 휴양관, 숲속의집, 초가집 등
	Capacity         int       `json:"capacity"`                     // 최대 인원
	Area             float64   `json:"area"`                         // 면적(㎡)
	CheckinTime      string    `json:"checkin_time" gorm:"size:20"`
	CheckoutTime     string    `json:"checkout_time" gorm:"size:20;default:'11:00'"`
	PriceOffWeekday  int       `json:"price_off_weekday"`  // 비수기 평일
	PriceOffWeekend  int       `json:"price_off_weekend"`  // 비수기 주말
	PricePeakWeekday int       `json:"price_peak_weekday"` // 성수기 평일
	PricePeakWeekend int       `json:"price_peak_weekend"` // 성수기 주말
	Amenities        string    `json:"amenities" gorm:"type:text"`  // ";" 구분 편의시설 목록
	UsageInfo        string    `json:"usage_info" gorm:"type:text"` // 객실구성/제공품목/예약규칙
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// DataStatus 편의시설 수집 여부에 따른 데이터 수준
func (a *Accommodation) DataStatus() string {
	if strings.TrimSpace(a.Amenities) == "" {
		return constants.DataStatusBasic
	}
	return constants.DataStatusDetailed
}

// AmenityList ";" 구분 문자열을 잘라 목록으로 반환
func (a *Accommodation) AmenityList() []string {
	if strings.TrimSpace(a.Amenities) == "" {
		return nil
	}
	parts := strings.Split(a.Amenities, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
