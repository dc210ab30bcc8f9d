package models

import "time"

// Facility 시설 목록 페이지에서 수집한 기본 행
// 상세 크롤링 대상 선정의 기준 테이블, (forest_id, name)이 upsert 키
type Facility struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ForestID        uint      `json:"forest_id" gorm:"uniqueIndex:idx_fac_forest_name;not null"`
	Name            string    `json:"name" gorm:"uniqueIndex:idx_fac_forest_name;size:100;not null"`
	FacilityType    string    `json:"facility_type" gorm:"size:40"`
	Capacity        int       `json:"capacity"`
	Area            float64   `json:"area"`
	CheckinTime     string    `json:"checkin_time" gorm:"size:20"`
	PriceOffWeekday int       `json:"price_off_weekday"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
